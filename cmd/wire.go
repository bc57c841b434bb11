package cmd

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/bnema/trivia-proxy/internal/adapters/memory"
	"github.com/bnema/trivia-proxy/internal/adapters/opentdb"
	"github.com/bnema/trivia-proxy/internal/application"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = "triviad"
	envPrefix  = "TRIVIAD"

	listenKey         = "listen"
	upstreamURLKey    = "upstream_url"
	requestTimeoutKey = "request_timeout"
	retryBaseDelayKey = "retry_base_delay"
)

type appConfig struct {
	Listen         string
	UpstreamURL    string
	RequestTimeout time.Duration
	RetryBaseDelay time.Duration
}

func defaultConfig() appConfig {
	return appConfig{
		Listen:         ":8080",
		UpstreamURL:    "https://opentdb.com",
		RequestTimeout: 10 * time.Second,
		RetryBaseDelay: time.Second,
	}
}

type app struct {
	config       appConfig
	service      *application.TriviaService
	newSessionID func() string
}

func wireApp() (*app, error) {
	config, err := loadConfig(viper.New())
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	bank := &opentdb.Client{
		BaseURL:        config.UpstreamURL,
		HTTPClient:     http.DefaultClient,
		RequestTimeout: config.RequestTimeout,
		RetryBaseDelay: config.RetryBaseDelay,
	}

	return &app{
		config:       config,
		service:      application.NewTriviaService(bank, application.NewTokenService(bank), memory.NewLedger()),
		newSessionID: uuid.NewString,
	}, nil
}

// loadConfig layers defaults, an optional config.toml and TRIVIAD_*
// environment variables, in ascending precedence.
func loadConfig(cfg *viper.Viper) (appConfig, error) {
	defaults := defaultConfig()

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	if dir, err := userConfigDir(); err == nil {
		cfg.AddConfigPath(dir)
	}
	cfg.AddConfigPath(".")

	cfg.SetDefault(listenKey, defaults.Listen)
	cfg.SetDefault(upstreamURLKey, defaults.UpstreamURL)
	cfg.SetDefault(requestTimeoutKey, defaults.RequestTimeout)
	cfg.SetDefault(retryBaseDelayKey, defaults.RetryBaseDelay)

	cfg.SetEnvPrefix(envPrefix)
	cfg.AutomaticEnv()

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return appConfig{}, fmt.Errorf("read config file: %w", err)
		}
	}

	config := appConfig{
		Listen:         cfg.GetString(listenKey),
		UpstreamURL:    cfg.GetString(upstreamURLKey),
		RequestTimeout: cfg.GetDuration(requestTimeoutKey),
		RetryBaseDelay: cfg.GetDuration(retryBaseDelayKey),
	}
	if config.UpstreamURL == "" {
		return appConfig{}, errors.New("upstream url is empty")
	}
	return config, nil
}

func userConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", configDir), nil
}
