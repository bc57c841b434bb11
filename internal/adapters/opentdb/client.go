// Package opentdb talks to the Open Trivia DB HTTP API. Transient
// failures are absorbed by a bounded retry with exponential backoff;
// callers only ever see domain.ErrUpstreamUnavailable after the
// retries run out.
package opentdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bnema/trivia-proxy/internal/domain"
	"github.com/bnema/trivia-proxy/internal/ports"
)

const (
	categoriesPath = "/api_category.php"
	inventoryPath  = "/api_count.php"
	questionsPath  = "/api.php"
	tokenPath      = "/api_token.php"

	maxResponseBytes = 1 << 20
	maxRetries       = 3
)

type Client struct {
	BaseURL        string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	// RetryBaseDelay is the first backoff interval; each retry doubles
	// it. Defaults to one second.
	RetryBaseDelay time.Duration
}

var _ ports.QuestionBank = (*Client)(nil)

type categoriesResponse struct {
	TriviaCategories []domain.Category `json:"trivia_categories"`
}

type inventoryResponse struct {
	CategoryID    int `json:"category_id"`
	QuestionCount struct {
		Total  int `json:"total_question_count"`
		Easy   int `json:"total_easy_question_count"`
		Medium int `json:"total_medium_question_count"`
		Hard   int `json:"total_hard_question_count"`
	} `json:"category_question_count"`
}

type questionPayload struct {
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Category         string   `json:"category"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

type questionsResponse struct {
	ResponseCode int               `json:"response_code"`
	Results      []questionPayload `json:"results"`
}

type tokenResponse struct {
	ResponseCode int    `json:"response_code"`
	Token        string `json:"token"`
}

func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var payload categoriesResponse
	if err := c.getJSON(ctx, categoriesPath, nil, &payload); err != nil {
		return nil, fmt.Errorf("%w: list categories: %v", domain.ErrUpstreamUnavailable, err)
	}
	if len(payload.TriviaCategories) == 0 {
		return nil, fmt.Errorf("%w: category list response was empty", domain.ErrUpstreamUnavailable)
	}
	return payload.TriviaCategories, nil
}

func (c *Client) CategoryInventory(ctx context.Context, categoryID int) (domain.CategoryInventory, error) {
	values := url.Values{}
	values.Set("category", strconv.Itoa(categoryID))

	var payload inventoryResponse
	if err := c.getJSON(ctx, inventoryPath, values, &payload); err != nil {
		return domain.CategoryInventory{}, fmt.Errorf("%w: category inventory: %v", domain.ErrUpstreamUnavailable, err)
	}

	return domain.CategoryInventory{
		Total:  payload.QuestionCount.Total,
		Easy:   payload.QuestionCount.Easy,
		Medium: payload.QuestionCount.Medium,
		Hard:   payload.QuestionCount.Hard,
	}, nil
}

func (c *Client) FetchQuestions(ctx context.Context, amount, categoryID int, token string) (domain.QuestionBatch, error) {
	values := url.Values{}
	values.Set("amount", strconv.Itoa(amount))
	values.Set("token", token)
	if categoryID > 0 {
		values.Set("category", strconv.Itoa(categoryID))
	}

	var payload questionsResponse
	if err := c.getJSON(ctx, questionsPath, values, &payload); err != nil {
		return domain.QuestionBatch{}, fmt.Errorf("%w: fetch questions: %v", domain.ErrUpstreamUnavailable, err)
	}

	batch := domain.QuestionBatch{
		Code:      domain.ResponseCode(payload.ResponseCode),
		Questions: make([]domain.Question, 0, len(payload.Results)),
	}
	for _, q := range payload.Results {
		batch.Questions = append(batch.Questions, domain.Question{
			Type:             q.Type,
			Difficulty:       q.Difficulty,
			Category:         q.Category,
			Text:             q.Question,
			CorrectAnswer:    q.CorrectAnswer,
			IncorrectAnswers: q.IncorrectAnswers,
		})
	}
	return batch, nil
}

func (c *Client) RequestToken(ctx context.Context) (string, error) {
	values := url.Values{}
	values.Set("command", "request")
	return c.tokenCall(ctx, values, "request token")
}

func (c *Client) ResetToken(ctx context.Context, token string) (string, error) {
	values := url.Values{}
	values.Set("command", "reset")
	values.Set("token", token)
	return c.tokenCall(ctx, values, "reset token")
}

func (c *Client) tokenCall(ctx context.Context, values url.Values, verb string) (string, error) {
	var payload tokenResponse
	if err := c.getJSON(ctx, tokenPath, values, &payload); err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrUpstreamUnavailable, verb, err)
	}
	if payload.Token == "" {
		return "", fmt.Errorf("%w: %s: response carried no token", domain.ErrUpstreamUnavailable, verb)
	}
	return payload.Token, nil
}

// getJSON performs one GET with up to maxRetries retries. Retries do
// not distinguish causes: network failures, non-2xx statuses and
// undecodable bodies all count as transient.
func (c *Client) getJSON(ctx context.Context, path string, values url.Values, out any) error {
	endpoint, err := buildURL(c.BaseURL, path, values)
	if err != nil {
		return err
	}

	delay := c.RetryBaseDelay
	if delay <= 0 {
		delay = time.Second
	}

	var lastErr error
	for attempt := 0; ; attempt++ {
		lastErr = c.getJSONOnce(ctx, endpoint, out)
		if lastErr == nil {
			return nil
		}
		if attempt == maxRetries {
			return lastErr
		}
		if err := sleepContext(ctx, delay); err != nil {
			return err
		}
		delay *= 2
	}
}

func (c *Client) getJSONOnce(ctx context.Context, endpoint string, out any) error {
	requestCtx := ctx
	cancel := func() {}
	if c.RequestTimeout > 0 {
		requestCtx, cancel = context.WithTimeout(ctx, c.RequestTimeout)
	}
	defer cancel()

	req, err := http.NewRequestWithContext(requestCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func buildURL(base, path string, values url.Values) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	u = u.JoinPath(path)
	if values != nil {
		u.RawQuery = values.Encode()
	}
	return u.String(), nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
