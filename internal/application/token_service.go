package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/bnema/trivia-proxy/internal/domain"
	"github.com/bnema/trivia-proxy/internal/ports"
)

// TokenService keeps one upstream access token per session. Each
// session gets its own slot with its own lock, held across the
// upstream call, so a burst of first requests for the same session
// issues exactly one token request. Unrelated sessions never contend.
type TokenService struct {
	bank ports.QuestionBank

	mu    sync.Mutex
	slots map[domain.SessionID]*tokenSlot
}

type tokenSlot struct {
	mu    sync.Mutex
	token string
}

var _ ports.TokenStore = (*TokenService)(nil)

func NewTokenService(bank ports.QuestionBank) *TokenService {
	return &TokenService{
		bank:  bank,
		slots: make(map[domain.SessionID]*tokenSlot),
	}
}

func (s *TokenService) GetOrCreate(ctx context.Context, sessionID domain.SessionID) (string, error) {
	slot := s.slot(sessionID)
	slot.mu.Lock()
	defer slot.mu.Unlock()

	if slot.token != "" {
		return slot.token, nil
	}

	token, err := s.bank.RequestToken(ctx)
	if err != nil {
		return "", fmt.Errorf("request session token: %w", err)
	}
	slot.token = token
	return token, nil
}

// Reset rotates the session's token upstream when one is cached, and
// requests a brand-new one otherwise. The slot is overwritten either
// way.
func (s *TokenService) Reset(ctx context.Context, sessionID domain.SessionID) (string, error) {
	slot := s.slot(sessionID)
	slot.mu.Lock()
	defer slot.mu.Unlock()

	var (
		token string
		err   error
	)
	if slot.token != "" {
		token, err = s.bank.ResetToken(ctx, slot.token)
	} else {
		token, err = s.bank.RequestToken(ctx)
	}
	if err != nil {
		return "", fmt.Errorf("reset session token: %w", err)
	}

	slot.token = token
	return token, nil
}

// EnsureValid refreshes the token only when the given response code
// says the current one expired or ran dry.
func (s *TokenService) EnsureValid(ctx context.Context, sessionID domain.SessionID, code domain.ResponseCode) (string, error) {
	if code.InvalidToken() {
		return s.Reset(ctx, sessionID)
	}
	return s.GetOrCreate(ctx, sessionID)
}

func (s *TokenService) slot(sessionID domain.SessionID) *tokenSlot {
	s.mu.Lock()
	defer s.mu.Unlock()

	slot, ok := s.slots[sessionID]
	if !ok {
		slot = &tokenSlot{}
		s.slots[sessionID] = slot
	}
	return slot
}
