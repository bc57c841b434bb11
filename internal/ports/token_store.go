package ports

import (
	"context"

	"github.com/bnema/trivia-proxy/internal/domain"
)

// TokenStore binds one upstream access token to each session. Tokens
// are created lazily on first use and replaced when the upstream
// signals they expired or ran out of questions.
type TokenStore interface {
	GetOrCreate(ctx context.Context, sessionID domain.SessionID) (string, error)
	Reset(ctx context.Context, sessionID domain.SessionID) (string, error)
	EnsureValid(ctx context.Context, sessionID domain.SessionID, code domain.ResponseCode) (string, error)
}
