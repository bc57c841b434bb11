package ports

import (
	"context"

	"github.com/bnema/trivia-proxy/internal/domain"
)

// QuestionBank is the outbound contract with the upstream trivia API.
// FetchQuestions reports protocol-level outcomes (empty batch, invalid
// token) through the batch's response code, not through errors.
type QuestionBank interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	CategoryInventory(ctx context.Context, categoryID int) (domain.CategoryInventory, error)
	FetchQuestions(ctx context.Context, amount, categoryID int, token string) (domain.QuestionBatch, error)
	RequestToken(ctx context.Context) (string, error)
	ResetToken(ctx context.Context, token string) (string, error)
}
