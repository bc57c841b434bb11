package application

import (
	"context"
	"errors"
	"fmt"
	"html"
	"math/rand"
	"strings"

	"github.com/bnema/trivia-proxy/internal/domain"
	"github.com/bnema/trivia-proxy/internal/ports"
)

// MaxBatchSize is the hard per-call ceiling the question bank enforces.
const MaxBatchSize = 50

// TriviaService orchestrates the question-serving flow: token
// acquisition, inventory clamping, the fetch with its single
// auto-reset retry, and recording served questions for later answer
// checks.
type TriviaService struct {
	bank    ports.QuestionBank
	tokens  ports.TokenStore
	ledger  ports.Ledger
	shuffle func(n int, swap func(i, j int))
}

func NewTriviaService(bank ports.QuestionBank, tokens ports.TokenStore, ledger ports.Ledger) *TriviaService {
	return &TriviaService{
		bank:    bank,
		tokens:  tokens,
		ledger:  ledger,
		shuffle: rand.Shuffle,
	}
}

func (s *TriviaService) Categories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.bank.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// GetQuestions serves up to amount questions for the session. A
// categoryID of zero means any category and skips the inventory
// clamp. When the bank reports the session token expired or ran dry,
// the token is reset and the fetch retried exactly once.
func (s *TriviaService) GetQuestions(ctx context.Context, amount, categoryID int, sessionID domain.SessionID) ([]domain.DeliveredQuestion, error) {
	if amount < 1 {
		return nil, fmt.Errorf("%w: amount must be at least 1", domain.ErrInvalidRequest)
	}

	token, err := s.tokens.GetOrCreate(ctx, sessionID)
	if err != nil {
		return nil, wrapFetchErr(err)
	}

	effective := min(amount, MaxBatchSize)
	if categoryID > 0 {
		inventory, err := s.bank.CategoryInventory(ctx, categoryID)
		if err != nil {
			return nil, wrapFetchErr(err)
		}
		if inventory.Total == 0 {
			return nil, fmt.Errorf("%w: category %d", domain.ErrCategoryNotFound, categoryID)
		}
		effective = min(effective, inventory.Total)
	}

	batch, err := s.bank.FetchQuestions(ctx, effective, categoryID, token)
	if err != nil {
		return nil, wrapFetchErr(err)
	}

	if batch.Code.InvalidToken() {
		freshToken, err := s.tokens.EnsureValid(ctx, sessionID, batch.Code)
		if err != nil {
			return nil, wrapFetchErr(err)
		}
		batch, err = s.bank.FetchQuestions(ctx, effective, categoryID, freshToken)
		if err != nil {
			return nil, wrapFetchErr(err)
		}
		if batch.Code.InvalidToken() {
			return nil, fmt.Errorf("%w: token still invalid after reset (code %d)", domain.ErrQuestionFetchFailed, batch.Code)
		}
	}

	delivered, err := s.deliver(sessionID, batch.Questions)
	if err != nil {
		return nil, wrapFetchErr(err)
	}
	return delivered, nil
}

// CheckAnswer validates a submission against the session's served
// questions. Checking never consumes the question; the same
// submission can be validated again.
func (s *TriviaService) CheckAnswer(sessionID domain.SessionID, submission domain.AnswerSubmission) (bool, error) {
	served, ok := s.ledger.QuestionsFor(sessionID)
	if !ok {
		return false, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
	}

	question, ok := served[submission.Question]
	if !ok {
		return false, fmt.Errorf("%w: %q", domain.ErrQuestionNotFound, submission.Question)
	}

	return strings.EqualFold(question.CorrectAnswer, submission.ChosenAnswer), nil
}

func (s *TriviaService) deliver(sessionID domain.SessionID, questions []domain.Question) ([]domain.DeliveredQuestion, error) {
	delivered := make([]domain.DeliveredQuestion, 0, len(questions))
	for _, q := range questions {
		decoded := decodeQuestion(q)
		if err := s.ledger.Add(sessionID, decoded); err != nil {
			return nil, fmt.Errorf("record served question: %w", err)
		}

		answers := make([]string, 0, len(decoded.IncorrectAnswers)+1)
		answers = append(answers, decoded.IncorrectAnswers...)
		answers = append(answers, decoded.CorrectAnswer)
		s.shuffle(len(answers), func(i, j int) {
			answers[i], answers[j] = answers[j], answers[i]
		})

		delivered = append(delivered, domain.DeliveredQuestion{
			Type:       decoded.Type,
			Difficulty: decoded.Difficulty,
			Category:   decoded.Category,
			Text:       decoded.Text,
			Answers:    answers,
		})
	}
	return delivered, nil
}

// decodeQuestion unescapes the HTML entities the bank embeds in
// question and answer text. The decoded text is what goes into the
// ledger, so answer checks run against what the client actually saw.
func decodeQuestion(q domain.Question) domain.Question {
	q.Text = html.UnescapeString(q.Text)
	q.CorrectAnswer = html.UnescapeString(q.CorrectAnswer)
	if q.IncorrectAnswers != nil {
		decoded := make([]string, len(q.IncorrectAnswers))
		for i, answer := range q.IncorrectAnswers {
			decoded[i] = html.UnescapeString(answer)
		}
		q.IncorrectAnswers = decoded
	}
	return q
}

// wrapFetchErr folds unexpected failures into the generic fetch error
// while letting the category lookup surface unchanged. Anything the
// bank or ledger rejects mid-flow is the proxy's problem, not the
// caller's.
func wrapFetchErr(err error) error {
	if errors.Is(err, domain.ErrCategoryNotFound) {
		return err
	}
	if errors.Is(err, domain.ErrQuestionFetchFailed) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrQuestionFetchFailed, err)
}
