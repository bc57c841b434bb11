package application

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/trivia-proxy/internal/adapters/memory"
	"github.com/bnema/trivia-proxy/internal/domain"
)

type fetchCall struct {
	amount     int
	categoryID int
	token      string
}

type fakeBank struct {
	mu sync.Mutex

	categories    []domain.Category
	categoriesErr error

	inventory      domain.CategoryInventory
	inventoryErr   error
	inventoryCalls int

	batches    []domain.QuestionBatch
	fetchErr   error
	fetchLog   []fetchCall
	fetchIdx   int
	tokenSeq   []string
	tokenIdx   int
	requestErr error
	resetLog   []string
	resetNext  string
	resetErr   error
}

func (b *fakeBank) Categories(context.Context) ([]domain.Category, error) {
	return b.categories, b.categoriesErr
}

func (b *fakeBank) CategoryInventory(context.Context, int) (domain.CategoryInventory, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.inventoryCalls++
	return b.inventory, b.inventoryErr
}

func (b *fakeBank) FetchQuestions(_ context.Context, amount, categoryID int, token string) (domain.QuestionBatch, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fetchLog = append(b.fetchLog, fetchCall{amount: amount, categoryID: categoryID, token: token})
	if b.fetchErr != nil {
		return domain.QuestionBatch{}, b.fetchErr
	}
	if b.fetchIdx >= len(b.batches) {
		return domain.QuestionBatch{}, nil
	}
	batch := b.batches[b.fetchIdx]
	b.fetchIdx++
	return batch, nil
}

func (b *fakeBank) RequestToken(context.Context) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.requestErr != nil {
		return "", b.requestErr
	}
	if b.tokenIdx >= len(b.tokenSeq) {
		return "token-extra", nil
	}
	token := b.tokenSeq[b.tokenIdx]
	b.tokenIdx++
	return token, nil
}

func (b *fakeBank) ResetToken(_ context.Context, token string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.resetLog = append(b.resetLog, token)
	if b.resetErr != nil {
		return "", b.resetErr
	}
	if b.resetNext == "" {
		return "reset-" + token, nil
	}
	return b.resetNext, nil
}

func newTestService(bank *fakeBank) *TriviaService {
	svc := NewTriviaService(bank, NewTokenService(bank), memory.NewLedger())
	// Identity shuffle keeps answer order deterministic.
	svc.shuffle = func(int, func(i, j int)) {}
	return svc
}

func successBatch(questions ...domain.Question) domain.QuestionBatch {
	return domain.QuestionBatch{Code: domain.CodeSuccess, Questions: questions}
}

func TestGetQuestionsRejectsNonPositiveAmount(t *testing.T) {
	t.Parallel()

	bank := &fakeBank{}
	svc := newTestService(bank)

	for _, amount := range []int{0, -1, -50} {
		_, err := svc.GetQuestions(context.Background(), amount, 9, "session-1")
		require.ErrorIs(t, err, domain.ErrInvalidRequest)
	}
	assert.Empty(t, bank.fetchLog, "no upstream call may happen on invalid input")
	assert.Zero(t, bank.tokenIdx)
}

func TestGetQuestionsUnknownCategory(t *testing.T) {
	t.Parallel()

	bank := &fakeBank{tokenSeq: []string{"token-1"}}
	svc := newTestService(bank)

	_, err := svc.GetQuestions(context.Background(), 5, 123, "session-1")
	require.ErrorIs(t, err, domain.ErrCategoryNotFound)
	assert.Contains(t, err.Error(), "123")
	assert.Empty(t, bank.fetchLog, "no question fetch after empty inventory")
}

func TestGetQuestionsClampsAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		amount    int
		inventory int
		want      int
	}{
		{name: "inventory bounds the request", amount: 150, inventory: 30, want: 30},
		{name: "amount below both bounds", amount: 5, inventory: 100, want: 5},
		{name: "hard ceiling of 50", amount: 150, inventory: 500, want: 50},
		{name: "exact inventory", amount: 30, inventory: 30, want: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			bank := &fakeBank{
				tokenSeq:  []string{"token-1"},
				inventory: domain.CategoryInventory{Total: tt.inventory},
				batches:   []domain.QuestionBatch{successBatch()},
			}
			svc := newTestService(bank)

			_, err := svc.GetQuestions(context.Background(), tt.amount, 9, "session-1")
			require.NoError(t, err)
			require.Len(t, bank.fetchLog, 1)
			assert.Equal(t, tt.want, bank.fetchLog[0].amount)
		})
	}
}

func TestGetQuestionsWithoutCategorySkipsInventory(t *testing.T) {
	t.Parallel()

	bank := &fakeBank{
		tokenSeq: []string{"token-1"},
		batches:  []domain.QuestionBatch{successBatch()},
	}
	svc := newTestService(bank)

	_, err := svc.GetQuestions(context.Background(), 80, 0, "session-1")
	require.NoError(t, err)
	assert.Zero(t, bank.inventoryCalls)
	require.Len(t, bank.fetchLog, 1)
	assert.Equal(t, 50, bank.fetchLog[0].amount)
	assert.Equal(t, 0, bank.fetchLog[0].categoryID)
}

func TestGetQuestionsAutoResetOnInvalidToken(t *testing.T) {
	t.Parallel()

	for _, code := range []domain.ResponseCode{domain.CodeTokenNotFound, domain.CodeTokenEmpty} {
		bank := &fakeBank{
			tokenSeq:  []string{"old-token"},
			resetNext: "new-token",
			inventory: domain.CategoryInventory{Total: 100},
			batches: []domain.QuestionBatch{
				{Code: code},
				successBatch(domain.Question{Text: "retry question", CorrectAnswer: "yes"}),
			},
		}
		svc := newTestService(bank)

		delivered, err := svc.GetQuestions(context.Background(), 2, 9, "session-1")
		require.NoError(t, err)

		require.Equal(t, []string{"old-token"}, bank.resetLog, "exactly one reset with the stale token")
		require.Len(t, bank.fetchLog, 2, "exactly one retry fetch")
		assert.Equal(t, "old-token", bank.fetchLog[0].token)
		assert.Equal(t, "new-token", bank.fetchLog[1].token)

		require.Len(t, delivered, 1)
		assert.Equal(t, "retry question", delivered[0].Text, "delivery reflects the retry, not the first attempt")
	}
}

func TestGetQuestionsFailsWhenRetryStillInvalid(t *testing.T) {
	t.Parallel()

	bank := &fakeBank{
		tokenSeq:  []string{"old-token"},
		inventory: domain.CategoryInventory{Total: 100},
		batches: []domain.QuestionBatch{
			{Code: domain.CodeTokenEmpty},
			{Code: domain.CodeTokenEmpty},
		},
	}
	svc := newTestService(bank)

	_, err := svc.GetQuestions(context.Background(), 2, 9, "session-1")
	require.ErrorIs(t, err, domain.ErrQuestionFetchFailed)
	assert.Len(t, bank.fetchLog, 2, "no further retry after the second invalid-token signal")
	assert.Len(t, bank.resetLog, 1)
}

func TestGetQuestionsUnrecognizedCodeFallsThroughAsSuccess(t *testing.T) {
	t.Parallel()

	bank := &fakeBank{
		tokenSeq:  []string{"token-1"},
		inventory: domain.CategoryInventory{Total: 100},
		batches: []domain.QuestionBatch{{
			Code:      domain.ResponseCode(7),
			Questions: []domain.Question{{Text: "odd code question", CorrectAnswer: "ok"}},
		}},
	}
	svc := newTestService(bank)

	delivered, err := svc.GetQuestions(context.Background(), 1, 9, "session-1")
	require.NoError(t, err)
	require.Len(t, delivered, 1)
	assert.Empty(t, bank.resetLog)
}

func TestGetQuestionsDecodesAndRecords(t *testing.T) {
	t.Parallel()

	ledger := memory.NewLedger()
	bank := &fakeBank{
		tokenSeq:  []string{"token-1"},
		inventory: domain.CategoryInventory{Total: 100},
		batches: []domain.QuestionBatch{successBatch(domain.Question{
			Type:             "multiple",
			Difficulty:       "easy",
			Category:         "Science &amp; Nature",
			Text:             "Which planet is known as the &quot;Red Planet&quot;?",
			CorrectAnswer:    "Mars",
			IncorrectAnswers: []string{"Venus", "Jupiter", "Mercury &amp; Co"},
		})},
	}
	svc := NewTriviaService(bank, NewTokenService(bank), ledger)
	svc.shuffle = func(int, func(i, j int)) {}

	delivered, err := svc.GetQuestions(context.Background(), 1, 17, "session-1")
	require.NoError(t, err)
	require.Len(t, delivered, 1)

	q := delivered[0]
	assert.Equal(t, `Which planet is known as the "Red Planet"?`, q.Text)
	assert.Equal(t, []string{"Venus", "Jupiter", "Mercury & Co", "Mars"}, q.Answers)

	served, ok := ledger.QuestionsFor("session-1")
	require.True(t, ok)
	recorded, ok := served[`Which planet is known as the "Red Planet"?`]
	require.True(t, ok, "ledger key is the decoded text")
	assert.Equal(t, "Mars", recorded.CorrectAnswer)
}

func TestDeliveredAnswersContainCorrectExactlyOnce(t *testing.T) {
	t.Parallel()

	bank := &fakeBank{
		tokenSeq:  []string{"token-1"},
		inventory: domain.CategoryInventory{Total: 100},
		batches: []domain.QuestionBatch{successBatch(domain.Question{
			Text:             "q",
			CorrectAnswer:    "right",
			IncorrectAnswers: []string{"a", "b", "c"},
		})},
	}
	svc := NewTriviaService(bank, NewTokenService(bank), memory.NewLedger())

	delivered, err := svc.GetQuestions(context.Background(), 1, 9, "session-1")
	require.NoError(t, err)
	require.Len(t, delivered, 1)

	answers := delivered[0].Answers
	assert.Len(t, answers, 4)
	occurrences := 0
	for _, answer := range answers {
		if answer == "right" {
			occurrences++
		}
	}
	assert.Equal(t, 1, occurrences)
}

func TestGetQuestionsWrapsUpstreamFailure(t *testing.T) {
	t.Parallel()

	bank := &fakeBank{
		tokenSeq:  []string{"token-1"},
		inventory: domain.CategoryInventory{Total: 100},
		fetchErr:  domain.ErrUpstreamUnavailable,
	}
	svc := newTestService(bank)

	_, err := svc.GetQuestions(context.Background(), 5, 9, "session-1")
	require.ErrorIs(t, err, domain.ErrQuestionFetchFailed)
	assert.Contains(t, err.Error(), "question bank unavailable")
}

func TestGetQuestionsWrapsMalformedUpstreamQuestion(t *testing.T) {
	t.Parallel()

	bank := &fakeBank{
		tokenSeq:  []string{"token-1"},
		inventory: domain.CategoryInventory{Total: 100},
		batches:   []domain.QuestionBatch{successBatch(domain.Question{Text: "", CorrectAnswer: "yes"})},
	}
	svc := newTestService(bank)

	_, err := svc.GetQuestions(context.Background(), 1, 9, "session-1")
	require.ErrorIs(t, err, domain.ErrQuestionFetchFailed)
	assert.NotErrorIs(t, err, domain.ErrInvalidRequest, "upstream garbage is not the caller's fault")
}

func TestCheckAnswerMatchesCaseInsensitively(t *testing.T) {
	t.Parallel()

	ledger := memory.NewLedger()
	require.NoError(t, ledger.Add("session-1", domain.Question{Text: "red planet", CorrectAnswer: "Mars"}))
	require.NoError(t, ledger.Add("session-1", domain.Question{Text: "century", CorrectAnswer: "100"}))
	svc := NewTriviaService(&fakeBank{}, NewTokenService(&fakeBank{}), ledger)

	tests := []struct {
		name   string
		text   string
		chosen string
		want   bool
	}{
		{name: "uppercase match", text: "red planet", chosen: "MARS", want: true},
		{name: "exact match", text: "century", chosen: "100", want: true},
		{name: "lowercase match", text: "red planet", chosen: "mars", want: true},
		{name: "wrong answer", text: "red planet", chosen: "Venus", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.CheckAnswer("session-1", domain.AnswerSubmission{Question: tt.text, ChosenAnswer: tt.chosen})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckAnswerIsIdempotent(t *testing.T) {
	t.Parallel()

	ledger := memory.NewLedger()
	require.NoError(t, ledger.Add("session-1", domain.Question{Text: "q", CorrectAnswer: "yes"}))
	svc := NewTriviaService(&fakeBank{}, NewTokenService(&fakeBank{}), ledger)

	submission := domain.AnswerSubmission{Question: "q", ChosenAnswer: "yes"}
	for i := 0; i < 2; i++ {
		got, err := svc.CheckAnswer("session-1", submission)
		require.NoError(t, err)
		assert.True(t, got)
	}
}

func TestCheckAnswerUnknownSession(t *testing.T) {
	t.Parallel()

	svc := NewTriviaService(&fakeBank{}, NewTokenService(&fakeBank{}), memory.NewLedger())

	_, err := svc.CheckAnswer("never-seen-session", domain.AnswerSubmission{Question: "q", ChosenAnswer: "a"})
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestCheckAnswerUnknownQuestion(t *testing.T) {
	t.Parallel()

	ledger := memory.NewLedger()
	require.NoError(t, ledger.Add("session-1", domain.Question{Text: "served", CorrectAnswer: "a"}))
	svc := NewTriviaService(&fakeBank{}, NewTokenService(&fakeBank{}), ledger)

	_, err := svc.CheckAnswer("session-1", domain.AnswerSubmission{Question: "never served", ChosenAnswer: "a"})
	require.ErrorIs(t, err, domain.ErrQuestionNotFound)
}

func TestCategoriesPassThrough(t *testing.T) {
	t.Parallel()

	bank := &fakeBank{categories: []domain.Category{{ID: 9, Name: "General Knowledge"}}}
	svc := newTestService(bank)

	categories, err := svc.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, bank.categories, categories)
}

func TestCategoriesPropagatesUpstreamError(t *testing.T) {
	t.Parallel()

	bank := &fakeBank{categoriesErr: domain.ErrUpstreamUnavailable}
	svc := newTestService(bank)

	_, err := svc.Categories(context.Background())
	require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}
