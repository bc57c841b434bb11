package ports

import "github.com/bnema/trivia-proxy/internal/domain"

// Ledger records which questions were served to which session, keyed
// by question text, so a later answer submission can be validated.
type Ledger interface {
	Add(sessionID domain.SessionID, question domain.Question) error
	// QuestionsFor returns the session's served questions and whether
	// the session has been seen at all. The map is never nil.
	QuestionsFor(sessionID domain.SessionID) (map[string]domain.Question, bool)
}
