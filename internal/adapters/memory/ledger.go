// Package memory holds the process-resident stores. Nothing here
// survives a restart; entries accumulate for the process lifetime.
package memory

import (
	"fmt"
	"sync"

	"github.com/bnema/trivia-proxy/internal/domain"
	"github.com/bnema/trivia-proxy/internal/ports"
)

// Ledger maps session id -> question text -> question. A new fetch
// for a session overwrites only the freshly fetched texts; earlier
// entries stay answerable.
type Ledger struct {
	mu       sync.RWMutex
	sessions map[domain.SessionID]map[string]domain.Question
}

var _ ports.Ledger = (*Ledger)(nil)

func NewLedger() *Ledger {
	return &Ledger{sessions: make(map[domain.SessionID]map[string]domain.Question)}
}

func (l *Ledger) Add(sessionID domain.SessionID, question domain.Question) error {
	if sessionID == "" {
		return fmt.Errorf("%w: session id must not be empty", domain.ErrInvalidRequest)
	}
	if question.Text == "" {
		return fmt.Errorf("%w: question text must not be empty", domain.ErrInvalidRequest)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	served, ok := l.sessions[sessionID]
	if !ok {
		served = make(map[string]domain.Question)
		l.sessions[sessionID] = served
	}
	served[question.Text] = question
	return nil
}

func (l *Ledger) QuestionsFor(sessionID domain.SessionID) (map[string]domain.Question, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	served, ok := l.sessions[sessionID]
	out := make(map[string]domain.Question, len(served))
	for text, question := range served {
		out[text] = question
	}
	return out, ok
}
