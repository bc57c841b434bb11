package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/bnema/trivia-proxy/internal/domain"
)

const maxBodyBytes = 1 << 20

// apiError is the JSON error envelope every failed request gets.
type apiError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *Handler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	sessionID := r.Header.Get(SessionHeader)
	if sessionID == "" {
		writeAPIError(w, http.StatusBadRequest, "missing "+SessionHeader+" header")
		return
	}

	amount := defaultAmount
	if raw := r.URL.Query().Get("amount"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeAPIError(w, http.StatusBadRequest, "amount must be an integer")
			return
		}
		amount = parsed
	}

	categoryID := 0
	if raw := r.URL.Query().Get("categoryId"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeAPIError(w, http.StatusBadRequest, "categoryId must be an integer")
			return
		}
		categoryID = parsed
	}

	questions, err := h.service.GetQuestions(r.Context(), amount, categoryID, domain.SessionID(sessionID))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

func (h *Handler) CheckAnswer(w http.ResponseWriter, r *http.Request) {
	sessionID := r.Header.Get(SessionHeader)
	if sessionID == "" {
		writeAPIError(w, http.StatusBadRequest, "missing "+SessionHeader+" header")
		return
	}

	var submission domain.AnswerSubmission
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&submission); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	correct, err := h.service.CheckAnswer(domain.SessionID(sessionID), submission)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, correct)
}

// writeError maps domain error kinds to HTTP statuses: caller
// mistakes become 400, the not-found family 404, everything else 500.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		writeAPIError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrQuestionNotFound):
		writeAPIError(w, http.StatusNotFound, err.Error())
	default:
		log.Printf("request failed: %v", err)
		writeAPIError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeAPIError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, apiError{Status: status, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("encode response: %v", err)
	}
}
