// Package httpapi exposes the trivia proxy over HTTP. It owns route
// binding, parameter parsing and the mapping from domain errors to
// status codes; all question logic lives in the application service.
package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/bnema/trivia-proxy/internal/application"
)

// SessionHeader carries the caller-supplied session identifier.
const SessionHeader = "x-sessionId"

const defaultAmount = 10

type Handler struct {
	service *application.TriviaService
}

func NewHandler(service *application.TriviaService) *Handler {
	return &Handler{service: service}
}

func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprintln(w, "OK")
	}).Methods(http.MethodGet)
	r.HandleFunc("/categories", h.GetCategories).Methods(http.MethodGet)
	r.HandleFunc("/questions", h.GetQuestions).Methods(http.MethodGet)
	r.HandleFunc("/checkanswer", h.CheckAnswer).Methods(http.MethodPost)
	return r
}
