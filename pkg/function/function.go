// Package function serves next-guess decisions over HTTP as a Cloud Function.
package function

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"crosswarped.com/wordlecalc/pkg/primitives"
	"crosswarped.com/wordlecalc/pkg/solver"
	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
)

// maxBodyBytes bounds a request; a full game history is a few hundred bytes.
const maxBodyBytes = 1 << 16

// Turn is one guess and its feedback, e.g. {"guess":"roate","pattern":"00120"}.
type Turn struct {
	Guess   string `json:"guess"`
	Pattern string `json:"pattern"`
}

// Request carries the turns played so far.
type Request struct {
	History []Turn `json:"history"`
}

// Response is the chosen guess and how many answers remain possible.
type Response struct {
	Guess      string `json:"guess"`
	Candidates int    `json:"candidates"`
	Solved     bool   `json:"solved,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler answers POSTed histories with the next guess.
type Handler struct {
	solver *solver.Solver
	logger *slog.Logger
}

// NewHandler creates a Handler over s.
func NewHandler(s *solver.Solver, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{solver: s, logger: logger}
}

// Register exposes h under name with the functions framework.
func Register(name string, h *Handler) {
	functions.HTTP(name, h.ServeHTTP)
}

func (req Request) history() (primitives.History, error) {
	h := make(primitives.History, 0, len(req.History))
	for i, t := range req.History {
		w, err := primitives.ParseWord(t.Guess)
		if err != nil {
			return nil, fmt.Errorf("turn %d: %w", i+1, err)
		}
		p, err := primitives.ParsePattern(t.Pattern)
		if err != nil {
			return nil, fmt.Errorf("turn %d: %w", i+1, err)
		}
		h = append(h, primitives.Turn{Guess: w, Pattern: p})
	}
	return h, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "use POST"})
		return
	}

	var req Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request: " + err.Error()})
		return
	}
	history, err := req.history()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if len(history) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "history is empty"})
		return
	}
	if history.Solved() {
		last, _ := history.Last()
		writeJSON(w, http.StatusOK, Response{Guess: last.Guess.String(), Candidates: 1, Solved: true})
		return
	}

	candidates := history.Candidates(h.solver.Answers())
	if len(candidates) == 0 {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: solver.ErrNoCandidates.Error()})
		return
	}
	guess, err := h.solver.NextGuess(r.Context(), history)
	switch {
	case errors.Is(err, solver.ErrNoCandidates):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	case err != nil:
		h.logger.Error("next guess failed",
			slog.String("history", history.Key()), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, Response{Guess: guess.String(), Candidates: len(candidates)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
