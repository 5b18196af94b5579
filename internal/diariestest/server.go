// Package diariestest provides an in-memory implementation of the Diaries
// service for tests that should not depend on a running deployment.
package diariestest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxTitleLength is the longest title the service accepts, in characters.
const MaxTitleLength = 300

// Diary is a stored diary as the service returns it.
type Diary struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
}

// Server serves the /diaries resource from memory. It is safe for
// concurrent use.
type Server struct {
	router chi.Router
	logger *zap.Logger

	mu      sync.RWMutex
	diaries map[uuid.UUID]Diary
	order   []uuid.UUID
}

// Option configures a Server.
type Option func(*Server)

// WithLogger reports every handled request to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates an empty service.
func New(opts ...Option) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		logger:  zap.NewNop(),
		diaries: make(map[uuid.UUID]Diary),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router

	r.Get("/diaries", s.handleList)
	r.Post("/diaries", s.handleCreate)
	r.Get("/diaries/{id}", s.handleGet)
	r.Put("/diaries/{id}", s.handleUpdate)
	r.Delete("/diaries/{id}", s.handleDelete)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("diaries request",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)
	s.router.ServeHTTP(w, r)
}

// Start serves s over plain HTTP on a loopback port.
func (s *Server) Start() *httptest.Server {
	return httptest.NewServer(s)
}

// StartTLS serves s over HTTPS with a self-signed certificate, like a local
// development deployment of the real service.
func (s *Server) StartTLS() *httptest.Server {
	return httptest.NewTLSServer(s)
}

// Seed stores a diary directly, bypassing validation.
func (s *Server) Seed(title, description string) Diary {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := Diary{ID: uuid.New(), Title: title, Description: description}
	s.diaries[d.ID] = d
	s.order = append(s.order, d.ID)
	return d
}

// Lookup returns the stored diary with the given id.
func (s *Server) Lookup(id uuid.UUID) (Diary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.diaries[id]
	return d, ok
}

// Len returns the number of stored diaries.
func (s *Server) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.diaries)
}

// --- handlers ---

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	list := make([]Diary, 0, len(s.order))
	for _, id := range s.order {
		list = append(list, s.diaries[id])
	}
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	d, found := s.Lookup(id)
	if !found {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeInput(w, r)
	if !ok {
		return
	}

	d := s.Seed(*input.Title, *input.Description)
	s.logger.Debug("created diary", zap.Stringer("id", d.ID))

	w.Header().Set("Location", "/diaries/"+d.ID.String())
	writeJSON(w, http.StatusCreated, d)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	input, ok := decodeInput(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	d, found := s.diaries[id]
	if found {
		d.Title = *input.Title
		d.Description = *input.Description
		s.diaries[id] = d
	}
	s.mu.Unlock()

	if !found {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	_, found := s.diaries[id]
	if found {
		delete(s.diaries, id)
		for i, existing := range s.order {
			if existing == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
	s.mu.Unlock()

	if !found {
		writeNotFound(w)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// --- request parsing ---

type diaryInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		writeValidationProblem(w, map[string][]string{
			"id": {fmt.Sprintf("The value '%s' is not valid.", raw)},
		})
		return uuid.Nil, false
	}
	return id, true
}

func decodeInput(w http.ResponseWriter, r *http.Request) (diaryInput, bool) {
	var input diaryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeValidationProblem(w, map[string][]string{
			"$": {"The request body is not valid JSON."},
		})
		return input, false
	}

	errs := make(map[string][]string)
	if input.Title == nil || *input.Title == "" {
		errs["Title"] = append(errs["Title"], "The Title field is required.")
	} else if utf8.RuneCountInString(*input.Title) > MaxTitleLength {
		errs["Title"] = append(errs["Title"], fmt.Sprintf(
			"The field Title must be a string or array type with a maximum length of '%d'.", MaxTitleLength))
	}
	if input.Description == nil || *input.Description == "" {
		errs["Description"] = append(errs["Description"], "The Description field is required.")
	}

	if len(errs) > 0 {
		writeValidationProblem(w, errs)
		return input, false
	}
	return input, true
}

// --- responses ---

// problem is an RFC 7807 problem details document.
type problem struct {
	Type   string              `json:"type"`
	Title  string              `json:"title"`
	Status int                 `json:"status"`
	Errors map[string][]string `json:"errors,omitempty"`
}

const problemContentType = "application/problem+json; charset=utf-8"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeProblem(w http.ResponseWriter, p problem) {
	w.Header().Set("Content-Type", problemContentType)
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

func writeValidationProblem(w http.ResponseWriter, errs map[string][]string) {
	writeProblem(w, problem{
		Type:   "https://tools.ietf.org/html/rfc7231#section-6.5.1",
		Title:  "One or more validation errors occurred.",
		Status: http.StatusBadRequest,
		Errors: errs,
	})
}

func writeNotFound(w http.ResponseWriter) {
	writeProblem(w, problem{
		Type:   "https://tools.ietf.org/html/rfc7231#section-6.5.4",
		Title:  "Not Found",
		Status: http.StatusNotFound,
	})
}
