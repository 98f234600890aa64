// Package mockapi is a local stand-in for the fine-tunes API. It
// serves the same paths and error shapes the real API does, backed by
// SQLite, so the CLI and client tests can run without credentials.
package mockapi

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/tunewell/finetune-go/pkg/finetune"
)

// Server serves the mock fine-tunes API.
type Server struct {
	Router *chi.Mux
	store  *Store
	logger *slog.Logger
	port   int
}

// New builds the router with the standard middleware stack. Requests
// must carry a bearer token; any non-empty token is accepted.
func New(port int, store *Store, logger *slog.Logger) *Server {
	s := &Server{
		store:  store,
		logger: logger,
		port:   port,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, "finetune-mockd")
	})
	r.Use(s.requireBearer)

	r.Post("/v1/fine-tunes", s.handleCreateFineTune)
	r.Get("/v1/fine-tunes", s.handleListFineTunes)
	r.Get("/v1/fine-tunes/{id}", s.handleGetFineTune)
	r.Post("/v1/fine-tunes/{id}/cancel", s.handleCancelFineTune)
	r.Get("/v1/fine-tunes/{id}/events", s.handleListEvents)
	r.Get("/v1/models", s.handleListModels)

	s.Router = r
	return s
}

// Start blocks serving HTTP on the configured port.
func (s *Server) Start() error {
	s.logger.Info("starting mock API server", slog.Int("port", s.port))
	return http.ListenAndServe(fmt.Sprintf(":%d", s.port), s.Router)
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(wrapped, r)

			logger.Info("request completed",
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", wrapped.Status()),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

func (s *Server) requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		token := strings.TrimPrefix(auth, "Bearer ")
		if auth == "" || token == auth || strings.TrimSpace(token) == "" {
			writeError(w, http.StatusUnauthorized, "invalid_request_error", "You didn't provide an API key.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, errType, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]string{
			"type":    errType,
			"message": message,
		},
	})
}

type createFineTuneRequest struct {
	TrainingFile string `json:"training_file"`
	Model        string `json:"model"`
}

func (s *Server) handleCreateFineTune(w http.ResponseWriter, r *http.Request) {
	var req createFineTuneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_error", "request body is not valid JSON")
		return
	}
	if req.TrainingFile == "" {
		writeError(w, http.StatusBadRequest, "invalid_request_error", "training_file is required")
		return
	}
	if req.Model == "" {
		req.Model = "curie"
	}

	ft, err := s.store.CreateFineTune(r.Context(), req.Model, req.TrainingFile)
	if err != nil {
		s.logger.Error("create fine-tune", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "server_error", "failed to create fine-tune")
		return
	}
	writeJSON(w, http.StatusOK, ft)
}

func (s *Server) handleListFineTunes(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.store.ListFineTunes(r.Context())
	if err != nil {
		s.logger.Error("list fine-tunes", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "server_error", "failed to list fine-tunes")
		return
	}
	if jobs == nil {
		jobs = []finetune.FineTune{}
	}
	writeJSON(w, http.StatusOK, finetune.FineTuneList{Object: "list", Data: jobs})
}

func (s *Server) handleGetFineTune(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ft, err := s.store.GetFineTune(r.Context(), id)
	if err != nil {
		s.logger.Error("get fine-tune", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "server_error", "failed to load fine-tune")
		return
	}
	if ft == nil {
		writeError(w, http.StatusNotFound, "invalid_request_error", "No fine-tune job: "+id)
		return
	}
	writeJSON(w, http.StatusOK, ft)
}

func (s *Server) handleCancelFineTune(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ft, err := s.store.CancelFineTune(r.Context(), id)
	if err != nil {
		s.logger.Error("cancel fine-tune", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "server_error", "failed to cancel fine-tune")
		return
	}
	if ft == nil {
		writeError(w, http.StatusNotFound, "invalid_request_error", "No fine-tune job: "+id)
		return
	}
	writeJSON(w, http.StatusOK, ft)
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ft, err := s.store.GetFineTune(r.Context(), id)
	if err != nil {
		s.logger.Error("load fine-tune", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "server_error", "failed to load fine-tune")
		return
	}
	if ft == nil {
		writeError(w, http.StatusNotFound, "invalid_request_error", "No fine-tune job: "+id)
		return
	}

	events, err := s.store.ListEvents(r.Context(), id)
	if err != nil {
		s.logger.Error("list events", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "server_error", "failed to list events")
		return
	}
	if events == nil {
		events = []finetune.FineTuneEvent{}
	}
	writeJSON(w, http.StatusOK, finetune.FineTuneEventList{Object: "list", Data: events})
}

func (s *Server) handleListModels(w http.ResponseWriter, r *http.Request) {
	now := time.Now().Unix()
	models := []finetune.Model{
		{ID: "ada", Object: "model", Created: now, OwnedBy: "openai"},
		{ID: "babbage", Object: "model", Created: now, OwnedBy: "openai"},
		{ID: "curie", Object: "model", Created: now, OwnedBy: "openai"},
		{ID: "davinci", Object: "model", Created: now, OwnedBy: "openai"},
	}
	writeJSON(w, http.StatusOK, finetune.ModelList{Object: "list", Data: models})
}
