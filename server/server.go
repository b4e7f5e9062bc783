// Package server exposes the annotator over HTTP: single and batch
// furigana endpoints plus health reporting, with CORS and request
// logging for the browser clients that call this service directly.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/andyroo2000/convo-lab/annotate"
	"github.com/andyroo2000/convo-lab/config"
)

// Server holds the HTTP handlers and their collaborators.
type Server struct {
	cfg *config.Config
	ann *annotate.Annotator
	log *zap.Logger
}

// New builds a Server around an annotator.
func New(cfg *config.Config, ann *annotate.Annotator, log *zap.Logger) *Server {
	return &Server{cfg: cfg, ann: ann, log: log}
}

// Handler returns the routed handler with CORS and logging applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /furigana", s.handleFurigana)
	mux.HandleFunc("POST /furigana/batch", s.handleBatch)
	return s.withLogging(s.withCORS(mux))
}

type textRequest struct {
	Text string `json:"text"`
}

type batchRequest struct {
	Texts []string `json:"texts"`
}

type batchResponse struct {
	Results []annotate.Result `json:"results"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service":               "Furigana Generation Service",
		"status":                "running",
		"tokenizer_initialized": s.ann.Ready(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	tok := "initialized"
	if !s.ann.Ready() {
		tok = "not initialized"
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"tokenizer": tok,
	})
}

func (s *Server) handleFurigana(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}
	res, err := s.ann.Annotate(r.Context(), req.Text)
	if err != nil {
		s.log.Error("annotate failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "furigana generation failed")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Texts) == 0 {
		writeError(w, http.StatusBadRequest, "texts is required")
		return
	}
	if len(req.Texts) > s.cfg.BatchLimit {
		writeError(w, http.StatusBadRequest, "too many texts in one batch")
		return
	}

	results := make([]annotate.Result, len(req.Texts))
	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(s.cfg.BatchWorkers)
	for i, text := range req.Texts {
		g.Go(func() error {
			res, err := s.ann.Annotate(ctx, text)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.log.Error("batch annotate failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "furigana generation failed")
		return
	}
	writeJSON(w, http.StatusOK, batchResponse{Results: results})
}

// withCORS grants configured origins access and answers preflight
// requests.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" && s.originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Vary", "Origin")
		}
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Set("Access-Control-Max-Age", "3600")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) originAllowed(origin string) bool {
	for _, o := range s.cfg.AllowedOrigins {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}

// withLogging assigns each request an ID and logs method, path, status
// and duration.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := uuid.NewString()
		w.Header().Set("X-Request-ID", reqID)
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.log.Info("request",
			zap.String("req", reqID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", sw.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError replies with the {"detail": ...} error shape the web
// clients already parse.
func writeError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
