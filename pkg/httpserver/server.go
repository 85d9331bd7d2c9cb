package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	statex "github.com/claraeverett/Sierra-Agent/agent/state"
)

// Handler answers one classified-and-composed turn.
type Handler interface {
	HandleMessage(ctx context.Context, sess *statex.Session, text string) (string, error)
}

type Config struct {
	Addr         string        `split_words:"true" default:":8080"`
	ReadTimeout  time.Duration `split_words:"true" default:"15s"`
	WriteTimeout time.Duration `split_words:"true" default:"60s"`
}

// Server is the HTTP transport: it owns session lookup and per-session turn
// serialization, then hands the locked session to the orchestrator.
type Server struct {
	store   *statex.Store
	handler Handler
	httpSrv *http.Server
}

func New(cfg Config, store *statex.Store, handler Handler) (*Server, error) {
	if store == nil {
		return nil, errors.New("session store is required")
	}
	if handler == nil {
		return nil, errors.New("message handler is required")
	}

	s := &Server{store: store, handler: handler}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/message", s.handleMessage)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	s.httpSrv = &http.Server{
		Addr:         cfg.Addr,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s, nil
}

func (s *Server) ListenAndServe() error {
	log.Info().Str("addr", s.httpSrv.Addr).Msg("http server listening")
	return s.httpSrv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

type messageRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

type messageResponse struct {
	Response            string                     `json:"response"`
	SessionID           string                     `json:"sessionId"`
	ConversationHistory []statex.ConversationEntry `json:"conversationHistory"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "message is required"})
		return
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	sess, release, created, err := s.store.Acquire(sessionID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	defer release()

	if created {
		log.Info().Str("session", sessionID).Msg("session created")
	}

	reply, err := s.handler.HandleMessage(r.Context(), sess, req.Message)
	if err != nil {
		log.Error().Err(err).Str("session", sessionID).Msg("turn failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to process message"})
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{
		Response:            reply,
		SessionID:           sessionID,
		ConversationHistory: sess.ConversationHistory(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.store.Len(),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("write response")
	}
}
