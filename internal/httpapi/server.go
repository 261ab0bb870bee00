// Package httpapi exposes the router over a narrow JSON endpoint: one
// inbound chat event in, one reply out. It is the transport seam where a
// real chat network integration would plug in.
package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"tally/internal/bot"
	applog "tally/internal/log"
)

// Event is one inbound chat event. A non-empty Command makes this a
// command event; otherwise Text is handled as a plain message.
type Event struct {
	UserID  int64    `json:"user_id"`
	Command string   `json:"command,omitempty"`
	Args    []string `json:"args,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// Reply is the outbound message for the user.
type Reply struct {
	Reply string `json:"reply"`
}

type Server struct {
	router *bot.Router
	logger *applog.Logger
}

// NewServer builds the HTTP server around the router.
func NewServer(addr string, router *bot.Router, logger *applog.Logger) *http.Server {
	s := &Server{
		router: router,
		logger: logger.WithComponent(applog.ComponentHTTP),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/events", s.handleEvent)
	mux.HandleFunc("/healthz", s.handleHealth)

	return &http.Server{
		Addr:           addr,
		Handler:        mux,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var ev Event
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&ev); err != nil {
		http.Error(w, "invalid event payload", http.StatusBadRequest)
		return
	}
	if ev.UserID == 0 {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}

	var reply string
	if ev.Command != "" {
		reply = s.router.HandleCommand(r.Context(), ev.UserID, ev.Command, ev.Args)
	} else {
		reply = s.router.HandleText(r.Context(), ev.UserID, ev.Text)
	}

	s.logger.InfoContext(r.Context(), "Event handled",
		applog.FieldUserID, ev.UserID,
		applog.FieldCommand, ev.Command)

	writeJSON(w, http.StatusOK, Reply{Reply: reply})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
