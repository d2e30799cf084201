package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tymeless/legacychat/errors"
	"github.com/tymeless/legacychat/internal/mylog"
)

// postMessage submits one user message and streams the persona reply back as
// server-sent events: zero or more "fragment" events, one "questions" event,
// then a closing "done" event. Generation failures surface as the apology
// reply, never as an error payload.
func (s *Server) postMessage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	session, err := s.app.GetSession(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	turn, err := session.Send(r.Context(), req.Message)
	if err != nil {
		switch {
		case errors.Is(err, errors.ErrEmptyMessage):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, errors.ErrSessionBusy):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, errors.ErrSessionClosed):
			http.Error(w, err.Error(), http.StatusGone)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	defer turn.Close()

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	for turn.Next() {
		writeEvent(w, "fragment", map[string]string{"text": turn.Current()})
		flusher.Flush()

		select {
		case <-r.Context().Done():
			return
		default:
		}
	}

	if turn.Failed() {
		s.logger.Warn("reply generation failed, apology substituted",
			"sessionId", id, mylog.Err(turn.Err()))
		writeEvent(w, "fragment", map[string]string{"text": turn.Text()})
		flusher.Flush()
	} else {
		writeEvent(w, "questions", turn.Questions(r.Context()))
		flusher.Flush()
	}

	writeEvent(w, "done", map[string]any{
		"reply":  turn.Text(),
		"failed": turn.Failed(),
	})
	flusher.Flush()
}

func writeEvent(w http.ResponseWriter, event string, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload)
}
