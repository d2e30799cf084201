package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mokiat/gog"

	"github.com/tymeless/legacychat/errors"
	"github.com/tymeless/legacychat/memory"
)

func (s *Server) registerRoutes(router *mux.Router) {
	router.HandleFunc("/personas", s.listPersonas).Methods("GET")
	router.HandleFunc("/personas/{id}/memories", s.ingestMemory).Methods("POST")
	router.HandleFunc("/personas/{id}/memories", s.listMemories).Methods("GET")
	router.HandleFunc("/sessions", s.createSession).Methods("POST")
	router.HandleFunc("/sessions/{id}", s.deleteSession).Methods("DELETE")
	router.HandleFunc("/sessions/{id}/messages", s.postMessage).Methods("POST")
	router.HandleFunc("/profile", s.generateProfile).Methods("POST")
}

func (s *Server) listPersonas(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.Personas(r.Context()))
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PersonaID string `json:"personaId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	session, err := s.app.OpenSession(r.Context(), req.PersonaID)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":              session.ID(),
		"persona":         session.Persona(),
		"history":         session.History(),
		"sampleQuestions": session.SuggestedQuestions(),
	})
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.app.CloseSession(id); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) generateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Relation string `json:"relation"`
		Memories string `json:"memories"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"personality": s.app.GenerateProfile(r.Context(), req.Name, req.Relation, req.Memories),
	})
}

func (s *Server) ingestMemory(w http.ResponseWriter, r *http.Request) {
	personaID := mux.Vars(r)["id"]

	var req struct {
		Content  string          `json:"content"`
		Metadata memory.Metadata `json:"metadata"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m, err := s.app.IngestMemory(r.Context(), personaID, req.Content, req.Metadata)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) listMemories(w http.ResponseWriter, r *http.Request) {
	personaID := mux.Vars(r)["id"]

	memories, err := s.app.ListMemories(r.Context(), personaID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, gog.Map(memories, func(m *memory.Memory) map[string]any {
		return map[string]any{
			"id":       m.ID,
			"content":  m.Content,
			"metadata": m.Metadata.Map(),
		}
	}))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
