package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/erauner12/showcase/internal/chat"
	"github.com/rs/zerolog/log"
)

type chatReq struct {
	Message string `json:"message"`
}

type chatResp struct {
	Reply string `json:"reply"`
}

type contactReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// PostChat handles POST /api/chat
// Model failures still answer with a reply so the UI has something to show.
func (s *Server) PostChat(w http.ResponseWriter, r *http.Request) {
	var body chatReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON")
		return
	}

	svc := s.Chat
	if svc == nil {
		svc = chat.NewService(nil)
	}

	reply, err := svc.Reply(r.Context(), body.Message)
	switch {
	case errors.Is(err, chat.ErrEmptyMessage):
		writeError(w, r, http.StatusBadRequest, "Message is required")
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, chatResp{Reply: reply})
	default:
		writeJSON(w, http.StatusOK, chatResp{Reply: reply})
	}
}

// PostContact handles POST /api/contact. Messages are only logged.
func (s *Server) PostContact(w http.ResponseWriter, r *http.Request) {
	var body contactReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON")
		return
	}

	log.Ctx(r.Context()).Info().
		Str("name", body.Name).
		Str("email", body.Email).
		Int("messageLen", len(body.Message)).
		Msg("contact form received")

	writeJSON(w, http.StatusOK, successResp{Success: true, Message: "Message received!"})
}
