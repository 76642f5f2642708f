package main

import (
	"html"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/facultyapp/faculty-backend/internal/data"
)

// handleOpenConversation resolves or lazily creates the unique channel between
// the caller and another account. Both orderings of the pair return the same
// conversation id.
func (s *Server) handleOpenConversation(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing auth claims"})
		return
	}
	me, err := claims.UserObjectID()
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	other, ok := s.pathObjectID(w, chi.URLParam(r, "otherUserID"))
	if !ok {
		return
	}

	// the partner must be a real account
	if _, err := s.users.GetUserByID(r.Context(), other); err != nil {
		s.respondError(w, r, err)
		return
	}

	conv, err := s.convos.FindOrCreate(r.Context(), me, other)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"conversationId": conv.ID.Hex()})
}

type sendMessageRequest struct {
	ConversationID string `json:"conversationId"`
	Content        string `json:"content"`
}

type messageResponse struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	SenderID       string    `json:"senderId"`
	SenderName     string    `json:"senderName,omitempty"`
	Content        string    `json:"content"`
	Edited         bool      `json:"edited"`
	CreatedAt      time.Time `json:"createdAt"`
}

func toMessageResponse(m *data.Message, senderName string) messageResponse {
	return messageResponse{
		ID:             m.ID.Hex(),
		ConversationID: m.ConversationID.Hex(),
		SenderID:       m.SenderID.Hex(),
		SenderName:     senderName,
		Content:        m.Content,
		Edited:         m.Edited,
		CreatedAt:      m.CreatedAt,
	}
}

// handleSendMessage appends a message to a conversation the sender belongs to
// and notifies the other participant. The notification is best-effort: its
// failure never fails the send.
func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing auth claims"})
		return
	}
	me, err := claims.UserObjectID()
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	var req sendMessageRequest
	if !s.readJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "content is required"})
		return
	}

	convID, ok := s.pathObjectIDFromBody(w, req.ConversationID)
	if !ok {
		return
	}

	conv, err := s.convos.GetByID(r.Context(), convID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if !conv.Includes(me) {
		s.respondError(w, r, data.ErrForbidden)
		return
	}

	msg, err := s.msgs.Insert(r.Context(), conv.ID, me, html.EscapeString(req.Content))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	// Best-effort fan-out to the other participant; the fanout logs failures.
	receiver := conv.Other(me)
	_ = s.fanout.Notify(r.Context(), receiver,
		"Admin", "new_message",
		claims.Email+" sent you a message",
		"Direct Message")

	s.writeJSON(w, http.StatusCreated, toMessageResponse(msg, claims.Email))
}

// handleHistory returns the full thread in ascending creation order.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	convID, ok := s.pathObjectID(w, chi.URLParam(r, "conversationID"))
	if !ok {
		return
	}

	// 404 for a conversation that never existed, not an empty list
	if _, err := s.convos.GetByID(r.Context(), convID); err != nil {
		s.respondError(w, r, err)
		return
	}

	msgs, err := s.msgs.ListByConversation(r.Context(), convID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	out := make([]messageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessageResponse(m, ""))
	}
	s.writeJSON(w, http.StatusOK, out)
}

type editMessageRequest struct {
	Content string `json:"content"`
}

// handleEditMessage overwrites a message's content and marks it edited. Only
// the sender may edit, and no edit history is kept.
func (s *Server) handleEditMessage(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing auth claims"})
		return
	}
	me, err := claims.UserObjectID()
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	msgID, ok := s.pathObjectID(w, chi.URLParam(r, "messageID"))
	if !ok {
		return
	}

	var req editMessageRequest
	if !s.readJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "content is required"})
		return
	}

	updated, err := s.msgs.Edit(r.Context(), msgID, me, html.EscapeString(req.Content))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toMessageResponse(updated, claims.Email))
}

// handleDeleteMessage removes a message permanently; sender only, no tombstone.
func (s *Server) handleDeleteMessage(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing auth claims"})
		return
	}
	me, err := claims.UserObjectID()
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	msgID, ok := s.pathObjectID(w, chi.URLParam(r, "messageID"))
	if !ok {
		return
	}

	if err := s.msgs.Delete(r.Context(), msgID, me); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusNoContent, nil)
}
