package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/facultyapp/faculty-backend/internal/data"
)

type notificationResponse struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Context   string    `json:"context,omitempty"`
	Read      bool      `json:"read"`
	Muted     bool      `json:"muted"`
	CreatedAt time.Time `json:"createdAt"`
}

func toNotificationResponse(n *data.Notification) notificationResponse {
	return notificationResponse{
		ID:        n.ID.Hex(),
		Category:  n.Category,
		Type:      n.Type,
		Message:   n.Message,
		Context:   n.Context,
		Read:      n.Read,
		Muted:     n.Muted,
		CreatedAt: n.CreatedAt,
	}
}

// handleListNotifications returns the caller's inbox, most recent first.
func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
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

	notifs, err := s.notifs.ListByRecipient(r.Context(), me)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	out := make([]notificationResponse, 0, len(notifs))
	for _, n := range notifs {
		out = append(out, toNotificationResponse(n))
	}
	s.writeJSON(w, http.StatusOK, out)
}

// handleMarkNotificationRead flags a notification read; recipient only.
func (s *Server) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
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

	id, ok := s.pathObjectID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := s.notifs.MarkRead(r.Context(), id, me); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusNoContent, nil)
}

// handleDeleteNotification removes a notification; recipient only.
func (s *Server) handleDeleteNotification(w http.ResponseWriter, r *http.Request) {
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

	id, ok := s.pathObjectID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := s.notifs.Delete(r.Context(), id, me); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusNoContent, nil)
}
