package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/facultyapp/faculty-backend/internal/data"
)

type createEventRequest struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Date        string `json:"date"` // YYYY-MM-DD
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	MeetingType string `json:"meetingType"`
	CollegeName string `json:"collegeName"`
	Batch       string `json:"batch"`
	Comments    string `json:"comments"`
}

type eventResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	MeetingType string `json:"meetingType"`
	CollegeName string `json:"collegeName,omitempty"`
	Batch       string `json:"batch,omitempty"`
	Comments    string `json:"comments,omitempty"`
	CreatedBy   string `json:"createdBy"`
}

func toEventResponse(e *data.CalendarEvent) eventResponse {
	return eventResponse{
		ID:          e.ID.Hex(),
		Title:       e.Title,
		Category:    e.Category,
		Date:        e.Date.Format("2006-01-02"),
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		MeetingType: e.MeetingType,
		CollegeName: e.CollegeName,
		Batch:       e.Batch,
		Comments:    e.Comments,
		CreatedBy:   e.CreatedBy.Hex(),
	}
}

// handleCreateEvent creates a shared calendar event and broadcasts a
// meeting_invite notification to every account except the creator. The
// broadcast is at-least-once and non-atomic; the event creation has already
// succeeded whatever happens to the fan-out.
func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
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

	var req createEventRequest
	if !s.readJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "title is required"})
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "date must be YYYY-MM-DD"})
		return
	}

	event, err := s.events.Insert(r.Context(), &data.CalendarEvent{
		Title:       req.Title,
		Category:    req.Category,
		Date:        date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		MeetingType: req.MeetingType,
		CollegeName: req.CollegeName,
		Batch:       req.Batch,
		Comments:    req.Comments,
		CreatedBy:   me,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	notified, err := s.fanout.BroadcastExcept(r.Context(), me,
		"Meetings", "meeting_invite",
		fmt.Sprintf("%s scheduled %q on %s", claims.Email, event.Title, req.Date),
		event.Title)
	if err != nil {
		// event is already persisted; a failed broadcast is advisory only
		s.log.Warn("event broadcast failed", zap.String("event_id", event.ID.Hex()), zap.Error(err))
	}

	resp := struct {
		eventResponse
		Notified int `json:"notified"`
	}{toEventResponse(event), notified}
	s.writeJSON(w, http.StatusCreated, resp)
}

// handleUpcomingEvents lists events dated today or later.
func (s *Server) handleUpcomingEvents(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	events, err := s.events.ListUpcoming(r.Context(), startOfDay)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	out := make([]eventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResponse(e))
	}
	s.writeJSON(w, http.StatusOK, out)
}

// handleDeleteEvent removes an event; creator only.
func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
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

	if err := s.events.Delete(r.Context(), id, me); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusNoContent, nil)
}
