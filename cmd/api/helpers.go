package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"github.com/facultyapp/faculty-backend/internal/data"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

// respondError maps store errors to HTTP statuses. Anything outside the known
// domain errors is an opaque internal failure.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, data.ErrInvalidCredentials):
		s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
	case errors.Is(err, data.ErrAccountDisabled):
		s.writeJSON(w, http.StatusForbidden, errorResponse{Error: "account is disabled"})
	case errors.Is(err, data.ErrNotFound):
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, data.ErrForbidden):
		s.writeJSON(w, http.StatusForbidden, errorResponse{Error: "not allowed"})
	case errors.Is(err, data.ErrDuplicate):
		s.writeJSON(w, http.StatusConflict, errorResponse{Error: "already exists"})
	case errors.Is(err, data.ErrSameParticipant):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "cannot open a conversation with yourself"})
	default:
		s.log.Error("internal error",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

// pathObjectID parses an ObjectID route parameter; a malformed id responds 404
// because nothing can exist under it.
func (s *Server) pathObjectID(w http.ResponseWriter, raw string) (bson.ObjectID, bool) {
	id, err := bson.ObjectIDFromHex(raw)
	if err != nil {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
		return bson.ObjectID{}, false
	}
	return id, true
}

// pathObjectIDFromBody is pathObjectID for ids supplied in a request body.
func (s *Server) pathObjectIDFromBody(w http.ResponseWriter, raw string) (bson.ObjectID, bool) {
	id, err := bson.ObjectIDFromHex(raw)
	if err != nil {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
		return bson.ObjectID{}, false
	}
	return id, true
}
