package main

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/facultyapp/faculty-backend/internal/auth"
	"github.com/facultyapp/faculty-backend/internal/data"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse is the login gate's outcome. A nil token with a non-ACTIVE
// status is a successful response meaning "account not yet usable", which is
// different from a credential failure.
type loginResponse struct {
	Token  *string `json:"token"`
	Role   string  `json:"role"`
	Status string  `json:"status"`
}

// handleLogin decides the login outcome from the account's role and lifecycle
// status. Unknown email and wrong password produce the identical failure.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !s.readJSON(w, r, &req) {
		return
	}

	user, err := s.users.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, data.ErrNotFound) {
			s.respondError(w, r, data.ErrInvalidCredentials)
			return
		}
		s.respondError(w, r, err)
		return
	}

	if err := auth.CheckPassword(user.Password, req.Password); err != nil {
		s.respondError(w, r, data.ErrInvalidCredentials)
		return
	}

	if !user.Enabled {
		s.respondError(w, r, data.ErrAccountDisabled)
		return
	}

	// Admin accounts have no lifecycle status; they are always ACTIVE.
	if user.Role == data.RoleAdmin {
		s.issueToken(w, r, user, data.StatusActive)
		return
	}

	profile, err := s.faculty.GetByUserID(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, data.ErrNotFound) {
			// A faculty account with no profile should not exist; keep the
			// outward signal indistinguishable from a bad password.
			s.respondError(w, r, data.ErrInvalidCredentials)
			return
		}
		s.respondError(w, r, err)
		return
	}

	if profile.Status != data.StatusActive {
		// Valid credentials, account not usable yet. Success, no token.
		s.writeJSON(w, http.StatusOK, loginResponse{
			Token:  nil,
			Role:   string(user.Role),
			Status: string(profile.Status),
		})
		return
	}

	s.issueToken(w, r, user, profile.Status)
}

func (s *Server) issueToken(w http.ResponseWriter, r *http.Request, user *data.User, status data.FacultyStatus) {
	token, _, err := s.auth.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, loginResponse{
		Token:  &token,
		Role:   string(user.Role),
		Status: string(status),
	})
}

type registerRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Password       string `json:"password"`
	Address        string `json:"address"`
	Subjects       string `json:"subjects"`
	Specialisation string `json:"areaOfSpecialisation"`
}

// handleRegister creates a FACULTY account with a PENDING profile. The account
// cannot log in usefully until an admin approves it.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !s.readJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" || strings.TrimSpace(req.Name) == "" {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "name, email and password are required"})
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	user, err := s.users.CreateUser(r.Context(), req.Email, hashed, data.RoleFaculty)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if _, err := s.faculty.CreateProfile(r.Context(), user.ID, req.Name, req.Phone, req.Address, req.Subjects, req.Specialisation); err != nil {
		s.log.Error("profile creation failed after user insert",
			zap.String("user_id", user.ID.Hex()),
			zap.Error(err))
		s.respondError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]string{
		"message": "registration submitted for approval",
		"userId":  user.ID.Hex(),
	})
}

type profileResponse struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Name       string `json:"name"`
	Department string `json:"department,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Office     string `json:"office,omitempty"`
	Status     string `json:"status"`
}

// handleMe returns the authenticated account's profile.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing auth claims"})
		return
	}

	user, err := s.users.GetUserByEmail(r.Context(), claims.Email)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	resp := profileResponse{
		ID:    user.ID.Hex(),
		Email: user.Email,
		Role:  string(user.Role),
	}

	if user.Role == data.RoleAdmin {
		resp.Name = "System Administrator"
		resp.Department = "Administration"
		resp.Status = string(data.StatusActive)
		s.writeJSON(w, http.StatusOK, resp)
		return
	}

	profile, err := s.faculty.GetByUserID(r.Context(), user.ID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	resp.Name = profile.Name
	resp.Department = profile.Subjects
	resp.Phone = profile.Phone
	resp.Office = profile.Address
	resp.Status = string(profile.Status)
	s.writeJSON(w, http.StatusOK, resp)
}

type chatUserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// handleChatUsers lists every account except the caller, as conversation
// partner candidates.
func (s *Server) handleChatUsers(w http.ResponseWriter, r *http.Request) {
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

	users, err := s.users.ListOthers(r.Context(), me)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	out := make([]chatUserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, chatUserResponse{ID: u.ID.Hex(), Email: u.Email, Role: string(u.Role)})
	}
	s.writeJSON(w, http.StatusOK, out)
}
