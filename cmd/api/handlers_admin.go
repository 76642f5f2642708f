package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/facultyapp/faculty-backend/internal/data"
)

type facultyResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address"`
	Subjects       string    `json:"subjects"`
	Specialisation string    `json:"areaOfSpecialisation"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}

func toFacultyResponse(p *data.FacultyProfile) facultyResponse {
	return facultyResponse{
		ID:             p.ID.Hex(),
		UserID:         p.UserID.Hex(),
		Name:           p.Name,
		Phone:          p.Phone,
		Address:        p.Address,
		Subjects:       p.Subjects,
		Specialisation: p.Specialisation,
		Status:         string(p.Status),
		CreatedAt:      p.CreatedAt,
	}
}

func (s *Server) writeFacultyList(w http.ResponseWriter, profiles []*data.FacultyProfile) {
	out := make([]facultyResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, toFacultyResponse(p))
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAllFaculties(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.faculty.ListAll(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.writeFacultyList(w, profiles)
}

func (s *Server) handlePendingFaculties(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.faculty.ListByStatus(r.Context(), data.StatusPending)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.writeFacultyList(w, profiles)
}

// setStatus is the shared body of the four lifecycle transition endpoints.
// The transition takes effect on the account's next login.
func (s *Server) setStatus(w http.ResponseWriter, r *http.Request, status data.FacultyStatus, message string) {
	id, ok := s.pathObjectID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := s.faculty.SetStatus(r.Context(), id, status); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"message": message})
}

func (s *Server) handleApproveFaculty(w http.ResponseWriter, r *http.Request) {
	s.setStatus(w, r, data.StatusActive, "faculty approved")
}

func (s *Server) handleRejectFaculty(w http.ResponseWriter, r *http.Request) {
	s.setStatus(w, r, data.StatusRejected, "faculty rejected")
}

func (s *Server) handleActivateFaculty(w http.ResponseWriter, r *http.Request) {
	s.setStatus(w, r, data.StatusActive, "faculty activated")
}

func (s *Server) handleDeactivateFaculty(w http.ResponseWriter, r *http.Request) {
	s.setStatus(w, r, data.StatusInactive, "faculty deactivated")
}
