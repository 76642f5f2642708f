package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/facultyapp/faculty-backend/internal/middleware"
)

// routes assembles the router. Login and registration are public but rate
// limited; everything else requires a bearer token, and the admin subtree
// additionally requires the ADMIN role.
func (s *Server) routes(limiter *middleware.LimiterStore) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(limiter))
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/register", s.handleRegister)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Get("/auth/me", s.handleMe)
		r.Get("/users/chat", s.handleChatUsers)

		r.Post("/conversations/{otherUserID}", s.handleOpenConversation)

		r.Post("/messages", s.handleSendMessage)
		r.Get("/messages/{conversationID}", s.handleHistory)
		r.Put("/messages/{messageID}", s.handleEditMessage)
		r.Delete("/messages/{messageID}", s.handleDeleteMessage)

		r.Get("/notifications", s.handleListNotifications)
		r.Patch("/notifications/{id}/read", s.handleMarkNotificationRead)
		r.Delete("/notifications/{id}", s.handleDeleteNotification)

		r.Post("/calendar/events", s.handleCreateEvent)
		r.Get("/calendar/upcoming", s.handleUpcomingEvents)
		r.Delete("/calendar/events/{id}", s.handleDeleteEvent)

		r.Route("/admin", func(r chi.Router) {
			r.Use(s.requireAdmin)
			r.Get("/faculties", s.handleAllFaculties)
			r.Get("/faculties/pending", s.handlePendingFaculties)
			r.Put("/faculty/{id}/approve", s.handleApproveFaculty)
			r.Put("/faculty/{id}/reject", s.handleRejectFaculty)
			r.Put("/faculty/{id}/activate", s.handleActivateFaculty)
			r.Put("/faculty/{id}/deactivate", s.handleDeactivateFaculty)
		})
	})

	return r
}
