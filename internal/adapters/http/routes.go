package web

import (
	"net/http"

	"outreach/internal/adapters/http/middleware"
)

// registerRoutes wires every application route onto the mux.
//
// Route access falls into three tiers:
//   - public: home, login, signup, the donation form and the donation list
//   - authenticated: dashboard and the read-only list screens
//   - elevated: every mutation except recording a donation
func registerRoutes(mux *http.ServeMux) {
	public := func(h http.HandlerFunc) http.Handler { return h }
	auth := func(h http.HandlerFunc) http.Handler { return middleware.RequireAuth(h) }
	elevated := func(h http.HandlerFunc) http.Handler { return middleware.RequireElevated(h) }

	// Public pages
	mux.Handle("GET /{$}", public(handleHome))
	mux.Handle("GET /login", public(handleLoginPage))
	mux.Handle("POST /login", public(handleLogin))
	mux.Handle("GET /logout", public(handleLogout))
	mux.Handle("GET /createaccount", public(handleCreateAccountPage))
	mux.Handle("POST /createaccount", public(handleCreateAccount))
	mux.Handle("GET /teapot", public(handleTeapot))

	// Donations: the form and list are public so anyone can give; the list
	// shows edit controls only to managers. Edits and deletes are elevated.
	mux.Handle("GET /donations", public(handleDonations))
	mux.Handle("POST /donations/add", public(handleDonationAdd))
	mux.Handle("POST /donations/{participantid}/{number}/edit", elevated(handleDonationEdit))
	mux.Handle("POST /donations/{participantid}/{number}/delete", elevated(handleDonationDelete))

	// Staff pages
	mux.Handle("GET /dashboard", auth(handleDashboard))
	mux.Handle("GET /changepassword", auth(handleChangePasswordPage))
	mux.Handle("POST /changepassword", auth(handleChangePassword))
	mux.Handle("GET /perf", elevated(handlePerf))

	mux.Handle("GET /participants", auth(handleParticipants))
	mux.Handle("POST /participants/add", elevated(handleParticipantAdd))
	mux.Handle("POST /participants/{id}/edit", elevated(handleParticipantEdit))
	mux.Handle("POST /participants/{id}/delete", elevated(handleParticipantDelete))

	mux.Handle("GET /events", auth(handleEvents))
	mux.Handle("POST /events/add", elevated(handleEventAdd))
	mux.Handle("POST /events/{id}/edit", elevated(handleEventEdit))
	mux.Handle("POST /events/{id}/delete", elevated(handleEventDelete))

	mux.Handle("GET /surveys", auth(handleSurveys))
	mux.Handle("POST /surveys/add", elevated(handleSurveyAdd))
	mux.Handle("POST /surveys/{participantid}/{eventid}/edit", elevated(handleSurveyEdit))
	mux.Handle("POST /surveys/{participantid}/{eventid}/delete", elevated(handleSurveyDelete))

	mux.Handle("GET /milestones", auth(handleMilestones))
	mux.Handle("POST /milestones/add", elevated(handleMilestoneAdd))
	mux.Handle("POST /milestones/{participantid}/{title}/edit", elevated(handleMilestoneEdit))
	mux.Handle("POST /milestones/{participantid}/{title}/delete", elevated(handleMilestoneDelete))

	// Everything else is a miss.
	mux.Handle("/", public(handleNotFound))
}
