package web

import (
	"bytes"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"outreach/internal/adapters/http/middleware"
	"outreach/internal/application/orchestrators"
	"outreach/internal/application/projections"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

const templatesDir = "internal/adapters/http/templates"

func isHTMLRequest(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") || strings.Contains(accept, "application/xhtml+xml")
}

// dateLayout is the wire format of every date input field.
const formDateLayout = "2006-01-02"

func parseFormDate(v string) time.Time {
	t, err := time.Parse(formDateLayout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseFormDateTime(v string) time.Time {
	// datetime-local inputs send 2006-01-02T15:04
	t, err := time.Parse("2006-01-02T15:04", strings.TrimSpace(v))
	if err != nil {
		return parseFormDate(v)
	}
	return t
}

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	sess, loggedIn := middleware.GetSessionFromContext(r.Context())

	funcMap := template.FuncMap{
		"currentEmail": func() string { return sess.Email },
		"currentName":  func() string { return strings.TrimSpace(sess.FirstName + " " + sess.LastName) },
		"isLoggedIn":   func() bool { return loggedIn },
		"isManager":    func() bool { return loggedIn && sess.IsElevated() },
		"csrfToken":    func() string { return csrf.Token(r) },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
	}

	layoutPath := filepath.Join(templatesDir, "layout.html")
	pagePath := filepath.Join(templatesDir, templateName)
	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFiles(layoutPath, pagePath)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
}

// writeJSON renders a JSON response for non-HTML clients.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// handleHome renders the public landing page.
func handleHome(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "home.html", map[string]any{})
}

// handleNotFound renders the catch-all miss page.
func handleNotFound(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte("404 not found"))
}

// handleTeapot is the easter egg route.
func handleTeapot(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusTeapot)
	w.Write([]byte("I'm a teapot"))
}

// handleLoginPage renders the login form.
func handleLoginPage(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "login.html", map[string]any{})
}

// handleLogin verifies credentials and establishes a session.
// Every failure renders the same "Invalid login" message so the form never
// reveals whether the email exists.
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	result, err := orchestrators.ExecuteLogin(r.Context(), orchestrators.LoginInput{
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}, orchestrators.LoginDeps{ParticipantStore: stores.ParticipantStore, Policy: rolePolicy})
	if err != nil {
		msg := "Invalid login"
		if err == orchestrators.ErrAccountLocked {
			msg = "Account is temporarily locked. Try again later."
		}
		w.WriteHeader(http.StatusUnauthorized)
		renderTemplate(w, r, "login.html", map[string]any{
			"Error": msg,
			"Email": r.FormValue("email"),
		})
		return
	}

	token, err := sessions.Create(middleware.Session{
		ParticipantID: result.ParticipantID,
		Email:         result.Email,
		FirstName:     result.FirstName,
		LastName:      result.LastName,
		Role:          result.Role,
		Level:         result.Level,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// handleLogout destroys the session and returns to the home page.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if token := middleware.SessionTokenFromRequest(r); token != "" {
		sessions.Delete(token)
	}
	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleCreateAccountPage renders the signup form.
func handleCreateAccountPage(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "createaccount.html", map[string]any{})
}

// handleCreateAccount registers a new standard account. The role field of
// the form is ignored: self-registration can never mint a manager.
func handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	if r.FormValue("password") != r.FormValue("confirm") {
		w.WriteHeader(http.StatusBadRequest)
		renderTemplate(w, r, "createaccount.html", map[string]any{
			"Error": "Passwords do not match",
			"Form":  r.Form,
		})
		return
	}

	input := orchestrators.CreateAccountInput{
		Email:            r.FormValue("email"),
		Password:         r.FormValue("password"),
		FirstName:        r.FormValue("firstname"),
		LastName:         r.FormValue("lastname"),
		DOB:              r.FormValue("dob"),
		Phone:            r.FormValue("phone"),
		City:             r.FormValue("city"),
		State:            r.FormValue("state"),
		Zip:              r.FormValue("zip"),
		SchoolOrEmployer: r.FormValue("school"),
		FieldOfInterest:  r.FormValue("interest"),
	}

	_, err := orchestrators.ExecuteCreateAccount(r.Context(), input,
		orchestrators.CreateAccountDeps{ParticipantStore: stores.ParticipantStore})
	if err != nil {
		status := http.StatusBadRequest
		if err == orchestrators.ErrEmailAlreadyExists {
			status = http.StatusConflict
		}
		w.WriteHeader(status)
		renderTemplate(w, r, "createaccount.html", map[string]any{
			"Error": err.Error(),
			"Form":  r.Form,
		})
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// handleDashboard renders the staff landing page.
func handleDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryGetDashboard(r.Context(), projections.GetDashboardDeps{
		ParticipantStore: stores.ParticipantStore,
		DonationStore:    stores.DonationStore,
		EventStore:       stores.EventStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	if !isHTMLRequest(r) {
		writeJSON(w, result)
		return
	}
	renderTemplate(w, r, "dashboard.html", map[string]any{
		"ParticipantCount": result.ParticipantCount,
		"DonationCount":    result.DonationCount,
		"DonationTotal":    result.DonationTotal,
		"EventCount":       result.EventCount,
	})
}

// handleChangePasswordPage renders the password form.
func handleChangePasswordPage(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "changepassword.html", map[string]any{})
}

// handleChangePassword replaces the caller's own password after verifying
// the current one. The identity comes from the session, never the form.
func handleChangePassword(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	err := orchestrators.ExecuteChangePassword(r.Context(), orchestrators.ChangePasswordInput{
		ParticipantID:   sess.ParticipantID,
		CurrentPassword: r.FormValue("current"),
		NewPassword:     r.FormValue("new"),
	}, orchestrators.ChangePasswordDeps{ParticipantStore: stores.ParticipantStore})
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		renderTemplate(w, r, "changepassword.html", map[string]any{
			"Error": "Could not change password. Check your current password and try again.",
		})
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// handlePerf returns aggregated timing diagnostics for the last hour.
// Manager-only; the snapshot is a sorted read, not a hot path.
func handlePerf(w http.ResponseWriter, r *http.Request) {
	if perfCollector == nil {
		http.Error(w, "performance collection disabled", http.StatusNotFound)
		return
	}
	snap := perfCollector.Snapshot(timeNow().Add(-time.Hour), 10)
	writeJSON(w, snap)
}

// donationEmailDeps bundles the record-donation dependencies, including the
// configured receipt sender. Kept here so handlers stay free of email plumbing.
func donationEmailDeps() orchestrators.RecordDonationDeps {
	return orchestrators.RecordDonationDeps{
		ParticipantStore: stores.ParticipantStore,
		DonationStore:    stores.DonationStore,
		EmailSender:      emailSender,
	}
}
