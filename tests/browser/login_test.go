package browser_test

import (
	"strings"
	"testing"
)

// TestLoginFlow verifies a manager can log in and reach the dashboard.
func TestLoginFlow(t *testing.T) {
	app := newTestApp(t)
	page := app.newPage(t)
	app.login(t, page)

	content, err := page.Content()
	if err != nil {
		t.Fatalf("failed to read page content: %v", err)
	}
	if !strings.Contains(content, "Dashboard") {
		t.Error("expected the dashboard after login")
	}
	if !strings.Contains(content, "manager@test.com") {
		t.Error("expected the logged-in email in the navigation")
	}
}

// TestLoginRejectsWrongPassword verifies the form re-renders with a generic
// message and no session.
func TestLoginRejectsWrongPassword(t *testing.T) {
	app := newTestApp(t)
	page := app.newPage(t)

	if _, err := page.Goto(app.BaseURL + "/login"); err != nil {
		t.Fatalf("failed to navigate to login: %v", err)
	}
	if err := page.Locator("input[name=email]").Fill("manager@test.com"); err != nil {
		t.Fatalf("failed to fill email: %v", err)
	}
	if err := page.Locator("input[name=password]").Fill("definitely wrong password"); err != nil {
		t.Fatalf("failed to fill password: %v", err)
	}
	if err := page.Locator("button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to click login: %v", err)
	}

	if err := page.Locator("p.error").WaitFor(); err != nil {
		t.Fatalf("expected an error message: %v", err)
	}
	text, err := page.Locator("p.error").TextContent()
	if err != nil {
		t.Fatalf("failed to read error text: %v", err)
	}
	if !strings.Contains(text, "Invalid login") {
		t.Errorf("error text = %q, want it to contain 'Invalid login'", text)
	}

	// Navigating to a protected page must bounce back to /login.
	if _, err := page.Goto(app.BaseURL + "/dashboard"); err != nil {
		t.Fatalf("failed to navigate to dashboard: %v", err)
	}
	if !strings.HasSuffix(page.URL(), "/login") {
		t.Errorf("expected redirect to /login, got %s", page.URL())
	}
}
