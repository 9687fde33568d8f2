package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"outreach/internal/adapters/http/middleware"
	"outreach/internal/application/listutil"
	"outreach/internal/application/orchestrators"
	"outreach/internal/application/projections"
	"outreach/internal/domain/donation"
)

// parseAmountCents converts a dollar string like "25.50" (optionally with a
// leading $ and thousands separators) into cents. Fractions beyond two
// digits are rejected rather than rounded.
func parseAmountCents(v string) (int64, error) {
	v = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(v), "$"))
	v = strings.ReplaceAll(v, ",", "")
	if v == "" {
		return 0, donation.ErrInvalidAmount
	}

	dollarPart := v
	centPart := "0"
	if i := strings.IndexByte(v, '.'); i >= 0 {
		dollarPart = v[:i]
		centPart = v[i+1:]
		if len(centPart) > 2 {
			return 0, donation.ErrInvalidAmount
		}
		if len(centPart) == 1 {
			centPart += "0"
		}
		if centPart == "" {
			centPart = "0"
		}
	}
	if dollarPart == "" {
		dollarPart = "0"
	}

	dollars, err := strconv.ParseInt(dollarPart, 10, 64)
	if err != nil || dollars < 0 {
		return 0, donation.ErrInvalidAmount
	}
	cents, err := strconv.ParseInt(centPart, 10, 64)
	if err != nil || cents < 0 {
		return 0, donation.ErrInvalidAmount
	}
	return dollars*100 + cents, nil
}

// handleDonations renders the public giving page. Anyone can open it and
// record a gift; the donation history is staff-only, so anonymous visitors
// get the form with an empty list.
func handleDonations(w http.ResponseWriter, r *http.Request) {
	_, loggedIn := middleware.GetSessionFromContext(r.Context())
	canEdit := middleware.IsElevated(r.Context())
	params := listutil.ParseListParams(r.URL.Query())

	// A failing store degrades to an empty list with a message, not a 500.
	var errMsg string
	var rows []projections.DonationRow
	if loggedIn {
		result, err := projections.QueryGetDonationList(r.Context(),
			projections.GetDonationListQuery{Search: params.Search},
			projections.GetDonationListDeps{DonationStore: stores.DonationStore})
		if err != nil {
			slog.Error("donation_list_failed", "error", err)
			errMsg = "Could not load the donation history. Try again shortly."
		}
		rows = result.Donations
	}

	page := listutil.NewPageInfo(params.Page, params.PerPage, len(rows))
	lo, hi := page.Window(len(rows))

	if !isHTMLRequest(r) {
		writeJSON(w, map[string]any{"donations": rows[lo:hi], "total": page.Total, "can_edit": canEdit, "error": errMsg})
		return
	}
	renderTemplate(w, r, "donations.html", map[string]any{
		"Donations": rows[lo:hi],
		"CanEdit":   canEdit,
		"Search":    params.Search,
		"Page":      page,
		"Message":   r.URL.Query().Get("msg"),
		"Error":     errMsg,
	})
}

// handleDonationAdd records a gift from the public form.
func handleDonationAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	amountCents, err := parseAmountCents(r.FormValue("amount"))
	if err == nil {
		_, err = orchestrators.ExecuteRecordDonation(r.Context(), orchestrators.RecordDonationInput{
			Email:       r.FormValue("email"),
			FirstName:   r.FormValue("firstname"),
			LastName:    r.FormValue("lastname"),
			Date:        parseFormDate(r.FormValue("date")),
			AmountCents: amountCents,
		}, donationEmailDeps())
	}
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		renderTemplate(w, r, "donations.html", map[string]any{
			"Error":   err.Error(),
			"CanEdit": middleware.IsElevated(r.Context()),
			"Page":    listutil.NewPageInfo(1, listutil.DefaultPerPage, 0),
		})
		return
	}

	http.Redirect(w, r, "/donations?msg=Thank+you+for+your+donation", http.StatusSeeOther)
}

// donationKeyFromPath extracts the composite key from the URL.
func donationKeyFromPath(r *http.Request) (string, int, error) {
	participantID := r.PathValue("participantid")
	number, err := strconv.Atoi(r.PathValue("number"))
	if participantID == "" || err != nil || number < 1 {
		return "", 0, errors.New("invalid donation key")
	}
	return participantID, number, nil
}

// handleDonationEdit updates a donation in place. The composite key never
// changes on edit; only date and amount are writable.
func handleDonationEdit(w http.ResponseWriter, r *http.Request) {
	participantID, number, err := donationKeyFromPath(r)
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	d, err := stores.DonationStore.GetByKey(r.Context(), participantID, number)
	if err != nil {
		http.Error(w, "donation not found", http.StatusNotFound)
		return
	}
	if v := r.FormValue("date"); v != "" {
		d.Date = parseFormDate(v)
	}
	if v := r.FormValue("amount"); v != "" {
		cents, err := parseAmountCents(v)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		d.AmountCents = cents
	}
	if err := d.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := stores.DonationStore.Update(r.Context(), d); err != nil {
		internalError(w, err)
		return
	}

	http.Redirect(w, r, "/donations", http.StatusSeeOther)
}

// handleDonationDelete removes a donation by its composite key.
func handleDonationDelete(w http.ResponseWriter, r *http.Request) {
	participantID, number, err := donationKeyFromPath(r)
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := stores.DonationStore.Delete(r.Context(), participantID, number); err != nil {
		internalError(w, err)
		return
	}
	http.Redirect(w, r, "/donations", http.StatusSeeOther)
}
