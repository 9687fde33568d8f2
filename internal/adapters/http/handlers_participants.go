package web

import (
	"log/slog"
	"net/http"

	"outreach/internal/application/listutil"
	"outreach/internal/application/orchestrators"
	"outreach/internal/application/projections"
)

// handleParticipants renders the participant roster.
func handleParticipants(w http.ResponseWriter, r *http.Request) {
	params := listutil.ParseListParams(r.URL.Query())

	// A failing store degrades to an empty list with a message, not a 500.
	var errMsg string
	result, err := projections.QueryGetParticipantList(r.Context(),
		projections.GetParticipantListQuery{Search: params.Search},
		projections.GetParticipantListDeps{ParticipantStore: stores.ParticipantStore, Policy: rolePolicy})
	if err != nil {
		slog.Error("participant_list_failed", "error", err)
		errMsg = "Could not load participants. Try again shortly."
	}

	rows := result.Participants
	page := listutil.NewPageInfo(params.Page, params.PerPage, len(rows))
	lo, hi := page.Window(len(rows))

	if !isHTMLRequest(r) {
		writeJSON(w, map[string]any{"participants": rows[lo:hi], "total": page.Total, "error": errMsg})
		return
	}
	renderTemplate(w, r, "participants.html", map[string]any{
		"Participants": rows[lo:hi],
		"Search":       params.Search,
		"Page":         page,
		"Error":        errMsg,
	})
}

func participantInputFromForm(r *http.Request) orchestrators.SaveParticipantInput {
	return orchestrators.SaveParticipantInput{
		Email:            r.FormValue("email"),
		FirstName:        r.FormValue("firstname"),
		LastName:         r.FormValue("lastname"),
		DOB:              r.FormValue("dob"),
		Phone:            r.FormValue("phone"),
		City:             r.FormValue("city"),
		State:            r.FormValue("state"),
		Zip:              r.FormValue("zip"),
		SchoolOrEmployer: r.FormValue("school"),
		FieldOfInterest:  r.FormValue("interest"),
		Role:             r.FormValue("role"),
	}
}

// handleParticipantAdd creates a participant record from the staff form.
// Unlike self-registration, staff may set a password and a role token.
func handleParticipantAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	_, err := orchestrators.ExecuteCreateAccount(r.Context(), orchestrators.CreateAccountInput{
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
		Role:             r.FormValue("role"),
	}, orchestrators.CreateAccountDeps{ParticipantStore: stores.ParticipantStore})
	if err != nil {
		status := http.StatusBadRequest
		if err == orchestrators.ErrEmailAlreadyExists {
			status = http.StatusConflict
		}
		http.Error(w, err.Error(), status)
		return
	}

	http.Redirect(w, r, "/participants", http.StatusSeeOther)
}

// handleParticipantEdit applies a staff edit to an existing record.
func handleParticipantEdit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	input := participantInputFromForm(r)
	input.ParticipantID = id
	if err := orchestrators.ExecuteSaveParticipant(r.Context(), input,
		orchestrators.SaveParticipantDeps{ParticipantStore: stores.ParticipantStore}); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	http.Redirect(w, r, "/participants", http.StatusSeeOther)
}

// handleParticipantDelete removes a participant record.
func handleParticipantDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := stores.ParticipantStore.Delete(r.Context(), id); err != nil {
		internalError(w, err)
		return
	}
	http.Redirect(w, r, "/participants", http.StatusSeeOther)
}
