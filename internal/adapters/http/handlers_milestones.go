package web

import (
	"errors"
	"log/slog"
	"net/http"

	"outreach/internal/application/listutil"
	"outreach/internal/application/orchestrators"
	"outreach/internal/application/projections"
	"outreach/internal/domain/milestone"
)

// handleMilestones renders achievements, newest first. A participantid query
// parameter scopes the list to one participant's record.
func handleMilestones(w http.ResponseWriter, r *http.Request) {
	params := listutil.ParseListParams(r.URL.Query())
	scopeID := r.URL.Query().Get("participantid")

	// A failing store degrades to an empty list with a message, not a 500.
	// An unknown scope participant is still a 404: the URL names a record
	// that does not exist.
	var errMsg string
	var rows []projections.MilestoneRow
	if scopeID != "" {
		p, err := stores.ParticipantStore.GetByID(r.Context(), scopeID)
		if err != nil {
			http.Error(w, "participant not found", http.StatusNotFound)
			return
		}
		milestones, err := stores.MilestoneStore.List(r.Context(), scopeID, params.Search)
		if err != nil {
			slog.Error("milestone_list_failed", "error", err, "participant_id", scopeID)
			errMsg = "Could not load milestones. Try again shortly."
		}
		rows = make([]projections.MilestoneRow, 0, len(milestones))
		for _, m := range milestones {
			rows = append(rows, projections.MilestoneRow{
				ParticipantID:   m.ParticipantID,
				ParticipantName: p.FullName(),
				Title:           m.Title,
				DateDisplay:     m.DateDisplay(),
			})
		}
	} else {
		result, err := projections.QueryGetMilestoneList(r.Context(),
			projections.GetMilestoneListQuery{Search: params.Search},
			projections.GetMilestoneListDeps{MilestoneStore: stores.MilestoneStore})
		if err != nil {
			slog.Error("milestone_list_failed", "error", err)
			errMsg = "Could not load milestones. Try again shortly."
		}
		rows = result.Milestones
	}

	page := listutil.NewPageInfo(params.Page, params.PerPage, len(rows))
	lo, hi := page.Window(len(rows))

	if !isHTMLRequest(r) {
		writeJSON(w, map[string]any{"milestones": rows[lo:hi], "total": page.Total, "error": errMsg})
		return
	}
	renderTemplate(w, r, "milestones.html", map[string]any{
		"Milestones":    rows[lo:hi],
		"ParticipantID": scopeID,
		"Search":        params.Search,
		"Page":          page,
		"Error":         errMsg,
	})
}

// handleMilestoneAdd records an achievement for a participant named by email.
func handleMilestoneAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	err := orchestrators.ExecuteAddMilestone(r.Context(), orchestrators.AddMilestoneInput{
		Email:     r.FormValue("email"),
		FirstName: r.FormValue("firstname"),
		LastName:  r.FormValue("lastname"),
		Title:     r.FormValue("title"),
		Date:      parseFormDate(r.FormValue("date")),
	}, orchestrators.MilestoneDeps{
		ParticipantStore: stores.ParticipantStore,
		MilestoneStore:   stores.MilestoneStore,
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, milestone.ErrTitleExists) {
			status = http.StatusConflict
		}
		http.Error(w, err.Error(), status)
		return
	}

	http.Redirect(w, r, "/milestones", http.StatusSeeOther)
}

// handleMilestoneEdit replaces the row keyed by the old title in the URL
// with the edited values from the form.
func handleMilestoneEdit(w http.ResponseWriter, r *http.Request) {
	participantID := r.PathValue("participantid")
	oldTitle := r.PathValue("title")
	if participantID == "" || oldTitle == "" {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	err := orchestrators.ExecuteEditMilestone(r.Context(), orchestrators.EditMilestoneInput{
		ParticipantID: participantID,
		OldTitle:      oldTitle,
		Title:         r.FormValue("title"),
		Date:          parseFormDate(r.FormValue("date")),
	}, orchestrators.MilestoneDeps{
		ParticipantStore: stores.ParticipantStore,
		MilestoneStore:   stores.MilestoneStore,
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, milestone.ErrTitleExists) {
			status = http.StatusConflict
		}
		http.Error(w, err.Error(), status)
		return
	}

	http.Redirect(w, r, "/milestones", http.StatusSeeOther)
}

// handleMilestoneDelete removes an achievement by its natural key.
func handleMilestoneDelete(w http.ResponseWriter, r *http.Request) {
	participantID := r.PathValue("participantid")
	title := r.PathValue("title")
	if participantID == "" || title == "" {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := stores.MilestoneStore.Delete(r.Context(), participantID, title); err != nil {
		internalError(w, err)
		return
	}
	http.Redirect(w, r, "/milestones", http.StatusSeeOther)
}
