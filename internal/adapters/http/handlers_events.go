package web

import (
	"log/slog"
	"net/http"

	"outreach/internal/application/listutil"
	"outreach/internal/application/orchestrators"
	"outreach/internal/application/projections"
)

// handleEvents renders the event schedule with the template and location
// lookups for the add form.
func handleEvents(w http.ResponseWriter, r *http.Request) {
	params := listutil.ParseListParams(r.URL.Query())

	// A failing store degrades to an empty list with a message, not a 500.
	var errMsg string
	result, err := projections.QueryGetEventList(r.Context(),
		projections.GetEventListQuery{Search: params.Search},
		projections.GetEventListDeps{EventStore: stores.EventStore, Now: timeNow})
	if err != nil {
		slog.Error("event_list_failed", "error", err)
		errMsg = "Could not load events. Try again shortly."
	}

	rows := result.Events
	page := listutil.NewPageInfo(params.Page, params.PerPage, len(rows))
	lo, hi := page.Window(len(rows))

	if !isHTMLRequest(r) {
		writeJSON(w, map[string]any{"events": rows[lo:hi], "total": page.Total, "error": errMsg})
		return
	}
	renderTemplate(w, r, "events.html", map[string]any{
		"Events":    rows[lo:hi],
		"Templates": result.Templates,
		"Locations": result.Locations,
		"Search":    params.Search,
		"Page":      page,
		"Error":     errMsg,
	})
}

func eventInputFromForm(r *http.Request) orchestrators.SaveEventInput {
	return orchestrators.SaveEventInput{
		Name:                 r.FormValue("name"),
		Location:             r.FormValue("location"),
		StartAt:              parseFormDateTime(r.FormValue("start")),
		EndAt:                parseFormDateTime(r.FormValue("end")),
		RegistrationDeadline: parseFormDate(r.FormValue("deadline")),
		Description:          r.FormValue("description"),
	}
}

// handleEventAdd schedules a new occurrence.
func handleEventAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	if _, err := orchestrators.ExecuteSaveEvent(r.Context(), eventInputFromForm(r),
		orchestrators.SaveEventDeps{EventStore: stores.EventStore}); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	http.Redirect(w, r, "/events", http.StatusSeeOther)
}

// handleEventEdit updates an existing occurrence.
func handleEventEdit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if _, err := stores.EventStore.GetByID(r.Context(), id); err != nil {
		http.Error(w, "event not found", http.StatusNotFound)
		return
	}

	input := eventInputFromForm(r)
	input.ID = id
	if _, err := orchestrators.ExecuteSaveEvent(r.Context(), input,
		orchestrators.SaveEventDeps{EventStore: stores.EventStore}); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	http.Redirect(w, r, "/events", http.StatusSeeOther)
}

// handleEventDelete removes an occurrence.
func handleEventDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := stores.EventStore.Delete(r.Context(), id); err != nil {
		internalError(w, err)
		return
	}
	http.Redirect(w, r, "/events", http.StatusSeeOther)
}
