package web

import (
	"log/slog"
	"net/http"
	"strconv"

	"outreach/internal/application/listutil"
	"outreach/internal/application/orchestrators"
	"outreach/internal/application/projections"
)

func formScore(r *http.Request, field string) int {
	n, _ := strconv.Atoi(r.FormValue(field))
	return n
}

// handleSurveys renders submitted feedback, newest first.
func handleSurveys(w http.ResponseWriter, r *http.Request) {
	params := listutil.ParseListParams(r.URL.Query())

	// A failing store degrades to an empty list with a message, not a 500.
	var errMsg string
	result, err := projections.QueryGetSurveyList(r.Context(),
		projections.GetSurveyListQuery{Search: params.Search},
		projections.GetSurveyListDeps{SurveyStore: stores.SurveyStore})
	if err != nil {
		slog.Error("survey_list_failed", "error", err)
		errMsg = "Could not load survey responses. Try again shortly."
	}

	rows := result.Surveys
	page := listutil.NewPageInfo(params.Page, params.PerPage, len(rows))
	lo, hi := page.Window(len(rows))

	if !isHTMLRequest(r) {
		writeJSON(w, map[string]any{"surveys": rows[lo:hi], "total": page.Total, "error": errMsg})
		return
	}
	renderTemplate(w, r, "surveys.html", map[string]any{
		"Surveys": rows[lo:hi],
		"Search":  params.Search,
		"Page":    page,
		"Error":   errMsg,
	})
}

// handleSurveyAdd keys in a survey response on behalf of a respondent.
func handleSurveyAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	err := orchestrators.ExecuteSubmitSurvey(r.Context(), orchestrators.SubmitSurveyInput{
		Email:          r.FormValue("email"),
		FirstName:      r.FormValue("firstname"),
		LastName:       r.FormValue("lastname"),
		EventID:        r.FormValue("eventid"),
		SubmittedAt:    parseFormDate(r.FormValue("date")),
		Satisfaction:   formScore(r, "satisfaction"),
		Usefulness:     formScore(r, "usefulness"),
		Instructor:     formScore(r, "instructor"),
		Recommendation: formScore(r, "recommendation"),
		Comments:       r.FormValue("comments"),
	}, orchestrators.SubmitSurveyDeps{
		ParticipantStore: stores.ParticipantStore,
		SurveyStore:      stores.SurveyStore,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	http.Redirect(w, r, "/surveys", http.StatusSeeOther)
}

// handleSurveyEdit rewrites the scores and comments of an existing response.
// The composite key stays fixed; only the answers change.
func handleSurveyEdit(w http.ResponseWriter, r *http.Request) {
	participantID := r.PathValue("participantid")
	eventID := r.PathValue("eventid")
	if participantID == "" || eventID == "" {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	resp, err := stores.SurveyStore.GetByKey(r.Context(), participantID, eventID)
	if err != nil {
		http.Error(w, "survey not found", http.StatusNotFound)
		return
	}
	resp.Satisfaction = formScore(r, "satisfaction")
	resp.Usefulness = formScore(r, "usefulness")
	resp.Instructor = formScore(r, "instructor")
	resp.Recommendation = formScore(r, "recommendation")
	resp.Comments = r.FormValue("comments")
	if err := resp.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := stores.SurveyStore.Save(r.Context(), resp); err != nil {
		internalError(w, err)
		return
	}

	http.Redirect(w, r, "/surveys", http.StatusSeeOther)
}

// handleSurveyDelete removes a response by its composite key.
func handleSurveyDelete(w http.ResponseWriter, r *http.Request) {
	participantID := r.PathValue("participantid")
	eventID := r.PathValue("eventid")
	if participantID == "" || eventID == "" {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := stores.SurveyStore.Delete(r.Context(), participantID, eventID); err != nil {
		internalError(w, err)
		return
	}
	http.Redirect(w, r, "/surveys", http.StatusSeeOther)
}
