package handlers

import (
	"net/http"

	"github.com/Dosada05/volley-coach/scoring"
	"github.com/Dosada05/volley-coach/services"
)

type HistoryHandler struct {
	historyService *services.HistoryService
}

func NewHistoryHandler(hs *services.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: hs}
}

// GetHistory: GET /api/history?q=&result=ALL|WON|LOST&venue=ALL|HOME|AWAY&sort=newest|oldest|date
func (h *HistoryHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	qs := r.URL.Query()
	query := services.HistoryQuery{
		Filter: scoring.MatchFilter{
			Query:  qs.Get("q"),
			Result: scoring.ParseResultFilter(qs.Get("result")),
			Venue:  scoring.ParseVenueFilter(qs.Get("venue")),
		},
		Order: scoring.ParseSortOrder(qs.Get("sort")),
	}

	view, err := h.historyService.History(r.Context(), owner, query)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, view)
}

func (h *HistoryHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	record, err := h.historyService.Record(r.Context(), owner)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"record": record})
}

func (h *HistoryHandler) GetPlayerHistory(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.historyService.PlayerHistory(r.Context(), owner, playerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, view)
}
