package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/volley-coach/scoring"
	"github.com/Dosada05/volley-coach/services"
)

type MatchHandler struct {
	matchService *services.MatchService
}

func NewMatchHandler(ms *services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: ms}
}

type scoreInput struct {
	ScoreTeam     *int `json:"score_team"`
	ScoreOpponent *int `json:"score_opponent"`
}

func (in scoreInput) values() (int, int, error) {
	if in.ScoreTeam == nil || in.ScoreOpponent == nil {
		return 0, 0, errors.New("score_team and score_opponent are required")
	}
	return *in.ScoreTeam, *in.ScoreOpponent, nil
}

type slotInput struct {
	PlayerID string `json:"player_id"`
}

type copyLineupInput struct {
	SourceIndex *int `json:"source_index"`
}

// CreateMatch starts a match with its first set: POST /api/matches
func (h *MatchHandler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	var input services.StartMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.StartMatch(r.Context(), owner, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, jsonResponse{"match": match})
}

func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	order := scoring.ParseSortOrder(r.URL.Query().Get("sort"))
	matches, err := h.matchService.ListMatches(r.Context(), owner, order)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"matches": matches})
}

func (h *MatchHandler) GetMatch(w http.ResponseWriter, r *http.Request) {
	owner, matchID, ok := h.matchParams(w, r)
	if !ok {
		return
	}

	match, err := h.matchService.GetMatch(r.Context(), owner, matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"match": match, "status": match.Status()})
}

// UpdateMatch edits the setup of a match: PATCH /api/matches/{matchID}
func (h *MatchHandler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	owner, matchID, ok := h.matchParams(w, r)
	if !ok {
		return
	}

	var input services.UpdateMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.UpdateMatchDetails(r.Context(), owner, matchID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"match": match})
}

func (h *MatchHandler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	owner, matchID, ok := h.matchParams(w, r)
	if !ok {
		return
	}

	if err := h.matchService.DeleteMatch(r.Context(), owner, matchID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RecordSetResult closes the set in progress: POST /api/matches/{matchID}/sets/result
func (h *MatchHandler) RecordSetResult(w http.ResponseWriter, r *http.Request) {
	owner, matchID, ok := h.matchParams(w, r)
	if !ok {
		return
	}

	var input scoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	team, opponent, err := input.values()
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.RecordSetResult(r.Context(), owner, matchID, team, opponent)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"match": match, "status": match.Status()})
}

func (h *MatchHandler) CorrectSetScore(w http.ResponseWriter, r *http.Request) {
	owner, matchID, ok := h.matchParams(w, r)
	if !ok {
		return
	}
	setIndex, err := getIntFromURL(r, "setIndex")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input scoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	team, opponent, err := input.values()
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.CorrectSetScore(r.Context(), owner, matchID, setIndex, team, opponent)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"match": match})
}

// AssignLineupSlot: PUT /api/matches/{matchID}/sets/{setIndex}/lineup/{slot}
func (h *MatchHandler) AssignLineupSlot(w http.ResponseWriter, r *http.Request) {
	owner, matchID, setIndex, slot, ok := h.slotParams(w, r)
	if !ok {
		return
	}

	var input slotInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.PlayerID == "" {
		badRequestResponse(w, r, errors.New("player_id is required"))
		return
	}

	match, err := h.matchService.AssignLineupSlot(r.Context(), owner, matchID, setIndex, slot, input.PlayerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"match": match})
}

func (h *MatchHandler) ClearLineupSlot(w http.ResponseWriter, r *http.Request) {
	owner, matchID, setIndex, slot, ok := h.slotParams(w, r)
	if !ok {
		return
	}

	match, err := h.matchService.ClearLineupSlot(r.Context(), owner, matchID, setIndex, slot)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"match": match})
}

// CopyLineup replaces the lineup of {setIndex} with the lineup of source_index.
func (h *MatchHandler) CopyLineup(w http.ResponseWriter, r *http.Request) {
	owner, matchID, ok := h.matchParams(w, r)
	if !ok {
		return
	}
	target, err := getIntFromURL(r, "setIndex")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input copyLineupInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.SourceIndex == nil {
		badRequestResponse(w, r, errors.New("source_index is required"))
		return
	}

	match, err := h.matchService.CopyLineup(r.Context(), owner, matchID, *input.SourceIndex, target)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"match": match})
}

func (h *MatchHandler) GetActiveSet(w http.ResponseWriter, r *http.Request) {
	owner, matchID, ok := h.matchParams(w, r)
	if !ok {
		return
	}

	active, err := h.matchService.GetActiveSet(r.Context(), owner, matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"active_set": active})
}

func (h *MatchHandler) GetCompletedSets(w http.ResponseWriter, r *http.Request) {
	owner, matchID, ok := h.matchParams(w, r)
	if !ok {
		return
	}

	sets, err := h.matchService.GetCompletedSets(r.Context(), owner, matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"sets": sets})
}

func (h *MatchHandler) matchParams(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	owner, ok := ownerID(w, r)
	if !ok {
		return "", "", false
	}
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return "", "", false
	}
	return owner, matchID, true
}

func (h *MatchHandler) slotParams(w http.ResponseWriter, r *http.Request) (owner, matchID string, setIndex, slot int, ok bool) {
	owner, matchID, ok = h.matchParams(w, r)
	if !ok {
		return
	}
	var err error
	if setIndex, err = getIntFromURL(r, "setIndex"); err != nil {
		badRequestResponse(w, r, err)
		return owner, matchID, 0, 0, false
	}
	if slot, err = getIntFromURL(r, "slot"); err != nil {
		badRequestResponse(w, r, err)
		return owner, matchID, 0, 0, false
	}
	return owner, matchID, setIndex, slot, true
}
