package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Dosada05/volley-coach/services"
)

const maxLogoBytes = 5 << 20

type TeamHandler struct {
	teamService   *services.TeamService
	playerService *services.PlayerService
}

func NewTeamHandler(ts *services.TeamService, ps *services.PlayerService) *TeamHandler {
	return &TeamHandler{
		teamService:   ts,
		playerService: ps,
	}
}

func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	var input services.TeamInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.teamService.CreateTeam(r.Context(), owner, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, jsonResponse{"team": team})
}

func (h *TeamHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	teams, err := h.teamService.ListTeams(r.Context(), owner)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"teams": teams})
}

func (h *TeamHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	owner, teamID, ok := teamParams(w, r)
	if !ok {
		return
	}

	team, err := h.teamService.GetTeam(r.Context(), owner, teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"team": team})
}

// ListTeamPlayers resolves the roster for lineup selection.
func (h *TeamHandler) ListTeamPlayers(w http.ResponseWriter, r *http.Request) {
	owner, teamID, ok := teamParams(w, r)
	if !ok {
		return
	}

	players, err := h.playerService.ListTeamPlayers(r.Context(), owner, teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"players": players})
}

func (h *TeamHandler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	owner, teamID, ok := teamParams(w, r)
	if !ok {
		return
	}

	var input services.UpdateTeamInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Name == nil && input.PlayerIDs == nil {
		badRequestResponse(w, r, errors.New("no fields provided for update"))
		return
	}

	team, err := h.teamService.UpdateTeam(r.Context(), owner, teamID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"team": team})
}

func (h *TeamHandler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	owner, teamID, ok := teamParams(w, r)
	if !ok {
		return
	}

	if err := h.teamService.DeleteTeam(r.Context(), owner, teamID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadLogo expects a multipart form with the image in the "logo" field.
func (h *TeamHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	owner, teamID, ok := teamParams(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxLogoBytes+1<<20)
	if err := r.ParseMultipartForm(maxLogoBytes); err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to parse multipart form: %w", err))
		return
	}

	file, header, err := r.FormFile("logo")
	if err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to get logo file from form: %w", err))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		badRequestResponse(w, r, errors.New("content-type header is required for logo"))
		return
	}

	team, err := h.teamService.UploadTeamLogo(r.Context(), owner, teamID, contentType, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"team": team})
}

func teamParams(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	owner, ok := ownerID(w, r)
	if !ok {
		return "", "", false
	}
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return "", "", false
	}
	return owner, teamID, true
}
