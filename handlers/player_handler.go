package handlers

import (
	"net/http"

	"github.com/Dosada05/volley-coach/services"
)

type PlayerHandler struct {
	playerService *services.PlayerService
}

func NewPlayerHandler(ps *services.PlayerService) *PlayerHandler {
	return &PlayerHandler{playerService: ps}
}

func (h *PlayerHandler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	var input services.PlayerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.playerService.CreatePlayer(r.Context(), owner, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, jsonResponse{"player": player})
}

func (h *PlayerHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	players, err := h.playerService.ListPlayers(r.Context(), owner)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"players": players})
}

func (h *PlayerHandler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	owner, playerID, ok := playerParams(w, r)
	if !ok {
		return
	}

	player, err := h.playerService.GetPlayer(r.Context(), owner, playerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"player": player})
}

func (h *PlayerHandler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	owner, playerID, ok := playerParams(w, r)
	if !ok {
		return
	}

	var input services.UpdatePlayerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.playerService.UpdatePlayer(r.Context(), owner, playerID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"player": player})
}

func (h *PlayerHandler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	owner, playerID, ok := playerParams(w, r)
	if !ok {
		return
	}

	if err := h.playerService.DeletePlayer(r.Context(), owner, playerID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func playerParams(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	owner, ok := ownerID(w, r)
	if !ok {
		return "", "", false
	}
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return "", "", false
	}
	return owner, playerID, true
}
