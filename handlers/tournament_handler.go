package handlers

import (
	"net/http"

	"github.com/Dosada05/volley-coach/services"
)

type TournamentHandler struct {
	tournamentService *services.TournamentService
}

func NewTournamentHandler(ts *services.TournamentService) *TournamentHandler {
	return &TournamentHandler{tournamentService: ts}
}

func (h *TournamentHandler) CreateTournament(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	var input services.TournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.CreateTournament(r.Context(), owner, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, jsonResponse{"tournament": tournament})
}

func (h *TournamentHandler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	tournaments, err := h.tournamentService.ListTournaments(r.Context(), owner)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"tournaments": tournaments})
}

func (h *TournamentHandler) GetTournament(w http.ResponseWriter, r *http.Request) {
	owner, id, ok := tournamentParams(w, r)
	if !ok {
		return
	}

	tournament, err := h.tournamentService.GetTournament(r.Context(), owner, id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"tournament": tournament})
}

func (h *TournamentHandler) UpdateTournament(w http.ResponseWriter, r *http.Request) {
	owner, id, ok := tournamentParams(w, r)
	if !ok {
		return
	}

	var input services.UpdateTournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.UpdateTournament(r.Context(), owner, id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"tournament": tournament})
}

func (h *TournamentHandler) DeleteTournament(w http.ResponseWriter, r *http.Request) {
	owner, id, ok := tournamentParams(w, r)
	if !ok {
		return
	}

	if err := h.tournamentService.DeleteTournament(r.Context(), owner, id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func tournamentParams(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	owner, ok := ownerID(w, r)
	if !ok {
		return "", "", false
	}
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return "", "", false
	}
	return owner, id, true
}
