package handlers

import (
	"net/http"

	"github.com/Dosada05/volley-coach/services"
)

type AccountHandler struct {
	ownerDataService *services.OwnerDataService
}

func NewAccountHandler(ods *services.OwnerDataService) *AccountHandler {
	return &AccountHandler{ownerDataService: ods}
}

// DeleteMyData removes every document of the current user: DELETE /api/me/data
func (h *AccountHandler) DeleteMyData(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	summary, err := h.ownerDataService.PurgeOwnerData(r.Context(), owner)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"deleted": summary})
}
