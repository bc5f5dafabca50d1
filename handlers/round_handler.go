package handlers

import (
	"net/http"

	"github.com/Dosada05/swiss-tournament/services"
)

type RoundHandler struct {
	pairingService services.PairingService
}

func NewRoundHandler(ps services.PairingService) *RoundHandler {
	return &RoundHandler{pairingService: ps}
}

// NextRoundHandler handles POST /tournaments/{tournamentID}/rounds.
func (h *RoundHandler) NextRoundHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	round, err := h.pairingService.NextRound(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"round": round}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
