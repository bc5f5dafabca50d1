package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Dosada05/swiss-tournament/middleware"
	"github.com/Dosada05/swiss-tournament/services"
)

type AdminHandler struct {
	adminService services.AdminService
}

func NewAdminHandler(as services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: as}
}

// ResetHandler handles DELETE /admin/records?confirm=true.
func (h *AdminHandler) ResetHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("confirm") != "true" {
		badRequestResponse(w, r, errors.New("deleting every record requires confirm=true"))
		return
	}

	summary, err := h.adminService.Reset(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if subject, err := middleware.GetSubjectFromContext(r.Context()); err == nil {
		slog.Default().Warn("records reset over http", slog.String("organizer", subject))
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"deleted": summary}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
