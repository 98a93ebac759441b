package handler

import (
	"net/http"

	"career_compass_v2/internal/app/service"
	"career_compass_v2/internal/common"

	"github.com/go-chi/chi/v5"
)

type TipsHandler struct {
	tipsService *service.TipsService
}

func NewTipsHandler(tipsService *service.TipsService) *TipsHandler {
	return &TipsHandler{tipsService: tipsService}
}

func (h *TipsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/strand-tips/{strand}", h.strandTips)
}

// strandTips never hard-fails: collaborator errors are swallowed inside the
// service and replaced with the static fallback.
func (h *TipsHandler) strandTips(w http.ResponseWriter, r *http.Request) {
	strand := chi.URLParam(r, "strand")
	tips := h.tipsService.StrandTips(r.Context(), strand)
	common.RespondWithJSON(w, http.StatusOK, map[string]string{
		"tips": tips,
	})
}
