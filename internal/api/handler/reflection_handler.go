package handler

import (
	"encoding/json"
	"net/http"

	"career_compass_v2/internal/api/middleware"
	"career_compass_v2/internal/app/service"
	"career_compass_v2/internal/common"

	"github.com/go-chi/chi/v5"
)

type ReflectionHandler struct {
	reflectionService *service.ReflectionService
}

func NewReflectionHandler(reflectionService *service.ReflectionService) *ReflectionHandler {
	return &ReflectionHandler{reflectionService: reflectionService}
}

func (h *ReflectionHandler) RegisterRoutes(r chi.Router) {
	r.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Get("/reflection", h.get)
		protected.Post("/reflection", h.save)
	})
}

func (h *ReflectionHandler) get(w http.ResponseWriter, r *http.Request) {
	sc := middleware.GetSessionContext(r.Context())

	notes, err := h.reflectionService.Read(r.Context(), sc.UserID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{
		"reflection_notes": notes,
	})
}

func (h *ReflectionHandler) save(w http.ResponseWriter, r *http.Request) {
	sc := middleware.GetSessionContext(r.Context())

	var req struct {
		ReflectionNotes string `json:"reflection_notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	if err := h.reflectionService.Write(r.Context(), sc.UserID, req.ReflectionNotes); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithMessage(w, http.StatusOK, "Saved")
}
