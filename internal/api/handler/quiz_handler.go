package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"career_compass_v2/internal/api/middleware"
	"career_compass_v2/internal/app/service"
	"career_compass_v2/internal/common"

	"github.com/go-chi/chi/v5"
)

type QuizHandler struct {
	quizService *service.QuizService
}

func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

func (h *QuizHandler) RegisterRoutes(r chi.Router) {
	r.Post("/save", h.save)      // POST /api/quiz/save (auth optional)
	r.Get("/history", h.history) // GET /api/quiz/history (auth optional)

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Delete("/delete/{resultID}", h.delete)
	})
}

// ownerFromContext returns the caller's user id, or nil for anonymous
// requests.
func ownerFromContext(r *http.Request) *int64 {
	sc := middleware.GetSessionContext(r.Context())
	if !sc.Authenticated {
		return nil
	}
	id := sc.UserID
	return &id
}

func (h *QuizHandler) save(w http.ResponseWriter, r *http.Request) {
	var req service.SaveResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	result, err := h.quizService.Save(r.Context(), ownerFromContext(r), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Saved",
		"id":      result.ID,
	})
}

func (h *QuizHandler) history(w http.ResponseWriter, r *http.Request) {
	results, err := h.quizService.History(r.Context(), ownerFromContext(r))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, results)
}

func (h *QuizHandler) delete(w http.ResponseWriter, r *http.Request) {
	sc := middleware.GetSessionContext(r.Context())

	resultID, err := strconv.ParseInt(chi.URLParam(r, "resultID"), 10, 64)
	if err != nil {
		common.RespondWithError(w, http.StatusNotFound, "Not found or unauthorized")
		return
	}

	if err := h.quizService.Delete(r.Context(), resultID, sc.UserID); err != nil {
		status := common.HTTPStatusFromError(err)
		message := err.Error()
		if status == http.StatusNotFound {
			// Missing and not-owned are indistinguishable on purpose
			message = "Not found or unauthorized"
		}
		common.RespondWithError(w, status, message)
		return
	}
	common.RespondWithMessage(w, http.StatusOK, "Deleted")
}
