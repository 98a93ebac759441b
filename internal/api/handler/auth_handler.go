package handler

import (
	"encoding/json"
	"net/http"

	"career_compass_v2/internal/api/middleware"
	"career_compass_v2/internal/app/service"
	"career_compass_v2/internal/common"

	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	authService    *service.AuthService
	sessionService *service.SessionService
}

func NewAuthHandler(authService *service.AuthService, sessionService *service.SessionService) *AuthHandler {
	return &AuthHandler{authService: authService, sessionService: sessionService}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)
	r.Get("/check-auth", h.checkAuth)

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Post("/change-password", h.changePassword)
	})
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	user, err := h.authService.Register(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	// Auto-login after register
	token, err := h.sessionService.Start(r.Context(), user)
	if err != nil {
		common.RespondWithError(w, http.StatusInternalServerError, "Registered but failed to start session")
		return
	}
	http.SetCookie(w, h.sessionService.Cookie(token))

	common.RespondWithJSON(w, http.StatusCreated, map[string]string{
		"message":  "Registered successfully",
		"username": user.Username,
	})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	user, err := h.authService.Login(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), "Invalid credentials")
		return
	}

	token, err := h.sessionService.Start(r.Context(), user)
	if err != nil {
		common.RespondWithError(w, http.StatusInternalServerError, "Failed to start session")
		return
	}
	http.SetCookie(w, h.sessionService.Cookie(token))

	common.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message":  "Login successful",
		"username": user.Username,
	})
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	sc := middleware.GetSessionContext(r.Context())
	if sc.Authenticated {
		// Best effort: the cookie is cleared regardless
		_ = h.sessionService.End(r.Context(), sc.SessionID)
	}
	http.SetCookie(w, h.sessionService.ExpiredCookie())
	common.RespondWithMessage(w, http.StatusOK, "Logged out")
}

func (h *AuthHandler) checkAuth(w http.ResponseWriter, r *http.Request) {
	sc := middleware.GetSessionContext(r.Context())
	if !sc.Authenticated {
		common.RespondWithJSON(w, http.StatusUnauthorized, map[string]interface{}{
			"authenticated": false,
		})
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"authenticated": true,
		"username":      sc.Username,
	})
}

func (h *AuthHandler) changePassword(w http.ResponseWriter, r *http.Request) {
	sc := middleware.GetSessionContext(r.Context())

	var req service.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	if err := h.authService.ChangePassword(r.Context(), sc.UserID, req); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithMessage(w, http.StatusOK, "Password changed successfully")
}
