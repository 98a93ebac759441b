package api

import (
	"net/http"
	"time"

	"career_compass_v2/internal/api/handler"
	"career_compass_v2/internal/api/middleware"
	"career_compass_v2/internal/app/service"
	"career_compass_v2/internal/common"
	"career_compass_v2/internal/common/security"
	"career_compass_v2/internal/platform/config"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	sessionService *service.SessionService,
	quizService *service.QuizService,
	reflectionService *service.ReflectionService,
	tipsService *service.TipsService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger) // Chi's logger
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// The frontend runs on a different origin and authenticates with the
	// session cookie, so CORS must allow credentials.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   config.AppConfig.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Session token verification: the signed token travels in the session
	// cookie rather than the Authorization header.
	r.Use(jwtauth.Verify(security.TokenAuth, tokenFromSessionCookie(sessionService.CookieName())))
	r.Use(middleware.SessionLoader(sessionService))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(api chi.Router) {
		// Auth + account routes
		authHandler := handler.NewAuthHandler(authService, sessionService)
		authHandler.RegisterRoutes(api)

		// Quiz result routes (save/history accept anonymous callers)
		quizHandler := handler.NewQuizHandler(quizService)
		api.Route("/quiz", quizHandler.RegisterRoutes)

		// Reflection notes (authenticated only)
		reflectionHandler := handler.NewReflectionHandler(reflectionService)
		reflectionHandler.RegisterRoutes(api)

		// Strand tips proxy (public, never hard-fails)
		tipsHandler := handler.NewTipsHandler(tipsService)
		tipsHandler.RegisterRoutes(api)

		api.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			common.RespondWithJSON(w, http.StatusOK, map[string]string{
				"status":  "healthy",
				"message": "API is running",
			})
		})
	})

	return r
}

func tokenFromSessionCookie(cookieName string) func(r *http.Request) string {
	return func(r *http.Request) string {
		cookie, err := r.Cookie(cookieName)
		if err != nil {
			return ""
		}
		return cookie.Value
	}
}
