package middleware

import (
	"context"
	"net/http"

	"career_compass_v2/internal/app/service"
	"career_compass_v2/internal/common"
	"career_compass_v2/internal/common/security"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const sessionCtxKey contextKey = "sessionContext"

// SessionContext is the explicit per-request authentication state. It is
// populated once here and passed down through the request context; no
// handler touches ambient session state.
type SessionContext struct {
	Authenticated bool
	UserID        int64
	Username      string
	SessionID     string
}

// SessionLoader resolves the verified cookie token (if any) into a
// SessionContext. The token must both carry a valid signature (checked by
// jwtauth.Verify upstream) and reference a live server-side session record;
// anything short of that leaves the request anonymous rather than failing,
// since several endpoints accept anonymous callers.
func SessionLoader(sessions *service.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sc := SessionContext{}

			token, claims, err := jwtauth.FromContext(r.Context())
			if err == nil && token != nil {
				sc = resolveSession(r.Context(), sessions, claims)
			}

			ctx := context.WithValue(r.Context(), sessionCtxKey, sc)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveSession(ctx context.Context, sessions *service.SessionService, claims map[string]interface{}) SessionContext {
	sessionID, err := security.GetSessionIDFromClaims(claims)
	if err != nil {
		return SessionContext{}
	}
	userID, err := security.GetUserIDFromClaims(claims)
	if err != nil {
		return SessionContext{}
	}

	session, err := sessions.Validate(ctx, sessionID, userID)
	if err != nil {
		return SessionContext{}
	}
	return SessionContext{
		Authenticated: true,
		UserID:        session.UserID,
		Username:      session.Username,
		SessionID:     session.ID,
	}
}

// RequireAuth gates handlers that need an authenticated caller. Rejection
// happens before any resource logic runs and has no side effects.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sc := GetSessionContext(r.Context())
		if !sc.Authenticated {
			common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetSessionContext returns the request's session state; the zero value
// means anonymous.
func GetSessionContext(ctx context.Context) SessionContext {
	sc, ok := ctx.Value(sessionCtxKey).(SessionContext)
	if !ok {
		return SessionContext{}
	}
	return sc
}
