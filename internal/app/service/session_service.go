package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"career_compass_v2/internal/common"
	"career_compass_v2/internal/common/security"
	"career_compass_v2/internal/domain/model"
	"career_compass_v2/internal/domain/repository"

	"github.com/google/uuid"
)

// SessionService manages the session lifecycle: NoSession -> Active ->
// (Expired | LoggedOut). Expiry is a fixed TTL from creation; there is no
// sliding renewal.
type SessionService struct {
	sessions     repository.SessionRepository
	ttl          time.Duration
	cookieName   string
	cookieSecure bool
}

func NewSessionService(sessions repository.SessionRepository, ttl time.Duration, cookieName string, cookieSecure bool) *SessionService {
	return &SessionService{
		sessions:     sessions,
		ttl:          ttl,
		cookieName:   cookieName,
		cookieSecure: cookieSecure,
	}
}

// Start creates a session bound to the user and returns the signed cookie
// token for it.
func (s *SessionService) Start(ctx context.Context, user *model.User) (string, error) {
	now := time.Now()
	session := &model.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Username:  user.Username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}
	token, err := security.EncodeSessionToken(session.ID, user.ID, user.Username, s.ttl)
	if err != nil {
		return "", fmt.Errorf("failed to encode session token: %w", err)
	}
	return token, nil
}

// Validate checks that the session referenced by a verified token still
// exists, is bound to the same user, and has not expired. Any mismatch is
// ErrUnauthorized; a signed token alone is never sufficient.
func (s *SessionService) Validate(ctx context.Context, sessionID string, userID int64) (*model.Session, error) {
	session, err := s.sessions.Find(ctx, sessionID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session.UserID != userID {
		return nil, common.ErrUnauthorized
	}
	if time.Now().After(session.ExpiresAt) {
		_ = s.sessions.Delete(ctx, sessionID)
		return nil, common.ErrUnauthorized
	}
	return session, nil
}

// End invalidates a session immediately regardless of its expiry state.
// Ending an already-gone session is not an error.
func (s *SessionService) End(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Cookie wraps a session token in the transport cookie: HTTP-only and
// same-site restricted so scripts and cross-site posts cannot use it,
// secure when the deployment serves HTTPS.
func (s *SessionService) Cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     s.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredCookie returns a cookie that instructs the browser to drop the
// session cookie.
func (s *SessionService) ExpiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

// CookieName is the name the router's token finder looks up on each request.
func (s *SessionService) CookieName() string {
	return s.cookieName
}
