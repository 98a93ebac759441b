package security

import (
	"errors"
	"strconv"
	"time"

	"career_compass_v2/internal/platform/config"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

var TokenAuth *jwtauth.JWTAuth

func InitSessionTokens() {
	TokenAuth = jwtauth.New("HS256", config.AppConfig.SessionKey, nil)
}

// EncodeSessionToken signs the cookie payload for one session. The token by
// itself is not sufficient to authenticate: validation also requires the
// matching server-side session record to still exist (see SessionService).
func EncodeSessionToken(sessionID string, userID int64, username string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sid":      sessionID,
		"user_id":  strconv.FormatInt(userID, 10),
		"username": username,
		"exp":      time.Now().Add(ttl).Unix(),
		"iat":      time.Now().Unix(),
	}
	_, tokenString, err := TokenAuth.Encode(claims)
	return tokenString, err
}

// Claim extraction helpers used by the session middleware. user_id is carried
// as a string claim so it survives the JSON number round trip intact.

func GetSessionIDFromClaims(claims jwt.MapClaims) (string, error) {
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", errors.New("sid claim is missing or not a string")
	}
	return sid, nil
}

func GetUserIDFromClaims(claims jwt.MapClaims) (int64, error) {
	raw, ok := claims["user_id"].(string)
	if !ok {
		return 0, errors.New("user_id claim is missing or not a string")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.New("user_id claim is not a valid integer")
	}
	return id, nil
}

func GetUsernameFromClaims(claims jwt.MapClaims) (string, error) {
	username, ok := claims["username"].(string)
	if !ok {
		return "", errors.New("username claim is missing or not a string")
	}
	return username, nil
}
