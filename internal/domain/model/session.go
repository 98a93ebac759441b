package model

import (
	"time"
)

// Session is the server-side record backing one login. The cookie carries a
// signed token that references this record by ID; deleting the record (on
// logout or TTL expiry) invalidates the cookie immediately.
type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
