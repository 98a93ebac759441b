package model

import (
	"time"
)

// MaxResultDataLen bounds the opaque quiz payload; mirrors the CHECK
// constraint on quiz_results.result_data.
const MaxResultDataLen = 4000

// QuizResult is an append-only record of one quiz outcome. OwnerID is nil
// for anonymous submissions and never changes after creation.
type QuizResult struct {
	ID         int64     `json:"id"`
	OwnerID    *int64    `json:"owner_id,omitempty"`
	ResultData string    `json:"result_data"`
	CreatedAt  time.Time `json:"created_at"`
}
