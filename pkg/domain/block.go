package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserBlock records that BlockerID blocked BlockedID. The pair is unique.
type UserBlock struct {
	ID        uuid.UUID `json:"id"`
	BlockerID uuid.UUID `json:"blocker_id"`
	BlockedID uuid.UUID `json:"blocked_id"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
