package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxMessageLen is the maximum number of characters in a private message.
const MaxMessageLen = 500

// Message is a single private message. Rows are append-only;
// IsRead flips false to true when the recipient opens the conversation.
type Message struct {
	ID         uuid.UUID `json:"id"`
	FromUserID uuid.UUID `json:"from_user_id"`
	ToUserID   uuid.UUID `json:"to_user_id"`
	Content    string    `json:"content"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}
