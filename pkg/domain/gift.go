package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxGiftMessageLen bounds the optional note attached to a gift.
const MaxGiftMessageLen = 200

// Gift is sent from one citizen to another. Only the recipient may delete it.
type Gift struct {
	ID         uuid.UUID `json:"id"`
	FromUserID uuid.UUID `json:"from_user_id"`
	ToUserID   uuid.UUID `json:"to_user_id"`
	GiftType   string    `json:"gift_type"`
	Message    string    `json:"message,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// GiftEmojis is the fixed gift table.
var GiftEmojis = map[string]string{
	"coffee":  "☕",
	"flowers": "💐",
	"heart":   "❤",
	"sparkle": "✨",
	"sun":     "☀",
	"music":   "🎵",
}

// GenericGiftEmoji is shown for gift types missing from GiftEmojis.
const GenericGiftEmoji = "🎁"

// GiftEmoji returns the glyph for a gift type, falling back to GenericGiftEmoji.
func GiftEmoji(giftType string) string {
	if e, ok := GiftEmojis[giftType]; ok {
		return e
	}
	return GenericGiftEmoji
}

// ValidGiftType returns true if giftType is in the gift table.
func ValidGiftType(giftType string) bool {
	_, ok := GiftEmojis[giftType]
	return ok
}
