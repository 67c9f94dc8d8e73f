package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxBioLen is the maximum number of characters allowed in a profile bio.
const MaxBioLen = 500

// Profile represents an Orkadia citizen's public profile row.
// Points only ever grow; grants and invite rewards are the sole writers.
type Profile struct {
	ID              uuid.UUID `json:"id"`
	Username        string    `json:"username"`
	DisplayName     string    `json:"display_name,omitempty"`
	Bio             string    `json:"bio,omitempty"`
	AvatarURL       string    `json:"avatar_url,omitempty"`
	HouseTheme      string    `json:"house_theme,omitempty"`
	HouseBackground string    `json:"house_background,omitempty"`
	HouseMusic      string    `json:"house_music,omitempty"`
	Points          int       `json:"points"`
	City            string    `json:"city,omitempty"`
	Country         string    `json:"country,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// ProfileUpdate carries the editable profile fields. Nil fields are left untouched.
type ProfileUpdate struct {
	Username        *string `json:"username,omitempty"`
	DisplayName     *string `json:"display_name,omitempty"`
	Bio             *string `json:"bio,omitempty"`
	AvatarURL       *string `json:"avatar_url,omitempty"`
	HouseTheme      *string `json:"house_theme,omitempty"`
	HouseBackground *string `json:"house_background,omitempty"`
	HouseMusic      *string `json:"house_music,omitempty"`
	City            *string `json:"city,omitempty"`
	Country         *string `json:"country,omitempty"`
}

// NormalizeUsername lowercases v and strips every character outside [a-z0-9_].
// "My_Name!1" becomes "my_name1".
func NormalizeUsername(v string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(v) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
