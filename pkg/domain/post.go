package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxPostLen bounds the content of a wall post.
const MaxPostLen = 2000

// Post is a wall post authored by a citizen.
type Post struct {
	ID        uuid.UUID `json:"id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
