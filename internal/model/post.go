package model

import (
	"time"

	"github.com/google/uuid"
)

// Post is a journal entry for a delivered post.
type Post struct {
	ID          uuid.UUID
	UserID      int64
	Topic       string
	Temperature float64
	TextLength  int
	Tokens      int
	HasImage    bool
	CreatedAt   time.Time
}
