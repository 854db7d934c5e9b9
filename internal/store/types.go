package store

import (
	"context"
	"time"
)

// PhoneLookup resolves a user's stored phone number. found is false when
// the user row does not exist.
type PhoneLookup interface {
	PhoneByUserID(ctx context.Context, userID int64) (phone string, found bool, err error)
}

type LinkRecord struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	UserID    *int64    `json:"userId,omitempty"`
	Phone     string    `json:"phone"`
	Link      string    `json:"link"`
	CreatedAt time.Time `json:"createdAt"`
}

type LinkInsert struct {
	ID     string
	Kind   string
	UserID int64 // 0 when the link was not built from a user lookup
	Phone  string
	Link   string
	Now    time.Time
}
