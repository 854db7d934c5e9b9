package util

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// NewLinkID returns "lnk_" followed by a ULID, so ids sort by issue time.
func NewLinkID() string {
	t := time.Now().UTC()
	return "lnk_" + ulid.MustNew(ulid.Timestamp(t), rand.Reader).String()
}

func NowUTC() time.Time {
	return time.Now().UTC()
}
