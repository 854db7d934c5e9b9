// Package wa builds WhatsApp click-to-chat links.
//
// A link is https://wa.me/<digits>?text=<form-encoded message>. Opening it
// starts a chat with the message pre-filled; nothing is sent server side.
package wa

import (
	"net/url"
	"strings"

	"walink/internal/phone"
)

const DefaultBaseURL = "https://wa.me/"

type Builder struct {
	BaseURL string
	Phones  phone.Normalizer
}

// Link normalizes rawPhone and appends the form-encoded message. It never
// fails: an empty message gives an empty text value.
func (b Builder) Link(rawPhone, message string) string {
	return b.base() + b.Phones.Normalize(rawPhone) + "?text=" + url.QueryEscape(message)
}

func (b Builder) base() string {
	base := strings.TrimSpace(b.BaseURL)
	if base == "" {
		return DefaultBaseURL
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base
}
