package domain

import (
	"errors"
	"strings"
	"time"
)

type LinkKind string

const (
	KindPlain                    LinkKind = "plain"
	KindOrderConfirmation        LinkKind = "order_confirmation"
	KindSubscriptionConfirmation LinkKind = "subscription_confirmation"
)

// OrderDetails are display values, rendered verbatim.
type OrderDetails struct {
	PlanName  string `json:"plan_name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Amount    string `json:"amount"`
}

type SubscriptionDetails struct {
	PlanName     string `json:"plan_name"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Schedule     string `json:"schedule"`
	DeliveryTime string `json:"delivery_time"`
	Amount       string `json:"amount"`
}

type CreateLinkRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

func (r CreateLinkRequest) Validate() error {
	if strings.TrimSpace(r.Phone) == "" {
		return ErrMissingFields
	}
	return nil
}

type OrderConfirmationRequest struct {
	UserID int64        `json:"userId"`
	Order  OrderDetails `json:"order"`
}

func (r OrderConfirmationRequest) Validate() error {
	if r.UserID <= 0 {
		return ErrMissingFields
	}
	return nil
}

type SubscriptionConfirmationRequest struct {
	Phone        string              `json:"phone"`
	Subscription SubscriptionDetails `json:"subscription"`
}

func (r SubscriptionConfirmationRequest) Validate() error {
	if strings.TrimSpace(r.Phone) == "" {
		return ErrMissingFields
	}
	return nil
}

var ErrMissingFields = errors.New("missing required fields")

// Link is an issued click-to-chat link.
type Link struct {
	ID         string   `json:"id"`
	Kind       LinkKind `json:"kind"`
	Phone      string   `json:"phone"`
	PhoneValid bool     `json:"phoneValid"`
	URL        string   `json:"link"`
}

// LinkIssued is published for downstream consumers. It never carries the
// message text.
type LinkIssued struct {
	ID       string    `json:"id"`
	Kind     LinkKind  `json:"kind"`
	UserID   int64     `json:"userId,omitempty"`
	Phone    string    `json:"phone"`
	IssuedAt time.Time `json:"issuedAt"`
}
