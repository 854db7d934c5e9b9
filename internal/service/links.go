package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"walink/internal/domain"
	"walink/internal/observability"
	"walink/internal/store"
	"walink/internal/templates"
	"walink/internal/util"
	"walink/internal/wa"
)

// ErrPhoneNotFound means the user does not exist or has no phone on file.
var ErrPhoneNotFound = errors.New("user phone not found")

type UserLookup interface {
	PhoneByUserID(ctx context.Context, userID int64) (phone string, found bool, err error)
}

type LinkLog interface {
	InsertLink(ctx context.Context, in store.LinkInsert) error
	GetLink(ctx context.Context, id string) (store.LinkRecord, bool, error)
}

type EventPublisher interface {
	PublishLinkIssued(ctx context.Context, ev domain.LinkIssued) error
}

type PhoneValidator interface {
	Valid(canonical string) bool
}

// LinkService issues click-to-chat links. Users, Builder and Templates are
// required; Log, Events and Validator are optional.
type LinkService struct {
	Users     UserLookup
	Builder   wa.Builder
	Templates *templates.Set

	Log       LinkLog
	Events    EventPublisher
	Validator PhoneValidator

	IDGen func() string
	Now   func() time.Time
}

// Link builds a link for an arbitrary message. It never fails.
func (s *LinkService) Link(ctx context.Context, phone, message string) domain.Link {
	return s.issue(ctx, domain.KindPlain, 0, phone, message)
}

// OrderConfirmationLink looks up the user's phone and builds the order
// confirmation link. It returns ErrPhoneNotFound when there is no user row
// or the stored phone is blank; lookup failures are returned wrapped.
func (s *LinkService) OrderConfirmationLink(ctx context.Context, userID int64, order domain.OrderDetails) (domain.Link, error) {
	phone, found, err := s.Users.PhoneByUserID(ctx, userID)
	if err != nil {
		observability.PhoneLookups.WithLabelValues("error").Inc()
		return domain.Link{}, fmt.Errorf("lookup phone for user %d: %w", userID, err)
	}
	if !found || strings.TrimSpace(phone) == "" {
		observability.PhoneLookups.WithLabelValues("not_found").Inc()
		return domain.Link{}, ErrPhoneNotFound
	}
	observability.PhoneLookups.WithLabelValues("found").Inc()

	msg := s.Templates.OrderConfirmation(order)
	return s.issue(ctx, domain.KindOrderConfirmation, userID, phone, msg), nil
}

// SubscriptionConfirmationLink trusts the caller-supplied phone and never
// fails.
func (s *LinkService) SubscriptionConfirmationLink(ctx context.Context, phone string, sub domain.SubscriptionDetails) domain.Link {
	msg := s.Templates.SubscriptionConfirmation(sub)
	return s.issue(ctx, domain.KindSubscriptionConfirmation, 0, phone, msg)
}

// GetLink returns an issued link from the log. found is false when no log
// is configured.
func (s *LinkService) GetLink(ctx context.Context, id string) (store.LinkRecord, bool, error) {
	if s.Log == nil {
		return store.LinkRecord{}, false, nil
	}
	return s.Log.GetLink(ctx, id)
}

// issue builds the link and records it. Recording is best effort: the link
// is returned even when the log or the event publish fails.
func (s *LinkService) issue(ctx context.Context, kind domain.LinkKind, userID int64, rawPhone, message string) domain.Link {
	canonical := s.Builder.Phones.Normalize(rawPhone)
	link := domain.Link{
		ID:    s.newID(),
		Kind:  kind,
		Phone: canonical,
		URL:   s.Builder.Link(canonical, message),
	}
	if s.Validator != nil {
		link.PhoneValid = s.Validator.Valid(canonical)
		if !link.PhoneValid {
			observability.InvalidPhones.WithLabelValues(string(kind)).Inc()
			slog.Warn("link issued for invalid phone", "link_id", link.ID, "kind", kind, "phone", canonical)
		}
	}
	observability.LinksIssued.WithLabelValues(string(kind)).Inc()

	now := s.now()
	if s.Log != nil {
		err := s.Log.InsertLink(ctx, store.LinkInsert{
			ID: link.ID, Kind: string(kind), UserID: userID,
			Phone: canonical, Link: link.URL, Now: now,
		})
		if err != nil {
			observability.LinkLogWrites.WithLabelValues("error").Inc()
			slog.Error("link log insert failed", "err", err, "link_id", link.ID, "kind", kind)
		} else {
			observability.LinkLogWrites.WithLabelValues("ok").Inc()
		}
	}
	if s.Events != nil {
		err := s.Events.PublishLinkIssued(ctx, domain.LinkIssued{
			ID: link.ID, Kind: kind, UserID: userID, Phone: canonical, IssuedAt: now,
		})
		if err != nil {
			observability.LinkEvents.WithLabelValues("error").Inc()
			slog.Error("link event publish failed", "err", err, "link_id", link.ID, "kind", kind)
		} else {
			observability.LinkEvents.WithLabelValues("ok").Inc()
		}
	}
	return link
}

func (s *LinkService) newID() string {
	if s.IDGen != nil {
		return s.IDGen()
	}
	return util.NewLinkID()
}

func (s *LinkService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return util.NowUTC()
}
