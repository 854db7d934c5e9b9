// Package templates renders the built-in confirmation messages.
package templates

import (
	"bytes"
	"errors"
	"fmt"
	"text/template"

	"walink/internal/domain"
)

const (
	OrderConfirmation        = "order_confirmation"
	SubscriptionConfirmation = "subscription_confirmation"
)

var ErrUnknownTemplate = errors.New("templates: unknown template")

// Boilerplate is the static text shared by every message.
type Boilerplate struct {
	Brand          string
	SupportPhone   string
	SupportEmail   string
	CurrencySymbol string
}

const orderConfirmationText = `🎉 *Order Confirmed!* 🎉

Hello! Your order has been confirmed.

*Order Details:*
Plan: {{.PlanName}}
Duration: {{.StartDate}} to {{.EndDate}}
Amount: {{.CurrencySymbol}}{{.Amount}}

Thank you for choosing {{.Brand}}!
For any queries, contact us at {{.SupportPhone}}.`

const subscriptionConfirmationText = `🎉 *Subscription Confirmed!* 🎉

*Plan:* {{.PlanName}}
*Duration:* {{.StartDate}} to {{.EndDate}}
*Schedule:* {{.Schedule}}
*Delivery Time:* {{.DeliveryTime}}
*Amount Paid:* {{.CurrencySymbol}}{{.Amount}}

Thank you for subscribing to {{.Brand}}! Your meals will be delivered as per schedule.

For any queries, please contact us at {{.SupportPhone}} or {{.SupportEmail}}`

// Set holds the parsed templates. Safe for concurrent use.
type Set struct {
	base Boilerplate
	tmpl *template.Template
}

func New(base Boilerplate) *Set {
	t := template.New("messages")
	template.Must(t.New(OrderConfirmation).Parse(orderConfirmationText))
	template.Must(t.New(SubscriptionConfirmation).Parse(subscriptionConfirmationText))
	return &Set{base: base, tmpl: t}
}

func (s *Set) OrderConfirmation(d domain.OrderDetails) string {
	out, _ := s.execute(OrderConfirmation, struct {
		domain.OrderDetails
		Boilerplate
	}{d, s.base})
	return out
}

func (s *Set) SubscriptionConfirmation(d domain.SubscriptionDetails) string {
	out, _ := s.execute(SubscriptionConfirmation, struct {
		domain.SubscriptionDetails
		Boilerplate
	}{d, s.base})
	return out
}

// Render renders a template by name from loosely typed fields keyed by the
// JSON names of the details records (plan_name, start_date, ...). Unknown
// keys are ignored and missing ones render empty.
func (s *Set) Render(name string, fields map[string]string) (string, error) {
	switch name {
	case OrderConfirmation:
		return s.OrderConfirmation(domain.OrderDetails{
			PlanName:  fields["plan_name"],
			StartDate: fields["start_date"],
			EndDate:   fields["end_date"],
			Amount:    fields["amount"],
		}), nil
	case SubscriptionConfirmation:
		return s.SubscriptionConfirmation(domain.SubscriptionDetails{
			PlanName:     fields["plan_name"],
			StartDate:    fields["start_date"],
			EndDate:      fields["end_date"],
			Schedule:     fields["schedule"],
			DeliveryTime: fields["delivery_time"],
			Amount:       fields["amount"],
		}), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
}

// execute only fails on a broken template, which New rules out.
func (s *Set) execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("templates: execute %s: %w", name, err)
	}
	return buf.String(), nil
}
