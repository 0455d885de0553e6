// Package push carries notification events to live client sessions.
// Delivery is best-effort: persistence never waits on, or fails because
// of, the transport.
package push

import "context"

// Event is the wire shape of a pushed notification.
type Event struct {
	UserID  string `json:"userId"`
	Kind    string `json:"kind"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Payload any    `json:"payload,omitempty"`
}

// Deliverer pushes an event toward a user's live sessions.
type Deliverer interface {
	Deliver(ctx context.Context, event Event) error
}

// NopDeliverer drops every event; used when no broker is configured.
type NopDeliverer struct{}

func (NopDeliverer) Deliver(context.Context, Event) error { return nil }
