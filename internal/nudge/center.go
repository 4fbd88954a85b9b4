// Package nudge schedules Memmi's evening reminder to add a quote.
package nudge

import (
	"context"
	"time"
)

// AuthorizationStatus is the user's answer to the notification prompt
type AuthorizationStatus string

const (
	StatusNotDetermined AuthorizationStatus = "not_determined"
	StatusAuthorized    AuthorizationStatus = "authorized"
	StatusDenied        AuthorizationStatus = "denied"
)

// Request is a single local notification
type Request struct {
	ID     string
	FireAt time.Time
	Title  string
	Body   string
}

// NotificationCenter schedules local notifications
type NotificationCenter interface {
	AuthorizationStatus(ctx context.Context) (AuthorizationStatus, error)
	// RequestAuthorization prompts the user and reports whether they agreed.
	RequestAuthorization(ctx context.Context) (bool, error)
	// Schedule adds req, replacing any pending request with the same ID.
	Schedule(ctx context.Context, req Request) error
	// Cancel removes the pending request with id. Missing ids are ignored.
	Cancel(ctx context.Context, id string) error
}
