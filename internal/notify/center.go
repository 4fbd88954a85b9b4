// Package notify stores scheduled local notifications and delivers them
// when they come due.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/graffic/quotie/internal/nudge"
	"github.com/graffic/quotie/internal/storage"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Keys in the app suite. The channel key records whether a delivery channel
// existed when a permission request was answered.
const (
	KeyAuthorizationStatus  = "notifications.authorizationStatus"
	KeyAuthorizationChannel = "notifications.authorizationChannel"
)

// PendingNotification is a scheduled, not yet delivered notification
type PendingNotification struct {
	ID        string    `gorm:"primaryKey;size:128"`
	FireAt    time.Time `gorm:"index;not null"`
	Title     string    `gorm:"not null"`
	Body      string    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for PendingNotification
func (PendingNotification) TableName() string {
	return "pending_notifications"
}

// Models returns the tables this package needs migrated
func Models() []interface{} {
	return []interface{}{&PendingNotification{}}
}

// Center is a nudge.NotificationCenter backed by the database
type Center struct {
	db         *gorm.DB
	defaults   *storage.Defaults
	canDeliver bool
}

var _ nudge.NotificationCenter = (*Center)(nil)

// NewCenter creates a center. canDeliver tells whether a delivery channel
// is configured; permission requests are granted only when it is.
func NewCenter(db *gorm.DB, defaults *storage.Defaults, canDeliver bool) *Center {
	return &Center{db: db, defaults: defaults, canDeliver: canDeliver}
}

// AuthorizationStatus implements nudge.NotificationCenter. A denial that
// was only due to a missing delivery channel reads as not determined once a
// channel is configured, so the next schedule asks again.
func (c *Center) AuthorizationStatus(ctx context.Context) (nudge.AuthorizationStatus, error) {
	var status nudge.AuthorizationStatus
	found, err := c.defaults.Get(ctx, KeyAuthorizationStatus, &status)
	if err != nil {
		return "", err
	}
	if !found {
		return nudge.StatusNotDetermined, nil
	}

	if status == nudge.StatusDenied && c.canDeliver {
		var hadChannel bool
		recorded, err := c.defaults.Get(ctx, KeyAuthorizationChannel, &hadChannel)
		if err != nil {
			return "", err
		}
		if recorded && !hadChannel {
			return nudge.StatusNotDetermined, nil
		}
	}
	return status, nil
}

// RequestAuthorization implements nudge.NotificationCenter. The answer is
// remembered together with the delivery channel it was based on.
func (c *Center) RequestAuthorization(ctx context.Context) (bool, error) {
	status := nudge.StatusDenied
	if c.canDeliver {
		status = nudge.StatusAuthorized
	}
	if err := c.defaults.Set(ctx, KeyAuthorizationStatus, status); err != nil {
		return false, err
	}
	if err := c.defaults.Set(ctx, KeyAuthorizationChannel, c.canDeliver); err != nil {
		return false, err
	}
	return status == nudge.StatusAuthorized, nil
}

// SetAuthorizationStatus overrides the remembered permission. An explicit
// status sticks regardless of the delivery channel.
func (c *Center) SetAuthorizationStatus(ctx context.Context, status nudge.AuthorizationStatus) error {
	if err := c.defaults.Set(ctx, KeyAuthorizationStatus, status); err != nil {
		return err
	}
	return c.defaults.Remove(ctx, KeyAuthorizationChannel)
}

// Schedule implements nudge.NotificationCenter
func (c *Center) Schedule(ctx context.Context, req nudge.Request) error {
	n := PendingNotification{
		ID:     req.ID,
		FireAt: req.FireAt.UTC(),
		Title:  req.Title,
		Body:   req.Body,
	}
	err := c.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"fire_at", "title", "body", "updated_at"}),
		}).
		Create(&n).Error
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", req.ID, err)
	}
	return nil
}

// Cancel implements nudge.NotificationCenter
func (c *Center) Cancel(ctx context.Context, id string) error {
	err := c.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&PendingNotification{}).Error
	if err != nil {
		return fmt.Errorf("failed to cancel %s: %w", id, err)
	}
	return nil
}

// Pending returns every scheduled notification ordered by fire time
func (c *Center) Pending(ctx context.Context) ([]PendingNotification, error) {
	var pending []PendingNotification
	err := c.db.WithContext(ctx).
		Order("fire_at ASC").
		Find(&pending).Error
	return pending, err
}

// Due returns the notifications whose fire time is not after now
func (c *Center) Due(ctx context.Context, now time.Time) ([]PendingNotification, error) {
	var due []PendingNotification
	err := c.db.WithContext(ctx).
		Where("fire_at <= ?", now.UTC()).
		Order("fire_at ASC").
		Find(&due).Error
	return due, err
}

// delivered removes n unless it was rescheduled past now while it was
// being sent
func (c *Center) delivered(ctx context.Context, n PendingNotification, now time.Time) error {
	return c.db.WithContext(ctx).
		Where("id = ? AND fire_at <= ?", n.ID, now.UTC()).
		Delete(&PendingNotification{}).Error
}
