package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Suites partition the key/value area. The group suite is visible to both
// the app and the widget; the app suite is private to the main process.
const (
	SuiteGroup = "group.quotie"
	SuiteApp   = "app"
)

// Setting is a single key/value record in a suite
type Setting struct {
	Suite     string         `gorm:"primaryKey;size:128"`
	Name      string         `gorm:"primaryKey;size:128"`
	Value     datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName specifies the table name for Setting
func (Setting) TableName() string {
	return "settings"
}

// Defaults is a small key/value store scoped to one suite. Values are stored
// as JSON and every write replaces the whole record.
type Defaults struct {
	db    *gorm.DB
	suite string
}

// NewDefaults creates a key/value store for the given suite
func NewDefaults(db *gorm.DB, suite string) *Defaults {
	return &Defaults{db: db, suite: suite}
}

// Suite returns the suite name
func (d *Defaults) Suite() string {
	return d.suite
}

// Get decodes the value stored under key into dst. It reports false when the
// key is absent.
func (d *Defaults) Get(ctx context.Context, key string, dst interface{}) (bool, error) {
	var setting Setting
	err := d.db.WithContext(ctx).
		Where("suite = ? AND name = ?", d.suite, key).
		First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read %s/%s: %w", d.suite, key, err)
	}

	if err := json.Unmarshal(setting.Value, dst); err != nil {
		return false, fmt.Errorf("failed to decode %s/%s: %w", d.suite, key, err)
	}
	return true, nil
}

// Set stores value under key, overwriting any previous value
func (d *Defaults) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s/%s: %w", d.suite, key, err)
	}

	setting := Setting{
		Suite:     d.suite,
		Name:      key,
		Value:     datatypes.JSON(data),
		UpdatedAt: time.Now(),
	}

	err = d.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "suite"}, {Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&setting).Error
	if err != nil {
		return fmt.Errorf("failed to write %s/%s: %w", d.suite, key, err)
	}
	return nil
}

// Remove deletes key. Removing an absent key is not an error.
func (d *Defaults) Remove(ctx context.Context, key string) error {
	err := d.db.WithContext(ctx).
		Where("suite = ? AND name = ?", d.suite, key).
		Delete(&Setting{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove %s/%s: %w", d.suite, key, err)
	}
	return nil
}

// Bool returns the boolean stored under key, or fallback when absent
func (d *Defaults) Bool(ctx context.Context, key string, fallback bool) (bool, error) {
	value := fallback
	if _, err := d.Get(ctx, key, &value); err != nil {
		return fallback, err
	}
	return value, nil
}

// Int returns the integer stored under key, or 0 when absent
func (d *Defaults) Int(ctx context.Context, key string) (int, error) {
	var value int
	if _, err := d.Get(ctx, key, &value); err != nil {
		return 0, err
	}
	return value, nil
}

// Time returns the timestamp stored under key; nil when absent
func (d *Defaults) Time(ctx context.Context, key string) (*time.Time, error) {
	var value time.Time
	ok, err := d.Get(ctx, key, &value)
	if err != nil || !ok {
		return nil, err
	}
	return &value, nil
}
