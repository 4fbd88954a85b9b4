// Package widget is the read-only widget side: it turns the shared slots
// into a timeline entry and listens for reload signals from the app.
package widget

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/graffic/quotie/internal/quotes"
)

// FileReloader signals the widget by rewriting a small file in the shared
// directory. The widget watches the file.
type FileReloader struct {
	file  *quotes.FileStorage
	clock func() time.Time
}

// NewFileReloader creates a reloader writing the signal file at path
func NewFileReloader(path string, clock func() time.Time) *FileReloader {
	if clock == nil {
		clock = time.Now
	}
	return &FileReloader{file: quotes.NewFileStorage(path), clock: clock}
}

// Path returns the signal file location
func (r *FileReloader) Path() string {
	return r.file.Path()
}

// ReloadAllTimelines implements shared.Reloader
func (r *FileReloader) ReloadAllTimelines(ctx context.Context) error {
	stamp := r.clock().UTC().Format(time.RFC3339Nano) + "\n"
	if err := r.file.Write(ctx, []byte(stamp)); err != nil {
		return fmt.Errorf("failed to write reload signal: %w", err)
	}
	return nil
}

// LastReload returns when the signal was last fired. ok is false when it
// never was.
func (r *FileReloader) LastReload() (at time.Time, ok bool, err error) {
	info, err := os.Stat(r.file.Path())
	if err != nil {
		if quotes.IsNotExist(err) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, err
	}
	return info.ModTime(), true, nil
}
