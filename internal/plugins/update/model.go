// Package update is the dashboard's update manager: the operator uploads
// the web bundle zip and the dashboard writes its files onto the device.
package update

import (
	"errors"

	"github.com/molinar-iot/setup-dashboard/internal/i18n"
)

// PushInput is one upload request passed from handler to service.
type PushInput struct {
	Include []string
	Exclude []string
}

// UpdateError is a rejected bundle with the message key the page shows.
type UpdateError struct {
	Key   i18n.Key
	Cause error
}

func (e *UpdateError) Error() string {
	if e.Cause != nil {
		return string(e.Key) + ": " + e.Cause.Error()
	}
	return string(e.Key)
}

func (e *UpdateError) Unwrap() error {
	return e.Cause
}

// ErrorKey returns the message key for err, or UpdateErrCorrupt.
func ErrorKey(err error) i18n.Key {
	var ue *UpdateError
	if errors.As(err, &ue) {
		return ue.Key
	}
	return i18n.UpdateErrCorrupt
}

// --- View data ---

// PageView is the data the update page renders.
type PageView struct {
	Error   string
	Summary string
	Failed  bool
	Include string
	Exclude string
	Files   []FileView
}

// FileView is one row of the upload report.
type FileView struct {
	Path string
	Size string
	Err  string
}
