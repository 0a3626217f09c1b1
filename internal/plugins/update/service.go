package update

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/molinar-iot/setup-dashboard/internal/deploy"
	"github.com/molinar-iot/setup-dashboard/internal/i18n"
	"github.com/molinar-iot/setup-dashboard/internal/session"
)

// UpdateService pushes a bundle to the session's device.
type UpdateService interface {
	Push(ctx context.Context, sess *session.Session, name string, r io.ReaderAt, size int64, input PushInput) (*deploy.Result, error)
}

type updateService struct {
	device deploy.FileUploader
	pause  time.Duration
}

// NewUpdateService creates the update service. pause is the delay between
// two files.
func NewUpdateService(d deploy.FileUploader, pause time.Duration) UpdateService {
	return &updateService{device: d, pause: pause}
}

// Push opens the archive, applies the filters and uploads what is left to
// the host the session resolves to. Bundle problems return an
// *UpdateError; per-file failures are reported in the result.
func (s *updateService) Push(ctx context.Context, sess *session.Session, name string, r io.ReaderAt, size int64, input PushInput) (*deploy.Result, error) {
	bundle, err := deploy.ReadBundle(name, r, size)
	if err != nil {
		return nil, &UpdateError{Key: bundleErrorKey(err), Cause: err}
	}

	entries, err := deploy.Select(bundle.Entries, input.Include, input.Exclude)
	if err != nil {
		return nil, &UpdateError{Key: i18n.UpdateErrNoSelection, Cause: err}
	}
	if len(entries) == 0 {
		return nil, &UpdateError{Key: i18n.UpdateErrNoSelection}
	}

	host, err := sess.HostURL(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving device host: %w", err)
	}

	slog.Info("pushing bundle",
		slog.String("client_id", sess.ClientID()),
		slog.String("host", host),
		slog.Int("files", len(entries)),
	)
	u := &deploy.Uploader{Device: s.device, Host: host, Pause: s.pause}
	return u.Upload(ctx, entries)
}

func bundleErrorKey(err error) i18n.Key {
	switch {
	case errors.Is(err, deploy.ErrNotZip):
		return i18n.UpdateErrNotZip
	case errors.Is(err, deploy.ErrTooLarge):
		return i18n.UpdateErrTooLarge
	case errors.Is(err, deploy.ErrExpandsTooLarge):
		return i18n.UpdateErrExpands
	case errors.Is(err, deploy.ErrEmptyBundle):
		return i18n.UpdateErrEmpty
	default:
		return i18n.UpdateErrCorrupt
	}
}
