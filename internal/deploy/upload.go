package deploy

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/molinar-iot/setup-dashboard/internal/metrics"
)

// DefaultPause is the delay between two file uploads.
const DefaultPause = 100 * time.Millisecond

// FileUploader writes one file onto the device. device.Client satisfies it.
type FileUploader interface {
	UploadFile(ctx context.Context, host, path string, content []byte) error
}

// ProgressFunc reports done of total files with a short status line.
type ProgressFunc func(done, total int, message string)

// Uploader pushes bundle entries to a device one at a time.
type Uploader struct {
	Device   FileUploader
	Host     string
	Pause    time.Duration
	Progress ProgressFunc
}

// FileResult is the outcome for one entry. Err is nil on success.
type FileResult struct {
	Path string
	Size int64
	Err  error
}

// Result summarises an upload run.
type Result struct {
	Uploaded int
	Failed   int
	Files    []FileResult
}

// Upload sends every entry in order. A failed file is counted and the run
// continues; only a cancelled ctx stops it early, returning what was done
// so far together with the context error.
func (u *Uploader) Upload(ctx context.Context, entries []Entry) (*Result, error) {
	res := &Result{Files: make([]FileResult, 0, len(entries))}
	total := len(entries)

	for i, e := range entries {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		u.report(res.Uploaded, total, "Uploading: "+e.Path)

		err := u.uploadOne(ctx, e)
		res.Files = append(res.Files, FileResult{Path: e.Path, Size: e.Size, Err: err})
		if err != nil {
			res.Failed++
			metrics.IncUploadedFile("failed")
			slog.Warn("bundle file upload failed",
				slog.String("path", e.Path),
				slog.Any("error", err),
			)
			u.report(res.Uploaded, total, "Failed: "+e.Path)
			continue
		}

		res.Uploaded++
		metrics.IncUploadedFile("ok")
		u.report(res.Uploaded, total, "Uploaded: "+e.Path)

		if i < total-1 && u.Pause > 0 {
			select {
			case <-ctx.Done():
				return res, ctx.Err()
			case <-time.After(u.Pause):
			}
		}
	}
	return res, nil
}

func (u *Uploader) uploadOne(ctx context.Context, e Entry) error {
	content, err := e.Read()
	if err != nil {
		return err
	}
	if err := u.Device.UploadFile(ctx, u.Host, e.Path, content); err != nil {
		return fmt.Errorf("uploading %s: %w", e.Path, err)
	}
	return nil
}

func (u *Uploader) report(done, total int, message string) {
	if u.Progress != nil {
		u.Progress(done, total, message)
	}
}
