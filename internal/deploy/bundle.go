// Package deploy builds the web bundle the device serves and pushes it to
// the device, either file by file or as one archive.
package deploy

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"slices"
	"strings"
)

// Size limits. MaxBundleSize bounds the archive; MaxEntrySize and
// MaxUncompressedSize bound what it expands to in memory.
const (
	MaxBundleSize       = 100 << 20
	MaxEntrySize        = 64 << 20
	MaxUncompressedSize = 256 << 20
)

var (
	ErrNotZip          = errors.New("bundle must be a .zip file")
	ErrTooLarge        = errors.New("bundle exceeds 100 MiB")
	ErrExpandsTooLarge = errors.New("bundle expands beyond the size limit")
	ErrEmptyBundle     = errors.New("bundle contains no files")
	ErrCorrupt         = errors.New("bundle is not a readable zip archive")
)

// Entry is one file inside a bundle.
type Entry struct {
	Path string
	Size int64

	file *zip.File
}

// Read returns the entry's uncompressed content. Content longer than the
// size the archive declared is rejected.
func (e Entry) Read() ([]byte, error) {
	if e.file == nil {
		return nil, fmt.Errorf("reading %s: entry has no archive", e.Path)
	}
	rc, err := e.file.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", e.Path, err)
	}
	defer rc.Close()

	limit := min(e.Size, MaxEntrySize)
	b, err := io.ReadAll(io.LimitReader(rc, limit+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", e.Path, err)
	}
	if int64(len(b)) > limit {
		return nil, fmt.Errorf("reading %s: %w", e.Path, ErrExpandsTooLarge)
	}
	return b, nil
}

// Bundle is an opened archive with its files sorted by path.
type Bundle struct {
	Entries []Entry

	closer io.Closer
}

// Close releases the underlying file, if any.
func (b *Bundle) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer.Close()
}

// TotalSize is the uncompressed size of every entry.
func (b *Bundle) TotalSize() int64 {
	var n int64
	for _, e := range b.Entries {
		n += e.Size
	}
	return n
}

// OpenBundle opens the archive at p.
func OpenBundle(p string) (*Bundle, error) {
	if err := checkName(p); err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("opening bundle: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("opening bundle: %w", err)
	}

	b, err := ReadBundle(p, f, info.Size())
	if err != nil {
		f.Close()
		return nil, err
	}
	b.closer = f
	return b, nil
}

// ReadBundle reads an archive of size bytes from r. name is only checked
// for the .zip extension.
func ReadBundle(name string, r io.ReaderAt, size int64) (*Bundle, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	if size > MaxBundleSize {
		return nil, ErrTooLarge
	}

	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	b := &Bundle{}
	var total uint64
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/") {
			continue
		}
		clean := path.Clean(strings.TrimPrefix(f.Name, "/"))
		if clean == ".." || strings.HasPrefix(clean, "../") {
			return nil, fmt.Errorf("%w: entry %q escapes the archive root", ErrCorrupt, f.Name)
		}
		if f.UncompressedSize64 > MaxEntrySize {
			return nil, fmt.Errorf("%w: %s", ErrExpandsTooLarge, clean)
		}
		total += f.UncompressedSize64
		if total > MaxUncompressedSize {
			return nil, ErrExpandsTooLarge
		}
		b.Entries = append(b.Entries, Entry{Path: clean, Size: int64(f.UncompressedSize64), file: f})
	}
	if len(b.Entries) == 0 {
		return nil, ErrEmptyBundle
	}
	slices.SortFunc(b.Entries, func(x, y Entry) int {
		return strings.Compare(x.Path, y.Path)
	})
	return b, nil
}

func checkName(name string) error {
	if !strings.EqualFold(path.Ext(name), ".zip") {
		return ErrNotZip
	}
	return nil
}
