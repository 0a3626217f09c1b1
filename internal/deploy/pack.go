package deploy

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/flate"
)

// packLevel is the deflate level the device's unzip copes with best.
const packLevel = 1

// ErrDistMissing is returned when the build output directory is absent.
var ErrDistMissing = errors.New("dist directory not found, run the build first")

// PackResult describes a written archive.
type PackResult struct {
	Path         string
	Files        int
	OriginalSize int64
	ZipSize      int64
}

// Ratio is how much smaller the archive is, in percent.
func (r PackResult) Ratio() float64 {
	if r.OriginalSize == 0 {
		return 0
	}
	return float64(r.OriginalSize-r.ZipSize) / float64(r.OriginalSize) * 100
}

// Pack zips every file under distDir into distDir/zipName, skipping the
// archive itself. Entries are deflated at level 1 and never use ZIP64
// headers for files under 4 GiB.
func Pack(distDir, zipName string) (*PackResult, error) {
	info, err := os.Stat(distDir)
	if err != nil || !info.IsDir() {
		return nil, ErrDistMissing
	}

	zipPath := filepath.Join(distDir, zipName)
	out, err := os.Create(zipPath)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", zipPath, err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, packLevel)
	})

	res := &PackResult{Path: zipPath}
	err = filepath.WalkDir(distDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || p == zipPath {
			return nil
		}
		n, err := addFile(zw, distDir, p)
		if err != nil {
			return err
		}
		res.Files++
		res.OriginalSize += n
		return nil
	})
	if err != nil {
		zw.Close()
		return nil, fmt.Errorf("packing %s: %w", distDir, err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finishing %s: %w", zipPath, err)
	}

	stat, err := out.Stat()
	if err != nil {
		return nil, fmt.Errorf("sizing %s: %w", zipPath, err)
	}
	res.ZipSize = stat.Size()
	return res, nil
}

// addFile writes one file into zw under its slash-separated path relative
// to root and returns its size.
func addFile(zw *zip.Writer, root, p string) (int64, error) {
	info, err := os.Stat(p)
	if err != nil {
		return 0, err
	}
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return 0, err
	}

	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return 0, err
	}
	hdr.Name = filepath.ToSlash(rel)
	hdr.Method = zip.Deflate

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return 0, err
	}
	f, err := os.Open(p)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	return io.Copy(w, f)
}
