// Package imagestore keeps uploaded image files on disk and computes the
// public URLs records are served with. Each stored file is owned by exactly
// one record; releasing a reference deletes the file.
package imagestore

import (
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	// suffixLen is the number of random digits in a stored file name.
	suffixLen = 9

	// maxDigitByte rejects random bytes above the largest multiple of 10
	// to avoid modulo bias when mapping bytes onto digits.
	maxDigitByte = 249
)

// allowedExtensions are the accepted upload file extensions.
var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// allowedMIMETypes are the accepted declared content types.
var allowedMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Store is a disk-backed image file store.
type Store struct {
	dir        string
	publicPath string
	baseURL    string
}

// New creates an image store writing to dir. publicPath is the URL path the
// directory is served under and baseURL the absolute server base.
func New(dir, publicPath, baseURL string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, errors.Wrap(err, "failed to create upload directory")
	}

	return &Store{
		dir:        dir,
		publicPath: strings.TrimSuffix(publicPath, "/"),
		baseURL:    strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Dir returns the directory stored files live in.
func (s *Store) Dir() string { return s.dir }

// Allowed reports whether a file name and declared content type pass the
// image upload rules. The extension check applies regardless of the
// declared type.
func Allowed(filename, contentType string) bool {
	ext := strings.ToLower(filepath.Ext(filename))

	return allowedExtensions[ext] && allowedMIMETypes[strings.ToLower(contentType)]
}

// Save stores the image bytes under a fresh name built from a timestamp and
// a random digit suffix, preserving the original extension. It returns the
// stored file name.
func (s *Store) Save(originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := fmt.Sprintf("recipe-%d-%s%s", time.Now().UnixMilli(), randomDigits(suffixLen), ext)

	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return "", errors.Wrap(err, "failed to create image file")
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", errors.Wrap(err, "failed to write image file")
	}

	return name, nil
}

// Managed reports whether an image reference points at a file this store
// owns. Absolute URLs and inline data references are not managed.
func Managed(reference string) bool {
	if reference == "" {
		return false
	}

	return !strings.HasPrefix(reference, "http://") &&
		!strings.HasPrefix(reference, "https://") &&
		!strings.HasPrefix(reference, "data:")
}

// Release deletes the file behind a managed reference. Unmanaged
// references are ignored. A missing file is not an error.
func (s *Store) Release(reference string) error {
	if !Managed(reference) {
		return nil
	}

	err := os.Remove(filepath.Join(s.dir, filepath.Base(reference)))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "failed to delete image file")
	}

	return nil
}

// ReleaseLogged deletes a managed reference best-effort; a failure is
// logged and never blocks the caller.
func (s *Store) ReleaseLogged(reference string) {
	if err := s.Release(reference); err != nil {
		log.Warn().Err(err).Str("reference", reference).Msg("can't delete previous image file")
	}
}

// URL rewrites a managed reference to its absolute, publicly fetchable
// form. Absolute URLs and inline data references pass through unchanged.
func (s *Store) URL(reference string) string {
	if !Managed(reference) {
		return reference
	}

	return s.baseURL + s.publicPath + "/" + filepath.Base(reference)
}

// Resolve applies URL to a nullable image reference.
func (s *Store) Resolve(reference *string) *string {
	if reference == nil {
		return nil
	}

	resolved := s.URL(*reference)

	return &resolved
}

// randomDigits returns n random decimal digits, rejection-sampled to stay
// uniform.
func randomDigits(n int) string {
	out := make([]byte, 0, n)
	buf := make([]byte, n*2)

	for {
		if _, err := rand.Read(buf); err != nil {
			panic("imagestore: error reading random bytes: " + err.Error())
		}

		for _, b := range buf {
			if b > maxDigitByte {
				continue
			}

			out = append(out, '0'+b%10)
			if len(out) == n {
				return string(out)
			}
		}
	}
}
