package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PublicPrefix is the URL path under which stored files are served.
const PublicPrefix = "/uploads/"

var (
	// ErrNotFound is returned when a stored file does not exist.
	ErrNotFound = errors.New("file not found")
	// ErrUnsupportedType rejects anything that is not a jpg, jpeg or png image.
	ErrUnsupportedType = errors.New("only jpg, jpeg and png images are allowed")
	// ErrTooLarge rejects files above the configured size limit.
	ErrTooLarge = errors.New("file too large")
	// ErrInvalidName rejects names that could escape the store.
	ErrInvalidName = errors.New("invalid file name")
)

// Store persists uploaded cover images.
type Store interface {
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, name string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, name string) error
}

// Upload is an incoming file before it is stored.
type Upload struct {
	Filename string
	Size     int64
	Reader   io.Reader
}

var imageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateImage checks the extension and size of an upload against maxBytes.
func ValidateImage(u *Upload, maxBytes int64) error {
	if _, ok := imageTypes[strings.ToLower(filepath.Ext(u.Filename))]; !ok {
		return ErrUnsupportedType
	}
	if maxBytes > 0 && u.Size > maxBytes {
		return fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, maxBytes)
	}
	return nil
}

// ContentType returns the MIME type for name, based on its extension.
func ContentType(name string) string {
	if ct, ok := imageTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// GenerateName builds a unique stored name for an upload named original.
func GenerateName(original string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(original))
	return fmt.Sprintf("cover-%d-%s%s", now.UnixMilli(), uuid.NewString()[:8], ext)
}

// ValidName reports whether name is a flat file name safe to use as a key.
func ValidName(name string) bool {
	return namePattern.MatchString(name) && !strings.Contains(name, "..")
}

// PublicURL joins the request base URL and the stored name.
func PublicURL(baseURL, name string) string {
	return strings.TrimRight(baseURL, "/") + PublicPrefix + name
}

// NameFromURL extracts the stored name from a URL produced by PublicURL. It
// reports false for external images.
func NameFromURL(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	if !strings.HasPrefix(u.Path, PublicPrefix) {
		return "", false
	}
	name := path.Base(u.Path)
	if name != strings.TrimPrefix(u.Path, PublicPrefix) || !ValidName(name) {
		return "", false
	}
	return name, true
}
