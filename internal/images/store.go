// Package images stores uploaded logo and signature images and hands back
// opaque file-path references. The rest of the system never inspects
// image content, only stores and forwards the path strings.
package images

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder, storage is always PNG
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

// maxWidth bounds stored images; anything wider is downscaled
// proportionally. Logos and signatures never need more.
const maxWidth = 1024

// Kind names the image slots an upload can target.
type Kind string

const (
	KindLogo      Kind = "logo"
	KindSignature Kind = "signature"
)

// Valid reports whether the kind is one of the known slots.
func (k Kind) Valid() bool {
	return k == KindLogo || k == KindSignature
}

// Store writes images under a data directory.
type Store struct {
	dir    string
	logger *slog.Logger
}

// NewStore creates an image store rooted at dir, creating it if needed.
func NewStore(dir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create image directory: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Save decodes PNG or JPEG bytes, downscales oversized images, writes the
// result as PNG, and returns the file path to store as the opaque
// reference.
func (s *Store) Save(data []byte, kind Kind) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("unknown image kind %q", kind)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	if img.Bounds().Dx() > maxWidth {
		img = resize.Resize(maxWidth, 0, img, resize.Lanczos3)
	}

	name := fmt.Sprintf("%s_%s.png", kind, uuid.New().String())
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	s.logger.Info("image stored", "kind", kind, "format", format, "path", path)
	return path, nil
}

// Remove deletes a previously stored image. Cleanup is best-effort: a
// missing or undeletable file only logs, it never fails the caller.
func (s *Store) Remove(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("failed to remove image", "path", path, "error", err)
	}
}
