package images

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "cabslip-images-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := NewStore(tempDir, nil)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	return store, tempDir
}

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode test png: %v", err)
	}
	return buf.Bytes()
}

func TestSaveStoresPNG(t *testing.T) {
	store, dir := newTestStore(t)

	path, err := store.Save(encodePNG(t, 100, 60), KindLogo)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("stored outside data dir: %s", path)
	}
	if !strings.HasPrefix(filepath.Base(path), "logo_") || !strings.HasSuffix(path, ".png") {
		t.Errorf("unexpected file name: %s", filepath.Base(path))
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("stored file is not a valid png: %v", err)
	}
}

func TestSaveAcceptsJPEG(t *testing.T) {
	store, _ := newTestStore(t)

	img := image.NewRGBA(image.Rect(0, 0, 80, 40))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("Failed to encode test jpeg: %v", err)
	}

	path, err := store.Save(buf.Bytes(), KindSignature)
	if err != nil {
		t.Fatalf("Save failed on jpeg input: %v", err)
	}
	// Stored as PNG regardless of upload format.
	if !strings.HasSuffix(path, ".png") {
		t.Errorf("jpeg upload not converted to png: %s", path)
	}
}

func TestSaveDownscalesWideImages(t *testing.T) {
	store, _ := newTestStore(t)

	path, err := store.Save(encodePNG(t, 3000, 1500), KindLogo)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("stored file is not a valid png: %v", err)
	}
	if got := img.Bounds().Dx(); got != 1024 {
		t.Errorf("stored width = %d, want 1024", got)
	}
	// Aspect ratio preserved.
	if got := img.Bounds().Dy(); got != 512 {
		t.Errorf("stored height = %d, want 512", got)
	}
}

func TestSaveRejectsBadInput(t *testing.T) {
	store, _ := newTestStore(t)

	if _, err := store.Save([]byte("not an image"), KindLogo); err == nil {
		t.Error("expected error for undecodable input")
	}
	if _, err := store.Save(encodePNG(t, 10, 10), Kind("avatar")); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestRemove(t *testing.T) {
	store, _ := newTestStore(t)

	path, err := store.Save(encodePNG(t, 10, 10), KindLogo)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	store.Remove(path)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file still present after Remove: %v", err)
	}

	// Best-effort: missing paths and empty paths must not panic.
	store.Remove(path)
	store.Remove("")
}
