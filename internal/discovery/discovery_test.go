package discovery

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func TestIsImage(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"photo.jpg", true},
		{"photo.JPG", true},
		{"photo.jpeg", true},
		{"photo.Png", true},
		{"anim.gif", true},
		{"scan.bmp", true},
		{"scan.TIFF", true},
		{"scan.tif", false},
		{"photo.webp", false},
		{"ready_01.pdf", false},
		{"notes.txt", false},
		{"jpg", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsImage(tt.name); got != tt.expected {
				t.Errorf("IsImage(%q) = %v, want %v", tt.name, got, tt.expected)
			}
		})
	}
}

func TestListImages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"img10.jpg", "img2.PNG", "img1.jpeg", "readme.txt", "ready_01.pdf", "b.tiff"} {
		touch(t, dir, name)
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.jpg"), 0750); err != nil {
		t.Fatal(err)
	}

	paths, err := ListImages(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var names []string
	for _, p := range paths {
		if filepath.Dir(p) != dir {
			t.Errorf("expected path inside %s, got %s", dir, p)
		}
		names = append(names, filepath.Base(p))
	}
	expected := []string{"b.tiff", "img1.jpeg", "img2.PNG", "img10.jpg"}
	if !slices.Equal(names, expected) {
		t.Errorf("expected %v, got %v", expected, names)
	}
}

func TestListImages_Symlink(t *testing.T) {
	dir := t.TempDir()
	other := t.TempDir()
	touch(t, other, "target.jpg")
	if err := os.Symlink(filepath.Join(other, "target.jpg"), filepath.Join(dir, "link.jpg")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	paths, err := ListImages(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 1 {
		t.Errorf("expected linked image to be listed, got %v", paths)
	}
}

func TestListImages_Errors(t *testing.T) {
	t.Run("missing folder", func(t *testing.T) {
		_, err := ListImages(filepath.Join(t.TempDir(), "missing"))
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("file instead of folder", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, dir, "photo.jpg")
		_, err := ListImages(filepath.Join(dir, "photo.jpg"))
		if !errors.Is(err, ErrNotDirectory) {
			t.Errorf("expected ErrNotDirectory, got %v", err)
		}
	})

	t.Run("empty folder", func(t *testing.T) {
		_, err := ListImages(t.TempDir())
		if !errors.Is(err, ErrNoImages) {
			t.Errorf("expected ErrNoImages, got %v", err)
		}
	})

	t.Run("only other files", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, dir, "notes.txt")
		touch(t, dir, "ready_01.pdf")
		_, err := ListImages(dir)
		if !errors.Is(err, ErrNoImages) {
			t.Errorf("expected ErrNoImages, got %v", err)
		}
	})
}

func TestSortNames(t *testing.T) {
	names := []string{"IMG_10.jpg", "img_2.jpg", "IMG_1.jpg", "a.jpg", "Zebra.png"}
	SortNames(names)
	expected := []string{"a.jpg", "IMG_1.jpg", "img_2.jpg", "IMG_10.jpg", "Zebra.png"}
	if !slices.Equal(names, expected) {
		t.Errorf("expected %v, got %v", expected, names)
	}
}
