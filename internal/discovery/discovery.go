// Package discovery lists the source images of a folder.
package discovery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/kozaktomas/photo-arrange/internal/constants"
)

var (
	// ErrNotFound is returned when the folder does not exist.
	ErrNotFound = errors.New("folder does not exist")
	// ErrNotDirectory is returned when the path is not a directory.
	ErrNotDirectory = errors.New("not a directory")
	// ErrNoImages is returned when the folder holds no recognized image file.
	ErrNoImages = errors.New("no image files found")
)

// IsImage reports whether name has one of the recognized image extensions (case-insensitive).
func IsImage(name string) bool {
	return slices.Contains(constants.ImageExtensions, strings.ToLower(filepath.Ext(name)))
}

// ListImages returns the paths of all image files directly inside folder.
// Paths are ordered by name using numeric, case-insensitive collation so that
// "IMG_2.jpg" comes before "img_10.jpg".
func ListImages(folder string) ([]string, error) {
	info, err := os.Stat(folder)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("folder '%s': %w", folder, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to stat folder '%s': %w", folder, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("folder '%s': %w", folder, ErrNotDirectory)
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("failed to read folder '%s': %w", folder, err)
	}

	var names []string
	for _, e := range entries {
		if !IsImage(e.Name()) || !isRegularFile(folder, e) {
			continue
		}
		names = append(names, e.Name())
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("folder '%s': %w", folder, ErrNoImages)
	}

	SortNames(names)

	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(folder, name)
	}
	return paths, nil
}

// SortNames sorts file names in place using numeric, case-insensitive collation.
func SortNames(names []string) {
	c := collate.New(language.Und, collate.IgnoreCase, collate.Numeric)
	slices.SortStableFunc(names, func(a, b string) int {
		if r := c.CompareString(a, b); r != 0 {
			return r
		}
		return strings.Compare(a, b)
	})
}

// isRegularFile follows symlinks so that linked photos are picked up too.
func isRegularFile(folder string, e os.DirEntry) bool {
	if e.Type().IsRegular() {
		return true
	}
	if e.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(folder, e.Name()))
	return err == nil && info.Mode().IsRegular()
}
