// Package scan discovers image files on disk and turns them into upload
// records. Directories are expanded in lexical order so repeated runs over the
// same tree produce the same upload sequence.
package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-image-uploader/models"
)

var ErrInvalidPath = errors.New("path is not a file or directory")

// IsImage reports whether path names an image by extension. Matching is
// case-insensitive, so exports from cameras and editors that produce
// upper-case suffixes are picked up too.
func IsImage(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}

// Images lists the image files under dir in lexical order. Without recursive
// only direct children are considered; with recursive every subdirectory is
// walked as well.
func Images(dir string, recursive bool) ([]string, error) {
	if recursive {
		return walkImages(dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list directory %s: %w", dir, err)
	}

	var images []string
	for _, entry := range entries {
		if entry.IsDir() || !IsImage(entry.Name()) {
			continue
		}
		images = append(images, filepath.Join(dir, entry.Name()))
	}
	return images, nil
}

func walkImages(dir string) ([]string, error) {
	var images []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && IsImage(path) {
			images = append(images, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", dir, err)
	}
	return images, nil
}

// Gather expands roots into upload records, preserving root order. A root that
// is a directory contributes its images via Images; a root that is an image
// file contributes itself; a root that is an existing file without an image
// extension is skipped silently. A root that does not exist fails the whole
// call, so typos surface before any network work starts.
func Gather(roots []string, recursive bool, requireSignedURLs bool) ([]models.ImageUpload, error) {
	var uploads []models.ImageUpload
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPath, err)
		}

		if !info.IsDir() {
			if IsImage(root) {
				uploads = append(uploads, models.ImageUpload{Filepath: root, RequireSignedURLs: requireSignedURLs})
			}
			continue
		}

		images, err := Images(root, recursive)
		if err != nil {
			return nil, err
		}
		for _, image := range images {
			uploads = append(uploads, models.ImageUpload{Filepath: image, RequireSignedURLs: requireSignedURLs})
		}
	}
	return uploads, nil
}
