// Package local implements image storage on the local filesystem.
package local

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/utafrali/glamstore/internal/storage"

	apperrors "github.com/utafrali/glamstore/pkg/errors"
)

const (
	thumbnailPrefix = "thumb_"
	thumbnailWidth  = 300
)

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".avif": true,
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// Storage stores images under a single directory, served at urlPrefix.
type Storage struct {
	dir       string
	urlPrefix string
	log       *slog.Logger
}

// New creates the upload directory if needed and returns a local storage.
func New(dir, urlPrefix string, log *slog.Logger) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}

	return &Storage{
		dir:       dir,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
		log:       log,
	}, nil
}

// Save validates the extension, writes the file under a collision-free name,
// and generates a thumbnail when the image format supports decoding.
func (s *Storage) Save(ctx context.Context, originalName string, r io.Reader) (*storage.StoredImage, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] {
		return nil, apperrors.InvalidInput(fmt.Sprintf("file type %q is not allowed", ext))
	}

	safeName := unsafeChars.ReplaceAllString(filepath.Base(originalName), "_")
	filename := uuid.NewString() + "_" + safeName
	path := filepath.Join(s.dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create image file: %w", err)
	}

	// Read one byte past the limit so an oversized stream is rejected
	// instead of stored truncated.
	written, err := io.Copy(f, io.LimitReader(r, storage.MaxUploadBytes+1))
	if err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("write image file: %w", err)
	}
	if written > storage.MaxUploadBytes {
		f.Close()
		os.Remove(path)
		return nil, apperrors.InvalidInput("image exceeds the maximum upload size")
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("close image file: %w", err)
	}

	stored := &storage.StoredImage{Filename: filename}

	// Thumbnail generation failures are not fatal: formats imaging cannot
	// decode are stored without one.
	if thumb, err := s.generateThumbnail(path, filename); err != nil {
		s.log.WarnContext(ctx, "thumbnail generation failed",
			slog.String("filename", filename),
			slog.String("error", err.Error()),
		)
	} else {
		stored.Thumbnail = thumb
	}

	return stored, nil
}

func (s *Storage) generateThumbnail(path, filename string) (string, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	thumb := imaging.Resize(img, thumbnailWidth, 0, imaging.Lanczos)
	thumbName := thumbnailPrefix + filename

	if err := imaging.Save(thumb, filepath.Join(s.dir, thumbName)); err != nil {
		return "", fmt.Errorf("save thumbnail: %w", err)
	}

	return thumbName, nil
}

// Delete removes the image and its thumbnail if present.
func (s *Storage) Delete(ctx context.Context, filename string) error {
	// Reject anything that could escape the upload directory.
	if filename != filepath.Base(filename) {
		return apperrors.InvalidInput("invalid filename")
	}

	if err := os.Remove(filepath.Join(s.dir, filename)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove image: %w", err)
	}

	thumbPath := filepath.Join(s.dir, thumbnailPrefix+filename)
	if err := os.Remove(thumbPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove thumbnail: %w", err)
	}

	return nil
}

// URL returns the public path for a stored filename.
func (s *Storage) URL(filename string) string {
	if filename == "" {
		return ""
	}
	return s.urlPrefix + "/" + filename
}
