package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "image/gif"
	_ "image/png"

	"github.com/rs/zerolog"
	"golang.org/x/image/draw"

	"github.com/blog-api/internal/models"
)

const jpegQuality = 80

// FileStore defines the interface for the uploaded-image store
type FileStore interface {
	// Save stores the reader's contents under a generated unique filename
	// derived from originalName and returns the stored filename.
	Save(originalName string, r io.Reader) (string, error)

	// SaveUpload stores a multipart file part, enforcing the size ceiling.
	SaveUpload(fh *multipart.FileHeader) (string, error)

	Remove(filename string) error
	Exists(filename string) bool
	Dir() string
}

// LocalFileStore stores uploads in a directory on local disk, served
// statically by the HTTP layer under /uploads
type LocalFileStore struct {
	dir           string
	maxUploadSize int64
	maxImageWidth int
	log           zerolog.Logger
}

// NewLocalFileStore creates the upload directory if needed and returns a store.
// maxImageWidth of 0 disables image normalization.
func NewLocalFileStore(dir string, maxUploadSize int64, maxImageWidth int, log zerolog.Logger) (*LocalFileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalFileStore{
		dir:           dir,
		maxUploadSize: maxUploadSize,
		maxImageWidth: maxImageWidth,
		log:           log.With().Str("component", "filestore").Logger(),
	}, nil
}

// Dir returns the directory uploads are stored in
func (s *LocalFileStore) Dir() string {
	return s.dir
}

// Save writes the reader's contents to disk under a nanosecond-timestamp
// prefixed filename. When normalization is enabled and the payload decodes as
// an image wider than the cap, it is resized and re-encoded as JPEG.
func (s *LocalFileStore) Save(originalName string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", models.NewStorageError("read upload", err)
	}

	name := sanitizeFilename(originalName)
	if s.maxImageWidth > 0 {
		if resized, ok := s.normalize(data); ok {
			data = resized
			name = strings.TrimSuffix(name, filepath.Ext(name)) + ".jpg"
		}
	}

	filename := fmt.Sprintf("%d-%s", time.Now().UnixNano(), name)
	path := filepath.Join(s.dir, filename)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", models.NewStorageError("write upload", err)
	}

	s.log.Debug().
		Str("filename", filename).
		Int("size_bytes", len(data)).
		Msg("File stored")

	return filename, nil
}

// SaveUpload stores one multipart file part
func (s *LocalFileStore) SaveUpload(fh *multipart.FileHeader) (string, error) {
	if fh.Size > s.maxUploadSize {
		return "", models.NewValidationError("file",
			fmt.Sprintf("file %q is too large, max size is %d MB", fh.Filename, s.maxUploadSize/(1024*1024)))
	}

	src, err := fh.Open()
	if err != nil {
		return "", models.NewStorageError("open upload", err)
	}
	defer src.Close()

	return s.Save(fh.Filename, src)
}

// Remove deletes a stored file
func (s *LocalFileStore) Remove(filename string) error {
	return os.Remove(filepath.Join(s.dir, sanitizeFilename(filename)))
}

// Open opens a stored file for reading
func (s *LocalFileStore) Open(filename string) (*os.File, error) {
	return os.Open(filepath.Join(s.dir, sanitizeFilename(filename)))
}

// Exists reports whether a stored file is present on disk
func (s *LocalFileStore) Exists(filename string) bool {
	_, err := os.Stat(filepath.Join(s.dir, sanitizeFilename(filename)))
	return err == nil
}

// normalize decodes data as an image and, if it is wider than the cap,
// resizes it and re-encodes as JPEG. Returns false when data is not a
// decodable image or already fits; callers then store the bytes untouched.
func (s *LocalFileStore) normalize(data []byte) ([]byte, bool) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, false
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= s.maxImageWidth {
		return nil, false
	}

	newH := h * s.maxImageWidth / w
	dst := image.NewRGBA(image.Rect(0, 0, s.maxImageWidth, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		s.log.Warn().Err(err).Msg("Image re-encode failed, storing original")
		return nil, false
	}

	s.log.Debug().
		Int("width", w).
		Int("resized_width", s.maxImageWidth).
		Msg("Image normalized")

	return buf.Bytes(), true
}

// sanitizeFilename strips any path components and characters that would not
// survive a URL path segment
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "-")
	if name == "." || name == ".." || name == string(filepath.Separator) || name == "" {
		name = "upload"
	}
	return name
}
