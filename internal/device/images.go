package device

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/serogonpi/desarrollo-mobile-EAII/internal/observability"
)

var (
	// ErrImageTypeNotAllowed indicates the payload is not a jpeg, png or webp image.
	ErrImageTypeNotAllowed = errors.New("image type not allowed")
	// ErrImageTooLarge indicates the payload exceeded the size limit.
	ErrImageTooLarge = errors.New("image exceeds maximum allowed size")
	// ErrCameraPermission is returned when the camera grant is missing.
	ErrCameraPermission = errors.New("camera permission not granted")
	// ErrInvalidImageName rejects names that are not plain file names.
	ErrInvalidImageName = errors.New("invalid image name")
)

// DefaultMaxImageBytes caps a stored image.
const DefaultMaxImageBytes = 10 * 1024 * 1024

var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
}

// ImageStore keeps captured and uploaded images in one directory.
type ImageStore struct {
	dir         string
	maxBytes    int64
	permissions Permissions
	now         func() time.Time
	logger      zerolog.Logger
}

// NewImageStore creates dir when needed.
func NewImageStore(dir string, permissions Permissions, logger zerolog.Logger) (*ImageStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("image directory must not be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image directory: %w", err)
	}
	return &ImageStore{
		dir:         dir,
		maxBytes:    DefaultMaxImageBytes,
		permissions: permissions,
		now:         time.Now,
		logger:      logger.With().Str("component", "image_store").Logger(),
	}, nil
}

// Dir returns the storage directory.
func (s *ImageStore) Dir() string {
	return s.dir
}

// CreateImageFile reserves an empty, uniquely named destination for a capture
// and returns its path.
func (s *ImageStore) CreateImageFile() (string, error) {
	if s.permissions != nil && !s.permissions.CameraGranted() {
		return "", ErrCameraPermission
	}
	return s.reserve("JPEG_", ".jpg")
}

func (s *ImageStore) reserve(prefix, ext string) (string, error) {
	pattern := prefix + s.now().Format("20060102_150405") + "_*" + ext
	file, err := os.CreateTemp(s.dir, pattern)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer file.Close()
	return file.Name(), nil
}

// Save validates the content type and writes the image, returning the
// stored file name.
func (s *ImageStore) Save(reader io.Reader) (string, error) {
	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, io.LimitReader(reader, s.maxBytes+1)); err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if int64(buf.Len()) > s.maxBytes {
		observability.ImageUploads().WithLabelValues("too_large").Inc()
		return "", ErrImageTooLarge
	}

	mime := mimetype.Detect(buf.Bytes())
	if _, ok := allowedImageTypes[mime.String()]; !ok {
		observability.ImageUploads().WithLabelValues("type").Inc()
		return "", ErrImageTypeNotAllowed
	}

	path, err := s.reserve("IMG_", mime.Extension())
	if err != nil {
		observability.ImageUploads().WithLabelValues("error").Inc()
		return "", err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		_ = os.Remove(path)
		observability.ImageUploads().WithLabelValues("error").Inc()
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	name := filepath.Base(path)
	observability.ImageUploads().WithLabelValues("stored").Inc()
	s.logger.Info().Str("name", name).Str("mime", mime.String()).Int("bytes", buf.Len()).Msg("image stored")
	return name, nil
}

// Exists reports whether name refers to a non-empty image.
func (s *ImageStore) Exists(name string) bool {
	path, err := s.resolve(name)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir() && info.Size() > 0
}

// Delete removes an image. Missing files are not an error.
func (s *ImageStore) Delete(name string) error {
	path, err := s.resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

func (s *ImageStore) resolve(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", ErrInvalidImageName
	}
	return filepath.Join(s.dir, name), nil
}
