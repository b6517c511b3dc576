package media

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// MaxUploadSize is the largest accepted image, 10 MiB
const MaxUploadSize = 10 << 20

var (
	ErrUnsupportedFormat = errors.New("unsupported format: allowed JPEG, PNG, GIF, WebP, SVG")
	ErrTooLarge          = errors.New("file is too large: maximum size is 10 MB")
)

var allowedTypes = map[string]string{
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
}

// sniffLen is how much of the file is inspected when no usable content type was sent
const sniffLen = 3072

// Service stores uploaded images under one directory
type Service struct {
	dir       string
	urlPrefix string
	logger    *logrus.Logger
	now       func() time.Time
}

// NewService creates a service writing to dir and returning URLs under urlPrefix
func NewService(dir, urlPrefix string, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	return &Service{
		dir:       dir,
		urlPrefix: urlPrefix,
		logger:    logger,
		now:       time.Now,
	}
}

// Dir returns the directory uploads are written to
func (s *Service) Dir() string {
	return s.dir
}

// Validate checks the declared type first and the size second
func Validate(contentType string, size int64) error {
	if _, ok := allowedTypes[normalizeType(contentType)]; !ok {
		return ErrUnsupportedFormat
	}
	if size > MaxUploadSize {
		return ErrTooLarge
	}
	return nil
}

func normalizeType(contentType string) string {
	mediaType := strings.TrimSpace(strings.ToLower(contentType))
	if i := strings.Index(mediaType, ";"); i >= 0 {
		mediaType = strings.TrimSpace(mediaType[:i])
	}
	if mediaType == "image/jpg" {
		mediaType = "image/jpeg"
	}
	return mediaType
}

// Save validates and stores one image and returns its URL.
// Nothing is written when validation fails.
func (s *Service) Save(r io.Reader, filename, contentType string, size int64) (string, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	head = head[:n]

	mediaType := normalizeType(contentType)
	if mediaType == "" || mediaType == "application/octet-stream" {
		mediaType = normalizeType(mimetype.Detect(head).String())
	}

	if err := Validate(mediaType, size); err != nil {
		s.logger.WithFields(logrus.Fields{
			"filename":     filename,
			"content_type": mediaType,
			"size":         size,
		}).WithError(err).Warn("Rejected upload")
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := s.uniqueName(mediaType)
	diskPath := filepath.Join(s.dir, name)

	dst, err := os.Create(diskPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	// Copy one byte past the limit to catch a size header that understated the body
	written, err := io.Copy(dst, io.LimitReader(io.MultiReader(bytes.NewReader(head), r), MaxUploadSize+1))
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && written > MaxUploadSize {
		err = ErrTooLarge
	}
	if err != nil {
		os.Remove(diskPath)
		if errors.Is(err, ErrTooLarge) {
			return "", err
		}
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	url := path.Join(s.urlPrefix, name)
	s.logger.WithFields(logrus.Fields{
		"filename": filename,
		"url":      url,
		"size":     written,
	}).Info("Stored upload")

	return url, nil
}

// uniqueName builds <unix-millis>-<random><ext>. Identical uploads get different names.
// The extension always follows the validated type, never the client's filename,
// so static serving cannot hand back anything but an image.
func (s *Service) uniqueName(mediaType string) string {
	ext := allowedTypes[mediaType]
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%d-%s%s", s.now().UnixMilli(), suffix, ext)
}
