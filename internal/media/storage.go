package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// PublicPrefix is the URL path stored uploads are served under.
const PublicPrefix = "/api/uploads"

// Uploaded images larger than this are scaled down to fit.
const (
	maxWidth  = 1600
	maxHeight = 1200
)

var (
	ErrTooLarge = errors.New("file exceeds the upload size limit")
	ErrNotImage = errors.New("only image files are allowed")
	ErrEmpty    = errors.New("file is empty")
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// formats re-encoded after resizing; other image types are stored as sent.
var formats = map[string]imaging.Format{
	"image/jpeg": imaging.JPEG,
	"image/png":  imaging.PNG,
	"image/gif":  imaging.GIF,
}

// Storage writes uploaded images to a local directory.
type Storage struct {
	dir      string
	maxBytes int64
}

func NewStorage(dir string, maxBytes int64) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Storage{dir: dir, maxBytes: maxBytes}, nil
}

// Dir is the directory files are written to.
func (s *Storage) Dir() string {
	return s.dir
}

// SaveFile stores a multipart upload and returns its public URL.
func (s *Storage) SaveFile(fh *multipart.FileHeader) (string, error) {
	if fh.Size > s.maxBytes {
		return "", ErrTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()
	return s.Save(fh.Filename, f)
}

// Save validates and stores the image read from r under a unique name
// derived from name, and returns its public URL.
func (s *Storage) Save(name string, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return "", ErrTooLarge
	}
	if len(data) == 0 {
		return "", ErrEmpty
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", ErrNotImage
	}

	if format, ok := formats[mtype.String()]; ok {
		data, err = fit(data, format)
		if err != nil {
			return "", err
		}
	}

	filename := uuid.NewString() + "-" + sanitize(name)
	if err := os.WriteFile(filepath.Join(s.dir, filename), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	return PublicPrefix + "/" + filename, nil
}

// fit scales the image down to the maximum gallery size. Images already
// within bounds are returned untouched.
func fit(data []byte, format imaging.Format) ([]byte, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	if cfg.Width <= maxWidth && cfg.Height <= maxHeight {
		return data, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotImage, err)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos), format, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

func sanitize(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	base = strings.Trim(unsafeChars.ReplaceAllString(base, "-"), "-.")
	if base == "" {
		return "upload"
	}
	return base
}
