package services

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// MaxImageSize caps uploaded post images.
const MaxImageSize = 10 * 1024 * 1024

// imageDir is the folder under the media root holding post images.
const imageDir = "posts"

// ImageStore keeps post images on the local filesystem.
type ImageStore struct {
	root    string
	baseURL string
}

func NewImageStore(root, baseURL string) *ImageStore {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &ImageStore{root: root, baseURL: baseURL}
}

// Root is the directory images are written under.
func (s *ImageStore) Root() string {
	return s.root
}

// DecodeDataURI decodes "data:image/png;base64,..." or bare base64 content.
func DecodeDataURI(value string) ([]byte, error) {
	payload := value
	if strings.HasPrefix(value, "data:") {
		idx := strings.Index(value, ",")
		if idx < 0 || !strings.Contains(value[:idx], ";base64") {
			return nil, FieldError("image", MsgInvalidImage)
		}
		payload = value[idx+1:]
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil || len(data) == 0 {
		return nil, FieldError("image", MsgInvalidImage)
	}
	return data, nil
}

// ReadImage reads an uploaded file, refusing anything over MaxImageSize.
func ReadImage(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return data, nil
}

// Validate checks the content really is an image and returns its extension.
func (s *ImageStore) Validate(data []byte) (string, error) {
	if len(data) == 0 || len(data) > MaxImageSize {
		return "", FieldError("image", MsgInvalidImage)
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", FieldError("image", MsgInvalidImage)
	}
	return mt.Extension(), nil
}

// Save writes the image and returns its path relative to the media root.
func (s *ImageStore) Save(data []byte) (string, error) {
	ext, err := s.Validate(data)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(s.root, imageDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create image dir: %w", err)
	}

	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return path.Join(imageDir, name), nil
}

// Remove deletes a stored image. Failures are logged, not returned.
func (s *ImageStore) Remove(rel string) {
	if rel == "" {
		return
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Failed to remove image %s: %v", rel, err)
	}
}

// URL is the public address of a stored image.
func (s *ImageStore) URL(rel string) string {
	return s.baseURL + rel
}
