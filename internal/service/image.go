package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ElenaAntonenko/foodgram-project-react/config"
)

const dataURIPrefix = "data:image/"

// ImageStore persists decoded image bytes and returns a servable location.
type ImageStore interface {
	Save(ctx context.Context, data []byte, filename, contentType string) (string, error)
}

// S3Store uploads images to an S3 bucket with public-read objects.
type S3Store struct {
	cfg *config.S3Config
}

func NewS3Store(cfg *config.S3Config) *S3Store {
	return &S3Store{cfg: cfg}
}

func (s *S3Store) Save(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	key := "recipe-images/" + filename
	_, err := s.cfg.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	url := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.cfg.BucketName, key)
	logrus.WithField("url", url).Debug("uploaded recipe image to S3")
	return url, nil
}

// LocalStore writes images into a media directory on disk.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{dir: dir}
}

func (s *LocalStore) Save(_ context.Context, data []byte, filename, _ string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(s.dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return "/media/" + filename, nil
}

// ImageService turns submitted image fields into stored files.
type ImageService struct {
	store ImageStore
}

func NewImageService(store ImageStore) *ImageService {
	return &ImageService{store: store}
}

// Resolve accepts either a plain URL/path, which passes through verbatim,
// or a base64 data URI, which is decoded and persisted under a
// synthesized filename.
func (s *ImageService) Resolve(ctx context.Context, image string) (string, error) {
	if !strings.HasPrefix(image, dataURIPrefix) {
		return image, nil
	}

	data, ext, err := DecodeDataURI(image)
	if err != nil {
		return "", err
	}

	filename := fmt.Sprintf("photo-%s.%s", uuid.New().String(), ext)
	return s.store.Save(ctx, data, filename, "image/"+ext)
}

// DecodeDataURI splits a "data:image/<subtype>;base64,<payload>" string
// into the decoded payload and the extension inferred from the subtype.
func DecodeDataURI(uri string) ([]byte, string, error) {
	header, payload, found := strings.Cut(uri, ";base64,")
	if !found {
		return nil, "", NewValidationError("image must be a base64 data URI")
	}

	ext := strings.TrimPrefix(header, dataURIPrefix)
	if ext == "" || strings.ContainsAny(ext, "/\\.") {
		return nil, "", NewValidationError("unrecognized image format")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", NewValidationError("invalid base64 image payload")
	}

	return data, ext, nil
}
