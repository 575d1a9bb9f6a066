package blob

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/dojsystem/process-api/config"
)

// Store persists case artifacts (enrollment transcripts, filed documents)
// outside the database and returns a stable URL for each.
//
// go generate: mockery --name Store
type Store interface {
	// UploadTranscript stores a plain-text transcript for a case and
	// returns its public URL.
	UploadTranscript(ctx context.Context, caseNumber string, content string) (string, error)

	// UploadDocument stores an arbitrary document and returns its public
	// URL.
	UploadDocument(ctx context.Context, caseNumber, filename string, r io.Reader) (string, error)
}

// CloudinaryStore implements Store on Cloudinary raw uploads.
type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryStore builds a store from the blob settings in config.
func NewCloudinaryStore(c config.Config) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(c.Blob.CloudName, c.Blob.APIKey, c.Blob.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	folder := c.Blob.Folder
	if folder == "" {
		folder = "process-api"
	}
	return &CloudinaryStore{cld: cld, folder: folder}, nil
}

func sanitizePublicID(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}

// UploadTranscript stores the transcript as a raw text asset named after the
// case number and upload time.
func (s *CloudinaryStore) UploadTranscript(ctx context.Context, caseNumber string, content string) (string, error) {
	publicID := fmt.Sprintf("%s/transcripts/%s_%d", s.folder, sanitizePublicID(caseNumber), time.Now().Unix())
	resp, err := s.cld.Upload.Upload(ctx, strings.NewReader(content), uploader.UploadParams{
		PublicID:     publicID,
		ResourceType: "raw",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload transcript for %s: %w", caseNumber, err)
	}
	return resp.SecureURL, nil
}

// UploadDocument stores a filed document under the case's folder.
func (s *CloudinaryStore) UploadDocument(ctx context.Context, caseNumber, filename string, r io.Reader) (string, error) {
	publicID := fmt.Sprintf("%s/documents/%s/%s_%d", s.folder, sanitizePublicID(caseNumber), sanitizePublicID(filename), time.Now().Unix())
	resp, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		PublicID:     publicID,
		ResourceType: "raw",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload document %s for %s: %w", filename, caseNumber, err)
	}
	return resp.SecureURL, nil
}
