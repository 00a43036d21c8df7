package cloudinary

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"

	"github.com/inkwell-cms/inkwell/blog/domain"
)

var _ domain.ImageStore = (*ImageStore)(nil)

// ImageStore implements domain.ImageStore against the Cloudinary upload API.
type ImageStore struct {
	client *cloudinary.Cloudinary
}

// NewImageStore creates an ImageStore from Cloudinary credentials.
func NewImageStore(cloudName, apiKey, apiSecret string) (*ImageStore, error) {
	client, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary client: %w", err)
	}

	return &ImageStore{
		client: client,
	}, nil
}

// Upload stores image bytes under folder and returns the hosted image's
// public URL and public ID. The public ID is randomly generated so uploads
// never overwrite each other.
func (s *ImageStore) Upload(ctx context.Context, data []byte, folder string) (domain.ImageRef, error) {
	result, err := s.client.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder:   folder,
		PublicID: uuid.NewString(),
	})
	if err != nil {
		return domain.ImageRef{}, fmt.Errorf("failed to upload image: %w", err)
	}
	if result.Error.Message != "" {
		return domain.ImageRef{}, fmt.Errorf("failed to upload image: %s", result.Error.Message)
	}

	return domain.ImageRef{
		URL:      result.SecureURL,
		PublicID: result.PublicID,
	}, nil
}

// Delete removes the image with the given public ID. Deleting an already
// absent image is not an error.
func (s *ImageStore) Delete(ctx context.Context, publicID string) error {
	result, err := s.client.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID: publicID,
	})
	if err != nil {
		return &domain.ImageDeleteError{PublicID: publicID, Err: err}
	}

	switch strings.ToLower(result.Result) {
	case "ok", "not found":
		return nil
	default:
		return &domain.ImageDeleteError{
			PublicID: publicID,
			Err:      fmt.Errorf("unexpected destroy result %q", result.Result),
		}
	}
}
