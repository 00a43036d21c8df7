package domain

import (
	"context"
	"net/url"
	"path"
	"strings"
)

// ImageRef identifies an uploaded image in the external image store.
// URL is the public location; PublicID is the store's logical identifier,
// used for later deletion.
type ImageRef struct {
	URL      string
	PublicID string
}

// ImageStore abstracts the external image hosting service.
type ImageStore interface {
	// Upload stores the image bytes under the given folder and returns
	// the public URL and logical identifier of the stored image.
	Upload(ctx context.Context, data []byte, folder string) (ImageRef, error)

	// Delete removes an image by its logical identifier.
	Delete(ctx context.Context, publicID string) error
}

// ImageID returns the logical image identifier for a post, preferring
// the stored one and falling back to deriving it from the image URL for
// records that predate the stored identifier.
func (p *Post) ImageID() string {
	if p.ImagePublicID != "" {
		return p.ImagePublicID
	}
	return DeriveImagePublicID(p.FeaturedImageURL)
}

// DeriveImagePublicID recovers an image store identifier from a public image
// URL: the last two path segments joined, with the file extension stripped.
// For example "https://res.example.com/img/upload/v1/blogs/abc123.jpg"
// yields "blogs/abc123". Returns "" if the URL has no usable path.
func DeriveImagePublicID(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) == 0 || segments[0] == "" {
		return ""
	}
	if len(segments) > 2 {
		segments = segments[len(segments)-2:]
	}
	joined := strings.Join(segments, "/")
	ext := path.Ext(joined)
	return strings.TrimSuffix(joined, ext)
}
