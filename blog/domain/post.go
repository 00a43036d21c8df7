package domain

import (
	"context"
	"regexp"
	"strings"
	"time"
)

// Post represents a blog post.
// The slug is derived from the title at creation time unless the caller
// supplies one, and is unique across all posts.
type Post struct {
	ID               string
	Title            string
	Slug             string
	FeaturedImageURL string
	ImagePublicID    string
	Description      string
	PublishedDate    time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// featuredImageURLPattern validates featured image URLs: an absolute http,
// https, or ftp URL with a non-empty host.
var featuredImageURLPattern = regexp.MustCompile(`^(https?|ftp)://[^\s/$.?#].[^\s]*$`)

// ValidFeaturedImageURL reports whether url is an acceptable featured image URL.
func ValidFeaturedImageURL(url string) bool {
	return featuredImageURLPattern.MatchString(url)
}

// ShortDescription returns the first 100 characters of the description.
func (p *Post) ShortDescription() string {
	if len(p.Description) <= 100 {
		return p.Description
	}
	return p.Description[:100]
}

// FormattedDate renders the published date as e.g. "March 5, 2026".
func (p *Post) FormattedDate() string {
	return p.PublishedDate.Format("January 2, 2006")
}

// ListQuery carries pagination and search parameters for listing posts.
// Search is a case-insensitive substring match over title and description.
type ListQuery struct {
	Page   int
	Limit  int
	Search string
}

// Offset returns the row offset implied by Page and Limit.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

type PostRepository interface {
	CreatePost(ctx context.Context, p *Post) error
	GetPost(ctx context.Context, id string) (*Post, error)
	GetPostBySlug(ctx context.Context, slug string) (*Post, error)
	ListPosts(ctx context.Context, q ListQuery) ([]*Post, int, error)
	UpdatePost(ctx context.Context, p *Post) (*Post, error)
	DeletePost(ctx context.Context, id string) error

	// CountMatchingSlugs counts posts whose slug is exactly base or
	// base followed by a numeric suffix ("base-2"), case-insensitively.
	CountMatchingSlugs(ctx context.Context, base string) (int, error)
}

// NormalizeSearch lowercases and trims a search term for filtering.
func NormalizeSearch(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
