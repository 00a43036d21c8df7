package domain

import (
	"strings"
	"testing"
	"time"
)

func TestValidFeaturedImageURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected bool
	}{
		{
			name:     "HTTPS URL",
			url:      "https://res.example.com/image/upload/blogs/abc.jpg",
			expected: true,
		},
		{
			name:     "HTTP URL",
			url:      "http://example.com/img.png",
			expected: true,
		},
		{
			name:     "FTP URL",
			url:      "ftp://files.example.com/img.png",
			expected: true,
		},
		{
			name:     "Missing scheme",
			url:      "example.com/img.png",
			expected: false,
		},
		{
			name:     "Unsupported scheme",
			url:      "file:///tmp/img.png",
			expected: false,
		},
		{
			name:     "Embedded whitespace",
			url:      "https://example.com/a b.png",
			expected: false,
		},
		{
			name:     "Empty",
			url:      "",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidFeaturedImageURL(tt.url); got != tt.expected {
				t.Errorf("ValidFeaturedImageURL(%q) = %v, want %v", tt.url, got, tt.expected)
			}
		})
	}
}

func TestDeriveImagePublicID(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{
			name:     "Nested folder URL",
			url:      "https://res.example.com/img/upload/v1/blogs/abc123.jpg",
			expected: "blogs/abc123",
		},
		{
			name:     "Two-segment path",
			url:      "https://host.example.com/blogs/cover.png",
			expected: "blogs/cover",
		},
		{
			name:     "Single segment",
			url:      "https://host.example.com/cover.png",
			expected: "cover",
		},
		{
			name:     "No extension",
			url:      "https://host.example.com/blogs/cover",
			expected: "blogs/cover",
		},
		{
			name:     "Empty path",
			url:      "https://host.example.com",
			expected: "",
		},
		{
			name:     "Unparseable URL",
			url:      "://not-a-url",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveImagePublicID(tt.url); got != tt.expected {
				t.Errorf("DeriveImagePublicID(%q) = %q, want %q", tt.url, got, tt.expected)
			}
		})
	}
}

func TestPost_ImageID(t *testing.T) {
	stored := &Post{
		FeaturedImageURL: "https://res.example.com/img/upload/v1/blogs/abc.jpg",
		ImagePublicID:    "blogs/stored-id",
	}
	if got := stored.ImageID(); got != "blogs/stored-id" {
		t.Errorf("ImageID() = %q, want the stored public ID", got)
	}

	legacy := &Post{
		FeaturedImageURL: "https://res.example.com/img/upload/v1/blogs/abc.jpg",
	}
	if got := legacy.ImageID(); got != "blogs/abc" {
		t.Errorf("ImageID() = %q, want the derived ID %q", got, "blogs/abc")
	}
}

func TestPost_ShortDescription(t *testing.T) {
	short := &Post{Description: "brief"}
	if got := short.ShortDescription(); got != "brief" {
		t.Errorf("ShortDescription() = %q, want %q", got, "brief")
	}

	long := &Post{Description: strings.Repeat("x", 250)}
	if got := long.ShortDescription(); len(got) != 100 {
		t.Errorf("ShortDescription() length = %d, want 100", len(got))
	}
}

func TestPost_FormattedDate(t *testing.T) {
	p := &Post{PublishedDate: time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC)}
	if got := p.FormattedDate(); got != "March 5, 2026" {
		t.Errorf("FormattedDate() = %q, want %q", got, "March 5, 2026")
	}
}

func TestListQuery_Offset(t *testing.T) {
	q := ListQuery{Page: 3, Limit: 10}
	if got := q.Offset(); got != 20 {
		t.Errorf("Offset() = %d, want 20", got)
	}
}
