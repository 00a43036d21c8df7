package api

import (
	"time"

	"github.com/inkwell-cms/inkwell/blog/domain"
)

// Blog is the wire representation of a post.
type Blog struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Slug             string    `json:"slug"`
	FeaturedImageURL string    `json:"featuredImageUrl"`
	ImageID          string    `json:"imageId,omitempty"`
	Description      string    `json:"description"`
	ShortDescription string    `json:"shortDescription"`
	PublishedDate    time.Time `json:"publishedDate"`
	FormattedDate    string    `json:"formattedDate"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// BlogFromDomain converts a domain post to its wire form.
func BlogFromDomain(p *domain.Post) Blog {
	return Blog{
		ID:               p.ID,
		Title:            p.Title,
		Slug:             p.Slug,
		FeaturedImageURL: p.FeaturedImageURL,
		ImageID:          p.ImagePublicID,
		Description:      p.Description,
		ShortDescription: p.ShortDescription(),
		PublishedDate:    p.PublishedDate,
		FormattedDate:    p.FormattedDate(),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// BlogsFromDomain converts a slice of domain posts.
func BlogsFromDomain(posts []*domain.Post) []Blog {
	blogs := make([]Blog, 0, len(posts))
	for _, p := range posts {
		blogs = append(blogs, BlogFromDomain(p))
	}
	return blogs
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type ListBlogsResponse struct {
	Success    bool       `json:"success"`
	Blogs      []Blog     `json:"blogs"`
	Pagination Pagination `json:"pagination"`
}

type BlogResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Blog    *Blog  `json:"blog,omitempty"`
}

// EditBlogResponse keeps the original wire shape of the edit operation,
// which returns the record under "updatedBlog".
type EditBlogResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	UpdatedBlog *Blog  `json:"updatedBlog"`
}

type DeleteBlogResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Warning string `json:"warning,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// EditBlogRequest is the JSON body accepted by the edit operation when the
// caller is not replacing the image.
type EditBlogRequest struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}
