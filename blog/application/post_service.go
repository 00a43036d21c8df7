package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/inkwell-cms/inkwell/blog/domain"
)

const (
	// imageFolder is the logical folder in the image store under which
	// all featured images are uploaded.
	imageFolder = "blogs"

	// maxCreateAttempts bounds the slug-conflict retry loop on creation.
	maxCreateAttempts = 3

	defaultPage  = 1
	defaultLimit = 10
)

// ImageUpload is an image staged in memory by the API layer.
type ImageUpload struct {
	Filename string
	Data     []byte
}

// AddPostInput carries the fields required to create a post. The slug is
// always derived from the title.
type AddPostInput struct {
	Title       string
	Description string
	Image       *ImageUpload
}

// EditPostInput carries the fields for updating a post. Title, Slug, and
// Description are all required; Image is optional and, when present,
// replaces the stored featured image.
type EditPostInput struct {
	Title       string
	Slug        string
	Description string
	Image       *ImageUpload
}

// ListPostsInput carries pagination and search parameters.
type ListPostsInput struct {
	Page   int
	Limit  int
	Search string
}

// PostPage is one page of posts plus pagination metadata.
type PostPage struct {
	Posts      []*domain.Post
	Page       int
	Limit      int
	Total      int
	TotalPages int
}

// DeleteResult reports the outcome of a delete. Warning is non-empty when
// the post was removed but its image could not be deleted from the store.
type DeleteResult struct {
	Warning string
}

// PostService orchestrates post lifecycle operations over the post
// repository and the external image store.
type PostService struct {
	repo   domain.PostRepository
	images domain.ImageStore
}

func NewPostService(repo domain.PostRepository, images domain.ImageStore) *PostService {
	return &PostService{
		repo:   repo,
		images: images,
	}
}

// AddPost uploads the staged image, derives a unique slug from the title,
// and persists the new post. The upload happens before persistence, so an
// upload failure leaves no partial record behind. A slug collision from a
// concurrent creation is resolved by regenerating the slug and retrying.
func (s *PostService) AddPost(ctx context.Context, in AddPostInput) (*domain.Post, error) {
	if in.Title == "" {
		return nil, domain.NewValidationError("title is required")
	}
	if in.Description == "" {
		return nil, domain.NewValidationError("description is required")
	}
	if in.Image == nil || len(in.Image.Data) == 0 {
		return nil, domain.NewValidationError("no image uploaded")
	}

	ref, err := s.images.Upload(ctx, in.Image.Data, imageFolder)
	if err != nil {
		return nil, &domain.UploadError{Err: err}
	}

	if !domain.ValidFeaturedImageURL(ref.URL) {
		return nil, fmt.Errorf("image store returned an invalid image URL: %q", ref.URL)
	}

	now := time.Now().UTC()
	post := &domain.Post{
		ID:               uuid.NewString(),
		Title:            in.Title,
		FeaturedImageURL: ref.URL,
		ImagePublicID:    ref.PublicID,
		Description:      in.Description,
		PublishedDate:    now,
	}

	for attempt := 1; ; attempt++ {
		post.Slug, err = GenerateSlug(ctx, in.Title, s.repo)
		if err != nil {
			return nil, err
		}

		err = s.repo.CreatePost(ctx, post)
		if err == nil {
			return post, nil
		}
		if !errors.Is(err, domain.ErrSlugConflict) || attempt >= maxCreateAttempts {
			return nil, fmt.Errorf("failed to create post: %w", err)
		}
		log.Warn().Str("slug", post.Slug).Int("attempt", attempt).Msg("Slug conflict on create, regenerating")
	}
}

// EditPost updates a post's title, slug, and description, and optionally
// replaces its featured image. Replacing the image deletes the old one from
// the image store first; that deletion is best-effort and its failure does
// not block the edit.
func (s *PostService) EditPost(ctx context.Context, id string, in EditPostInput) (*domain.Post, error) {
	if in.Title == "" || in.Slug == "" || in.Description == "" {
		return nil, domain.NewValidationError("missing required fields")
	}

	post, err := s.repo.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Image != nil && len(in.Image.Data) > 0 {
		if oldID := post.ImageID(); oldID != "" {
			if err := s.images.Delete(ctx, oldID); err != nil {
				log.Warn().Err(err).Str("publicID", oldID).Msg("Failed to delete replaced image")
			}
		}

		ref, err := s.images.Upload(ctx, in.Image.Data, imageFolder)
		if err != nil {
			return nil, &domain.UploadError{Err: err}
		}
		post.FeaturedImageURL = ref.URL
		post.ImagePublicID = ref.PublicID
	}

	post.Title = in.Title
	post.Slug = in.Slug
	post.Description = in.Description

	updated, err := s.repo.UpdatePost(ctx, post)
	if err != nil {
		if errors.Is(err, domain.ErrSlugConflict) {
			return nil, domain.NewValidationError("slug %q is already in use", in.Slug)
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	return updated, nil
}

// DeletePost removes a post and, best-effort, its image from the image
// store. An image deletion failure is reported as a warning on an otherwise
// successful result; the post record deletion is authoritative.
func (s *PostService) DeletePost(ctx context.Context, id string) (DeleteResult, error) {
	post, err := s.repo.GetPost(ctx, id)
	if err != nil {
		return DeleteResult{}, err
	}

	var warning string
	if publicID := post.ImageID(); publicID != "" {
		if err := s.images.Delete(ctx, publicID); err != nil {
			warning = "failed to delete image from image store"
			log.Warn().Err(err).Str("publicID", publicID).Msg("Failed to delete image for removed post")
		}
	}

	if err := s.repo.DeletePost(ctx, id); err != nil {
		return DeleteResult{}, fmt.Errorf("failed to delete post: %w", err)
	}

	return DeleteResult{Warning: warning}, nil
}

// GetPost returns a post by id.
func (s *PostService) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	return s.repo.GetPost(ctx, id)
}

// GetPostBySlug returns a post by slug.
func (s *PostService) GetPostBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	return s.repo.GetPostBySlug(ctx, slug)
}

// ListPosts returns one page of posts, newest first, optionally filtered by
// a case-insensitive substring search over title and description.
func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) (*PostPage, error) {
	if in.Page < 1 {
		in.Page = defaultPage
	}
	if in.Limit < 1 {
		in.Limit = defaultLimit
	}

	query := domain.ListQuery{
		Page:   in.Page,
		Limit:  in.Limit,
		Search: domain.NormalizeSearch(in.Search),
	}

	posts, total, err := s.repo.ListPosts(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	totalPages := (total + in.Limit - 1) / in.Limit

	return &PostPage{
		Posts:      posts,
		Page:       in.Page,
		Limit:      in.Limit,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}
