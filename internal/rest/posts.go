package rest

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/inkwell-cms/inkwell/api"
	"github.com/inkwell-cms/inkwell/blog/application"
	"github.com/inkwell-cms/inkwell/blog/domain"
)

const (
	// imageFieldName is the multipart form field carrying the image file.
	imageFieldName = "featuredImage"

	maxUploadSize = 10 << 20 // 10MB
)

// AddBlog creates a post from a multipart form carrying title, description,
// and an image file.
func (h *Handler) AddBlog(c *gin.Context) {
	image, err := readImageFile(c)
	if err != nil {
		respondError(c, err)
		return
	}

	created, err := h.posts.AddPost(c.Request.Context(), application.AddPostInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Image:       image,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	blog := api.BlogFromDomain(created)
	c.JSON(http.StatusCreated, api.BlogResponse{
		Success: true,
		Message: "Blog added successfully",
		Blog:    &blog,
	})
}

// EditBlog updates a post. The body is either a multipart form (optionally
// carrying a replacement image) or a JSON object with title, slug, and
// description.
func (h *Handler) EditBlog(c *gin.Context) {
	id := c.Param("id")

	var in application.EditPostInput
	if strings.HasPrefix(c.ContentType(), "application/json") {
		var req api.EditBlogRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, domain.NewValidationError("invalid request body"))
			return
		}
		in = application.EditPostInput{
			Title:       req.Title,
			Slug:        req.Slug,
			Description: req.Description,
		}
	} else {
		image, err := readImageFile(c)
		if err != nil {
			respondError(c, err)
			return
		}
		in = application.EditPostInput{
			Title:       c.PostForm("title"),
			Slug:        c.PostForm("slug"),
			Description: c.PostForm("description"),
			Image:       image,
		}
	}

	updated, err := h.posts.EditPost(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}

	blog := api.BlogFromDomain(updated)
	c.JSON(http.StatusOK, api.EditBlogResponse{
		Success:     true,
		Message:     "Blog updated successfully",
		UpdatedBlog: &blog,
	})
}

// DeleteBlog removes a post and, best-effort, its stored image. When the
// image deletion fails the response still reports success, with a warning.
func (h *Handler) DeleteBlog(c *gin.Context) {
	result, err := h.posts.DeletePost(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := api.DeleteBlogResponse{
		Success: true,
		Message: "Blog deleted successfully",
	}
	if result.Warning != "" {
		resp.Message = "Blog deleted successfully, but image deletion failed"
		resp.Warning = result.Warning
	}
	c.JSON(http.StatusOK, resp)
}

// GetBlogByID returns a single post wrapped in a success envelope.
func (h *Handler) GetBlogByID(c *gin.Context) {
	post, err := h.posts.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	blog := api.BlogFromDomain(post)
	c.JSON(http.StatusOK, api.BlogResponse{
		Success: true,
		Blog:    &blog,
	})
}

// GetBlogBySlug returns the bare post object, unwrapped.
func (h *Handler) GetBlogBySlug(c *gin.Context) {
	post, err := h.posts.GetPostBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.BlogFromDomain(post))
}

// ListBlogs returns a page of posts with pagination metadata. Query
// parameters: page (default 1), limit (default 10), search (substring match
// over title and description, case-insensitive).
func (h *Handler) ListBlogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := h.posts.ListPosts(c.Request.Context(), application.ListPostsInput{
		Page:   page,
		Limit:  limit,
		Search: c.Query("search"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.ListBlogsResponse{
		Success: true,
		Blogs:   api.BlogsFromDomain(result.Posts),
		Pagination: api.Pagination{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	})
}

// readImageFile stages the uploaded image file in memory. A missing file is
// not an error here; the application layer decides whether it is required.
func readImageFile(c *gin.Context) (*application.ImageUpload, error) {
	fileHeader, err := c.FormFile(imageFieldName)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, domain.NewValidationError("invalid image upload: %v", err)
	}

	if fileHeader.Size > maxUploadSize {
		return nil, domain.NewValidationError("image too large (max 10MB)")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, domain.NewValidationError("failed to read uploaded image")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, domain.NewValidationError("failed to read uploaded image")
	}

	return &application.ImageUpload{
		Filename: fileHeader.Filename,
		Data:     data,
	}, nil
}

// respondError maps domain errors to HTTP responses. Anything outside the
// taxonomy becomes a generic 500 without leaking internals.
func respondError(c *gin.Context, err error) {
	var uploadErr *domain.UploadError

	switch {
	case domain.IsValidation(err):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Success: false, Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Success: false, Message: "Blog not found"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Success: false, Message: "Invalid credentials"})
	case domain.IsConfiguration(err):
		log.Error().Err(err).Msg("Request failed due to missing configuration")
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Success: false, Message: "Server configuration error"})
	case errors.As(err, &uploadErr):
		log.Error().Err(err).Msg("Image upload failed")
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Success: false, Message: "Error uploading image"})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled error")
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Success: false, Message: "Internal server error"})
	}
}
