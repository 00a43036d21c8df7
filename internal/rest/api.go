package rest

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/inkwell-cms/inkwell/blog/application"
	"github.com/inkwell-cms/inkwell/blog/domain"
	"github.com/inkwell-cms/inkwell/internal/config"
	"github.com/inkwell-cms/inkwell/internal/middleware"
)

// PostService is the application surface the REST layer depends on.
type PostService interface {
	AddPost(ctx context.Context, in application.AddPostInput) (*domain.Post, error)
	EditPost(ctx context.Context, id string, in application.EditPostInput) (*domain.Post, error)
	DeletePost(ctx context.Context, id string) (application.DeleteResult, error)
	GetPost(ctx context.Context, id string) (*domain.Post, error)
	GetPostBySlug(ctx context.Context, slug string) (*domain.Post, error)
	ListPosts(ctx context.Context, in application.ListPostsInput) (*application.PostPage, error)
}

var _ PostService = (*application.PostService)(nil)

// Handler carries the dependencies shared by all route handlers.
type Handler struct {
	posts PostService
	cfg   *config.Config
}

func NewHandler(posts PostService, cfg *config.Config) *Handler {
	return &Handler{
		posts: posts,
		cfg:   cfg,
	}
}

// RegisterRoutes wires the API routes onto the gin engine. Mutating routes
// require an admin token.
func RegisterRoutes(router *gin.Engine, h *Handler) {
	router.POST("/login", h.Login)

	router.GET("/blogs", h.ListBlogs)
	router.GET("/blogs/:id", h.GetBlogByID)
	router.GET("/getslug/:slug", h.GetBlogBySlug)

	admin := router.Group("", middleware.RequireAdmin(h.cfg))
	{
		admin.POST("/addblog", h.AddBlog)
		admin.PUT("/editblog/:id", h.EditBlog)
		admin.DELETE("/deleteblog/:id", h.DeleteBlog)
	}
}
