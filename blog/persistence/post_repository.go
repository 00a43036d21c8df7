package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/inkwell-cms/inkwell/blog/domain"
	"github.com/inkwell-cms/inkwell/shared/db"
)

var _ domain.PostRepository = (*SQLitePostRepository)(nil)

// SQLitePostRepository implements domain.PostRepository using SQL database (SQLite)
type SQLitePostRepository struct {
	db *sql.DB
}

// NewPostRepository creates a new SQLitePostRepository from a standard sql.DB
func NewPostRepository(db *sql.DB) *SQLitePostRepository {
	return &SQLitePostRepository{
		db: db,
	}
}

const createPostQuery = `
	INSERT INTO posts (id, title, slug, featured_image_url, image_public_id, description, published_date, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// CreatePost inserts a new post. CreatedAt and UpdatedAt are set by the
// store. Returns domain.ErrSlugConflict when the slug uniqueness constraint
// rejects the insert.
func (r *SQLitePostRepository) CreatePost(ctx context.Context, p *domain.Post) error {
	if p == nil {
		return fmt.Errorf("post cannot be nil")
	}

	if p.ID == "" {
		return fmt.Errorf("post ID cannot be empty")
	}

	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.PublishedDate.IsZero() {
		p.PublishedDate = now
	}

	executor := db.GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, createPostQuery,
		p.ID,
		p.Title,
		p.Slug,
		p.FeaturedImageURL,
		p.ImagePublicID,
		p.Description,
		p.PublishedDate,
		p.CreatedAt,
		p.UpdatedAt,
	)

	if err != nil {
		if isSlugConflict(err) {
			return fmt.Errorf("%w: %s", domain.ErrSlugConflict, p.Slug)
		}
		return fmt.Errorf("failed to insert post: %w", err)
	}

	return nil
}

const getPostQuery = `
	SELECT id, title, slug, featured_image_url, image_public_id, description, published_date, created_at, updated_at
	FROM posts
	WHERE id = ?
`

// GetPost retrieves a single post by ID
func (r *SQLitePostRepository) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	if id == "" {
		return nil, fmt.Errorf("post ID cannot be empty")
	}

	return r.getOne(ctx, getPostQuery, id)
}

const getPostBySlugQuery = `
	SELECT id, title, slug, featured_image_url, image_public_id, description, published_date, created_at, updated_at
	FROM posts
	WHERE slug = ?
`

// GetPostBySlug retrieves a single post by slug
func (r *SQLitePostRepository) GetPostBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	return r.getOne(ctx, getPostBySlugQuery, slug)
}

func (r *SQLitePostRepository) getOne(ctx context.Context, query string, arg any) (*domain.Post, error) {
	executor := db.GetExecutor(ctx, r.db)

	var row postRow
	err := executor.QueryRowContext(ctx, query, arg).Scan(
		&row.ID,
		&row.Title,
		&row.Slug,
		&row.FeaturedImageURL,
		&row.ImagePublicID,
		&row.Description,
		&row.PublishedDate,
		&row.CreatedAt,
		&row.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return row.toDomain(), nil
}

const listPostsQuery = `
	SELECT id, title, slug, featured_image_url, image_public_id, description, published_date, created_at, updated_at
	FROM posts
	WHERE ? = '' OR instr(lower(title), ?) > 0 OR instr(lower(description), ?) > 0
	ORDER BY published_date DESC
	LIMIT ? OFFSET ?
`

const countPostsQuery = `
	SELECT COUNT(*)
	FROM posts
	WHERE ? = '' OR instr(lower(title), ?) > 0 OR instr(lower(description), ?) > 0
`

// ListPosts retrieves one page of posts ordered by published date
// descending, filtered by a case-insensitive substring search over title and
// description. The second return value is the total number of matching posts.
func (r *SQLitePostRepository) ListPosts(ctx context.Context, q domain.ListQuery) ([]*domain.Post, int, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 10 // Default limit
	}
	offset := q.Offset()
	if offset < 0 {
		offset = 0
	}
	search := domain.NormalizeSearch(q.Search)

	rows, err := r.db.QueryContext(ctx, listPostsQuery, search, search, search, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]*domain.Post, 0)
	for rows.Next() {
		var row postRow
		err := rows.Scan(
			&row.ID,
			&row.Title,
			&row.Slug,
			&row.FeaturedImageURL,
			&row.ImagePublicID,
			&row.Description,
			&row.PublishedDate,
			&row.CreatedAt,
			&row.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan post row: %w", err)
		}
		posts = append(posts, row.toDomain())
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating post rows: %w", err)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countPostsQuery, search, search, search).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	return posts, total, nil
}

const updatePostQuery = `
	UPDATE posts
	SET title = ?, slug = ?, featured_image_url = ?, image_public_id = ?, description = ?, published_date = ?, updated_at = ?
	WHERE id = ?
`

// UpdatePost persists the mutable fields of a post and returns the stored
// record. Returns domain.ErrNotFound if the post does not exist and
// domain.ErrSlugConflict if the new slug collides with another post's.
func (r *SQLitePostRepository) UpdatePost(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	if p == nil {
		return nil, fmt.Errorf("post cannot be nil")
	}

	if p.ID == "" {
		return nil, fmt.Errorf("post ID cannot be empty")
	}

	var updated *domain.Post
	err := db.RunInTransaction(ctx, r.db, func(txCtx context.Context) error {
		executor := db.GetExecutor(txCtx, r.db)

		res, err := executor.ExecContext(txCtx, updatePostQuery,
			p.Title,
			p.Slug,
			p.FeaturedImageURL,
			p.ImagePublicID,
			p.Description,
			p.PublishedDate,
			time.Now().UTC(),
			p.ID,
		)
		if err != nil {
			if isSlugConflict(err) {
				return fmt.Errorf("%w: %s", domain.ErrSlugConflict, p.Slug)
			}
			return fmt.Errorf("failed to update post: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check updated rows: %w", err)
		}
		if affected == 0 {
			return domain.ErrNotFound
		}

		updated, err = r.getOne(txCtx, getPostQuery, p.ID)
		return err
	})

	if err != nil {
		return nil, err
	}

	return updated, nil
}

const deletePostQuery = `
	DELETE FROM posts WHERE id = ?
`

// DeletePost removes a post by ID. Returns domain.ErrNotFound if no post
// has that ID.
func (r *SQLitePostRepository) DeletePost(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("post ID cannot be empty")
	}

	executor := db.GetExecutor(ctx, r.db)
	res, err := executor.ExecContext(ctx, deletePostQuery, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

const slugCandidatesQuery = `
	SELECT lower(slug) FROM posts WHERE lower(slug) = ? OR lower(slug) LIKE ? || '-%'
`

// CountMatchingSlugs counts posts whose slug is exactly base or base plus a
// numeric suffix, case-insensitively. LIKE narrows candidates; the exact
// base(-N)? shape is checked per row since the suffix must be all digits.
func (r *SQLitePostRepository) CountMatchingSlugs(ctx context.Context, base string) (int, error) {
	base = strings.ToLower(base)

	executor := db.GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, slugCandidatesQuery, base, base)
	if err != nil {
		return 0, fmt.Errorf("failed to query slugs: %w", err)
	}
	defer rows.Close()

	pattern, err := regexp.Compile("^" + regexp.QuoteMeta(base) + `(-[0-9]+)?$`)
	if err != nil {
		return 0, fmt.Errorf("failed to build slug pattern: %w", err)
	}

	count := 0
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return 0, fmt.Errorf("failed to scan slug: %w", err)
		}
		if pattern.MatchString(slug) {
			count++
		}
	}

	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("error iterating slugs: %w", err)
	}

	return count, nil
}

// isSlugConflict reports whether err is the driver's UNIQUE constraint
// violation for the posts.slug column.
func isSlugConflict(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: posts.slug")
}

// postRow is a private struct used to scan database rows
type postRow struct {
	ID               string       `db:"id"`
	Title            string       `db:"title"`
	Slug             string       `db:"slug"`
	FeaturedImageURL string       `db:"featured_image_url"`
	ImagePublicID    string       `db:"image_public_id"`
	Description      string       `db:"description"`
	PublishedDate    sql.NullTime `db:"published_date"`
	CreatedAt        sql.NullTime `db:"created_at"`
	UpdatedAt        sql.NullTime `db:"updated_at"`
}

// toDomain converts a postRow to a domain.Post, handling nullable times
func (pr *postRow) toDomain() *domain.Post {
	post := &domain.Post{
		ID:               pr.ID,
		Title:            pr.Title,
		Slug:             pr.Slug,
		FeaturedImageURL: pr.FeaturedImageURL,
		ImagePublicID:    pr.ImagePublicID,
		Description:      pr.Description,
	}

	if pr.PublishedDate.Valid {
		post.PublishedDate = pr.PublishedDate.Time
	}
	if pr.CreatedAt.Valid {
		post.CreatedAt = pr.CreatedAt.Time
	}
	if pr.UpdatedAt.Valid {
		post.UpdatedAt = pr.UpdatedAt.Time
	}

	return post
}
