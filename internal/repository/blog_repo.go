package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/portfolio-api/internal/database"
	"github.com/portfolio-api/internal/models"
)

const blogColumns = `id, title, slug, content, author, tags, image_url, is_published,
	published_at, created_at, updated_at`

// blogRepo is the postgres implementation of BlogRepository
type blogRepo struct {
	db *database.DB
}

// NewBlogRepo creates a new blog post repository
func NewBlogRepo(db *database.DB) BlogRepository {
	return &blogRepo{db: db}
}

// List returns posts matching filter. Published listings are ordered by
// publication time with never-published rows last, full listings by last edit.
func (r *blogRepo) List(ctx context.Context, filter models.ListFilter) ([]*models.BlogPost, error) {
	query := `SELECT ` + blogColumns + ` FROM blog_posts`
	if filter.PublishedOnly {
		query += " WHERE is_published = TRUE ORDER BY published_at DESC NULLS LAST, created_at DESC"
	} else {
		query += " ORDER BY updated_at DESC"
	}

	var args []interface{}
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]*models.BlogPost, 0)
	for rows.Next() {
		post, err := scanBlogPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// GetByID retrieves a post by ID
func (r *blogRepo) GetByID(ctx context.Context, id string) (*models.BlogPost, error) {
	return r.getOne(ctx, `SELECT `+blogColumns+` FROM blog_posts WHERE id = $1`, id)
}

// GetBySlug retrieves a post by slug
func (r *blogRepo) GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	return r.getOne(ctx, `SELECT `+blogColumns+` FROM blog_posts WHERE slug = $1`, slug)
}

func (r *blogRepo) getOne(ctx context.Context, query string, arg string) (*models.BlogPost, error) {
	post, err := scanBlogPost(r.db.QueryRowContext(ctx, query, arg))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return post, err
}

// SlugExists reports whether a post other than excludeID uses slug
func (r *blogRepo) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var exists bool
	var err error
	if excludeID == "" {
		err = r.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM blog_posts WHERE slug = $1)`, slug,
		).Scan(&exists)
	} else {
		err = r.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM blog_posts WHERE slug = $1 AND id <> $2)`, slug, excludeID,
		).Scan(&exists)
	}
	return exists, err
}

// Create inserts a new post
func (r *blogRepo) Create(ctx context.Context, post *models.BlogPost) error {
	query := `
		INSERT INTO blog_posts (` + blogColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.ExecContext(ctx, query,
		post.ID, post.Title, post.Slug, post.Content, nullString(post.Author),
		jsonList(post.Tags), nullString(post.ImageURL), post.IsPublished,
		nullTime(post.PublishedAt), post.CreatedAt, post.UpdatedAt,
	)
	return duplicateFromPostgres(err, "blog post", "slug", post.Slug)
}

// Update overwrites the stored post with the same ID
func (r *blogRepo) Update(ctx context.Context, post *models.BlogPost) (bool, error) {
	query := `
		UPDATE blog_posts SET
			title = $1, slug = $2, content = $3, author = $4, tags = $5, image_url = $6,
			is_published = $7, published_at = $8, updated_at = $9
		WHERE id = $10
	`
	result, err := r.db.ExecContext(ctx, query,
		post.Title, post.Slug, post.Content, nullString(post.Author), jsonList(post.Tags),
		nullString(post.ImageURL), post.IsPublished, nullTime(post.PublishedAt),
		post.UpdatedAt, post.ID,
	)
	if err != nil {
		return false, duplicateFromPostgres(err, "blog post", "slug", post.Slug)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// Delete removes a post and returns the removed row
func (r *blogRepo) Delete(ctx context.Context, id string) (*models.BlogPost, error) {
	return r.getOne(ctx, `DELETE FROM blog_posts WHERE id = $1 RETURNING `+blogColumns, id)
}

// Count returns the total number of posts
func (r *blogRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM blog_posts").Scan(&count)
	return count, err
}

// StreamAll streams all posts for export
func (r *blogRepo) StreamAll(ctx context.Context, callback func(*models.BlogPost) error) error {
	rows, err := r.db.QueryContext(ctx, `SELECT `+blogColumns+` FROM blog_posts ORDER BY created_at`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		post, err := scanBlogPost(rows)
		if err != nil {
			return err
		}
		if err := callback(post); err != nil {
			return err
		}
	}
	return rows.Err()
}

func scanBlogPost(row rowScanner) (*models.BlogPost, error) {
	var b models.BlogPost
	var tagsJSON []byte
	var author, imageURL sql.NullString
	var publishedAt sql.NullTime

	err := row.Scan(
		&b.ID, &b.Title, &b.Slug, &b.Content, &author, &tagsJSON, &imageURL,
		&b.IsPublished, &publishedAt, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.Tags = decodeList(tagsJSON)
	b.Author = author.String
	b.ImageURL = imageURL.String
	b.PublishedAt = timePtr(publishedAt)
	return &b, nil
}
