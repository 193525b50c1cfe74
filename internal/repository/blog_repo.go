package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"blogapi/internal/models"
)

type BlogRepository struct {
	db *sql.DB
}

func NewBlogRepository(db *sql.DB) *BlogRepository {
	return &BlogRepository{db: db}
}

// Ensure implementation of BlogStore interface at compile time.
var _ BlogStore = (*BlogRepository)(nil)

const (
	// Newest id first; edits never change the ordering.
	selectBlogsSQL = `
		SELECT b.id, b.title, b.content, b.author_id, u.email, b.created_at, b.updated_at
		FROM blogs b JOIN users u ON u.id = b.author_id
		ORDER BY b.id DESC
	`

	selectBlogByIDSQL = `
		SELECT b.id, b.title, b.content, b.author_id, u.email, b.created_at, b.updated_at
		FROM blogs b JOIN users u ON u.id = b.author_id
		WHERE b.id = ?
	`

	insertBlogSQL = `INSERT INTO blogs (title, content, author_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`
	updateBlogSQL = `UPDATE blogs SET title = ?, content = ?, updated_at = ? WHERE id = ?`
	deleteBlogSQL = `DELETE FROM blogs WHERE id = ?`
)

// List returns all posts joined with the author email, ordered by id DESC.
func (r *BlogRepository) List(ctx context.Context) ([]models.BlogWithAuthor, error) {
	rows, err := r.db.QueryContext(ctx, selectBlogsSQL)
	if err != nil {
		return nil, fmt.Errorf("select blogs: %w", err)
	}
	defer rows.Close()

	out := make([]models.BlogWithAuthor, 0, 16)
	for rows.Next() {
		var b models.BlogWithAuthor
		if err := rows.Scan(&b.ID, &b.Title, &b.Content, &b.AuthorID, &b.AuthorEmail, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan blog row: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate blog rows: %w", err)
	}
	return out, nil
}

// GetByID fetches one post with its author email. Returns (nil, nil) if not found.
func (r *BlogRepository) GetByID(ctx context.Context, id int) (*models.BlogWithAuthor, error) {
	var b models.BlogWithAuthor
	err := r.db.QueryRowContext(ctx, selectBlogByIDSQL, id).
		Scan(&b.ID, &b.Title, &b.Content, &b.AuthorID, &b.AuthorEmail, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select blog id=%d: %w", id, err)
	}
	return &b, nil
}

// Create inserts a post inside a transaction and returns its ID.
func (r *BlogRepository) Create(ctx context.Context, b models.Blog) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin insert blog: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	res, err := tx.ExecContext(ctx, insertBlogSQL, b.Title, b.Content, b.AuthorID, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("insert blog %q: %w", b.Title, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for blog %q: %w", b.Title, err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit insert blog %q: %w", b.Title, err)
	}
	return int(lastID), nil
}

// Update rewrites title, content and updated_at of an existing post.
// author_id is deliberately not part of the statement; authorship is fixed at
// creation.
func (r *BlogRepository) Update(ctx context.Context, id int, title, content, updatedAt string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update blog: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, updateBlogSQL, title, content, updatedAt, id); err != nil {
		return fmt.Errorf("update blog id=%d: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update blog id=%d: %w", id, err)
	}
	return nil
}

// Delete removes a post row.
func (r *BlogRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete blog: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, deleteBlogSQL, id); err != nil {
		return fmt.Errorf("delete blog id=%d: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete blog id=%d: %w", id, err)
	}
	return nil
}
