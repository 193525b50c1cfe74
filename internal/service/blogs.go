package service

import (
	"context"
	"errors"
	"time"

	"blogapi/internal/models"
	"blogapi/internal/repository"
)

// dateLayout is the day-granularity format every stored date uses.
const dateLayout = "2006-01-02"

// Domain errors for blog flows.
var (
	ErrBlogNotFound = errors.New("blog post not found")
	ErrNotOwner     = errors.New("not the author of this post")
)

// BlogService implements post CRUD over the blog store.
type BlogService struct {
	blogs repository.BlogStore
}

func NewBlogService(blogs repository.BlogStore) *BlogService {
	return &BlogService{blogs: blogs}
}

var _ Blogs = (*BlogService)(nil)

// today is swappable in tests.
var today = func() string { return time.Now().Format(dateLayout) }

func (s *BlogService) List(ctx context.Context) ([]models.BlogWithAuthor, error) {
	return s.blogs.List(ctx)
}

func (s *BlogService) Get(ctx context.Context, id int) (*models.BlogWithAuthor, error) {
	b, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBlogNotFound
	}
	return b, nil
}

// Create stores a new post with created_at == updated_at == today.
func (s *BlogService) Create(ctx context.Context, authorID int, title, content string) (*models.Blog, error) {
	now := today()
	b := models.Blog{
		Title:     title,
		Content:   content,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	id, err := s.blogs.Create(ctx, b)
	if err != nil {
		return nil, err
	}
	b.ID = id
	return &b, nil
}

// Update rewrites title/content and refreshes updated_at. The existence check
// runs before the ownership check so a missing post is always NotFound, never
// Forbidden.
func (s *BlogService) Update(ctx context.Context, id, actorID int, title, content string) (*models.Blog, error) {
	existing, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrBlogNotFound
	}
	if existing.AuthorID != actorID {
		return nil, ErrNotOwner
	}

	now := today()
	if err := s.blogs.Update(ctx, id, title, content, now); err != nil {
		return nil, err
	}

	updated := existing.Blog()
	updated.Title = title
	updated.Content = content
	updated.UpdatedAt = now
	return &updated, nil
}

// Delete removes a post and returns the deleted row for the confirmation
// payload. Same existence-before-ownership ordering as Update.
func (s *BlogService) Delete(ctx context.Context, id, actorID int) (*models.Blog, error) {
	existing, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrBlogNotFound
	}
	if existing.AuthorID != actorID {
		return nil, ErrNotOwner
	}

	if err := s.blogs.Delete(ctx, id); err != nil {
		return nil, err
	}
	deleted := existing.Blog()
	return &deleted, nil
}
