package repository

import (
	"context"
	"database/sql"

	"blogapi/internal/models"
)

// CredentialStore persists user records. Lookups return (nil, nil) when the
// row is absent.
type CredentialStore interface {
	Create(ctx context.Context, email, passwordHash, createdAt string) (int, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	CountUsers(ctx context.Context) (int, error)
}

// BlogStore persists posts. Reads join the author's email.
type BlogStore interface {
	List(ctx context.Context) ([]models.BlogWithAuthor, error)
	GetByID(ctx context.Context, id int) (*models.BlogWithAuthor, error)
	Create(ctx context.Context, b models.Blog) (int, error)
	Update(ctx context.Context, id int, title, content, updatedAt string) error
	Delete(ctx context.Context, id int) error
}

type Repository struct {
	Users CredentialStore
	Blogs BlogStore
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users: NewUserRepository(db),
		Blogs: NewBlogRepository(db),
	}
}
