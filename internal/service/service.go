package service

import (
	"context"

	"blogapi/internal/models"
	"blogapi/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, email, password string) (*models.User, error)
	GenerateToken(ctx context.Context, email, password string) (string, error)
	ParseToken(accessToken string) (string, error)
	ResolveUser(ctx context.Context, accessToken string) (*models.User, error)
}

// Blogs exposes post CRUD with ownership enforcement. Mutations take the
// acting user's id; existence failures take precedence over ownership
// failures.
type Blogs interface {
	List(ctx context.Context) ([]models.BlogWithAuthor, error)
	Get(ctx context.Context, id int) (*models.BlogWithAuthor, error)
	Create(ctx context.Context, authorID int, title, content string) (*models.Blog, error)
	Update(ctx context.Context, id, actorID int, title, content string) (*models.Blog, error)
	Delete(ctx context.Context, id, actorID int) (*models.Blog, error)
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Authorization
	Blogs
}

// NewService wires the repository layer into concrete services. The signing
// key comes from config; it is injected here rather than read from any
// package-level state.
func NewService(repos *repository.Repository, signingKey string) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, signingKey),
		Blogs:         NewBlogService(repos.Blogs),
	}
}
