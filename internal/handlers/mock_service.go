package handlers

import (
	"context"
	"net/http"

	"blogapi/internal/models"
	"blogapi/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpUser    *models.User
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseEmail    string
	parseErr      error
	resolveUser   *models.User
	resolveErr    error

	lastSignUpEmail    string
	lastSignUpPassword string
	lastGenEmail       string
	lastGenPassword    string
	lastResolveToken   string
}

func (m *mockAuth) SignUp(_ context.Context, email, password string) (*models.User, error) {
	m.lastSignUpEmail = email
	m.lastSignUpPassword = password
	return m.signUpUser, m.signUpErr
}
func (m *mockAuth) GenerateToken(_ context.Context, email, password string) (string, error) {
	m.lastGenEmail = email
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (string, error) {
	return m.parseEmail, m.parseErr
}
func (m *mockAuth) ResolveUser(_ context.Context, token string) (*models.User, error) {
	m.lastResolveToken = token
	return m.resolveUser, m.resolveErr
}

type mockBlogs struct {
	listResp   []models.BlogWithAuthor
	listErr    error
	getResp    *models.BlogWithAuthor
	getErr     error
	createResp *models.Blog
	createErr  error
	updateResp *models.Blog
	updateErr  error
	deleteResp *models.Blog
	deleteErr  error

	lastCreateAuthorID int
	lastUpdateID       int
	lastUpdateActorID  int
	lastDeleteID       int
	lastDeleteActorID  int
}

func (m *mockBlogs) List(_ context.Context) ([]models.BlogWithAuthor, error) {
	return m.listResp, m.listErr
}
func (m *mockBlogs) Get(_ context.Context, id int) (*models.BlogWithAuthor, error) {
	return m.getResp, m.getErr
}
func (m *mockBlogs) Create(_ context.Context, authorID int, title, content string) (*models.Blog, error) {
	m.lastCreateAuthorID = authorID
	return m.createResp, m.createErr
}
func (m *mockBlogs) Update(_ context.Context, id, actorID int, title, content string) (*models.Blog, error) {
	m.lastUpdateID = id
	m.lastUpdateActorID = actorID
	return m.updateResp, m.updateErr
}
func (m *mockBlogs) Delete(_ context.Context, id, actorID int) (*models.Blog, error) {
	m.lastDeleteID = id
	m.lastDeleteActorID = actorID
	return m.deleteResp, m.deleteErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
