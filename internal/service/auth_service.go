package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"blogapi/internal/models"
	"blogapi/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Token lifetimes. Login always issues loginTokenTTL; defaultTokenTTL is the
// fallback when IssueToken is called without an explicit lifetime. The split
// mirrors the deployed behavior and is kept on purpose.
const (
	defaultTokenTTL = 15 * time.Minute
	loginTokenTTL   = 30 * time.Minute
)

// Domain errors for auth flows.
var (
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrInvalidToken       = errors.New("could not validate credentials")
	ErrDuplicateEmail     = repository.ErrDuplicateEmail
)

// AuthService handles registration, login and token verification.
type AuthService struct {
	users      repository.CredentialStore
	signingKey []byte
}

func NewAuthService(users repository.CredentialStore, signingKey string) *AuthService {
	return &AuthService{users: users, signingKey: []byte(signingKey)}
}

// Claims is the fixed token payload: subject (user email) plus the standard
// registered fields. Tokens without a subject are rejected on parse.
type Claims struct {
	jwt.RegisteredClaims
}

// SignUp hashes the password and creates a new user dated today.
func (s *AuthService) SignUp(ctx context.Context, email, password string) (*models.User, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}
	createdAt := time.Now().Format(dateLayout)
	id, err := s.users.Create(ctx, email, hash, createdAt)
	if err != nil {
		return nil, err
	}
	return &models.User{ID: id, Email: email, PasswordHash: hash, CreatedAt: createdAt}, nil
}

// GenerateToken validates credentials and returns a signed JWT with the login
// lifetime. Unknown email and wrong password are indistinguishable to the
// caller.
func (s *AuthService) GenerateToken(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrInvalidCredentials
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.IssueToken(u.Email, loginTokenTTL)
}

// IssueToken signs a token embedding the email as subject. A non-positive ttl
// falls back to the default lifetime.
func (s *AuthService) IssueToken(email string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	return token.SignedString(s.signingKey)
}

// ParseToken verifies signature and expiry and returns the subject email.
// Any failure mode (bad signature, wrong algorithm, malformed payload,
// missing subject, expired) collapses to ErrInvalidToken.
func (s *AuthService) ParseToken(accessToken string) (string, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// ResolveUser turns a bearer token into the acting principal. A token whose
// subject no longer maps to a stored user is as invalid as a bad signature.
func (s *AuthService) ResolveUser(ctx context.Context, accessToken string) (*models.User, error) {
	email, err := s.ParseToken(accessToken)
	if err != nil {
		return nil, err
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidToken
	}
	return u, nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
