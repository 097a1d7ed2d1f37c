package auth

import (
	"context"
	"testing"
	"time"

	pkgAuth "github.com/annalofgren/wishvault-backend/pkg/auth"
	"github.com/annalofgren/wishvault-backend/pkg/config"
	"github.com/annalofgren/wishvault-backend/pkg/db/models"
	pkgerrors "github.com/annalofgren/wishvault-backend/pkg/errors"
	"github.com/annalofgren/wishvault-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	byEmail    map[string]*models.User
	lastLogins map[uuid.UUID]time.Time
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byEmail:    map[string]*models.User{},
		lastLogins: map[uuid.UUID]time.Time{},
	}
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if user, ok := s.byEmail[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	s.lastLogins[id] = at
	return nil
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{
		Secret:       "test-secret",
		TTL:          168 * time.Hour,
		CookieName:   "session",
		CookieSecure: true,
	}
}

func seedUser(t *testing.T, repo *stubUserRepo, email, password string) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, testPasswordConfig())
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{ID: uuid.New(), Email: email, PasswordHash: hash}
	repo.byEmail[email] = user
	return user
}

func TestLoginSuccess(t *testing.T) {
	repo := newStubUserRepo()
	user := seedUser(t, repo, "anna@example.com", "hunter2hunter2")

	svc, err := NewService(ServiceParams{UserRepo: repo, SessionConfig: testSessionConfig()})
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}

	result, err := svc.Login(context.Background(), LoginRequest{Email: "Anna@Example.com ", Password: "hunter2hunter2"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if result.User.ID != user.ID {
		t.Fatalf("expected user %s, got %s", user.ID, result.User.ID)
	}

	session := pkgAuth.DecryptSessionToken(testSessionConfig(), result.Token)
	if session == nil || session.UserID != user.ID {
		t.Fatalf("minted token should decode to the user session, got %+v", session)
	}

	if _, ok := repo.lastLogins[user.ID]; !ok {
		t.Fatal("last login should be recorded")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "anna@example.com", "hunter2hunter2")

	svc, err := NewService(ServiceParams{UserRepo: repo, SessionConfig: testSessionConfig()})
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}

	_, err = svc.Login(context.Background(), LoginRequest{Email: "anna@example.com", Password: "wrong"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, err := NewService(ServiceParams{UserRepo: newStubUserRepo(), SessionConfig: testSessionConfig()})
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}

	_, err = svc.Login(context.Background(), LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginEmptyEmail(t *testing.T) {
	svc, err := NewService(ServiceParams{UserRepo: newStubUserRepo(), SessionConfig: testSessionConfig()})
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}

	_, err = svc.Login(context.Background(), LoginRequest{Email: "  ", Password: "whatever"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}
