package auth

import (
	"context"
	"errors"
	"testing"

	"scholar-sync/internal/domain/user"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type memUserRepo struct {
	byID      map[uuid.UUID]user.User
	byEmail   map[string]user.User
	createErr error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{
		byID:    make(map[uuid.UUID]user.User),
		byEmail: make(map[string]user.User),
	}
}

func (r *memUserRepo) Create(ctx context.Context, u user.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, exists := r.byEmail[u.Email]; exists {
		return errors.New("unique violation")
	}
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	if u, ok := r.byID[id]; ok {
		return u, nil
	}
	return user.User{}, user.ErrNotFound
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return user.User{}, user.ErrNotFound
}

func (r *memUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := r.byEmail[email]
	return ok, nil
}

func TestRegisterHashesPasswordAndNormalizesEmail(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewService(repo)

	created, err := svc.Register(context.Background(), RegisterInput{
		Email:     "  Student@Example.COM ",
		Password:  "correct-horse",
		FirstName: "Ada",
	})
	if err != nil {
		t.Fatalf("expected registration to succeed, got %v", err)
	}
	if created.Email != "student@example.com" {
		t.Fatalf("expected normalized email, got %q", created.Email)
	}
	if created.PasswordHash != "" {
		t.Fatalf("expected the returned user to carry no password hash")
	}
	if created.FirstName == nil || *created.FirstName != "Ada" {
		t.Fatalf("expected first name to be kept, got %v", created.FirstName)
	}

	stored := repo.byEmail["student@example.com"]
	if stored.PasswordHash == "correct-horse" {
		t.Fatalf("expected the stored password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct-horse")); err != nil {
		t.Fatalf("expected the stored hash to verify, got %v", err)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc := NewService(newMemUserRepo())

	_, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.com", Password: "short"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewService(repo)

	first := RegisterInput{Email: "dup@example.com", Password: "long-enough"}
	if _, err := svc.Register(context.Background(), first); err != nil {
		t.Fatalf("expected first registration to succeed, got %v", err)
	}
	if _, err := svc.Register(context.Background(), first); !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestLoginRoundTrip(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewService(repo)

	if _, err := svc.Register(context.Background(), RegisterInput{Email: "login@example.com", Password: "long-enough"}); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	u, err := svc.Login(context.Background(), LoginInput{Email: "LOGIN@example.com", Password: "long-enough"})
	if err != nil {
		t.Fatalf("expected login to succeed, got %v", err)
	}
	if u.Email != "login@example.com" {
		t.Fatalf("expected the registered user back, got %q", u.Email)
	}
	if u.PasswordHash != "" {
		t.Fatalf("expected the returned user to carry no password hash")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewService(repo)

	if _, err := svc.Register(context.Background(), RegisterInput{Email: "login@example.com", Password: "long-enough"}); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	if _, err := svc.Login(context.Background(), LoginInput{Email: "login@example.com", Password: "wrong-password"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmailIndistinguishable(t *testing.T) {
	svc := NewService(newMemUserRepo())

	// An unknown email and a bad password return the same error, so the
	// endpoint cannot be used to probe for registered addresses.
	if _, err := svc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "whatever"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
