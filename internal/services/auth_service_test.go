package services

import (
	"testing"

	"github.com/mgcruz/rollcall/internal/models"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	emailExists bool
	user        models.User
	found       bool

	created *models.User
	updates map[string]any
}

func (repo *fakeUserRepo) ExistsByNormalizedEmail(email string) (bool, error) {
	return repo.emailExists, nil
}

func (repo *fakeUserRepo) FindByNormalizedEmail(email string) (models.User, bool, error) {
	return repo.user, repo.found, nil
}

func (repo *fakeUserRepo) FindByID(userID string) (models.User, bool, error) {
	return repo.user, repo.found, nil
}

func (repo *fakeUserRepo) FindByIDs(userIDs []string) ([]models.User, error) {
	return []models.User{repo.user}, nil
}

func (repo *fakeUserRepo) Create(user *models.User) error {
	repo.created = user
	return nil
}

func (repo *fakeUserRepo) UpdateByID(userID string, updates map[string]any) error {
	repo.updates = updates
	return nil
}

func TestRegister(t *testing.T) {
	repo := &fakeUserRepo{}
	service := NewAuthService(repo, fixedNow)
	name := "Alice"

	user, err := service.Register(RegisterInput{Name: &name, Email: "  Alice@Example.COM ", Password: "correct horse"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.ID == "" {
		t.Fatal("expected a generated id")
	}
	if user.PasswordHash == nil {
		t.Fatal("expected a password hash")
	}
	if bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte("correct horse")) != nil {
		t.Fatal("stored hash does not match the password")
	}
}

func TestRegisterValidation(t *testing.T) {
	service := NewAuthService(&fakeUserRepo{}, fixedNow)

	if _, err := service.Register(RegisterInput{Email: "not-an-email", Password: "longenough"}); KindOf(err) != KindValidation {
		t.Fatalf("expected validation error for a bad email, got %v", err)
	}
	if _, err := service.Register(RegisterInput{Email: "a@b.com", Password: "short"}); KindOf(err) != KindValidation {
		t.Fatalf("expected validation error for a short password, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service := NewAuthService(&fakeUserRepo{emailExists: true}, fixedNow)

	_, err := service.Register(RegisterInput{Email: "a@b.com", Password: "longenough"})
	if KindOf(err) != KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash setup failed: %v", err)
	}
	passwordHash := string(hashed)
	repo := &fakeUserRepo{
		user:  models.User{ID: "user-1", Email: "a@b.com", PasswordHash: &passwordHash},
		found: true,
	}
	service := NewAuthService(repo, fixedNow)

	user, err := service.Login("A@B.com", "correct horse")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != "user-1" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := service.Login("a@b.com", "wrong"); KindOf(err) != KindAuthentication {
		t.Fatalf("expected authentication error for a bad password, got %v", err)
	}

	repo.found = false
	if _, err := service.Login("ghost@b.com", "whatever"); KindOf(err) != KindAuthentication {
		t.Fatalf("expected authentication error for an unknown email, got %v", err)
	}
}

func TestUpdateName(t *testing.T) {
	repo := &fakeUserRepo{}
	service := NewAuthService(repo, fixedNow)
	requester := &models.User{ID: "user-1"}

	if err := service.UpdateName(requester, "  Alice  "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.updates["name"] != "Alice" {
		t.Fatalf("expected trimmed name update, got %v", repo.updates)
	}

	if err := service.UpdateName(requester, "   "); KindOf(err) != KindValidation {
		t.Fatalf("expected validation error for a blank name, got %v", err)
	}
}

func TestUpdatePassword(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("old password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash setup failed: %v", err)
	}
	passwordHash := string(hashed)
	repo := &fakeUserRepo{}
	service := NewAuthService(repo, fixedNow)
	requester := &models.User{ID: "user-1", PasswordHash: &passwordHash}

	if err := service.UpdatePassword(requester, "old password", "new password"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	updatedHash, ok := repo.updates["password_hash"].(string)
	if !ok {
		t.Fatalf("expected a password_hash update, got %v", repo.updates)
	}
	if bcrypt.CompareHashAndPassword([]byte(updatedHash), []byte("new password")) != nil {
		t.Fatal("stored hash does not match the new password")
	}

	if err := service.UpdatePassword(requester, "wrong", "another password"); KindOf(err) != KindAuthentication {
		t.Fatalf("expected authentication error for a wrong current password, got %v", err)
	}
	if err := service.UpdatePassword(requester, "old password", "short"); KindOf(err) != KindValidation {
		t.Fatalf("expected validation error for a short password, got %v", err)
	}
}
