package services

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mgcruz/rollcall/internal/models"
	"golang.org/x/crypto/bcrypt"
)

type AuthUserRepository interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	FindByNormalizedEmail(email string) (models.User, bool, error)
	FindByID(userID string) (models.User, bool, error)
	FindByIDs(userIDs []string) ([]models.User, error)
	Create(user *models.User) error
	UpdateByID(userID string, updates map[string]any) error
}

type AuthService struct {
	users AuthUserRepository
	now   func() time.Time
}

func NewAuthService(users AuthUserRepository, now func() time.Time) *AuthService {
	if now == nil {
		now = time.Now
	}
	return &AuthService{users: users, now: now}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type RegisterInput struct {
	Name     *string
	Email    string
	Password string
}

func (service *AuthService) Register(input RegisterInput) (*models.User, error) {
	email := NormalizeEmail(input.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, ValidationError("a valid email is required")
	}
	if len(input.Password) < 8 {
		return nil, ValidationError("password must be at least 8 characters")
	}

	exists, err := service.users.ExistsByNormalizedEmail(email)
	if err != nil {
		return nil, TransactionError("check email", err)
	}
	if exists {
		return nil, ConflictError("email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, TransactionError("hash password", err)
	}
	passwordHash := string(hashed)

	user := models.User{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Email:        email,
		PasswordHash: &passwordHash,
		CreatedAt:    service.now().UTC(),
	}
	if err := service.users.Create(&user); err != nil {
		return nil, TransactionError("create user", err)
	}
	return &user, nil
}

func (service *AuthService) Login(email string, password string) (*models.User, error) {
	user, found, err := service.users.FindByNormalizedEmail(NormalizeEmail(email))
	if err != nil {
		return nil, TransactionError("load user", err)
	}
	if !found || user.PasswordHash == nil {
		return nil, AuthenticationError("invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)) != nil {
		return nil, AuthenticationError("invalid credentials")
	}
	return &user, nil
}

func (service *AuthService) FindByID(userID string) (*models.User, error) {
	user, found, err := service.users.FindByID(userID)
	if err != nil {
		return nil, TransactionError("load user", err)
	}
	if !found {
		return nil, NotFoundError("account does not exist")
	}
	return &user, nil
}

func (service *AuthService) FindByEmail(email string) (*models.User, error) {
	user, found, err := service.users.FindByNormalizedEmail(NormalizeEmail(email))
	if err != nil {
		return nil, TransactionError("load user", err)
	}
	if !found {
		return nil, NotFoundError("account does not exist")
	}
	return &user, nil
}

func (service *AuthService) FindByIDs(userIDs []string) ([]models.User, error) {
	users, err := service.users.FindByIDs(dedupeStrings(userIDs))
	if err != nil {
		return nil, TransactionError("load users", err)
	}
	return users, nil
}

// UpdateName backfills or changes the display name.
func (service *AuthService) UpdateName(requester *models.User, name string) error {
	if requester == nil {
		return AuthenticationError("user is not authenticated")
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ValidationError("name is required")
	}
	if err := service.users.UpdateByID(requester.ID, map[string]any{"name": trimmed}); err != nil {
		return TransactionError("update name", err)
	}
	return nil
}

func (service *AuthService) UpdatePassword(requester *models.User, currentPassword string, newPassword string) error {
	if requester == nil {
		return AuthenticationError("user is not authenticated")
	}
	if len(newPassword) < 8 {
		return ValidationError("password must be at least 8 characters")
	}
	if requester.PasswordHash == nil ||
		bcrypt.CompareHashAndPassword([]byte(*requester.PasswordHash), []byte(currentPassword)) != nil {
		return AuthenticationError("invalid credentials")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return TransactionError("hash password", err)
	}
	if err := service.users.UpdateByID(requester.ID, map[string]any{"password_hash": string(hashed)}); err != nil {
		return TransactionError("update password", err)
	}
	return nil
}
