package services

import (
	"errors"
	"regexp"
	"strings"

	"hadron_scholar_backend/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Validation failures surface as sentinel errors so handlers can render them
// as messages rather than generic server errors.
var (
	ErrInvalidEmail       = errors.New("a valid email address is required")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Register validates the input and creates the account with a bcrypt
// password hash. The email is normalized to lower case.
func (s *UserService) Register(email, password, confirmPassword string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if len(password) < 8 {
		return nil, ErrPasswordTooShort
	}
	if password != confirmPassword {
		return nil, ErrPasswordMismatch
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{Email: email, PasswordHash: string(hash)}
	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies the credentials. Unknown email and wrong password
// both return ErrInvalidCredentials.
func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (s *UserService) GetByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) SetDigestEnabled(id uuid.UUID, enabled bool) error {
	return s.db.Model(&models.User{}).Where("id = ?", id).
		Update("email_digest_enabled", enabled).Error
}

// DigestSubscribers returns every user with the digest flag set.
func (s *UserService) DigestSubscribers() ([]models.User, error) {
	var users []models.User
	err := s.db.Where("email_digest_enabled = ?", true).Find(&users).Error
	return users, err
}
