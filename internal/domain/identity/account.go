package identity

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/campusmarket/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// DefaultAvatar is the avatar reference given to new accounts
const DefaultAvatar = "default.jpg"

// Username and password bounds
const (
	UsernameMinLength = 2
	UsernameMaxLength = 20
	PasswordMinLength = 6
	PasswordMaxLength = 72 // bcrypt ignores bytes beyond 72
	EmailMaxLength    = 120
)

// PasswordCost is the bcrypt cost used for new password hashes.
// Tests lower it to bcrypt.MinCost.
var PasswordCost = 12

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Account is a registered marketplace user.
// It is the aggregate root for authentication and ownership.
type Account struct {
	shared.BaseAggregateRoot
	Username     string
	Email        string
	PasswordHash string
	Avatar       string
	LastLoginAt  *time.Time
}

// NewAccount validates the registration data and creates an account with a hashed password
func NewAccount(username, email, password string) (*Account, error) {
	username = strings.TrimSpace(username)
	email = NormalizeEmail(email)

	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	account := &Account{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          username,
		Email:             email,
		PasswordHash:      passwordHash,
		Avatar:            DefaultAvatar,
	}

	account.AddDomainEvent(NewAccountRegisteredEvent(account))

	return account, nil
}

// VerifyPassword verifies if the provided password matches the stored hash
func (a *Account) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password))
	return err == nil
}

// RecordLogin records a successful authentication
func (a *Account) RecordLogin() {
	now := shared.Now()
	a.LastLoginAt = &now
	a.UpdatedAt = now
	a.IncrementVersion()
}

// SetAvatar replaces the avatar reference; an empty value restores the default
func (a *Account) SetAvatar(avatar string) error {
	avatar = strings.TrimSpace(avatar)
	if avatar == "" {
		avatar = DefaultAvatar
	}
	if len(avatar) > 255 {
		return shared.NewValidationError("Avatar reference cannot exceed 255 characters")
	}
	a.Avatar = avatar
	a.Touch()
	a.IncrementVersion()
	return nil
}

// NormalizeEmail lowercases and trims an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateUsername(username string) error {
	n := utf8.RuneCountInString(username)
	if n == 0 {
		return shared.NewValidationError("Username cannot be empty")
	}
	if n < UsernameMinLength || n > UsernameMaxLength {
		return shared.NewValidationError("Username must be between 2 and 20 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewValidationError("Email cannot be empty")
	}
	if len(email) > EmailMaxLength {
		return shared.NewValidationError("Email cannot exceed 120 characters")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewValidationError("Invalid email format")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewValidationError("Password cannot be empty")
	}
	if len(password) < PasswordMinLength {
		return shared.NewValidationError("Password must be at least 6 characters")
	}
	if len(password) > PasswordMaxLength {
		return shared.NewValidationError("Password cannot exceed 72 bytes")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
