package domain

import (
	"context"
	"errors"
	"time"
)

// Role is fixed at registration; no endpoint changes it.
type Role string

const (
	RoleEmployer  Role = "Employer"
	RoleJobSeeker Role = "Job Seeker"
)

func (r Role) Valid() bool {
	return r == RoleEmployer || r == RoleJobSeeker
}

var (
	// ErrDuplicateEmail is returned by UserRepository.Create when the email is taken.
	ErrDuplicateEmail = errors.New("email already exists")
	ErrTokenInvalid   = errors.New("token invalid")
	ErrTokenExpired   = errors.New("token expired")
)

type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name" validate:"required,min=3,max=30"`
	Email     string    `json:"email" validate:"required,email"`
	Phone     string    `json:"phone" validate:"required"`
	Password  string    `json:"-" validate:"required,min=8,max=32"`
	Role      Role      `json:"role" validate:"required,valid_role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Identity is the authenticated caller resolved from a session token.
type Identity struct {
	UserID string `json:"id"`
	Role   Role   `json:"role"`
}

// Session is what a successful register/login hands back to the client.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SessionClaims are the verified contents of a session token.
type SessionClaims struct {
	TokenID   string
	UserID    string
	ExpiresAt time.Time
}

type RegisterInput struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Phone    string `json:"phone" form:"phone"`
	Role     Role   `json:"role" form:"role"`
	Password string `json:"password" form:"password"`
}

type LoginInput struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Role     Role   `json:"role" form:"role"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	// GetByEmail includes the password hash.
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// TokenManager issues and verifies session tokens.
type TokenManager interface {
	Issue(userID string) (*Session, *SessionClaims, error)
	Verify(token string) (*SessionClaims, error)
}

// SessionStore remembers revoked session tokens until they expire.
type SessionStore interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// PasswordHasher hides the hashing scheme from the auth usecase.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

type AuthUsecase interface {
	Register(ctx context.Context, in RegisterInput) (*User, *Session, error)
	Login(ctx context.Context, in LoginInput) (*User, *Session, error)
	Logout(ctx context.Context, token string)
	// ResolveSession is invoked once per request before dispatch.
	ResolveSession(ctx context.Context, token string) (*User, error)
}
