package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"
	"job-board-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	msgRegisterIncomplete = "Please fill full registration form!"
	msgEmailTaken         = "Email is Already Exist"
	msgLoginIncomplete    = "Please provide email, password and role."
	msgBadCredentials     = "Invalid Email or Password"
	msgRoleMismatch       = "User with this role is not found!"
	msgNotAuthorized      = "User Not Authorized"
	msgTokenInvalid       = "Json Web Token is invalid, Try again."
	msgTokenExpired       = "Json Web Token is Expired, Try again."
)

type authUsecase struct {
	userRepo domain.UserRepository
	hasher   domain.PasswordHasher
	tokens   domain.TokenManager
	sessions domain.SessionStore
	validate *validator.Validate
	log      *zap.Logger
}

func NewAuthUsecase(
	userRepo domain.UserRepository,
	hasher domain.PasswordHasher,
	tokens domain.TokenManager,
	sessions domain.SessionStore,
	validate *validator.Validate,
	log *zap.Logger,
) domain.AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		sessions: sessions,
		validate: validate,
		log:      log,
	}
}

func (u *authUsecase) Register(ctx context.Context, in domain.RegisterInput) (*domain.User, *domain.Session, error) {
	if blank(in.Name, in.Email, in.Phone, string(in.Role), in.Password) {
		return nil, nil, apperror.Validation(msgRegisterIncomplete)
	}

	existing, err := u.userRepo.GetByEmail(ctx, in.Email)
	if err == nil && existing != nil {
		return nil, nil, apperror.Conflict(msgEmailTaken)
	}
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, nil, apperror.Internal(err)
	}

	user := &domain.User{
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Password:  in.Password,
		Role:      in.Role,
		CreatedAt: time.Now(),
	}
	// Length rules apply to the plaintext password.
	if err := u.validate.Struct(user); err != nil {
		return nil, nil, apperror.Validation(validation.Message(err))
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, nil, apperror.Internal(err)
	}
	user.Password = hash

	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, nil, apperror.Conflict(msgEmailTaken)
		}
		return nil, nil, apperror.Internal(err)
	}

	session, _, err := u.tokens.Issue(user.ID)
	if err != nil {
		return nil, nil, apperror.Internal(err)
	}

	u.log.Info("user registered", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	user.Password = ""
	return user, session, nil
}

func (u *authUsecase) Login(ctx context.Context, in domain.LoginInput) (*domain.User, *domain.Session, error) {
	if blank(in.Email, in.Password, string(in.Role)) {
		return nil, nil, apperror.Validation(msgLoginIncomplete)
	}

	user, err := u.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, apperror.Auth(msgBadCredentials)
		}
		return nil, nil, apperror.Internal(err)
	}
	if !u.hasher.Compare(user.Password, in.Password) {
		return nil, nil, apperror.Auth(msgBadCredentials)
	}
	if user.Role != in.Role {
		return nil, nil, apperror.Auth(msgRoleMismatch)
	}

	session, _, err := u.tokens.Issue(user.ID)
	if err != nil {
		return nil, nil, apperror.Internal(err)
	}

	user.Password = ""
	return user, session, nil
}

func (u *authUsecase) Logout(ctx context.Context, token string) {
	if token == "" {
		return
	}
	claims, err := u.tokens.Verify(token)
	if err != nil {
		return
	}
	if err := u.sessions.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		u.log.Warn("session revoke failed", zap.String("user_id", claims.UserID), zap.Error(err))
	}
}

func (u *authUsecase) ResolveSession(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, apperror.Auth(msgNotAuthorized)
	}

	claims, err := u.tokens.Verify(token)
	if err != nil {
		if errors.Is(err, domain.ErrTokenExpired) {
			return nil, apperror.Auth(msgTokenExpired)
		}
		return nil, apperror.Auth(msgTokenInvalid)
	}

	revoked, err := u.sessions.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if revoked {
		return nil, apperror.Auth(msgTokenInvalid)
	}

	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Auth(msgNotAuthorized)
		}
		return nil, apperror.Internal(err)
	}
	user.Password = ""
	return user, nil
}

// blank reports whether any value is empty after trimming.
func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}
