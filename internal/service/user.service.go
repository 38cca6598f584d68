package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/duccv/weather-tracker/internal/apperror"
	"github.com/duccv/weather-tracker/internal/constant"
	"github.com/duccv/weather-tracker/internal/model"
	"github.com/duccv/weather-tracker/internal/model/request"
	"github.com/duccv/weather-tracker/internal/model/response"
	"github.com/duccv/weather-tracker/internal/repository"
	"github.com/duccv/weather-tracker/internal/security"
)

type UserService struct {
	repo   repository.UserRepository
	hasher security.PasswordHasher
}

func NewUserService(repo repository.UserRepository, hasher security.PasswordHasher) *UserService {
	return &UserService{repo: repo, hasher: hasher}
}

func (s *UserService) Register(ctx context.Context, req request.RegisterRequest) (*model.User, error) {
	// validator counts runes, bcrypt counts bytes
	if len(req.Password) > security.MaxPasswordBytes {
		return nil, apperror.Validation(constant.MsgPasswordTooLong, response.ValidationError{
			Field:   "password",
			Message: "length must be at most 72 bytes",
		})
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     req.Username,
		PasswordHash: hash,
		PostalCode:   req.PostalCode,
		Active:       true,
		Roles:        []string{constant.RoleUser},
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.UserAlreadyExists(req.Username)
		}
		return nil, apperror.DatabaseUnavailable("Database error while creating user", err)
	}

	zap.L().Info("Registered user", zap.String("username", user.Username))
	return user, nil
}

// Authenticate checks credentials. Unknown users and wrong passwords are
// reported the same way.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.InvalidCredentials()
	}
	if err != nil {
		return nil, apperror.DatabaseUnavailable("Database error while reading user", err)
	}
	if !s.hasher.Compare(user.PasswordHash, password) {
		return nil, apperror.InvalidCredentials()
	}
	return user, nil
}

func (s *UserService) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.ResourceNotFound("User not found: " + username)
	}
	if err != nil {
		return nil, apperror.DatabaseUnavailable("Database error while reading user", err)
	}
	return user, nil
}

func (s *UserService) Activate(ctx context.Context, identity *model.Identity, username string) (*model.User, error) {
	return s.setActive(ctx, identity, username, true)
}

func (s *UserService) Deactivate(ctx context.Context, identity *model.Identity, username string) (*model.User, error) {
	return s.setActive(ctx, identity, username, false)
}

func (s *UserService) setActive(ctx context.Context, identity *model.Identity, username string, active bool) (*model.User, error) {
	if err := security.AssertSelfAccess(identity, username); err != nil {
		return nil, err
	}

	user, err := s.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	user.Active = active
	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.ResourceNotFound("User not found: " + username)
		}
		return nil, apperror.DatabaseUnavailable("Database error while updating user", err)
	}

	zap.L().Info("Changed user state", zap.String("username", username), zap.Bool("active", active))
	return user, nil
}
