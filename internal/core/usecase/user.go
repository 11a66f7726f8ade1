package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dkrasnov/workdesk/internal/core/domain"
	"github.com/dkrasnov/workdesk/internal/core/ports"
)

type UserUseCase struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenManager
}

func NewUserUseCase(repo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenManager) *UserUseCase {
	return &UserUseCase{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
	}
}

func (uc *UserUseCase) Register(
	ctx context.Context,
	username, email, password string,
	role domain.Role,
	avatar string,
) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))
	if username == "" || email == "" || password == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "register user", errors.New("username, email and password are required"))
	}
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return nil, domain.WrapError(domain.ErrInvalidInput, "register user", fmt.Errorf("invalid role %q", role))
	}

	if existing, err := uc.repo.GetByUsername(ctx, username); err == nil && existing != nil {
		return nil, domain.WrapError(domain.ErrConflict, "register user", errors.New("username already exists"))
	} else if err != nil && !domain.IsKind(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if existing, err := uc.repo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, domain.WrapError(domain.ErrConflict, "register user", errors.New("email already exists"))
	} else if err != nil && !domain.IsKind(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Avatar:       avatar,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (uc *UserUseCase) Login(ctx context.Context, email, password string) (*domain.AuthSession, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "login", errors.New("email and password are required"))
	}

	user, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsKind(err, domain.ErrNotFound) {
			return nil, domain.WrapError(domain.ErrUnauthorized, "login", errors.New("invalid credentials"))
		}
		return nil, fmt.Errorf("fetch user by email: %w", err)
	}
	if !user.IsActive {
		return nil, domain.WrapError(domain.ErrUnauthorized, "login", errors.New("account is deactivated"))
	}
	if err := uc.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, domain.WrapError(domain.ErrUnauthorized, "login", errors.New("invalid credentials"))
	}

	token, expiresAt, err := uc.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	return &domain.AuthSession{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        user,
	}, nil
}

func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return uc.repo.GetByID(ctx, id)
}

func (uc *UserUseCase) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return uc.repo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
}

func (uc *UserUseCase) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return uc.repo.GetByUsername(ctx, strings.TrimSpace(username))
}

func (uc *UserUseCase) List(ctx context.Context) ([]domain.User, error) {
	return uc.repo.List(ctx)
}

func (uc *UserUseCase) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	if !role.Valid() {
		return nil, domain.WrapError(domain.ErrInvalidInput, "list users by role", fmt.Errorf("invalid role %q", role))
	}
	return uc.repo.ListByRole(ctx, role)
}

func (uc *UserUseCase) Search(ctx context.Context, query string) ([]domain.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "search users", errors.New("query is required"))
	}
	return uc.repo.Search(ctx, query)
}

func (uc *UserUseCase) Update(ctx context.Context, id string, update domain.UserUpdate) (*domain.User, error) {
	if update.Empty() {
		return nil, domain.WrapError(domain.ErrInvalidInput, "update user", errors.New("no fields to update"))
	}
	if update.Role != nil && !update.Role.Valid() {
		return nil, domain.WrapError(domain.ErrInvalidInput, "update user", fmt.Errorf("invalid role %q", *update.Role))
	}
	if err := uc.repo.Update(ctx, id, update); err != nil {
		return nil, err
	}
	return uc.repo.GetByID(ctx, id)
}

func (uc *UserUseCase) UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, domain.WrapError(domain.ErrInvalidInput, "update user role", fmt.Errorf("invalid role %q", role))
	}
	return uc.Update(ctx, id, domain.UserUpdate{Role: &role})
}

func (uc *UserUseCase) UpdateAvatar(ctx context.Context, id, avatarURL string) (*domain.User, error) {
	if strings.TrimSpace(avatarURL) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "update user avatar", errors.New("avatar url is required"))
	}
	return uc.Update(ctx, id, domain.UserUpdate{Avatar: &avatarURL})
}

func (uc *UserUseCase) SetActive(ctx context.Context, id string, active bool) error {
	return uc.repo.SetActive(ctx, id, active)
}

func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}
