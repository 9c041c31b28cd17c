package usecase

import (
	"context"
	"errors"

	"coworkhub/internal/domain/user"
	"coworkhub/internal/infra"
	"coworkhub/internal/pkg/clock"
	"coworkhub/internal/pkg/jwt"
	"coworkhub/internal/pkg/password"
	"coworkhub/internal/usecase/queries"
	"coworkhub/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrUserInactive         = errors.New("user account is inactive")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrTokenGeneration      = errors.New("token generation failed")
	ErrTokenValidation      = errors.New("token validation failed")
)

type AuthUseCase interface {
	Login(ctx context.Context, credentials user.Credentials) (string, *queries.AuthorizedUserView, error)
	Register(ctx context.Context, credentials user.Credentials, displayName string) (*queries.AuthorizedUserView, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*queries.AuthorizedUserView, error)
}

type authUseCaseImpl struct {
	userRepo   shared.UserRepository
	jwtService *jwt.Service
	clock      clock.Clock
}

func NewAuthUseCase(userRepo shared.UserRepository, jwtService *jwt.Service, clk clock.Clock) AuthUseCase {
	return &authUseCaseImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
		clock:      clk,
	}
}

func (a *authUseCaseImpl) Login(ctx context.Context, credentials user.Credentials) (string, *queries.AuthorizedUserView, error) {
	u, err := a.validateUser(ctx, credentials)
	if err != nil {
		return "", nil, err
	}

	token, err := a.jwtService.GenerateToken(u.ID(), u.Role())
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	if err := a.userRepo.UpdateLastLogin(ctx, u.ID(), a.clock.Now()); err != nil {
		return "", nil, err
	}

	return token, toAuthorizedView(u), nil
}

func (a *authUseCaseImpl) Register(ctx context.Context, credentials user.Credentials, displayName string) (*queries.AuthorizedUserView, error) {
	hash, err := password.Hash(credentials.Password().Value())
	if err != nil {
		return nil, err
	}

	u := user.NewUser(credentials.Email(), hash, displayName, user.RoleMember)
	if _, err := a.userRepo.Create(ctx, u); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return toAuthorizedView(u), nil
}

func (a *authUseCaseImpl) validateUser(ctx context.Context, credentials user.Credentials) (*user.User, error) {
	u, err := a.userRepo.FindByEmail(ctx, credentials.Email())
	if err != nil {
		return nil, ErrUserNotFound
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	if !u.IsActive() {
		return nil, ErrUserInactive
	}

	if err := password.Compare(u.PasswordHash(), credentials.Password().Value()); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

func (a *authUseCaseImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*queries.AuthorizedUserView, error) {
	u, err := a.userRepo.FindByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}

	if !u.IsActive() {
		return nil, ErrUserInactive
	}

	return toAuthorizedView(u), nil
}

func toAuthorizedView(u *user.User) *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:          u.ID(),
		Email:       u.Email().Value(),
		DisplayName: u.DisplayName(),
		Role:        u.Role().String(),
		IsActive:    u.IsActive(),
	}
}
