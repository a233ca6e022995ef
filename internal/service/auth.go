package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/bounswe/bounswe2025group9-sub004/config"
	"github.com/bounswe/bounswe2025group9-sub004/internal/domain/dto"
	"github.com/bounswe/bounswe2025group9-sub004/internal/domain/model"
	"github.com/bounswe/bounswe2025group9-sub004/internal/repository"
)

var (
	// ErrInvalidCredentials is returned when the email or password is wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserExists is returned when the email or username is already taken.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidToken is returned for malformed or expired tokens.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrTokenBlacklisted is returned for tokens revoked by logout.
	ErrTokenBlacklisted = errors.New("token is blacklisted")
)

// TokenPair and Claims live in dto so handlers can use them without an
// import cycle; the aliases keep service-side call sites short.
type TokenPair = dto.TokenPair
type Claims = dto.Claims

// ClaimsWithJWT embeds the registered claim set for signing and parsing.
type ClaimsWithJWT struct {
	dto.Claims
	jwt.RegisteredClaims
}

// AuthService authenticates the accounts that own meal plans, food entries,
// and nutrition-target history.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*dto.TokenPair, *model.User, error)
	Register(ctx context.Context, email, username, password, name string) (*dto.TokenPair, *model.User, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenPair, error)
	ValidateToken(ctx context.Context, tokenString string) (*dto.Claims, error)
	InvalidateToken(ctx context.Context, tokenString string) error
	InvalidateUserTokens(ctx context.Context, userID primitive.ObjectID) error
	Logout(ctx context.Context, accessToken, refreshToken string) error
}

// authService implements AuthService on top of the user and role
// repositories, delegating all token work to TokenService.
type authService struct {
	userRepo     repository.UserRepositoryInterface
	roleRepo     repository.RoleRepositoryInterface
	tokenService TokenService
}

// NewAuthService creates an authentication service with its own TokenService
// built from the auth configuration.
func NewAuthService(
	userRepo repository.UserRepositoryInterface,
	roleRepo repository.RoleRepositoryInterface,
	tokenRepo repository.TokenRepositoryInterface,
	authConfig config.AuthConfig,
) AuthService {
	tokenConfig := NewTokenConfigFromAuthConfig(authConfig)
	return NewAuthServiceWithTokenService(userRepo, roleRepo, NewTokenService(tokenRepo, tokenConfig))
}

// NewAuthServiceWithTokenService creates an authentication service around an
// existing TokenService, letting tests inject a fake.
func NewAuthServiceWithTokenService(
	userRepo repository.UserRepositoryInterface,
	roleRepo repository.RoleRepositoryInterface,
	tokenService TokenService,
) AuthService {
	return &authService{
		userRepo:     userRepo,
		roleRepo:     roleRepo,
		tokenService: tokenService,
	}
}

// Login verifies the credentials and issues a fresh token pair. Existing
// refresh tokens for the account are revoked first, so at most one session
// stays valid per login.
func (s *authService) Login(ctx context.Context, email, password string) (*dto.TokenPair, *model.User, error) {
	user, err := s.verifyCredentials(ctx, email, password)
	if err != nil {
		return nil, nil, err
	}

	if err := s.tokenService.InvalidateUserTokens(ctx, user.ID); err != nil {
		return nil, nil, fmt.Errorf("failed to invalidate existing tokens: %w", err)
	}

	tokenPair, err := s.tokenService.GenerateTokenPair(ctx, user)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate token pair: %w", err)
	}

	return tokenPair, user, nil
}

func (s *authService) verifyCredentials(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	if user == nil || !user.Active {
		return nil, ErrInvalidCredentials
	}
	if user.ID.IsZero() {
		return nil, fmt.Errorf("user ID is zero for user: %s", email)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Register creates an account with the default "user" role, which grants
// read and write on plans, foods, and targets.
func (s *authService) Register(ctx context.Context, email, username, password, name string) (*dto.TokenPair, *model.User, error) {
	if err := s.ensureAccountAvailable(ctx, email, username); err != nil {
		return nil, nil, err
	}

	userRole, err := s.roleRepo.FindByName(ctx, "user")
	if err != nil {
		return nil, nil, err
	}
	if userRole == nil {
		return nil, nil, errors.New("user role not found - please ensure default roles are initialized")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	user := &model.User{
		Email:    email,
		Username: username,
		Password: string(hashedPassword),
		Name:     name,
		Roles:    []string{userRole.ID.Hex()},
		Active:   true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	tokenPair, err := s.tokenService.GenerateTokenPair(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	return tokenPair, user, nil
}

func (s *authService) ensureAccountAvailable(ctx context.Context, email, username string) error {
	byEmail, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if byEmail != nil {
		return ErrUserExists
	}

	byUsername, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if byUsername != nil {
		return ErrUserExists
	}

	return nil
}

// RefreshToken rotates a refresh token: the presented token must be valid,
// still stored, and unexpired, and it is deleted before the replacement pair
// is issued.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenPair, error) {
	claims, err := s.tokenService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	token, err := s.tokenService.FindRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if token == nil || token.Type != "refresh" || time.Now().After(token.ExpiresAt) {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, ErrInvalidCredentials
	}

	if err := s.tokenService.DeleteRefreshToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to delete old refresh token: %w", err)
	}

	return s.tokenService.GenerateTokenPair(ctx, user)
}

func (s *authService) ValidateToken(ctx context.Context, tokenString string) (*dto.Claims, error) {
	return s.tokenService.ValidateAccessToken(ctx, tokenString)
}

func (s *authService) InvalidateToken(ctx context.Context, tokenString string) error {
	return s.tokenService.InvalidateAccessToken(ctx, tokenString)
}

func (s *authService) InvalidateUserTokens(ctx context.Context, userID primitive.ObjectID) error {
	return s.tokenService.InvalidateUserTokens(ctx, userID)
}

// Logout revokes both tokens, collecting errors so one failed revocation
// does not leave the other token live.
func (s *authService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	var errs []error

	if accessToken != "" {
		if err := s.tokenService.InvalidateAccessToken(ctx, accessToken); err != nil {
			log.Warn().Err(err).Msg("failed to invalidate access token during logout")
			errs = append(errs, fmt.Errorf("invalidate access token: %w", err))
		}
	}

	if refreshToken != "" {
		if err := s.tokenService.DeleteRefreshToken(ctx, refreshToken); err != nil {
			log.Warn().Err(err).Msg("failed to delete refresh token during logout")
			errs = append(errs, fmt.Errorf("delete refresh token: %w", err))
		}
	}

	return errors.Join(errs...)
}
