package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/roamly/travel-buddy-backend/internal/apperr"
	"github.com/roamly/travel-buddy-backend/internal/auth"
	"github.com/roamly/travel-buddy-backend/internal/model"
	"github.com/roamly/travel-buddy-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// AuthService owns login, token refresh and password changes.
type AuthService struct {
	store      repository.Store
	jwtManager *auth.JWTManager
}

// NewAuthService creates a new auth service.
func NewAuthService(store repository.Store, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{store: store, jwtManager: jwtManager}
}

// Login verifies credentials and issues an access and a refresh
// token. An inactive account is treated the same as a missing one.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	user, err := s.activeUserByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		return model.LoginResponse{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return model.LoginResponse{}, apperr.Unauthorized("Password is incorrect")
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return model.LoginResponse{}, apperr.Unknown("Failed to issue token", err)
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID, user.Email, user.Role)
	if err != nil {
		return model.LoginResponse{}, apperr.Unknown("Failed to issue token", err)
	}

	return model.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.jwtManager.GetAccessTokenExpiry().Seconds()),
		User:         model.NewUserResponse(user),
	}, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (model.RefreshResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return model.RefreshResponse{}, apperr.Forbidden("Invalid refresh token")
	}

	user, err := s.activeUserByID(ctx, claims.UserID)
	if err != nil {
		return model.RefreshResponse{}, err
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return model.RefreshResponse{}, apperr.Unknown("Failed to issue token", err)
	}

	return model.RefreshResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.jwtManager.GetAccessTokenExpiry().Seconds()),
	}, nil
}

// ChangePassword verifies the old password and stores a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req model.ChangePasswordRequest) error {
	user, err := s.activeUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)) != nil {
		return apperr.Unauthorized("Old password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		return apperr.Unknown("Failed to process password change", err)
	}
	if err := s.store.UpdateUserPassword(ctx, userID, string(hashed)); err != nil {
		return apperr.Unknown("Failed to update password", err)
	}
	return nil
}

func (s *AuthService) activeUserByEmail(ctx context.Context, email string) (model.User, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.User{}, apperr.NotFound("User not found")
		}
		return model.User{}, apperr.Unknown("Failed to fetch user", err)
	}
	if user.Status != model.StatusActive {
		return model.User{}, apperr.NotFound("User not found")
	}
	return user, nil
}

func (s *AuthService) activeUserByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.User{}, apperr.NotFound("User does not exist")
		}
		return model.User{}, apperr.Unknown("Failed to fetch user", err)
	}
	if user.Status != model.StatusActive {
		return model.User{}, apperr.NotFound("User does not exist")
	}
	return user, nil
}
