package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/roamly/travel-buddy-backend/internal/apperr"
	"github.com/roamly/travel-buddy-backend/internal/model"
	"github.com/roamly/travel-buddy-backend/internal/query"
	"github.com/roamly/travel-buddy-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// UserService owns registration, profile updates and user listing.
type UserService struct {
	store    repository.Store
	uploader PhotoUploader
}

// NewUserService creates a new user service.
func NewUserService(store repository.Store, uploader PhotoUploader) *UserService {
	return &UserService{store: store, uploader: uploader}
}

// Register creates a user and their profile in one transaction.
func (s *UserService) Register(ctx context.Context, req model.RegisterRequest, file *UploadedFile) (model.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return model.User{}, apperr.Unknown("Failed to process registration", err)
	}

	profile := model.Profile{}
	if req.Profile != nil {
		profile = *req.Profile
	}
	if file != nil {
		url, err := s.uploadProfilePhoto(ctx, file)
		if err != nil {
			return model.User{}, err
		}
		profile.ProfilePhoto = &url
	}

	user, err := s.store.CreateUser(ctx, repository.CreateUserParams{
		Name:         req.Name,
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(hashed),
		Role:         model.RoleUser,
		Profile:      profile,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return model.User{}, apperr.Conflict("Email already registered")
		}
		return model.User{}, apperr.Unknown("Failed to create user", err)
	}
	return user, nil
}

// Update applies a partial profile update for the caller.
func (s *UserService) Update(ctx context.Context, userID uuid.UUID, req model.UpdateUserRequest, file *UploadedFile) (model.User, error) {
	existing, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.User{}, apperr.NotFound("User not found")
		}
		return model.User{}, apperr.Unknown("Failed to fetch user", err)
	}

	params := repository.UpdateUserParams{Name: req.Name, Profile: req.Profile}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		params.Email = &email
	}
	if file != nil {
		url, err := s.uploadProfilePhoto(ctx, file)
		if err != nil {
			return model.User{}, err
		}
		profile := model.Profile{}
		if params.Profile != nil {
			profile = *params.Profile
		} else if existing.Profile != nil {
			profile = *existing.Profile
		}
		profile.ProfilePhoto = &url
		params.Profile = &profile
	}

	user, err := s.store.UpdateUser(ctx, userID, params)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return model.User{}, apperr.Conflict("Email already registered")
		}
		return model.User{}, apperr.Unknown("Failed to update user", err)
	}
	return user, nil
}

// List answers the user listing query with the same filter and
// pagination machinery trips use.
func (s *UserService) List(ctx context.Context, filters map[string]query.RawValue, searchTerm string, opts query.PageOptions) (model.Page[model.UserResponse], []query.Diagnostic, error) {
	pred, diags := query.Compile(query.UserFields, filters, searchTerm, query.UserSearchableFields)
	page := query.Normalize(opts)

	users, total, err := s.store.ListUsers(ctx, pred, page)
	if err != nil {
		return model.Page[model.UserResponse]{}, diags, apperr.Unknown("Failed to list users", err)
	}

	data := make([]model.UserResponse, len(users))
	for i, u := range users {
		data[i] = model.NewUserResponse(u)
	}

	return model.Page[model.UserResponse]{
		Meta: model.PageMeta{Page: page.Page, Limit: page.Limit, Total: total},
		Data: data,
	}, diags, nil
}

func (s *UserService) uploadProfilePhoto(ctx context.Context, file *UploadedFile) (string, error) {
	if s.uploader == nil {
		return "", apperr.Validation("Photo uploads are not configured")
	}
	url, err := s.uploader.UploadPhoto(ctx, file.Name, file.Content)
	if err != nil {
		return "", apperr.Unknown("Failed to upload photo", err)
	}
	return url, nil
}
