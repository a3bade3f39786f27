package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User roles
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User account statuses
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// User is an account that owns trips and sends buddy requests.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         string
	Status       string
	Profile      *Profile
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile holds the user's public profile fields.
type Profile struct {
	Bio          *string `json:"bio"`
	Age          *int    `json:"age"`
	ProfilePhoto *string `json:"profilePhoto"`
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Profile  *Profile `json:"profile"`
}

// Validate checks if the request is valid and returns field errors
func (r *RegisterRequest) Validate() map[string]string {
	errors := make(map[string]string)

	r.Email = strings.TrimSpace(r.Email)
	r.Name = strings.TrimSpace(r.Name)

	if r.Email == "" {
		errors["email"] = "email is required"
	} else if !isValidEmail(r.Email) {
		errors["email"] = "invalid email format"
	}

	if r.Name == "" {
		errors["name"] = "name is required"
	} else if len(r.Name) > 100 {
		errors["name"] = "name must be 100 characters or less"
	}

	if r.Password == "" {
		errors["password"] = "password is required"
	} else if len(r.Password) < 8 {
		errors["password"] = "password must be at least 8 characters"
	}

	if r.Profile != nil && r.Profile.Age != nil && *r.Profile.Age < 0 {
		errors["profile.age"] = "age must be non-negative"
	}

	return errors
}

// UpdateUserRequest represents the profile update request body.
// All fields are optional - only provided fields will be updated
type UpdateUserRequest struct {
	Name    *string  `json:"name"`
	Email   *string  `json:"email"`
	Profile *Profile `json:"profile"`
}

// Validate checks if the update request is valid
func (r *UpdateUserRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Email != nil && !isValidEmail(strings.TrimSpace(*r.Email)) {
		errors["email"] = "invalid email format"
	}
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		errors["name"] = "name must not be empty"
	}
	if r.Profile != nil && r.Profile.Age != nil && *r.Profile.Age < 0 {
		errors["profile.age"] = "age must be non-negative"
	}

	return errors
}

// UserResponse is the API response for user data (excludes password)
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	Profile   *Profile  `json:"profile,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewUserResponse converts a user to its API shape.
func NewUserResponse(u User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Status:    u.Status,
		Profile:   u.Profile,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// isValidEmail performs basic email validation
func isValidEmail(email string) bool {
	if len(email) < 3 || len(email) > 255 {
		return false
	}
	atIndex := strings.Index(email, "@")
	if atIndex < 1 {
		return false
	}
	dotIndex := strings.LastIndex(email, ".")
	return dotIndex > atIndex+1 && dotIndex < len(email)-1
}
