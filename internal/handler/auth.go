package handler

import (
	"encoding/json"
	"net/http"

	"github.com/roamly/travel-buddy-backend/internal/middleware"
	"github.com/roamly/travel-buddy-backend/internal/model"
	"github.com/roamly/travel-buddy-backend/internal/service"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if validationErrors := req.Validate(); len(validationErrors) > 0 {
		respondError(w, http.StatusBadRequest, "Validation failed", validationErrors)
		return
	}

	result, err := h.authService.Login(r.Context(), req)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Logged in successfully", result)
}

// Refresh handles POST /auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req model.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if validationErrors := req.Validate(); len(validationErrors) > 0 {
		respondError(w, http.StatusBadRequest, "Validation failed", validationErrors)
		return
	}

	result, err := h.authService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Token refreshed successfully", result)
}

// ChangePassword handles POST /auth/change-password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req model.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if validationErrors := req.Validate(); len(validationErrors) > 0 {
		respondError(w, http.StatusBadRequest, "Validation failed", validationErrors)
		return
	}

	if err := h.authService.ChangePassword(r.Context(), claims.UserID, req); err != nil {
		respondAppError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Password changed successfully", nil)
}
