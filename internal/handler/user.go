package handler

import (
	"encoding/json"
	"net/http"

	"github.com/roamly/travel-buddy-backend/internal/middleware"
	"github.com/roamly/travel-buddy-backend/internal/model"
	"github.com/roamly/travel-buddy-backend/internal/query"
	"github.com/roamly/travel-buddy-backend/internal/service"
)

// UserHandler handles user-related requests
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register handles POST /users - registration with an optional
// profile photo upload.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	file, ok := decodeBodyWithFile(w, r, &req)
	if !ok {
		return
	}
	if validationErrors := req.Validate(); len(validationErrors) > 0 {
		respondError(w, http.StatusBadRequest, "Validation failed", validationErrors)
		return
	}

	user, err := h.userService.Register(r.Context(), req, file)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondSuccess(w, http.StatusCreated, "User registered successfully", model.NewUserResponse(user))
}

// List handles GET /users - paginated, filtered user listing.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	filters := parseFilters(values, query.UserFields)
	opts := parsePageOptions(values)

	page, diags, err := h.userService.List(r.Context(), filters, values.Get("searchTerm"), opts)
	if err != nil {
		respondAppError(w, err)
		return
	}
	logDiagnostics("user", diags)

	respondPage(w, page)
}

// UpdateMe handles PUT /users/me - profile update for the caller.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req model.UpdateUserRequest
	file, ok := decodeBodyWithFile(w, r, &req)
	if !ok {
		return
	}
	if validationErrors := req.Validate(); len(validationErrors) > 0 {
		respondError(w, http.StatusBadRequest, "Validation failed", validationErrors)
		return
	}

	user, err := h.userService.Update(r.Context(), claims.UserID, req, file)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "User updated successfully", model.NewUserResponse(user))
}

// decodeBodyWithFile decodes a JSON body, or a multipart form whose
// "data" field carries the JSON and whose "file" field carries an
// optional upload. Reports false after writing the error response.
func decodeBodyWithFile(w http.ResponseWriter, r *http.Request, dst interface{}) (*service.UploadedFile, bool) {
	contentType := r.Header.Get("Content-Type")
	if len(contentType) >= 19 && contentType[:19] == "multipart/form-data" {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid multipart form", nil)
			return nil, false
		}
		if err := json.Unmarshal([]byte(r.FormValue("data")), dst); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body", nil)
			return nil, false
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			if err == http.ErrMissingFile {
				return nil, true
			}
			respondError(w, http.StatusBadRequest, "Invalid file upload", nil)
			return nil, false
		}
		return &service.UploadedFile{Name: header.Filename, Content: file}, true
	}

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", nil)
		return nil, false
	}
	return nil, true
}
