package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/roamly/travel-buddy-backend/internal/middleware"
	"github.com/roamly/travel-buddy-backend/internal/model"
	"github.com/roamly/travel-buddy-backend/internal/service"
)

// BuddyHandler handles travel buddy request endpoints
type BuddyHandler struct {
	buddyService *service.BuddyService
}

// NewBuddyHandler creates a new BuddyHandler
func NewBuddyHandler(buddyService *service.BuddyService) *BuddyHandler {
	return &BuddyHandler{buddyService: buddyService}
}

// SendRequest handles POST /trips/{tripId}/request
func (h *BuddyHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}
	tripID, ok := parseUUIDParam(w, r, "tripId")
	if !ok {
		return
	}

	// The message body is optional; an empty body means no message.
	var req model.SendBuddyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	request, err := h.buddyService.Create(r.Context(), tripID, claims.UserID, req.Message)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondSuccess(w, http.StatusCreated, "Travel buddy request sent successfully", model.NewBuddyRequestResponse(request, nil))
}

// Respond handles PATCH /trips/{tripId}/{buddyId}/respond
func (h *BuddyHandler) Respond(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}
	tripID, ok := parseUUIDParam(w, r, "tripId")
	if !ok {
		return
	}
	buddyID, ok := parseUUIDParam(w, r, "buddyId")
	if !ok {
		return
	}

	var req model.RespondBuddyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if validationErrors := req.Validate(); len(validationErrors) > 0 {
		respondError(w, http.StatusBadRequest, "Validation failed", validationErrors)
		return
	}

	request, err := h.buddyService.Respond(r.Context(), tripID, buddyID, claims.UserID, req.Status)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Travel buddy request updated successfully", model.NewBuddyRequestResponse(request, nil))
}

// ListCandidates handles GET /travel-buddies/{tripId}
func (h *BuddyHandler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}
	tripID, ok := parseUUIDParam(w, r, "tripId")
	if !ok {
		return
	}

	requests, err := h.buddyService.ListCandidates(r.Context(), tripID, claims.UserID)
	if err != nil {
		respondAppError(w, err)
		return
	}

	response := make([]model.BuddyRequestResponse, len(requests))
	for i, item := range requests {
		requester := item.Requester
		response[i] = model.NewBuddyRequestResponse(item.Request, &requester)
	}

	respondSuccess(w, http.StatusOK, "Travel buddy requests retrieved successfully", response)
}
