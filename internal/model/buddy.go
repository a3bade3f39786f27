package model

import (
	"time"

	"github.com/google/uuid"
)

// Travel buddy request statuses. PENDING is the initial state;
// APPROVED and REJECTED are terminal.
const (
	BuddyStatusPending  = "PENDING"
	BuddyStatusApproved = "APPROVED"
	BuddyStatusRejected = "REJECTED"
)

// TravelBuddyRequest is one user's request to join another user's
// trip. At most one request exists per (trip, requester) pair.
type TravelBuddyRequest struct {
	ID        uuid.UUID
	TripID    uuid.UUID
	UserID    uuid.UUID
	Status    string
	Message   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BuddyRequester is the public projection of a request's sender.
type BuddyRequester struct {
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Profile *Profile `json:"profile"`
}

// BuddyRequestResponse is the API shape of a buddy request.
type BuddyRequestResponse struct {
	ID        uuid.UUID       `json:"id"`
	TripID    uuid.UUID       `json:"tripId"`
	UserID    uuid.UUID       `json:"userId"`
	Status    string          `json:"status"`
	Message   *string         `json:"message"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	User      *BuddyRequester `json:"user,omitempty"`
}

// NewBuddyRequestResponse converts a request to its API shape.
func NewBuddyRequestResponse(r TravelBuddyRequest, requester *BuddyRequester) BuddyRequestResponse {
	return BuddyRequestResponse{
		ID:        r.ID,
		TripID:    r.TripID,
		UserID:    r.UserID,
		Status:    r.Status,
		Message:   r.Message,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		User:      requester,
	}
}

// SendBuddyRequest is the request body for sending a buddy request.
type SendBuddyRequest struct {
	Message *string `json:"message"`
}

// RespondBuddyRequest is the request body for the owner's decision.
type RespondBuddyRequest struct {
	Status string `json:"status"`
}

// Validate checks that the decision is one of the terminal statuses.
// PENDING is never a valid target.
func (r *RespondBuddyRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Status != BuddyStatusApproved && r.Status != BuddyStatusRejected {
		errors["status"] = "status must be APPROVED or REJECTED"
	}

	return errors
}
