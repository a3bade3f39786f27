package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/roamly/travel-buddy-backend/internal/apperr"
	"github.com/roamly/travel-buddy-backend/internal/model"
	"github.com/roamly/travel-buddy-backend/internal/repository"
)

// BuddyService owns the travel buddy request lifecycle:
// PENDING on creation, then a single owner-driven transition to
// APPROVED or REJECTED.
type BuddyService struct {
	store repository.Store
}

// NewBuddyService creates a new buddy request service.
func NewBuddyService(store repository.Store) *BuddyService {
	return &BuddyService{store: store}
}

// Create sends a join request for a trip. Owners cannot request their
// own trip, and the storage uniqueness constraint rejects a second
// request for the same (trip, requester) pair even under concurrent
// creation.
func (s *BuddyService) Create(ctx context.Context, tripID, requesterID uuid.UUID, message *string) (model.TravelBuddyRequest, error) {
	trip, err := s.store.GetTripByID(ctx, tripID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.TravelBuddyRequest{}, apperr.NotFound("Trip not found")
		}
		return model.TravelBuddyRequest{}, apperr.Unknown("Failed to fetch trip", err)
	}
	if trip.OwnerID == requesterID {
		return model.TravelBuddyRequest{}, apperr.Conflict("You are not allowed to request to join your own trip")
	}

	request, err := s.store.CreateBuddyRequest(ctx, repository.CreateBuddyRequestParams{
		TripID:  tripID,
		UserID:  requesterID,
		Message: message,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return model.TravelBuddyRequest{}, apperr.Conflict("You have already requested to join this trip")
		}
		return model.TravelBuddyRequest{}, apperr.Unknown("Failed to create travel buddy request", err)
	}
	return request, nil
}

// ListCandidates returns all requests for a trip owned by the caller,
// with each requester's public profile. Ownership is part of the
// lookup predicate, so someone else's trip looks like a missing one.
func (s *BuddyService) ListCandidates(ctx context.Context, tripID, callerID uuid.UUID) ([]repository.BuddyRequestWithUser, error) {
	if _, err := s.store.GetTripByIDAndOwner(ctx, tripID, callerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Trip not found or you are not authorized")
		}
		return nil, apperr.Unknown("Failed to fetch trip", err)
	}

	requests, err := s.store.ListBuddyRequestsForTrip(ctx, tripID)
	if err != nil {
		return nil, apperr.Unknown("Failed to list travel buddy requests", err)
	}
	return requests, nil
}

// Respond transitions the request identified by (trip, buddy) to the
// given terminal status. The boundary has already validated the
// status; reapplying the same terminal status is permitted. The same
// fail-closed ownership lookup as ListCandidates guards the trip.
func (s *BuddyService) Respond(ctx context.Context, tripID, buddyID, callerID uuid.UUID, status string) (model.TravelBuddyRequest, error) {
	if _, err := s.store.GetTripByIDAndOwner(ctx, tripID, callerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.TravelBuddyRequest{}, apperr.NotFound("Trip not found or you are not authorized")
		}
		return model.TravelBuddyRequest{}, apperr.Unknown("Failed to fetch trip", err)
	}

	request, err := s.store.UpdateBuddyRequestStatus(ctx, tripID, buddyID, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.TravelBuddyRequest{}, apperr.NotFound("Travel buddy request not found")
		}
		return model.TravelBuddyRequest{}, apperr.Unknown("Failed to update travel buddy request", err)
	}
	return request, nil
}
