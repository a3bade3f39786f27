package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/roamly/travel-buddy-backend/internal/model"
	"github.com/roamly/travel-buddy-backend/internal/query"
)

// Storage errors. The Postgres implementation maps driver errors onto
// these so the service layer never sees pq details.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// CreateUserParams are the inputs for registering a user. The user
// row and its profile row are created in one transaction.
type CreateUserParams struct {
	Name         string
	Email        string
	PasswordHash string
	Role         string
	Profile      model.Profile
}

// UpdateUserParams are the optional fields of a profile update. Nil
// means unchanged.
type UpdateUserParams struct {
	Name    *string
	Email   *string
	Profile *model.Profile
}

// CreateTripParams are the inputs for creating a trip.
type CreateTripParams struct {
	OwnerID     uuid.UUID
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	Budget      float64
	Type        string
	Description string
	Itinerary   *string
	Photos      []model.Photo
	Activities  []string
}

// UpdateTripParams are the optional fields of a trip update. Nil
// means unchanged. Photos is always the full merged list.
type UpdateTripParams struct {
	Destination *string
	StartDate   *time.Time
	EndDate     *time.Time
	Budget      *float64
	Type        *string
	Description *string
	Itinerary   *string
	Photos      []model.Photo
	Activities  []string
}

// CreateBuddyRequestParams are the inputs for a new buddy request.
type CreateBuddyRequestParams struct {
	TripID  uuid.UUID
	UserID  uuid.UUID
	Message *string
}

// BuddyRequestWithUser pairs a request with its sender's public
// projection.
type BuddyRequestWithUser struct {
	Request   model.TravelBuddyRequest
	Requester model.BuddyRequester
}

// Store is the persistence boundary. Services depend on this
// interface; tests substitute the in-memory implementation.
type Store interface {
	CreateUser(ctx context.Context, arg CreateUserParams) (model.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, arg UpdateUserParams) (model.User, error)
	UpdateUserPassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	ListUsers(ctx context.Context, pred query.Predicate, page query.Pagination) ([]model.User, int64, error)

	CreateTrip(ctx context.Context, arg CreateTripParams) (model.Trip, error)
	GetTripByID(ctx context.Context, id uuid.UUID) (model.Trip, error)
	// GetTripByIDAndOwner is the fail-closed lookup: a trip owned by
	// someone else is indistinguishable from a missing one.
	GetTripByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (model.Trip, error)
	UpdateTrip(ctx context.Context, id uuid.UUID, arg UpdateTripParams) (model.Trip, error)
	// DeleteTripCascade removes the trip and all of its buddy
	// requests in a single transaction.
	DeleteTripCascade(ctx context.Context, id uuid.UUID) error
	ListTrips(ctx context.Context, pred query.Predicate, page query.Pagination) ([]model.Trip, int64, error)

	CreateBuddyRequest(ctx context.Context, arg CreateBuddyRequestParams) (model.TravelBuddyRequest, error)
	GetBuddyRequest(ctx context.Context, tripID, userID uuid.UUID) (model.TravelBuddyRequest, error)
	UpdateBuddyRequestStatus(ctx context.Context, tripID, userID uuid.UUID, status string) (model.TravelBuddyRequest, error)
	ListBuddyRequestsForTrip(ctx context.Context, tripID uuid.UUID) ([]BuddyRequestWithUser, error)
}
