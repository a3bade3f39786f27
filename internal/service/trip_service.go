package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/roamly/travel-buddy-backend/internal/apperr"
	"github.com/roamly/travel-buddy-backend/internal/auth"
	"github.com/roamly/travel-buddy-backend/internal/model"
	"github.com/roamly/travel-buddy-backend/internal/photo"
	"github.com/roamly/travel-buddy-backend/internal/query"
	"github.com/roamly/travel-buddy-backend/internal/repository"
)

// TripService owns trip creation, mutation and listing. Listing
// composes the filter compiler and the paginator and issues the count
// and page queries with one predicate.
type TripService struct {
	store    repository.Store
	uploader PhotoUploader // nil when uploads are not configured
}

// NewTripService creates a new trip service.
func NewTripService(store repository.Store, uploader PhotoUploader) *TripService {
	return &TripService{store: store, uploader: uploader}
}

// Create stores a new trip for the caller. Photos marked deleted in
// the request body never reach the store, and an uploaded file is
// appended to the photo list.
func (s *TripService) Create(ctx context.Context, ownerID uuid.UUID, req model.CreateTripRequest, file *UploadedFile) (model.Trip, error) {
	upload, err := s.uploadPhoto(ctx, file)
	if err != nil {
		return model.Trip{}, err
	}

	trip, err := s.store.CreateTrip(ctx, repository.CreateTripParams{
		OwnerID:     ownerID,
		Destination: req.Destination,
		StartDate:   model.ParseDate(req.StartDate),
		EndDate:     model.ParseDate(req.EndDate),
		Budget:      req.Budget,
		Type:        req.Type,
		Description: req.Description,
		Itinerary:   req.Itinerary,
		Photos:      photo.Merge(req.Photos, req.Photos, upload),
		Activities:  req.Activities,
	})
	if err != nil {
		return model.Trip{}, apperr.Unknown("Failed to create trip", err)
	}
	return trip, nil
}

// Get fetches one trip with its owner's public projection.
func (s *TripService) Get(ctx context.Context, id uuid.UUID) (model.Trip, *model.TripOwner, error) {
	trip, err := s.store.GetTripByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Trip{}, nil, apperr.NotFound("Trip not found")
		}
		return model.Trip{}, nil, apperr.Unknown("Failed to fetch trip", err)
	}
	return trip, s.ownerProjection(ctx, trip.OwnerID), nil
}

// Update applies a partial trip update for the owner or an admin.
// Existence is checked before ownership, so a mismatch is Forbidden
// rather than NotFound. The stored photo list is reconciled against
// the request's soft-delete entries and an optional upload.
func (s *TripService) Update(ctx context.Context, callerID uuid.UUID, callerRole string, tripID uuid.UUID, req model.UpdateTripRequest, file *UploadedFile) (model.Trip, error) {
	existing, err := s.store.GetTripByID(ctx, tripID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Trip{}, apperr.NotFound("Trip not found")
		}
		return model.Trip{}, apperr.Unknown("Failed to fetch trip", err)
	}
	if !auth.CanMutate(existing.OwnerID, callerID, callerRole) {
		return model.Trip{}, apperr.Forbidden("You are not allowed to modify this trip")
	}

	upload, err := s.uploadPhoto(ctx, file)
	if err != nil {
		return model.Trip{}, err
	}

	params := repository.UpdateTripParams{
		Destination: req.Destination,
		Budget:      req.Budget,
		Type:        req.Type,
		Description: req.Description,
		Itinerary:   req.Itinerary,
		Photos:      photo.Merge(existing.Photos, req.Photos, upload),
		Activities:  req.Activities,
	}
	if req.StartDate != nil {
		start := model.ParseDate(*req.StartDate)
		params.StartDate = &start
	}
	if req.EndDate != nil {
		end := model.ParseDate(*req.EndDate)
		params.EndDate = &end
	}

	trip, err := s.store.UpdateTrip(ctx, tripID, params)
	if err != nil {
		return model.Trip{}, apperr.Unknown("Failed to update trip", err)
	}
	return trip, nil
}

// Delete removes a trip and all of its buddy requests for the owner
// or an admin. The cascade runs in a single transaction; if it fails
// the store keeps its previous state.
func (s *TripService) Delete(ctx context.Context, callerID uuid.UUID, callerRole string, tripID uuid.UUID) error {
	existing, err := s.store.GetTripByID(ctx, tripID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("Trip not found")
		}
		return apperr.Unknown("Failed to fetch trip", err)
	}
	if !auth.CanMutate(existing.OwnerID, callerID, callerRole) {
		return apperr.Forbidden("You are not allowed to delete this trip")
	}

	if err := s.store.DeleteTripCascade(ctx, tripID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("Trip not found")
		}
		return apperr.Unknown("Failed to delete trip", err)
	}
	return nil
}

// List answers the trip listing query. Malformed filter values never
// fail the query; they come back as diagnostics.
func (s *TripService) List(ctx context.Context, filters map[string]query.RawValue, searchTerm string, opts query.PageOptions) (model.Page[model.TripResponse], []query.Diagnostic, error) {
	pred, diags := query.Compile(query.TripFields, filters, searchTerm, query.TripSearchableFields)
	page := query.Normalize(opts)

	trips, total, err := s.store.ListTrips(ctx, pred, page)
	if err != nil {
		return model.Page[model.TripResponse]{}, diags, apperr.Unknown("Failed to list trips", err)
	}

	owners := map[uuid.UUID]*model.TripOwner{}
	data := make([]model.TripResponse, len(trips))
	for i, t := range trips {
		owner, ok := owners[t.OwnerID]
		if !ok {
			owner = s.ownerProjection(ctx, t.OwnerID)
			owners[t.OwnerID] = owner
		}
		data[i] = model.NewTripResponse(t, owner)
	}

	return model.Page[model.TripResponse]{
		Meta: model.PageMeta{Page: page.Page, Limit: page.Limit, Total: total},
		Data: data,
	}, diags, nil
}

func (s *TripService) ownerProjection(ctx context.Context, ownerID uuid.UUID) *model.TripOwner {
	owner, err := s.store.GetUserByID(ctx, ownerID)
	if err != nil {
		return nil
	}
	return &model.TripOwner{ID: owner.ID, Name: owner.Name, Email: owner.Email}
}

func (s *TripService) uploadPhoto(ctx context.Context, file *UploadedFile) (*model.Photo, error) {
	if file == nil {
		return nil, nil
	}
	if s.uploader == nil {
		return nil, apperr.Validation("Photo uploads are not configured")
	}
	url, err := s.uploader.UploadPhoto(ctx, file.Name, file.Content)
	if err != nil {
		return nil, apperr.Unknown("Failed to upload photo", err)
	}
	return &model.Photo{URL: url}, nil
}
