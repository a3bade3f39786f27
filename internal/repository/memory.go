package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/roamly/travel-buddy-backend/internal/model"
	"github.com/roamly/travel-buddy-backend/internal/query"
)

// MemoryStore is an in-memory Store used by service tests. It applies
// compiled predicates through query.Predicate.Matches, so filtering
// behaves the same as the SQL translation.
type MemoryStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]model.User
	trips    map[uuid.UUID]model.Trip
	requests map[uuid.UUID]model.TravelBuddyRequest
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[uuid.UUID]model.User),
		trips:    make(map[uuid.UUID]model.Trip),
		requests: make(map[uuid.UUID]model.TravelBuddyRequest),
	}
}

func (s *MemoryStore) CreateUser(ctx context.Context, arg CreateUserParams) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == arg.Email {
			return model.User{}, ErrDuplicate
		}
	}

	now := time.Now()
	profile := arg.Profile
	user := model.User{
		ID:           uuid.New(),
		Name:         arg.Name,
		Email:        arg.Email,
		PasswordHash: arg.PasswordHash,
		Role:         arg.Role,
		Status:       model.StatusActive,
		Profile:      &profile,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.users[user.ID] = user
	return user, nil
}

func (s *MemoryStore) GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return model.User{}, ErrNotFound
	}
	return user, nil
}

func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, ErrNotFound
}

func (s *MemoryStore) UpdateUser(ctx context.Context, id uuid.UUID, arg UpdateUserParams) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return model.User{}, ErrNotFound
	}
	if arg.Name != nil {
		user.Name = *arg.Name
	}
	if arg.Email != nil {
		user.Email = *arg.Email
	}
	if arg.Profile != nil {
		profile := *arg.Profile
		user.Profile = &profile
	}
	user.UpdatedAt = time.Now()
	s.users[id] = user
	return user, nil
}

func (s *MemoryStore) UpdateUserPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	user.PasswordHash = passwordHash
	user.UpdatedAt = time.Now()
	s.users[id] = user
	return nil
}

func (s *MemoryStore) ListUsers(ctx context.Context, pred query.Predicate, page query.Pagination) ([]model.User, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := []model.User{}
	for _, u := range s.users {
		if pred.Matches(userGetter(u)) {
			matched = append(matched, u)
		}
	}
	asc := page.SortOrder == "asc"
	sort.Slice(matched, func(i, j int) bool {
		if asc {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	return pageSlice(matched, page), total, nil
}

func (s *MemoryStore) CreateTrip(ctx context.Context, arg CreateTripParams) (model.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	trip := model.Trip{
		ID:          uuid.New(),
		OwnerID:     arg.OwnerID,
		Destination: arg.Destination,
		StartDate:   arg.StartDate,
		EndDate:     arg.EndDate,
		Budget:      arg.Budget,
		Type:        arg.Type,
		Description: arg.Description,
		Itinerary:   arg.Itinerary,
		Photos:      photosOrEmpty(arg.Photos),
		Activities:  activitiesOrEmpty(arg.Activities),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.trips[trip.ID] = trip
	return trip, nil
}

func (s *MemoryStore) GetTripByID(ctx context.Context, id uuid.UUID) (model.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip, ok := s.trips[id]
	if !ok {
		return model.Trip{}, ErrNotFound
	}
	return trip, nil
}

func (s *MemoryStore) GetTripByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (model.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip, ok := s.trips[id]
	if !ok || trip.OwnerID != ownerID {
		return model.Trip{}, ErrNotFound
	}
	return trip, nil
}

func (s *MemoryStore) UpdateTrip(ctx context.Context, id uuid.UUID, arg UpdateTripParams) (model.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip, ok := s.trips[id]
	if !ok {
		return model.Trip{}, ErrNotFound
	}
	if arg.Destination != nil {
		trip.Destination = *arg.Destination
	}
	if arg.StartDate != nil {
		trip.StartDate = *arg.StartDate
	}
	if arg.EndDate != nil {
		trip.EndDate = *arg.EndDate
	}
	if arg.Budget != nil {
		trip.Budget = *arg.Budget
	}
	if arg.Type != nil {
		trip.Type = *arg.Type
	}
	if arg.Description != nil {
		trip.Description = *arg.Description
	}
	if arg.Itinerary != nil {
		trip.Itinerary = arg.Itinerary
	}
	if arg.Photos != nil {
		trip.Photos = arg.Photos
	}
	if arg.Activities != nil {
		trip.Activities = arg.Activities
	}
	trip.UpdatedAt = time.Now()
	s.trips[id] = trip
	return trip, nil
}

func (s *MemoryStore) DeleteTripCascade(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.trips[id]; !ok {
		return ErrNotFound
	}
	for reqID, req := range s.requests {
		if req.TripID == id {
			delete(s.requests, reqID)
		}
	}
	delete(s.trips, id)
	return nil
}

func (s *MemoryStore) ListTrips(ctx context.Context, pred query.Predicate, page query.Pagination) ([]model.Trip, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := []model.Trip{}
	for _, t := range s.trips {
		if pred.Matches(tripGetter(t)) {
			matched = append(matched, t)
		}
	}
	asc := page.SortOrder == "asc"
	sort.Slice(matched, func(i, j int) bool {
		if asc {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	return pageSlice(matched, page), total, nil
}

func (s *MemoryStore) CreateBuddyRequest(ctx context.Context, arg CreateBuddyRequestParams) (model.TravelBuddyRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.requests {
		if r.TripID == arg.TripID && r.UserID == arg.UserID {
			return model.TravelBuddyRequest{}, ErrDuplicate
		}
	}

	now := time.Now()
	request := model.TravelBuddyRequest{
		ID:        uuid.New(),
		TripID:    arg.TripID,
		UserID:    arg.UserID,
		Status:    model.BuddyStatusPending,
		Message:   arg.Message,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.requests[request.ID] = request
	return request, nil
}

func (s *MemoryStore) GetBuddyRequest(ctx context.Context, tripID, userID uuid.UUID) (model.TravelBuddyRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.requests {
		if r.TripID == tripID && r.UserID == userID {
			return r, nil
		}
	}
	return model.TravelBuddyRequest{}, ErrNotFound
}

func (s *MemoryStore) UpdateBuddyRequestStatus(ctx context.Context, tripID, userID uuid.UUID, status string) (model.TravelBuddyRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, r := range s.requests {
		if r.TripID == tripID && r.UserID == userID {
			r.Status = status
			r.UpdatedAt = time.Now()
			s.requests[id] = r
			return r, nil
		}
	}
	return model.TravelBuddyRequest{}, ErrNotFound
}

func (s *MemoryStore) ListBuddyRequestsForTrip(ctx context.Context, tripID uuid.UUID) ([]BuddyRequestWithUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := []BuddyRequestWithUser{}
	for _, r := range s.requests {
		if r.TripID != tripID {
			continue
		}
		item := BuddyRequestWithUser{Request: r}
		if u, ok := s.users[r.UserID]; ok {
			item.Requester = model.BuddyRequester{Name: u.Name, Email: u.Email, Profile: u.Profile}
		}
		result = append(result, item)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Request.CreatedAt.After(result[j].Request.CreatedAt)
	})
	return result, nil
}

// tripGetter exposes a trip's filterable fields under their logical
// names.
func tripGetter(t model.Trip) query.FieldGetter {
	return func(name string) (any, bool) {
		switch name {
		case "destination":
			return t.Destination, true
		case "type":
			return t.Type, true
		case "itinerary":
			if t.Itinerary == nil {
				return "", true
			}
			return *t.Itinerary, true
		case "activities":
			return t.Activities, true
		case "startDate":
			return t.StartDate, true
		case "endDate":
			return t.EndDate, true
		case "budget":
			return t.Budget, true
		}
		return nil, false
	}
}

// userGetter exposes a user's filterable fields, including the
// profile ones, under their logical names.
func userGetter(u model.User) query.FieldGetter {
	return func(name string) (any, bool) {
		switch name {
		case "name":
			return u.Name, true
		case "email":
			return u.Email, true
		case "role":
			return u.Role, true
		case "status":
			return u.Status, true
		case "age":
			if u.Profile == nil || u.Profile.Age == nil {
				return nil, false
			}
			return float64(*u.Profile.Age), true
		case "bio":
			if u.Profile == nil || u.Profile.Bio == nil {
				return "", true
			}
			return *u.Profile.Bio, true
		}
		return nil, false
	}
}

func pageSlice[T any](items []T, page query.Pagination) []T {
	if page.Skip >= len(items) {
		return []T{}
	}
	end := page.Skip + page.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[page.Skip:end]
}
