package model

import (
	"net/url"
	"time"

	"github.com/google/uuid"
)

// Photo is one entry of a trip's ordered photo list. IsDeleted is a
// client-supplied intent flag consumed by the merge step; a photo
// marked deleted is removed from the list, never stored with the flag
// set.
type Photo struct {
	URL       string `json:"url"`
	IsDeleted bool   `json:"isDeleted"`
}

// Trip is a shareable travel plan owned by one user.
type Trip struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	Budget      float64
	Type        string
	Description string
	Itinerary   *string
	Photos      []Photo
	Activities  []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TripOwner is the public projection of a trip's owner.
type TripOwner struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// TripResponse is the API shape of a trip.
type TripResponse struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"userId"`
	Destination string     `json:"destination"`
	StartDate   string     `json:"startDate"`
	EndDate     string     `json:"endDate"`
	Budget      float64    `json:"budget"`
	Type        string     `json:"type"`
	Description string     `json:"description"`
	Itinerary   *string    `json:"itinerary"`
	Photos      []Photo    `json:"photos"`
	Activities  []string   `json:"activities"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	User        *TripOwner `json:"user,omitempty"`
}

const dateLayout = "2006-01-02"

// NewTripResponse converts a trip to its API shape.
func NewTripResponse(t Trip, owner *TripOwner) TripResponse {
	photos := t.Photos
	if photos == nil {
		photos = []Photo{}
	}
	activities := t.Activities
	if activities == nil {
		activities = []string{}
	}
	return TripResponse{
		ID:          t.ID,
		UserID:      t.OwnerID,
		Destination: t.Destination,
		StartDate:   t.StartDate.Format(dateLayout),
		EndDate:     t.EndDate.Format(dateLayout),
		Budget:      t.Budget,
		Type:        t.Type,
		Description: t.Description,
		Itinerary:   t.Itinerary,
		Photos:      photos,
		Activities:  activities,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		User:        owner,
	}
}

// CreateTripRequest is the request body for creating a trip.
type CreateTripRequest struct {
	Destination string   `json:"destination"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Budget      float64  `json:"budget"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Itinerary   *string  `json:"itinerary"`
	Photos      []Photo  `json:"photos"`
	Activities  []string `json:"activities"`
}

// Validate validates the create trip request
func (r *CreateTripRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Destination == "" {
		errors["destination"] = "destination is required"
	}
	if r.Type == "" {
		errors["type"] = "type is required"
	}
	if r.Description == "" {
		errors["description"] = "description is required"
	}
	if _, err := time.Parse(dateLayout, r.StartDate); err != nil {
		errors["startDate"] = "startDate must be a date in YYYY-MM-DD format"
	}
	if _, err := time.Parse(dateLayout, r.EndDate); err != nil {
		errors["endDate"] = "endDate must be a date in YYYY-MM-DD format"
	}
	if r.Budget < 0 {
		errors["budget"] = "budget must be non-negative"
	}
	validatePhotos(r.Photos, errors)

	return errors
}

// UpdateTripRequest is the request body for updating a trip.
// All fields are optional - only provided fields will be updated
type UpdateTripRequest struct {
	Destination *string  `json:"destination"`
	StartDate   *string  `json:"startDate"`
	EndDate     *string  `json:"endDate"`
	Budget      *float64 `json:"budget"`
	Type        *string  `json:"type"`
	Description *string  `json:"description"`
	Itinerary   *string  `json:"itinerary"`
	Photos      []Photo  `json:"photos"`
	Activities  []string `json:"activities"`
}

// Validate validates the update trip request
func (r *UpdateTripRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Destination != nil && *r.Destination == "" {
		errors["destination"] = "destination must not be empty"
	}
	if r.Type != nil && *r.Type == "" {
		errors["type"] = "type must not be empty"
	}
	if r.Description != nil && *r.Description == "" {
		errors["description"] = "description must not be empty"
	}
	if r.StartDate != nil {
		if _, err := time.Parse(dateLayout, *r.StartDate); err != nil {
			errors["startDate"] = "startDate must be a date in YYYY-MM-DD format"
		}
	}
	if r.EndDate != nil {
		if _, err := time.Parse(dateLayout, *r.EndDate); err != nil {
			errors["endDate"] = "endDate must be a date in YYYY-MM-DD format"
		}
	}
	if r.Budget != nil && *r.Budget < 0 {
		errors["budget"] = "budget must be non-negative"
	}
	validatePhotos(r.Photos, errors)

	return errors
}

func validatePhotos(photos []Photo, errors map[string]string) {
	for _, p := range photos {
		u, err := url.ParseRequestURI(p.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errors["photos"] = "photo url must be a well-formed URL"
			return
		}
	}
}

// ParseDate parses a YYYY-MM-DD request date. Callers must have run
// Validate first.
func ParseDate(s string) time.Time {
	t, _ := time.Parse(dateLayout, s)
	return t
}
