package query

import "github.com/roamly/travel-buddy-backend/internal/model"

// TripFields is the filter table for trip listings. Date fields match
// by exact equality, the same way budget matches exactly when given a
// scalar; only budget supports min/max bounds.
var TripFields = []FieldSpec{
	{Name: "destination", Column: "destination", Kind: KindText},
	{Name: "type", Column: "type", Kind: KindEnum},
	{Name: "itinerary", Column: "itinerary", Kind: KindText},
	{Name: "activities", Column: "activities", Kind: KindStringArray},
	{Name: "startDate", Column: "start_date", Kind: KindDate},
	{Name: "endDate", Column: "end_date", Kind: KindDate},
	{Name: "budget", Column: "budget", Kind: KindNumeric},
}

// TripSearchableFields are the fields the free-text search term fans
// out over for trips.
var TripSearchableFields = []string{"destination", "type", "itinerary", "activities"}

// UserFields is the filter table for user listings. Age and bio live
// on the joined profile row.
var UserFields = []FieldSpec{
	{Name: "age", Column: "p.age", Kind: KindNumeric},
	{Name: "bio", Column: "p.bio", Kind: KindText},
	{Name: "role", Column: "u.role", Kind: KindEnum, Enum: []string{model.RoleUser, model.RoleAdmin}},
	{Name: "status", Column: "u.status", Kind: KindEnum, Enum: []string{model.StatusActive, model.StatusInactive}},
	{Name: "email", Column: "u.email", Kind: KindEnum},
	{Name: "name", Column: "u.name", Kind: KindEnum},
}

// UserSearchableFields are the fields the free-text search term fans
// out over for users.
var UserSearchableFields = []string{"name", "email"}
