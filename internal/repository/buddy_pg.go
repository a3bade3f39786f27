package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/roamly/travel-buddy-backend/internal/model"
)

// CreateBuddyRequest inserts a pending request. The unique index on
// (trip_id, user_id) turns a duplicate into ErrDuplicate, including
// under concurrent creation.
func (q *Queries) CreateBuddyRequest(ctx context.Context, arg CreateBuddyRequestParams) (model.TravelBuddyRequest, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO travel_buddy_requests (trip_id, user_id, status, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, trip_id, user_id, status, message, created_at, updated_at`,
		arg.TripID, arg.UserID, model.BuddyStatusPending, nullString(arg.Message))
	return scanBuddyRequest(row)
}

// GetBuddyRequest fetches the unique request for a (trip, user) pair.
func (q *Queries) GetBuddyRequest(ctx context.Context, tripID, userID uuid.UUID) (model.TravelBuddyRequest, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT id, trip_id, user_id, status, message, created_at, updated_at
		FROM travel_buddy_requests
		WHERE trip_id = $1 AND user_id = $2`, tripID, userID)
	return scanBuddyRequest(row)
}

// UpdateBuddyRequestStatus transitions the unique request for a
// (trip, user) pair and returns the new row.
func (q *Queries) UpdateBuddyRequestStatus(ctx context.Context, tripID, userID uuid.UUID, status string) (model.TravelBuddyRequest, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE travel_buddy_requests
		SET status = $3, updated_at = now()
		WHERE trip_id = $1 AND user_id = $2
		RETURNING id, trip_id, user_id, status, message, created_at, updated_at`,
		tripID, userID, status)
	return scanBuddyRequest(row)
}

// ListBuddyRequestsForTrip returns all requests for a trip together
// with each sender's public profile projection.
func (q *Queries) ListBuddyRequestsForTrip(ctx context.Context, tripID uuid.UUID) ([]BuddyRequestWithUser, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT r.id, r.trip_id, r.user_id, r.status, r.message, r.created_at, r.updated_at,
		       u.name, u.email, p.bio, p.age, p.profile_photo
		FROM travel_buddy_requests r
		JOIN users u ON u.id = r.user_id
		LEFT JOIN profiles p ON p.user_id = u.id
		WHERE r.trip_id = $1
		ORDER BY r.created_at DESC`, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list buddy requests: %w", err)
	}
	defer rows.Close()

	requests := []BuddyRequestWithUser{}
	for rows.Next() {
		var item BuddyRequestWithUser
		var message, bio, profilePhoto sql.NullString
		var age sql.NullInt32

		err := rows.Scan(
			&item.Request.ID, &item.Request.TripID, &item.Request.UserID,
			&item.Request.Status, &message, &item.Request.CreatedAt, &item.Request.UpdatedAt,
			&item.Requester.Name, &item.Requester.Email, &bio, &age, &profilePhoto,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan buddy request row: %w", err)
		}

		if message.Valid {
			item.Request.Message = &message.String
		}
		profile := model.Profile{}
		if bio.Valid {
			profile.Bio = &bio.String
		}
		if age.Valid {
			ageVal := int(age.Int32)
			profile.Age = &ageVal
		}
		if profilePhoto.Valid {
			profile.ProfilePhoto = &profilePhoto.String
		}
		item.Requester.Profile = &profile

		requests = append(requests, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating buddy request rows: %w", err)
	}

	return requests, nil
}

func scanBuddyRequest(row rowScanner) (model.TravelBuddyRequest, error) {
	var r model.TravelBuddyRequest
	var message sql.NullString

	err := row.Scan(&r.ID, &r.TripID, &r.UserID, &r.Status, &message, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return model.TravelBuddyRequest{}, mapError(err)
	}
	if message.Valid {
		r.Message = &message.String
	}
	return r, nil
}
