package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/roamly/travel-buddy-backend/internal/model"
	"github.com/roamly/travel-buddy-backend/internal/query"
)

var tripColumns = []string{
	"id", "user_id", "destination", "start_date", "end_date", "budget",
	"type", "description", "itinerary", "photos", "activities",
	"created_at", "updated_at",
}

var tripSortColumns = map[string]string{
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
	"startDate":   "start_date",
	"endDate":     "end_date",
	"budget":      "budget",
	"destination": "destination",
}

// CreateTrip inserts a trip and returns the stored row.
func (q *Queries) CreateTrip(ctx context.Context, arg CreateTripParams) (model.Trip, error) {
	photos, err := json.Marshal(photosOrEmpty(arg.Photos))
	if err != nil {
		return model.Trip{}, fmt.Errorf("failed to encode photos: %w", err)
	}

	row := q.db.QueryRowContext(ctx, `
		INSERT INTO trips (user_id, destination, start_date, end_date, budget, type, description, itinerary, photos, activities)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+columnList(tripColumns),
		arg.OwnerID, arg.Destination, arg.StartDate, arg.EndDate, arg.Budget,
		arg.Type, arg.Description, nullString(arg.Itinerary), photos,
		pq.Array(activitiesOrEmpty(arg.Activities)),
	)
	return scanTrip(row)
}

// GetTripByID fetches a trip by primary key.
func (q *Queries) GetTripByID(ctx context.Context, id uuid.UUID) (model.Trip, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+columnList(tripColumns)+` FROM trips WHERE id = $1`, id)
	return scanTrip(row)
}

// GetTripByIDAndOwner fetches a trip by primary key and owner in one
// lookup. An ownership mismatch surfaces as ErrNotFound.
func (q *Queries) GetTripByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (model.Trip, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+columnList(tripColumns)+` FROM trips WHERE id = $1 AND user_id = $2`, id, ownerID)
	return scanTrip(row)
}

// UpdateTrip applies the provided fields and returns the new row.
func (q *Queries) UpdateTrip(ctx context.Context, id uuid.UUID, arg UpdateTripParams) (model.Trip, error) {
	update := psql.Update("trips").Set("updated_at", sq.Expr("now()"))

	if arg.Destination != nil {
		update = update.Set("destination", *arg.Destination)
	}
	if arg.StartDate != nil {
		update = update.Set("start_date", *arg.StartDate)
	}
	if arg.EndDate != nil {
		update = update.Set("end_date", *arg.EndDate)
	}
	if arg.Budget != nil {
		update = update.Set("budget", *arg.Budget)
	}
	if arg.Type != nil {
		update = update.Set("type", *arg.Type)
	}
	if arg.Description != nil {
		update = update.Set("description", *arg.Description)
	}
	if arg.Itinerary != nil {
		update = update.Set("itinerary", *arg.Itinerary)
	}
	if arg.Photos != nil {
		photos, err := json.Marshal(arg.Photos)
		if err != nil {
			return model.Trip{}, fmt.Errorf("failed to encode photos: %w", err)
		}
		update = update.Set("photos", photos)
	}
	if arg.Activities != nil {
		update = update.Set("activities", pq.Array(arg.Activities))
	}

	updateSQL, args, err := update.
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + columnList(tripColumns)).
		ToSql()
	if err != nil {
		return model.Trip{}, fmt.Errorf("failed to build update query: %w", err)
	}

	return scanTrip(q.db.QueryRowContext(ctx, updateSQL, args...))
}

// DeleteTripCascade deletes a trip's buddy requests and then the trip
// row inside one transaction, so the two deletes are all-or-nothing.
func (q *Queries) DeleteTripCascade(ctx context.Context, id uuid.UUID) error {
	tx, err := q.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM travel_buddy_requests WHERE trip_id = $1`, id); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM trips WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

// ListTrips runs the count and page queries with the same predicate,
// so the reported total always matches the filtered set.
func (q *Queries) ListTrips(ctx context.Context, pred query.Predicate, page query.Pagination) ([]model.Trip, int64, error) {
	conditions := sqlizePredicate(pred)

	countQuery := psql.Select("COUNT(*)").From("trips")
	if !pred.Empty() {
		countQuery = countQuery.Where(conditions)
	}
	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int64
	if err := q.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to execute count query: %w", err)
	}
	if total == 0 {
		return []model.Trip{}, 0, nil
	}

	selectQuery := psql.Select(tripColumns...).From("trips")
	if !pred.Empty() {
		selectQuery = selectQuery.Where(conditions)
	}
	selectQuery = selectQuery.
		OrderBy(orderClause(tripSortColumns, page.SortBy, page.SortOrder, "created_at")).
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Skip))

	selectSQL, selectArgs, err := selectQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := q.db.QueryContext(ctx, selectSQL, selectArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to execute select query: %w", err)
	}
	defer rows.Close()

	trips := []model.Trip{}
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, 0, err
		}
		trips = append(trips, trip)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating trip rows: %w", err)
	}

	return trips, total, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(row rowScanner) (model.Trip, error) {
	var t model.Trip
	var itinerary sql.NullString
	var photos []byte
	var activities pq.StringArray

	err := row.Scan(
		&t.ID, &t.OwnerID, &t.Destination, &t.StartDate, &t.EndDate,
		&t.Budget, &t.Type, &t.Description, &itinerary, &photos,
		&activities, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return model.Trip{}, mapError(err)
	}

	if itinerary.Valid {
		t.Itinerary = &itinerary.String
	}
	if len(photos) > 0 {
		if err := json.Unmarshal(photos, &t.Photos); err != nil {
			return model.Trip{}, fmt.Errorf("failed to decode photos: %w", err)
		}
	}
	t.Activities = []string(activities)

	return t, nil
}

func columnList(columns []string) string {
	out := columns[0]
	for _, c := range columns[1:] {
		out += ", " + c
	}
	return out
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func photosOrEmpty(photos []model.Photo) []model.Photo {
	if photos == nil {
		return []model.Photo{}
	}
	return photos
}

func activitiesOrEmpty(activities []string) []string {
	if activities == nil {
		return []string{}
	}
	return activities
}
