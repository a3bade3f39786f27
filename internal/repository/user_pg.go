package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/roamly/travel-buddy-backend/internal/model"
	"github.com/roamly/travel-buddy-backend/internal/query"
)

// userSelect joins the profile row so every user read carries the
// public profile projection.
const userSelect = `
	SELECT u.id, u.name, u.email, u.password_hash, u.role, u.status,
	       u.created_at, u.updated_at, p.bio, p.age, p.profile_photo
	FROM users u
	LEFT JOIN profiles p ON p.user_id = u.id`

var userSortColumns = map[string]string{
	"createdAt": "u.created_at",
	"updatedAt": "u.updated_at",
	"name":      "u.name",
	"email":     "u.email",
}

// CreateUser inserts the user row and its profile row in one
// transaction; a duplicate email surfaces as ErrDuplicate.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (model.User, error) {
	tx, err := q.db.BeginTx(ctx, nil)
	if err != nil {
		return model.User{}, err
	}
	defer tx.Rollback()

	var u model.User
	err = tx.QueryRowContext(ctx, `
		INSERT INTO users (name, email, password_hash, role, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, email, password_hash, role, status, created_at, updated_at`,
		arg.Name, arg.Email, arg.PasswordHash, arg.Role, model.StatusActive,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return model.User{}, mapError(err)
	}

	var age sql.NullInt32
	if arg.Profile.Age != nil {
		age = sql.NullInt32{Int32: int32(*arg.Profile.Age), Valid: true}
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO profiles (user_id, bio, age, profile_photo)
		VALUES ($1, $2, $3, $4)`,
		u.ID, nullString(arg.Profile.Bio), age, nullString(arg.Profile.ProfilePhoto))
	if err != nil {
		return model.User{}, mapError(err)
	}

	if err := tx.Commit(); err != nil {
		return model.User{}, err
	}

	profile := arg.Profile
	u.Profile = &profile
	return u, nil
}

// GetUserByID fetches a user with their profile.
func (q *Queries) GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	return scanUser(q.db.QueryRowContext(ctx, userSelect+` WHERE u.id = $1`, id))
}

// GetUserByEmail fetches a user with their profile by email.
func (q *Queries) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	return scanUser(q.db.QueryRowContext(ctx, userSelect+` WHERE u.email = $1`, email))
}

// UpdateUser applies the provided user and profile fields in one
// transaction and returns the new row.
func (q *Queries) UpdateUser(ctx context.Context, id uuid.UUID, arg UpdateUserParams) (model.User, error) {
	tx, err := q.db.BeginTx(ctx, nil)
	if err != nil {
		return model.User{}, err
	}
	defer tx.Rollback()

	update := psql.Update("users").Set("updated_at", sq.Expr("now()")).Where(sq.Eq{"id": id})
	if arg.Name != nil {
		update = update.Set("name", *arg.Name)
	}
	if arg.Email != nil {
		update = update.Set("email", *arg.Email)
	}
	updateSQL, args, err := update.ToSql()
	if err != nil {
		return model.User{}, fmt.Errorf("failed to build update query: %w", err)
	}
	result, err := tx.ExecContext(ctx, updateSQL, args...)
	if err != nil {
		return model.User{}, mapError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return model.User{}, err
	}
	if affected == 0 {
		return model.User{}, ErrNotFound
	}

	if arg.Profile != nil {
		var age sql.NullInt32
		if arg.Profile.Age != nil {
			age = sql.NullInt32{Int32: int32(*arg.Profile.Age), Valid: true}
		}
		_, err = tx.ExecContext(ctx, `
			UPDATE profiles SET bio = $2, age = $3, profile_photo = $4 WHERE user_id = $1`,
			id, nullString(arg.Profile.Bio), age, nullString(arg.Profile.ProfilePhoto))
		if err != nil {
			return model.User{}, mapError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return model.User{}, err
	}

	return q.GetUserByID(ctx, id)
}

// UpdateUserPassword replaces a user's password hash.
func (q *Queries) UpdateUserPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	result, err := q.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`, id, passwordHash)
	if err != nil {
		return mapError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListUsers runs the count and page queries with the same predicate.
func (q *Queries) ListUsers(ctx context.Context, pred query.Predicate, page query.Pagination) ([]model.User, int64, error) {
	conditions := sqlizePredicate(pred)

	countQuery := psql.Select("COUNT(*)").
		From("users u").
		LeftJoin("profiles p ON p.user_id = u.id")
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
		return []model.User{}, 0, nil
	}

	selectQuery := psql.Select(
		"u.id", "u.name", "u.email", "u.password_hash", "u.role", "u.status",
		"u.created_at", "u.updated_at", "p.bio", "p.age", "p.profile_photo",
	).From("users u").LeftJoin("profiles p ON p.user_id = u.id")
	if !pred.Empty() {
		selectQuery = selectQuery.Where(conditions)
	}
	selectQuery = selectQuery.
		OrderBy(orderClause(userSortColumns, page.SortBy, page.SortOrder, "u.created_at")).
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

	users := []model.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, total, nil
}

func scanUser(row rowScanner) (model.User, error) {
	var u model.User
	var bio, profilePhoto sql.NullString
	var age sql.NullInt32

	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Status,
		&u.CreatedAt, &u.UpdatedAt, &bio, &age, &profilePhoto,
	)
	if err != nil {
		return model.User{}, mapError(err)
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
	u.Profile = &profile

	return u, nil
}
