package repository

import (
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/roamly/travel-buddy-backend/internal/query"
)

// Queries is the Postgres implementation of Store.
type Queries struct {
	db *sql.DB
}

// New creates a Postgres-backed store.
func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

// psql builds statements with PostgreSQL placeholders ($1, $2, ...).
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// uniqueViolation is the Postgres error code for a unique constraint
// violation.
const uniqueViolation = "23505"

// mapError translates driver errors into the store's error set.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
		return ErrDuplicate
	}
	return err
}

// sqlizeCond translates one predicate condition into SQL.
func sqlizeCond(c query.Cond) sq.Sqlizer {
	switch c.Op {
	case query.OpContains:
		return sq.ILike{c.Column: "%" + fmt.Sprint(c.Value) + "%"}
	case query.OpEq:
		return sq.Eq{c.Column: c.Value}
	case query.OpGte:
		return sq.GtOrEq{c.Column: c.Value}
	case query.OpLte:
		return sq.LtOrEq{c.Column: c.Value}
	case query.OpHasElem:
		return sq.Expr("? = ANY("+c.Column+")", c.Value)
	case query.OpHasAll:
		list, _ := c.Value.([]string)
		return sq.Expr(c.Column+" @> ?", pq.Array(list))
	}
	return sq.Expr("FALSE")
}

// sqlizePredicate translates a compiled predicate into a WHERE
// clause: the search OR-group AND-ed with every filter condition.
func sqlizePredicate(p query.Predicate) sq.Sqlizer {
	conditions := sq.And{}
	if len(p.Search) > 0 {
		or := sq.Or{}
		for _, c := range p.Search {
			or = append(or, sqlizeCond(c))
		}
		conditions = append(conditions, or)
	}
	for _, c := range p.Filters {
		conditions = append(conditions, sqlizeCond(c))
	}
	return conditions
}

// orderClause sanitizes a sort request against a column allow-list.
// Unknown fields fall back to creation time, unknown directions to
// descending.
func orderClause(allowed map[string]string, sortBy, sortOrder, fallback string) string {
	column, ok := allowed[sortBy]
	if !ok {
		column = fallback
	}
	dir := strings.ToUpper(sortOrder)
	if dir != "ASC" && dir != "DESC" {
		dir = "DESC"
	}
	return column + " " + dir
}
