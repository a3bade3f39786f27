package repository

import (
	"strings"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/roamly/travel-buddy-backend/internal/query"
)

func toSQL(t *testing.T, sqlizer sq.Sqlizer) (string, []interface{}) {
	t.Helper()
	stmt, args, err := sqlizer.ToSql()
	if err != nil {
		t.Fatalf("ToSql: %v", err)
	}
	return stmt, args
}

func TestSqlizeCond(t *testing.T) {
	tests := []struct {
		name         string
		cond         query.Cond
		expectedSQL  string
		expectedArgs []interface{}
	}{
		{
			name:         "substring match",
			cond:         query.Cond{Column: "destination", Op: query.OpContains, Value: "Paris"},
			expectedSQL:  "destination ILIKE ?",
			expectedArgs: []interface{}{"%Paris%"},
		},
		{
			name:         "equality",
			cond:         query.Cond{Column: "type", Op: query.OpEq, Value: "LEISURE"},
			expectedSQL:  "type = ?",
			expectedArgs: []interface{}{"LEISURE"},
		},
		{
			name:         "lower bound",
			cond:         query.Cond{Column: "budget", Op: query.OpGte, Value: 100.0},
			expectedSQL:  "budget >= ?",
			expectedArgs: []interface{}{100.0},
		},
		{
			name:         "upper bound",
			cond:         query.Cond{Column: "budget", Op: query.OpLte, Value: 600.0},
			expectedSQL:  "budget <= ?",
			expectedArgs: []interface{}{600.0},
		},
		{
			name:         "array element containment",
			cond:         query.Cond{Column: "activities", Op: query.OpHasElem, Value: "hiking"},
			expectedSQL:  "? = ANY(activities)",
			expectedArgs: []interface{}{"hiking"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, args := toSQL(t, sqlizeCond(tt.cond))
			if stmt != tt.expectedSQL {
				t.Errorf("sql = %q, expected %q", stmt, tt.expectedSQL)
			}
			if len(args) != len(tt.expectedArgs) {
				t.Fatalf("args = %v, expected %v", args, tt.expectedArgs)
			}
			for i := range args {
				if args[i] != tt.expectedArgs[i] {
					t.Errorf("arg %d = %v, expected %v", i, args[i], tt.expectedArgs[i])
				}
			}
		})
	}
}

func TestSqlizeCond_ContainsAll(t *testing.T) {
	stmt, args := toSQL(t, sqlizeCond(query.Cond{
		Column: "activities", Op: query.OpHasAll, Value: []string{"hiking", "diving"},
	}))
	if stmt != "activities @> ?" {
		t.Errorf("sql = %q", stmt)
	}
	if len(args) != 1 {
		t.Errorf("expected one array argument, got %v", args)
	}
}

func TestSqlizePredicate(t *testing.T) {
	pred, _ := query.Compile(query.TripFields, map[string]query.RawValue{
		"budget": {Min: "100", Max: "600"},
	}, "Paris", query.TripSearchableFields)

	stmt, args := toSQL(t, sqlizePredicate(pred))

	// One OR group for the search followed by the two range bounds.
	if !strings.Contains(stmt, " OR ") {
		t.Errorf("search term should form an OR group: %q", stmt)
	}
	if !strings.Contains(stmt, "budget >= ?") || !strings.Contains(stmt, "budget <= ?") {
		t.Errorf("range bounds missing: %q", stmt)
	}
	orEnd := strings.Index(stmt, ")")
	gteAt := strings.Index(stmt, "budget >= ?")
	if gteAt < orEnd {
		t.Errorf("filters should follow the search group: %q", stmt)
	}
	if len(args) != len(query.TripSearchableFields)+2 {
		t.Errorf("expected %d args, got %d: %v", len(query.TripSearchableFields)+2, len(args), args)
	}
}

func TestSqlizePredicate_EmptyPredicate(t *testing.T) {
	// The stores skip the WHERE clause for empty predicates; a stray
	// call must still be harmless.
	stmt, args := toSQL(t, sqlizePredicate(query.Predicate{}))
	if strings.Contains(stmt, "?") || len(args) != 0 {
		t.Errorf("empty predicate must not bind values: %q %v", stmt, args)
	}
}

func TestOrderClause(t *testing.T) {
	tests := []struct {
		name      string
		sortBy    string
		sortOrder string
		expected  string
	}{
		{"known column ascending", "createdAt", "asc", "created_at ASC"},
		{"known column descending", "budget", "desc", "budget DESC"},
		{"unknown column falls back", "password_hash", "asc", "created_at ASC"},
		{"injection attempt falls back", "created_at; DROP TABLE trips", "desc", "created_at DESC"},
		{"unknown direction falls back", "budget", "sideways", "budget DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := orderClause(tripSortColumns, tt.sortBy, tt.sortOrder, "created_at")
			if got != tt.expected {
				t.Errorf("orderClause(%q, %q) = %q, expected %q", tt.sortBy, tt.sortOrder, got, tt.expected)
			}
		})
	}
}
