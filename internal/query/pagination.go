package query

import "strconv"

const (
	defaultPage      = 1
	defaultLimit     = 5
	defaultSortBy    = "createdAt"
	defaultSortOrder = "desc"
)

// PageOptions are the raw, optional pagination inputs from the query
// string.
type PageOptions struct {
	Page      string
	Limit     string
	SortBy    string
	SortOrder string
}

// Pagination is the normalized skip/take/order tuple.
type Pagination struct {
	Page      int
	Limit     int
	Skip      int
	SortBy    string
	SortOrder string
}

// Normalize fills defaults for missing or non-numeric pagination
// inputs. It is total: every input produces a usable tuple.
func Normalize(opts PageOptions) Pagination {
	page := parsePositive(opts.Page, defaultPage)
	limit := parsePositive(opts.Limit, defaultLimit)

	sortBy := opts.SortBy
	if sortBy == "" {
		sortBy = defaultSortBy
	}
	sortOrder := opts.SortOrder
	if sortOrder == "" {
		sortOrder = defaultSortOrder
	}

	return Pagination{
		Page:      page,
		Limit:     limit,
		Skip:      (page - 1) * limit,
		SortBy:    sortBy,
		SortOrder: sortOrder,
	}
}

func parsePositive(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
