package query

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		opts     PageOptions
		expected Pagination
	}{
		{
			name:     "all defaults",
			opts:     PageOptions{},
			expected: Pagination{Page: 1, Limit: 5, Skip: 0, SortBy: "createdAt", SortOrder: "desc"},
		},
		{
			name:     "explicit page and limit",
			opts:     PageOptions{Page: "3", Limit: "10"},
			expected: Pagination{Page: 3, Limit: 10, Skip: 20, SortBy: "createdAt", SortOrder: "desc"},
		},
		{
			name:     "non-numeric page falls back",
			opts:     PageOptions{Page: "abc", Limit: "10"},
			expected: Pagination{Page: 1, Limit: 10, Skip: 0, SortBy: "createdAt", SortOrder: "desc"},
		},
		{
			name:     "zero page falls back",
			opts:     PageOptions{Page: "0"},
			expected: Pagination{Page: 1, Limit: 5, Skip: 0, SortBy: "createdAt", SortOrder: "desc"},
		},
		{
			name:     "negative limit falls back",
			opts:     PageOptions{Limit: "-5"},
			expected: Pagination{Page: 1, Limit: 5, Skip: 0, SortBy: "createdAt", SortOrder: "desc"},
		},
		{
			name:     "custom sort",
			opts:     PageOptions{SortBy: "budget", SortOrder: "asc"},
			expected: Pagination{Page: 1, Limit: 5, Skip: 0, SortBy: "budget", SortOrder: "asc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.opts)
			if got != tt.expected {
				t.Errorf("Normalize(%+v) = %+v, expected %+v", tt.opts, got, tt.expected)
			}
		})
	}
}
