package handler

import (
	"net/url"
	"reflect"
	"testing"

	"github.com/roamly/travel-buddy-backend/internal/query"
)

func TestParseFilters(t *testing.T) {
	tests := []struct {
		name     string
		rawQuery string
		expected map[string]query.RawValue
	}{
		{
			name:     "empty query",
			rawQuery: "",
			expected: map[string]query.RawValue{},
		},
		{
			name:     "scalar filter",
			rawQuery: "destination=Paris",
			expected: map[string]query.RawValue{
				"destination": {Values: []string{"Paris"}},
			},
		},
		{
			name:     "bracket range bounds",
			rawQuery: "budget%5Bmin%5D=100&budget%5Bmax%5D=600",
			expected: map[string]query.RawValue{
				"budget": {Min: "100", Max: "600"},
			},
		},
		{
			name:     "partial range",
			rawQuery: "budget%5Bmax%5D=600",
			expected: map[string]query.RawValue{
				"budget": {Max: "600"},
			},
		},
		{
			name:     "repeated values collect into one key",
			rawQuery: "activities=hiking&activities=diving",
			expected: map[string]query.RawValue{
				"activities": {Values: []string{"hiking", "diving"}},
			},
		},
		{
			name:     "keys outside the field table are dropped",
			rawQuery: "favoriteColor=blue&page=2&searchTerm=beach",
			expected: map[string]query.RawValue{},
		},
		{
			name:     "scalar and range on the same field",
			rawQuery: "budget=500&budget%5Bmin%5D=100",
			expected: map[string]query.RawValue{
				"budget": {Values: []string{"500"}, Min: "100"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.rawQuery)
			if err != nil {
				t.Fatalf("parse query: %v", err)
			}
			got := parseFilters(values, query.TripFields)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("parseFilters(%q) = %+v, expected %+v", tt.rawQuery, got, tt.expected)
			}
		})
	}
}

func TestParsePageOptions(t *testing.T) {
	values, err := url.ParseQuery("page=2&limit=10&sortBy=budget&sortOrder=asc")
	if err != nil {
		t.Fatalf("parse query: %v", err)
	}

	got := parsePageOptions(values)
	expected := query.PageOptions{Page: "2", Limit: "10", SortBy: "budget", SortOrder: "asc"}
	if got != expected {
		t.Errorf("parsePageOptions = %+v, expected %+v", got, expected)
	}
}
