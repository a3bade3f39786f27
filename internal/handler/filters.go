package handler

import (
	"log"
	"net/url"

	"github.com/roamly/travel-buddy-backend/internal/query"
)

// parseFilters extracts the raw filter values for a field table from
// the query string. Range bounds use bracket parameters, e.g.
// budget[min]=100&budget[max]=600. Keys outside the table are
// ignored here and by the compiler alike.
func parseFilters(values url.Values, fields []query.FieldSpec) map[string]query.RawValue {
	filters := make(map[string]query.RawValue)
	for _, spec := range fields {
		raw := query.RawValue{
			Min: values.Get(spec.Name + "[min]"),
			Max: values.Get(spec.Name + "[max]"),
		}
		if vs, ok := values[spec.Name]; ok {
			raw.Values = vs
		}
		if len(raw.Values) > 0 || raw.Min != "" || raw.Max != "" {
			filters[spec.Name] = raw
		}
	}
	return filters
}

// parsePageOptions extracts the raw pagination inputs; normalization
// happens in the query package.
func parsePageOptions(values url.Values) query.PageOptions {
	return query.PageOptions{
		Page:      values.Get("page"),
		Limit:     values.Get("limit"),
		SortBy:    values.Get("sortBy"),
		SortOrder: values.Get("sortOrder"),
	}
}

// logDiagnostics records filters the compiler ignored. The query
// still ran with the remaining predicates.
func logDiagnostics(entity string, diags []query.Diagnostic) {
	for _, d := range diags {
		log.Printf("%s list: ignored filter %q: %s", entity, d.Field, d.Reason)
	}
}
