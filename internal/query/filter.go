package query

import (
	"strconv"
	"strings"
	"time"
)

// Kind declares how a raw filter value for a field is decoded.
type Kind int

const (
	// KindText matches with a case-insensitive substring.
	KindText Kind = iota
	// KindEnum matches with exact equality, optionally against a
	// fixed value set.
	KindEnum
	// KindNumeric accepts a scalar for exact match or min/max bounds
	// for an inclusive range.
	KindNumeric
	// KindDate parses a calendar date and matches by exact equality.
	KindDate
	// KindStringArray matches collection containment: one value means
	// "contains element", several mean "contains all of them".
	KindStringArray
)

// FieldSpec describes one filterable field of an entity.
type FieldSpec struct {
	Name   string // filter key as it appears in the query string
	Column string // column the Postgres store filters on
	Kind   Kind
	Enum   []string // allowed values for KindEnum; nil accepts any
}

// RawValue is the untyped filter input for one key, as extracted from
// the query string. Min/Max come from key[min] / key[max] bracket
// parameters.
type RawValue struct {
	Values []string
	Min    string
	Max    string
}

func (v RawValue) hasRange() bool {
	return v.Min != "" || v.Max != ""
}

func (v RawValue) scalar() string {
	if len(v.Values) > 0 {
		return v.Values[0]
	}
	return ""
}

// FilterValue is the decoded form of a raw filter value. The declared
// field kind, not runtime inspection of the input, decides which arm
// is populated.
type FilterValue struct {
	Kind Kind
	Text string
	Num  float64
	Min  *float64
	Max  *float64
	Date time.Time
	List []string
}

// Diagnostic records a filter that was ignored and why. Unparseable
// values degrade to diagnostics instead of failing the query.
type Diagnostic struct {
	Field  string
	Reason string
}

// Op is a comparison operator inside a compiled predicate.
type Op int

const (
	OpContains Op = iota // case-insensitive substring
	OpEq
	OpGte
	OpLte
	OpHasElem // array contains the element
	OpHasAll  // array contains every element
)

// Cond is one typed condition of a compiled predicate. Name is the
// logical field name used for in-memory evaluation; Column is what
// the Postgres store builds SQL from.
type Cond struct {
	Name   string
	Column string
	Op     Op
	Value  any // string, float64, time.Time or []string
}

// Predicate is the compiled filter: an optional OR-group from the
// free-text search term, AND-ed with one condition per recognized
// filter key.
type Predicate struct {
	Search  []Cond // OR group
	Filters []Cond // AND group
}

// Empty reports whether the predicate constrains nothing.
func (p Predicate) Empty() bool {
	return len(p.Search) == 0 && len(p.Filters) == 0
}

// Compile turns raw filter values and a free-text search term into a
// predicate over the given field table. Unrecognized keys are
// skipped, values that do not parse into their declared kind yield a
// Diagnostic instead of a condition, and the inputs are never
// mutated. The result is deterministic: conditions follow the order
// of the field table.
func Compile(fields []FieldSpec, raw map[string]RawValue, searchTerm string, searchable []string) (Predicate, []Diagnostic) {
	var pred Predicate
	var diags []Diagnostic

	if term := strings.TrimSpace(searchTerm); term != "" {
		for _, name := range searchable {
			spec, ok := lookupField(fields, name)
			if !ok {
				continue
			}
			if spec.Kind == KindStringArray {
				pred.Search = append(pred.Search, Cond{Name: spec.Name, Column: spec.Column, Op: OpHasElem, Value: term})
				continue
			}
			pred.Search = append(pred.Search, Cond{Name: spec.Name, Column: spec.Column, Op: OpContains, Value: term})
		}
	}

	for _, spec := range fields {
		value, ok := raw[spec.Name]
		if !ok {
			continue
		}
		decoded, reason := decode(spec, value)
		if reason != "" {
			diags = append(diags, Diagnostic{Field: spec.Name, Reason: reason})
			continue
		}
		pred.Filters = append(pred.Filters, conds(spec, decoded)...)
	}

	return pred, diags
}

// decode interprets a raw value according to the field's declared
// kind. A non-empty reason means the value was unusable and the
// filter must be ignored.
func decode(spec FieldSpec, raw RawValue) (FilterValue, string) {
	switch spec.Kind {
	case KindText:
		s := raw.scalar()
		if s == "" {
			return FilterValue{}, "empty value"
		}
		return FilterValue{Kind: KindText, Text: s}, ""

	case KindEnum:
		s := raw.scalar()
		if s == "" {
			return FilterValue{}, "empty value"
		}
		if len(spec.Enum) > 0 && !containsString(spec.Enum, s) {
			return FilterValue{}, "value not in allowed set"
		}
		return FilterValue{Kind: KindEnum, Text: s}, ""

	case KindNumeric:
		if raw.hasRange() {
			fv := FilterValue{Kind: KindNumeric}
			if raw.Min != "" {
				min, err := strconv.ParseFloat(raw.Min, 64)
				if err == nil {
					fv.Min = &min
				}
			}
			if raw.Max != "" {
				max, err := strconv.ParseFloat(raw.Max, 64)
				if err == nil {
					fv.Max = &max
				}
			}
			if fv.Min == nil && fv.Max == nil {
				return FilterValue{}, "range bounds are not numeric"
			}
			return fv, ""
		}
		n, err := strconv.ParseFloat(raw.scalar(), 64)
		if err != nil {
			return FilterValue{}, "value is not a number or min/max range"
		}
		return FilterValue{Kind: KindNumeric, Num: n}, ""

	case KindDate:
		d, err := time.Parse("2006-01-02", raw.scalar())
		if err != nil {
			return FilterValue{}, "value is not a date"
		}
		return FilterValue{Kind: KindDate, Date: d}, ""

	case KindStringArray:
		if len(raw.Values) == 0 {
			return FilterValue{}, "no values for array containment"
		}
		list := make([]string, len(raw.Values))
		copy(list, raw.Values)
		return FilterValue{Kind: KindStringArray, List: list}, ""
	}
	return FilterValue{}, "unsupported field kind"
}

// conds converts a decoded value into predicate conditions.
func conds(spec FieldSpec, v FilterValue) []Cond {
	base := Cond{Name: spec.Name, Column: spec.Column}
	switch v.Kind {
	case KindText:
		base.Op = OpContains
		base.Value = v.Text
		return []Cond{base}
	case KindEnum:
		base.Op = OpEq
		base.Value = v.Text
		return []Cond{base}
	case KindNumeric:
		if v.Min == nil && v.Max == nil {
			base.Op = OpEq
			base.Value = v.Num
			return []Cond{base}
		}
		var out []Cond
		if v.Min != nil {
			out = append(out, Cond{Name: spec.Name, Column: spec.Column, Op: OpGte, Value: *v.Min})
		}
		if v.Max != nil {
			out = append(out, Cond{Name: spec.Name, Column: spec.Column, Op: OpLte, Value: *v.Max})
		}
		return out
	case KindDate:
		base.Op = OpEq
		base.Value = v.Date
		return []Cond{base}
	case KindStringArray:
		if len(v.List) == 1 {
			base.Op = OpHasElem
			base.Value = v.List[0]
			return []Cond{base}
		}
		base.Op = OpHasAll
		base.Value = v.List
		return []Cond{base}
	}
	return nil
}

func lookupField(fields []FieldSpec, name string) (FieldSpec, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

func containsString(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
