package query

import (
	"strings"
	"time"
)

// FieldGetter resolves a logical field name to an entity's value.
// Supported value types are string, float64, time.Time and []string.
type FieldGetter func(name string) (any, bool)

// Matches evaluates the predicate against one entity. The in-memory
// store uses this so service tests see the same filtering semantics
// the SQL translation produces.
func (p Predicate) Matches(get FieldGetter) bool {
	if len(p.Search) > 0 {
		hit := false
		for _, c := range p.Search {
			if evalCond(c, get) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	for _, c := range p.Filters {
		if !evalCond(c, get) {
			return false
		}
	}
	return true
}

func evalCond(c Cond, get FieldGetter) bool {
	value, ok := get(c.Name)
	if !ok {
		return false
	}
	switch c.Op {
	case OpContains:
		s, ok := value.(string)
		want, ok2 := c.Value.(string)
		return ok && ok2 && strings.Contains(strings.ToLower(s), strings.ToLower(want))
	case OpEq:
		return evalEq(value, c.Value)
	case OpGte:
		n, ok := toFloat(value)
		want, ok2 := c.Value.(float64)
		return ok && ok2 && n >= want
	case OpLte:
		n, ok := toFloat(value)
		want, ok2 := c.Value.(float64)
		return ok && ok2 && n <= want
	case OpHasElem:
		list, ok := value.([]string)
		want, ok2 := c.Value.(string)
		if !ok || !ok2 {
			return false
		}
		for _, e := range list {
			if strings.EqualFold(e, want) {
				return true
			}
		}
		return false
	case OpHasAll:
		list, ok := value.([]string)
		want, ok2 := c.Value.([]string)
		if !ok || !ok2 {
			return false
		}
		for _, w := range want {
			found := false
			for _, e := range list {
				if e == w {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	}
	return false
}

func evalEq(value, want any) bool {
	switch w := want.(type) {
	case string:
		s, ok := value.(string)
		return ok && s == w
	case float64:
		n, ok := toFloat(value)
		return ok && n == w
	case time.Time:
		t, ok := value.(time.Time)
		return ok && t.Equal(w)
	}
	return false
}

func toFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
