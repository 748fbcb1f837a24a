package table

import (
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Direction is a sort direction.
type Direction string

// Sort directions
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection maps anything other than "desc" to Asc.
func ParseDirection(s string) Direction {
	if strings.EqualFold(s, string(Desc)) {
		return Desc
	}
	return Asc
}

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Desc {
		return Asc
	}
	return Desc
}

// Accessor extracts a sort key from a record. Returning nil sorts the
// record last.
type Accessor[T any] func(T) any

// Sort orders records by field (or by accessor when given) and returns a new
// slice. Missing values go last in both directions and ties keep their input
// order. With neither a field nor an accessor the input is returned as is.
func Sort[T Record](records []T, field FieldPath, dir Direction, accessor Accessor[T]) []T {
	if accessor == nil && len(field) == 0 {
		return records
	}

	type keyed struct {
		record T
		key    any
	}
	items := make([]keyed, len(records))
	for i, r := range records {
		var key any
		if accessor != nil {
			key = accessor(r)
		} else {
			key, _ = field.Resolve(r)
		}
		items[i] = keyed{record: r, key: normalize(key)}
	}

	coll := collate.New(language.English)
	slices.SortStableFunc(items, func(a, b keyed) int {
		return compareKeys(a.key, b.key, dir, coll)
	})

	out := make([]T, len(items))
	for i, it := range items {
		out[i] = it.record
	}
	return out
}

// compareKeys keeps nil last whatever the direction.
func compareKeys(a, b any, dir Direction, coll *collate.Collator) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	c := compareValues(a, b, coll)
	if dir == Desc {
		return -c
	}
	return c
}

func compareValues(a, b any, coll *collate.Collator) int {
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return coll.CompareString(av, bv)
		}
	case float64:
		if bv, ok := b.(float64); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	}
	return strings.Compare(stringify(a), stringify(b))
}
