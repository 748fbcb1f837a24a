package table

import (
	"errors"
	"strings"
)

// CategoryAll is the identity filter.
const CategoryAll = "all"

// ErrUnknownCategory is reported for filter keys outside a category set.
var ErrUnknownCategory = errors.New("unknown filter category")

// Predicate reports whether a record belongs to a category.
type Predicate[T any] func(T) bool

// Category is a named predicate.
type Category[T any] struct {
	Key   string
	Match Predicate[T]
}

// CategorySet is a closed set of categories. CategoryAll is always a member.
type CategorySet[T any] struct {
	order      []string
	predicates map[string]Predicate[T]
}

// NewCategorySet builds a set from the given categories, in order.
func NewCategorySet[T any](categories ...Category[T]) CategorySet[T] {
	set := CategorySet[T]{
		order:      []string{CategoryAll},
		predicates: make(map[string]Predicate[T], len(categories)),
	}
	for _, c := range categories {
		if c.Key == CategoryAll || c.Match == nil {
			continue
		}
		if _, dup := set.predicates[c.Key]; !dup {
			set.order = append(set.order, c.Key)
		}
		set.predicates[c.Key] = c.Match
	}
	return set
}

// Keys lists the category keys, starting with CategoryAll.
func (s CategorySet[T]) Keys() []string {
	return append([]string(nil), s.order...)
}

// Has reports whether key names a category of the set.
func (s CategorySet[T]) Has(key string) bool {
	if key == "" || key == CategoryAll {
		return true
	}
	_, ok := s.predicates[key]
	return ok
}

// Predicate returns the predicate for key; nil means no narrowing.
func (s CategorySet[T]) Predicate(key string) (Predicate[T], error) {
	if key == "" || key == CategoryAll {
		return nil, nil
	}
	p, ok := s.predicates[key]
	if !ok {
		return nil, ErrUnknownCategory
	}
	return p, nil
}

// Filter narrows records to the category, then to the search query.
// Unknown categories do not narrow. The input is left untouched and the
// relative order of the kept records is preserved.
func Filter[T Record](records []T, categories CategorySet[T], category, query string, searchFields []FieldPath) []T {
	match, _ := categories.Predicate(category)
	needle := strings.ToLower(strings.TrimSpace(query))

	out := make([]T, 0, len(records))
	for _, r := range records {
		if match != nil && !match(r) {
			continue
		}
		if needle != "" && !matchesQuery(r, needle, searchFields) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// matchesQuery expects needle to be lower-cased already.
func matchesQuery(r Record, needle string, fields []FieldPath) bool {
	if len(fields) == 0 {
		for _, name := range r.FieldNames() {
			v, _ := r.Field(name)
			if containsFold(v, needle) {
				return true
			}
		}
		return false
	}
	for _, path := range fields {
		v, ok := path.Resolve(r)
		if ok && containsFold(v, needle) {
			return true
		}
	}
	return false
}

func containsFold(v any, needle string) bool {
	s := stringify(v)
	return s != "" && strings.Contains(strings.ToLower(s), needle)
}

// ContainsAny reports whether s contains any of the tokens, ignoring case.
func ContainsAny(s string, tokens []string) bool {
	upper := strings.ToUpper(s)
	for _, t := range tokens {
		if strings.Contains(upper, strings.ToUpper(t)) {
			return true
		}
	}
	return false
}
