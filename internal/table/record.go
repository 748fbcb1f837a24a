package table

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Record is a row that exposes its attributes by name.
type Record interface {
	Field(name string) (any, bool)
	FieldNames() []string
}

// Fields is a map-backed Record, handy for nested attributes.
type Fields map[string]any

// Field implements Record.
func (f Fields) Field(name string) (any, bool) {
	v, ok := f[name]
	return v, ok
}

// FieldNames implements Record. Names are returned in sorted order.
func (f Fields) FieldNames() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ErrInvalidFieldPath is returned for malformed dotted paths.
var ErrInvalidFieldPath = errors.New("invalid field path")

// FieldPath is a validated dotted path such as "pair.symbol".
type FieldPath []string

// ParseFieldPath splits and validates a dotted path. Segments must be
// non-empty and made of letters, digits or underscores.
func ParseFieldPath(path string) (FieldPath, error) {
	if path == "" {
		return nil, ErrInvalidFieldPath
	}
	segments := strings.Split(path, ".")
	for _, seg := range segments {
		if !validSegment(seg) {
			return nil, ErrInvalidFieldPath
		}
	}
	return FieldPath(segments), nil
}

// MustFieldPath is ParseFieldPath for paths known at compile time.
func MustFieldPath(path string) FieldPath {
	p, err := ParseFieldPath(path)
	if err != nil {
		panic(err.Error() + ": " + path)
	}
	return p
}

// FieldPaths parses a list of paths with MustFieldPath.
func FieldPaths(paths ...string) []FieldPath {
	out := make([]FieldPath, 0, len(paths))
	for _, p := range paths {
		out = append(out, MustFieldPath(p))
	}
	return out
}

func validSegment(seg string) bool {
	if seg == "" {
		return false
	}
	for _, r := range seg {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		default:
			return false
		}
	}
	return true
}

// String joins the path back into its dotted form.
func (p FieldPath) String() string {
	return strings.Join(p, ".")
}

// Resolve walks the path through r. It reports false when any segment is
// missing or an intermediate value is not a record.
func (p FieldPath) Resolve(r Record) (any, bool) {
	if len(p) == 0 || r == nil {
		return nil, false
	}
	current := r
	for i, seg := range p {
		v, ok := current.Field(seg)
		if !ok {
			return nil, false
		}
		if i == len(p)-1 {
			return v, true
		}
		next, ok := asRecord(v)
		if !ok {
			return nil, false
		}
		current = next
	}
	return nil, false
}

func asRecord(v any) (Record, bool) {
	switch t := v.(type) {
	case Record:
		return t, t != nil
	case map[string]any:
		return Fields(t), true
	}
	return nil, false
}

// normalize folds the value kinds rows expose into nil, string, float64,
// time.Time or bool so comparisons only deal with a few shapes.
func normalize(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case string, float64, bool:
		return t
	case time.Time:
		return t
	case *time.Time:
		if t == nil {
			return nil
		}
		return *t
	case *string:
		if t == nil {
			return nil
		}
		return *t
	case *float64:
		if t == nil {
			return nil
		}
		return *t
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32:
		return cast.ToFloat64(t)
	}
	return v
}

// stringify renders a value for search and fallback comparison.
func stringify(v any) string {
	switch t := normalize(v).(type) {
	case nil:
		return ""
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	case Record:
		return ""
	default:
		s, err := cast.ToStringE(t)
		if err != nil {
			return ""
		}
		return s
	}
}
