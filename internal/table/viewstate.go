package table

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// Query parameter names carried in list view URLs.
const (
	ParamQuery  = "q"
	ParamFilter = "filter"
	ParamSort   = "sort"
	ParamDir    = "dir"
	ParamPage   = "page"
	ParamLimit  = "limit"
)

// DefaultPageSize is used when no valid page size is supplied.
const DefaultPageSize = 10

// DefaultPageSizes are the page sizes a list view offers.
var DefaultPageSizes = []int{5, 10, 20, 50}

// ErrInvalidPageSize is reported for page sizes outside the allowed set.
var ErrInvalidPageSize = errors.New("page size not allowed")

// ViewOptions constrains the view state of one list.
type ViewOptions struct {
	PageSizes       []int
	DefaultPageSize int
	DefaultSort     string
	DefaultDir      Direction
}

func (o ViewOptions) withDefaults() ViewOptions {
	if len(o.PageSizes) == 0 {
		o.PageSizes = DefaultPageSizes
	}
	if o.DefaultPageSize < 1 {
		o.DefaultPageSize = DefaultPageSize
	}
	if o.DefaultDir == "" {
		o.DefaultDir = Asc
	}
	return o
}

// AllowsPageSize reports whether size is one of the offered page sizes.
func (o ViewOptions) AllowsPageSize(size int) bool {
	return slices.Contains(o.withDefaults().PageSizes, size)
}

// ViewState is the search, filter, sort and paging state of a list view.
// It is a value: every update returns a new state.
type ViewState struct {
	Query  string    `json:"q"`
	Filter string    `json:"filter"`
	Sort   string    `json:"sort,omitempty"`
	Dir    Direction `json:"dir"`
	Page   int       `json:"page"`
	Limit  int       `json:"limit"`
}

// NewViewState returns the initial state for a list.
func NewViewState(opts ViewOptions) ViewState {
	opts = opts.withDefaults()
	return ViewState{
		Filter: CategoryAll,
		Sort:   opts.DefaultSort,
		Dir:    opts.DefaultDir,
		Page:   1,
		Limit:  opts.DefaultPageSize,
	}
}

// ParseViewState reads a state from URL query values. Bad values fall back
// to their defaults and are reported as issues instead of failing.
func ParseViewState(values url.Values, opts ViewOptions) (ViewState, []error) {
	opts = opts.withDefaults()
	state := NewViewState(opts)
	var issues []error

	state.Query = strings.TrimSpace(values.Get(ParamQuery))
	if f := strings.TrimSpace(values.Get(ParamFilter)); f != "" {
		state.Filter = f
	}
	if s := strings.TrimSpace(values.Get(ParamSort)); s != "" {
		state.Sort = s
	}
	if d := values.Get(ParamDir); d != "" {
		state.Dir = ParseDirection(d)
	}

	if raw := values.Get(ParamPage); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			issues = append(issues, fmt.Errorf("%s=%q: must be a positive integer", ParamPage, raw))
		} else {
			state.Page = page
		}
	}

	if raw := values.Get(ParamLimit); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || !opts.AllowsPageSize(limit) {
			issues = append(issues, fmt.Errorf("%s=%q: %w (allowed %v)", ParamLimit, raw, ErrInvalidPageSize, opts.PageSizes))
		} else {
			state.Limit = limit
		}
	}

	return state, issues
}

// Values encodes the state as URL query values, leaving out defaults.
func (v ViewState) Values() url.Values {
	values := url.Values{}
	if v.Query != "" {
		values.Set(ParamQuery, v.Query)
	}
	if v.Filter != "" && v.Filter != CategoryAll {
		values.Set(ParamFilter, v.Filter)
	}
	if v.Sort != "" {
		values.Set(ParamSort, v.Sort)
		values.Set(ParamDir, string(v.Dir))
	}
	if v.Page > 1 {
		values.Set(ParamPage, strconv.Itoa(v.Page))
	}
	if v.Limit > 0 {
		values.Set(ParamLimit, strconv.Itoa(v.Limit))
	}
	return values
}

// WithQuery changes the search text and returns to the first page.
func (v ViewState) WithQuery(q string) ViewState {
	v.Query = strings.TrimSpace(q)
	v.Page = 1
	return v
}

// WithFilter changes the category and returns to the first page.
func (v ViewState) WithFilter(category string) ViewState {
	if category == "" {
		category = CategoryAll
	}
	v.Filter = category
	v.Page = 1
	return v
}

// WithSort sets the sort column and direction and returns to the first page.
func (v ViewState) WithSort(field string, dir Direction) ViewState {
	v.Sort = field
	v.Dir = dir
	v.Page = 1
	return v
}

// ToggleSort sorts by field, flipping the direction when field is already
// the sort column.
func (v ViewState) ToggleSort(field string) ViewState {
	if v.Sort == field {
		return v.WithSort(field, v.Dir.Flip())
	}
	return v.WithSort(field, Asc)
}

// WithLimit changes the page size and returns to the first page.
func (v ViewState) WithLimit(limit int) ViewState {
	v.Limit = limit
	v.Page = 1
	return v
}

// WithPage navigates to page and keeps everything else.
func (v ViewState) WithPage(page int) ViewState {
	v.Page = page
	return v
}

// Normalize resets the page to 1 when it falls outside 1..totalPages.
func (v ViewState) Normalize(totalPages int) ViewState {
	if v.Page < 1 || (v.Page > totalPages && v.Page != 1) {
		v.Page = 1
	}
	return v
}
