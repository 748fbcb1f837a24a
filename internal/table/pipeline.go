package table

import (
	"fmt"
	"slices"
)

// View describes how one list is filtered, searched and sorted.
type View[T Record] struct {
	Categories   CategorySet[T]
	SearchFields []FieldPath
	// Accessors override path resolution for computed sort columns.
	Accessors map[string]Accessor[T]
	// Sortable restricts the sort columns; empty allows any valid path.
	Sortable []string
}

// Result is the outcome of running a view over a collection.
type Result[T any] struct {
	Page   Page[T]
	State  ViewState
	Issues []error
}

// Run filters, sorts and paginates records. The returned state is the one
// actually applied: unknown filters and sort columns are dropped and a page
// past the end is reset to 1.
func (v View[T]) Run(records []T, state ViewState) Result[T] {
	var issues []error

	if !v.Categories.Has(state.Filter) {
		issues = append(issues, fmt.Errorf("%s=%q: %w", ParamFilter, state.Filter, ErrUnknownCategory))
		state.Filter = CategoryAll
	}
	if state.Filter == "" {
		state.Filter = CategoryAll
	}

	field, accessor, err := v.sortKey(state.Sort)
	if err != nil {
		issues = append(issues, fmt.Errorf("%s=%q: %w", ParamSort, state.Sort, err))
		state.Sort = ""
	}

	filtered := Filter(records, v.Categories, state.Filter, state.Query, v.SearchFields)
	sorted := Sort(filtered, field, state.Dir, accessor)

	page := Paginate(sorted, state.Page, state.Limit)
	if normalized := state.Normalize(page.TotalPages); normalized.Page != state.Page {
		state = normalized
		page = Paginate(sorted, state.Page, state.Limit)
	}
	state.Limit = page.PageSize

	return Result[T]{Page: page, State: state, Issues: issues}
}

func (v View[T]) sortKey(column string) (FieldPath, Accessor[T], error) {
	if column == "" {
		return nil, nil, nil
	}
	if len(v.Sortable) > 0 && !slices.Contains(v.Sortable, column) {
		return nil, nil, ErrInvalidFieldPath
	}
	if accessor, ok := v.Accessors[column]; ok {
		return nil, accessor, nil
	}
	path, err := ParseFieldPath(column)
	if err != nil {
		return nil, nil, err
	}
	return path, nil, nil
}
