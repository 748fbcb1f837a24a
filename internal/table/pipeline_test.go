package table

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func manyRows(n int) []Fields {
	rows := make([]Fields, n)
	for i := range rows {
		status := "ACTIVE"
		if i%4 == 0 {
			status = "EXPIRED"
		}
		rows[i] = Fields{
			"id":     fmt.Sprintf("%02d", i),
			"status": status,
			"roi":    float64(i % 7),
			"pair":   Fields{"symbol": fmt.Sprintf("PAIR%02d", i)},
		}
	}
	return rows
}

func testView() View[Fields] {
	return View[Fields]{
		Categories:   testCategories(),
		SearchFields: FieldPaths("pair.symbol"),
		Accessors: map[string]Accessor[Fields]{
			"roiBucket": func(r Fields) any { return r["roi"].(float64) >= 3 },
		},
	}
}

func TestRunFiltersSortsAndPaginates(t *testing.T) {
	state := NewViewState(ViewOptions{}).WithFilter("expired").WithSort("roi", Desc).WithLimit(5)

	result := testView().Run(manyRows(40), state)
	require.Empty(t, result.Issues)
	assert.Equal(t, 10, result.Page.TotalItems)
	assert.Equal(t, 2, result.Page.TotalPages)
	assert.Len(t, result.Page.Items, 5)
	assert.Equal(t, 6.0, result.Page.Items[0]["roi"])
}

func TestRunResetsPagePastTheEnd(t *testing.T) {
	state := NewViewState(ViewOptions{}).WithLimit(5).WithPage(6)
	state.Query = "PAIR0"

	result := testView().Run(manyRows(40), state)
	assert.Equal(t, 1, result.State.Page)
	assert.Equal(t, 2, result.Page.TotalPages)
	assert.Equal(t, []string{"00", "01", "02", "03", "04"}, ids(result.Page.Items))
}

func TestRunDropsUnknownFilterAndSort(t *testing.T) {
	state := NewViewState(ViewOptions{}).WithFilter("crypto").WithSort("roi..x", Asc)

	result := testView().Run(manyRows(12), state)
	require.Len(t, result.Issues, 2)
	assert.ErrorIs(t, result.Issues[0], ErrUnknownCategory)
	assert.ErrorIs(t, result.Issues[1], ErrInvalidFieldPath)
	assert.Equal(t, "all", result.State.Filter)
	assert.Empty(t, result.State.Sort)
	assert.Equal(t, 12, result.Page.TotalItems)
}

func TestRunUsesAccessor(t *testing.T) {
	state := NewViewState(ViewOptions{}).WithSort("roiBucket", Asc).WithLimit(50)

	result := testView().Run(manyRows(7), state)
	assert.Equal(t, []string{"00", "01", "02", "03", "04", "05", "06"}, ids(result.Page.Items))
}

func TestRunRespectsSortableList(t *testing.T) {
	view := testView()
	view.Sortable = []string{"roi"}

	result := view.Run(manyRows(3), NewViewState(ViewOptions{}).WithSort("id", Asc))
	require.Len(t, result.Issues, 1)
	assert.Empty(t, result.State.Sort)
}
