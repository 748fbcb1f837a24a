package table

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseViewStateDefaults(t *testing.T) {
	state, issues := ParseViewState(url.Values{}, ViewOptions{DefaultSort: "createdAt", DefaultDir: Desc})

	assert.Empty(t, issues)
	assert.Equal(t, ViewState{Filter: "all", Sort: "createdAt", Dir: Desc, Page: 1, Limit: 10}, state)
}

func TestParseViewStateFromQuery(t *testing.T) {
	values, err := url.ParseQuery("q=+btc+&filter=active&sort=pair.symbol&dir=desc&page=3&limit=20")
	require.NoError(t, err)

	state, issues := ParseViewState(values, ViewOptions{})
	assert.Empty(t, issues)
	assert.Equal(t, ViewState{Query: "btc", Filter: "active", Sort: "pair.symbol", Dir: Desc, Page: 3, Limit: 20}, state)
}

func TestParseViewStateReportsBadValues(t *testing.T) {
	values, err := url.ParseQuery("page=zero&limit=7")
	require.NoError(t, err)

	state, issues := ParseViewState(values, ViewOptions{})
	require.Len(t, issues, 2)
	assert.ErrorIs(t, issues[1], ErrInvalidPageSize)
	assert.Equal(t, 1, state.Page)
	assert.Equal(t, DefaultPageSize, state.Limit)

	_, issues = ParseViewState(url.Values{"page": {"-2"}}, ViewOptions{})
	assert.Len(t, issues, 1)
}

func TestViewStateValuesRoundTrip(t *testing.T) {
	opts := ViewOptions{PageSizes: []int{5, 10, 20, 50}}
	state := NewViewState(opts).WithQuery("eth").WithFilter("crypto").WithSort("roi", Desc).WithLimit(20).WithPage(2)

	parsed, issues := ParseViewState(state.Values(), opts)
	assert.Empty(t, issues)
	assert.Equal(t, state, parsed)
}

func TestViewStateUpdatesResetPage(t *testing.T) {
	state := NewViewState(ViewOptions{}).WithPage(4)

	assert.Equal(t, 1, state.WithQuery("x").Page)
	assert.Equal(t, 1, state.WithFilter("active").Page)
	assert.Equal(t, 1, state.WithSort("roi", Asc).Page)
	assert.Equal(t, 1, state.ToggleSort("roi").Page)
	assert.Equal(t, 1, state.WithLimit(50).Page)
	assert.Equal(t, 5, state.WithPage(5).Page)
	// the original value is untouched
	assert.Equal(t, 4, state.Page)
}

func TestViewStateToggleSort(t *testing.T) {
	state := NewViewState(ViewOptions{})

	state = state.ToggleSort("roi")
	assert.Equal(t, Asc, state.Dir)
	state = state.ToggleSort("roi")
	assert.Equal(t, Desc, state.Dir)
	state = state.ToggleSort("symbol")
	assert.Equal(t, "symbol", state.Sort)
	assert.Equal(t, Asc, state.Dir)
}

func TestViewStateNormalize(t *testing.T) {
	state := NewViewState(ViewOptions{})

	assert.Equal(t, 1, state.WithPage(5).Normalize(3).Page)
	assert.Equal(t, 2, state.WithPage(2).Normalize(3).Page)
	assert.Equal(t, 1, state.WithPage(1).Normalize(0).Page)
	assert.Equal(t, 1, state.WithPage(0).Normalize(3).Page)
}
