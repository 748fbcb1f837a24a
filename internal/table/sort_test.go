package table

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSortNumericBothDirections(t *testing.T) {
	rows := []Fields{
		{"id": "a", "roi": 12.0},
		{"id": "b", "roi": -4.0},
		{"id": "c", "roi": 30},
	}

	assert.Equal(t, []string{"b", "a", "c"}, ids(Sort(rows, MustFieldPath("roi"), Asc, nil)))
	assert.Equal(t, []string{"c", "a", "b"}, ids(Sort(rows, MustFieldPath("roi"), Desc, nil)))
}

func TestSortNilLastInBothDirections(t *testing.T) {
	rows := []Fields{
		{"id": "a", "roi": nil},
		{"id": "b", "roi": 2.0},
		{"id": "c"},
		{"id": "d", "roi": 1.0},
	}

	assert.Equal(t, []string{"d", "b", "a", "c"}, ids(Sort(rows, MustFieldPath("roi"), Asc, nil)))
	assert.Equal(t, []string{"b", "d", "a", "c"}, ids(Sort(rows, MustFieldPath("roi"), Desc, nil)))
}

func TestSortStringsUseCollation(t *testing.T) {
	rows := []Fields{
		{"id": "1", "name": "banana"},
		{"id": "2", "name": "Apple"},
		{"id": "3", "name": "cherry"},
	}

	assert.Equal(t, []string{"2", "1", "3"}, ids(Sort(rows, MustFieldPath("name"), Asc, nil)))
}

func TestSortIsStable(t *testing.T) {
	rows := []Fields{
		{"id": "1", "status": "ACTIVE"},
		{"id": "2", "status": "EXPIRED"},
		{"id": "3", "status": "ACTIVE"},
		{"id": "4", "status": "EXPIRED"},
		{"id": "5", "status": "ACTIVE"},
	}

	assert.Equal(t, []string{"1", "3", "5", "2", "4"}, ids(Sort(rows, MustFieldPath("status"), Asc, nil)))
	assert.Equal(t, []string{"2", "4", "1", "3", "5"}, ids(Sort(rows, MustFieldPath("status"), Desc, nil)))
}

func TestSortNestedPathAndTimes(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []Fields{
		{"id": "1", "pair": Fields{"symbol": "XAUUSD"}, "createdAt": base.Add(2 * time.Hour)},
		{"id": "2", "pair": Fields{"symbol": "BTCUSDT"}, "createdAt": base},
		{"id": "3", "pair": Fields{"symbol": "EURUSD"}, "createdAt": base.Add(time.Hour)},
	}

	assert.Equal(t, []string{"2", "3", "1"}, ids(Sort(rows, MustFieldPath("pair.symbol"), Asc, nil)))
	assert.Equal(t, []string{"1", "3", "2"}, ids(Sort(rows, MustFieldPath("createdAt"), Desc, nil)))
}

func TestSortMixedTypesCompareAsStrings(t *testing.T) {
	rows := []Fields{
		{"id": "1", "v": "b"},
		{"id": "2", "v": 10.0},
		{"id": "3", "v": true},
	}

	// "10" < "b" < "true"
	assert.Equal(t, []string{"2", "1", "3"}, ids(Sort(rows, MustFieldPath("v"), Asc, nil)))
}

func TestSortAccessorWins(t *testing.T) {
	rows := []Fields{
		{"id": "1", "name": "bb"},
		{"id": "2", "name": "a"},
		{"id": "3", "name": "ccc"},
	}
	byLength := func(r Fields) any { return len(r["name"].(string)) }

	assert.Equal(t, []string{"2", "1", "3"}, ids(Sort(rows, MustFieldPath("name"), Asc, byLength)))
	assert.Equal(t, []string{"3", "1", "2"}, ids(Sort(rows, nil, Desc, byLength)))
}

func TestSortWithoutFieldIsIdentity(t *testing.T) {
	rows := testRows()
	assert.Equal(t, ids(rows), ids(Sort(rows, nil, Desc, nil)))
}

func TestSortDoesNotMutateInput(t *testing.T) {
	rows := []Fields{{"id": "1", "n": 3.0}, {"id": "2", "n": 1.0}}
	_ = Sort(rows, MustFieldPath("n"), Asc, nil)
	assert.Equal(t, []string{"1", "2"}, ids(rows))
}

func TestParseDirection(t *testing.T) {
	assert.Equal(t, Desc, ParseDirection("DESC"))
	assert.Equal(t, Asc, ParseDirection("asc"))
	assert.Equal(t, Asc, ParseDirection("sideways"))
	assert.Equal(t, Asc, Desc.Flip())
}
