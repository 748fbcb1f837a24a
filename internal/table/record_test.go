package table

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFieldPath(t *testing.T) {
	tests := []struct {
		path    string
		want    FieldPath
		wantErr bool
	}{
		{path: "symbol", want: FieldPath{"symbol"}},
		{path: "pair.symbol", want: FieldPath{"pair", "symbol"}},
		{path: "metrics.win_rate", want: FieldPath{"metrics", "win_rate"}},
		{path: "", wantErr: true},
		{path: "pair.", wantErr: true},
		{path: ".symbol", wantErr: true},
		{path: "pair..symbol", wantErr: true},
		{path: "pair[0]", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := ParseFieldPath(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFieldPath)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.path, got.String())
		})
	}
}

func TestMustFieldPathPanics(t *testing.T) {
	assert.Panics(t, func() { MustFieldPath("bad path") })
}

func TestResolve(t *testing.T) {
	r := Fields{
		"symbol": "BTCUSDT",
		"pair":   Fields{"symbol": "ETHUSDT", "meta": map[string]any{"exchange": "binance"}},
		"status": "ACTIVE",
	}

	v, ok := MustFieldPath("symbol").Resolve(r)
	assert.True(t, ok)
	assert.Equal(t, "BTCUSDT", v)

	v, ok = MustFieldPath("pair.symbol").Resolve(r)
	assert.True(t, ok)
	assert.Equal(t, "ETHUSDT", v)

	v, ok = MustFieldPath("pair.meta.exchange").Resolve(r)
	assert.True(t, ok)
	assert.Equal(t, "binance", v)

	_, ok = MustFieldPath("pair.missing").Resolve(r)
	assert.False(t, ok)

	_, ok = MustFieldPath("status.value").Resolve(r)
	assert.False(t, ok)

	_, ok = FieldPath(nil).Resolve(r)
	assert.False(t, ok)
}

func TestStringify(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := "text"

	assert.Equal(t, "", stringify(nil))
	assert.Equal(t, "text", stringify(&s))
	assert.Equal(t, "12.5", stringify(12.5))
	assert.Equal(t, "7", stringify(7))
	assert.Equal(t, "2024-03-01T12:00:00Z", stringify(ts))
	assert.Equal(t, "", stringify(Fields{"a": 1}))
}
