package locations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	t.Parallel()

	loc, err := Lookup("tacoma")
	require.NoError(t, err)
	assert.InDelta(t, 47.2, loc.LatLow, 1e-9)
	assert.InDelta(t, 47.3, loc.LatHigh, 1e-9)
	assert.InDelta(t, -122.5, loc.LonLow, 1e-9)
	assert.InDelta(t, -122.4, loc.LonHigh, 1e-9)
}

func TestLookup_CaseInsensitive(t *testing.T) {
	t.Parallel()

	loc, err := Lookup("Seattle")
	require.NoError(t, err)
	assert.Equal(t, "seattle", loc.Name)
}

func TestLookup_Unknown(t *testing.T) {
	t.Parallel()

	_, err := Lookup("spokane")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "spokane")
	assert.Contains(t, err.Error(), "olympia, seattle, tacoma")
}

func TestAll_SortedAndValid(t *testing.T) {
	t.Parallel()

	locs, err := All()
	require.NoError(t, err)
	require.Len(t, locs, 3)
	assert.Equal(t, "olympia", locs[0].Name)
	assert.Equal(t, "seattle", locs[1].Name)
	assert.Equal(t, "tacoma", locs[2].Name)

	for _, l := range locs {
		b := l.Bounds("dGVzdA==")
		assert.NoError(t, b.Validate(), l.Name)
		assert.Equal(t, l.Name, b.Label)
	}
}
