package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListRoundTrip(t *testing.T) {
	v, err := StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), v)

	var list StringList
	require.NoError(t, list.Scan([]byte(`["users","parents"]`)))
	assert.Equal(t, StringList{"users", "parents"}, list)

	require.NoError(t, list.Scan(`["students"]`))
	assert.Equal(t, StringList{"students"}, list)

	require.NoError(t, list.Scan(nil))
	assert.Empty(t, list)

	assert.Error(t, list.Scan(42))
}

func TestJSONMapScan(t *testing.T) {
	var m JSONMap
	require.NoError(t, m.Scan([]byte(`{"route":"/enrollment","line":12}`)))
	assert.Equal(t, "/enrollment", m["route"])
	assert.Equal(t, float64(12), m["line"])

	v, err := JSONMap(nil).Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
