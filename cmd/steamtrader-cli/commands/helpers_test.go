package commands

import (
	"testing"

	"steamtrader/lib/steamtrader"

	"github.com/stretchr/testify/require"
)

func TestParseGame(t *testing.T) {
	id, err := parseGame("TF2")
	require.NoError(t, err)
	require.Equal(t, steamtrader.AppTF2, id)

	id, err = parseGame("570")
	require.NoError(t, err)
	require.Equal(t, steamtrader.AppDOTA2, id)

	_, err = parseGame("minecraft")
	require.Error(t, err)
}

func TestParseFacets(t *testing.T) {
	set, err := parseFacets(nil)
	require.NoError(t, err)
	require.Nil(t, set)

	set, err = parseFacets([]string{"quality=28", "quality=50", "used_by=30"})
	require.NoError(t, err)
	require.Equal(t, []int{28, 50}, set.Quality)
	require.Equal(t, []int{30}, set.UsedBy)
	require.Nil(t, set.Craft)

	testCases := []string{"quality", "colour=1", "quality=unique"}
	for _, pair := range testCases {
		_, err := parseFacets([]string{pair})
		require.Error(t, err, pair)
	}
}

func TestFormatPrice(t *testing.T) {
	p := 9.5
	require.Equal(t, "9.50", formatPrice(&p))
	require.Equal(t, "-", formatPrice(nil))
}
