package installer

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/ember/internal/core/domain"
)

func TestPickLoader(t *testing.T) {
	entries := []loaderEntry{
		{Version: "0.17.0-beta.2", Stable: false},
		{Version: "0.16.5", Stable: true},
		{Version: "0.16.4", Stable: true},
	}

	v, err := pickLoader(entries, "")
	require.NoError(t, err)
	require.Equal(t, "0.16.5", v)

	v, err = pickLoader(entries, "0.15.0")
	require.NoError(t, err)
	require.Equal(t, "0.15.0", v)
}

func TestPickLoader_NoStableFallsBackToFirst(t *testing.T) {
	entries := []loaderEntry{
		{Version: "0.17.0-beta.2"},
		{Version: "0.17.0-beta.1"},
	}

	v, err := pickLoader(entries, "")
	require.NoError(t, err)
	require.Equal(t, "0.17.0-beta.2", v)
}

func TestPickLoader_Empty(t *testing.T) {
	_, err := pickLoader(nil, "")
	require.ErrorIs(t, err, domain.ErrNoCompatibleLoader)
}

func TestSelectNeoForgeVersion(t *testing.T) {
	versions := []string{
		"20.4.237",
		"21.1.9",
		"21.1.77",
		"21.1.80-beta",
		"21.2.1-alpha",
	}

	v, err := selectNeoForgeVersion(versions, "1.21.1")
	require.NoError(t, err)
	// Numeric ordering, not lexical: 77 beats 9, the beta is filtered out.
	require.Equal(t, "21.1.77", v)
}

func TestSelectNeoForgeVersion_NoMatch(t *testing.T) {
	_, err := selectNeoForgeVersion([]string{"20.4.237"}, "1.21.1")
	require.ErrorIs(t, err, domain.ErrNoCompatibleLoader)

	_, err = selectNeoForgeVersion([]string{"21.1.80-beta"}, "1.21.1")
	require.ErrorIs(t, err, domain.ErrNoCompatibleLoader)
}

func TestNeoForgePrefix(t *testing.T) {
	p, err := neoForgePrefix("1.21.1")
	require.NoError(t, err)
	require.Equal(t, "21.1.", p)

	p, err = neoForgePrefix("1.21")
	require.NoError(t, err)
	require.Equal(t, "21.0.", p)

	_, err = neoForgePrefix("25w14craftmine")
	require.ErrorIs(t, err, domain.ErrNoCompatibleLoader)
}

func TestCompareDotted(t *testing.T) {
	require.Positive(t, compareDotted("21.1.77", "21.1.9"))
	require.Negative(t, compareDotted("21.1.9", "21.1.77"))
	require.Zero(t, compareDotted("21.1.9", "21.1.9"))
	require.Positive(t, compareDotted("21.1.9.1", "21.1.9"))
}

func TestBandInterpolation(t *testing.T) {
	require.InDelta(t, 15.0, bandLibraries.at(0, 10), 0.001)
	require.InDelta(t, 32.5, bandLibraries.at(5, 10), 0.001)
	require.InDelta(t, 50.0, bandLibraries.at(10, 10), 0.001)
	// An empty batch lands at the end of its band.
	require.InDelta(t, 90.0, bandAssets.at(0, 0), 0.001)
}
