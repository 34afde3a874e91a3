package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isitobservable/opensearch-query-mcp/pkg/types"
)

func TestCheckCompatibilityQueryInsights(t *testing.T) {
	ts := newTestToolset(t, &fakeAPI{})
	reg := ts.Registry()

	t.Run("2.11.0 rejected", func(t *testing.T) {
		err := reg.CheckCompatibility(GetQueryInsightsTool, "2.11.0")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "2.12.0 or later")
		assert.Contains(t, err.Error(), "current version: 2.11.0")
	})

	t.Run("2.12.0 accepted", func(t *testing.T) {
		assert.NoError(t, reg.CheckCompatibility(GetQueryInsightsTool, "2.12.0"))
	})

	t.Run("3.0.0 accepted", func(t *testing.T) {
		assert.NoError(t, reg.CheckCompatibility(GetQueryInsightsTool, "3.0.0"))
	})
}

func TestCheckCompatibilityNoBounds(t *testing.T) {
	ts := newTestToolset(t, &fakeAPI{})

	// IndexMappingTool declares no version bounds: any version passes,
	// even one that would not parse.
	assert.NoError(t, ts.Registry().CheckCompatibility(IndexMappingTool, "0.0.1"))
	assert.NoError(t, ts.Registry().CheckCompatibility(IndexMappingTool, "whatever"))
}

func TestCheckCompatibilityUnknownTool(t *testing.T) {
	ts := newTestToolset(t, &fakeAPI{})
	err := ts.Registry().CheckCompatibility("NoSuchTool", "2.12.0")
	var unknown *types.UnknownToolError
	assert.ErrorAs(t, err, &unknown)
}

func TestCheckCompatibilityMalformedClusterVersion(t *testing.T) {
	ts := newTestToolset(t, &fakeAPI{})
	// bounded tools must fail the check, not silently pass
	err := ts.Registry().CheckCompatibility(GetQueryInsightsTool, "2.x.0")
	assert.Error(t, err)
}

func TestRangeMessageComposition(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(Descriptor{Name: "Both", DisplayName: "Both", MinVersion: "1.0.0", MaxVersion: "2.0.0"}))
	require.NoError(t, reg.Register(Descriptor{Name: "MinOnly", DisplayName: "MinOnly", MinVersion: "1.5.0"}))
	require.NoError(t, reg.Register(Descriptor{Name: "MaxOnly", DisplayName: "MaxOnly", MaxVersion: "2.0.0"}))

	cases := []struct {
		tool    string
		version string
		want    string
	}{
		{"Both", "3.0.0", "1.0.0 to 2.0.0"},
		{"MinOnly", "1.0.0", "1.5.0 or later"},
		{"MaxOnly", "2.5.0", "up to 2.0.0"},
	}
	for _, c := range cases {
		t.Run(c.tool, func(t *testing.T) {
			err := reg.CheckCompatibility(c.tool, c.version)
			require.Error(t, err)
			var compat *types.CompatibilityError
			require.ErrorAs(t, err, &compat)
			assert.Contains(t, err.Error(), c.want)
			assert.Contains(t, err.Error(), c.tool)
		})
	}
}

func TestCompatibilityBoundariesInclusive(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(Descriptor{Name: "Both", DisplayName: "Both", MinVersion: "1.0.0", MaxVersion: "2.0.0"}))

	assert.NoError(t, reg.CheckCompatibility("Both", "1.0.0"))
	assert.NoError(t, reg.CheckCompatibility("Both", "2.0.0"))
	assert.NoError(t, reg.CheckCompatibility("Both", "2"))
	assert.Error(t, reg.CheckCompatibility("Both", "0.9.9"))
	assert.Error(t, reg.CheckCompatibility("Both", "2.0.1"))
}
