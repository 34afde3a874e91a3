package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isitobservable/opensearch-query-mcp/pkg/types"
)

func TestRegistryIdentity(t *testing.T) {
	ts := newTestToolset(t, &fakeAPI{})
	reg := ts.Registry()

	for _, d := range reg.List() {
		got, err := reg.Get(d.Name)
		require.NoError(t, err)
		assert.Equal(t, d.Name, got.Name)
	}
}

func TestRegistryInsertionOrder(t *testing.T) {
	ts := newTestToolset(t, &fakeAPI{})
	list := ts.Registry().List()

	require.NotEmpty(t, list)
	assert.Equal(t, ListIndexTool, list[0].Name)
	assert.Equal(t, GenericOpenSearchAPITool, list[len(list)-1].Name)
}

func TestRegistryGetUnknown(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Get("missing")
	require.Error(t, err)
	var unknown *types.UnknownToolError
	assert.ErrorAs(t, err, &unknown)
}

func TestRegistryDuplicateRejected(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(Descriptor{Name: "Tool", Description: "original"}))

	err := reg.Register(Descriptor{Name: "Tool", Description: "replacement"})
	require.Error(t, err)
	var dup *types.DuplicateToolError
	assert.ErrorAs(t, err, &dup)

	// the existing entry is untouched
	got, err := reg.Get("Tool")
	require.NoError(t, err)
	assert.Equal(t, "original", got.Description)
	assert.Len(t, reg.List(), 1)
}

func TestRegistryRejectsInvertedRange(t *testing.T) {
	reg := NewRegistry()
	err := reg.Register(Descriptor{Name: "Tool", MinVersion: "3.0.0", MaxVersion: "2.0.0"})
	assert.Error(t, err)
}

func TestRegistryRejectsMalformedBounds(t *testing.T) {
	reg := NewRegistry()
	err := reg.Register(Descriptor{Name: "Tool", MinVersion: "one.two", MaxVersion: "2.0.0"})
	assert.Error(t, err)
}
