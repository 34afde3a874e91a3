package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isitobservable/opensearch-query-mcp/pkg/types"
)

func TestListIndicesDefaultNamesOnly(t *testing.T) {
	api := &fakeAPI{
		listResult: []map[string]interface{}{
			{"index": "logs-2024", "docs.count": "120", "store.size": "4mb"},
			{"health": "green"}, // no index field: dropped, not errored
			{"index": "metrics", "docs.count": "33"},
			{"index": 42}, // non-string index field: dropped
		},
	}
	ts := newTestToolset(t, api)

	result, err := ts.Dispatch(context.Background(), ListIndexTool, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"logs-2024", "metrics"}, result)
}

func TestListIndicesIncludeDetail(t *testing.T) {
	api := &fakeAPI{
		listResult: []map[string]interface{}{
			{"index": "logs-2024", "docs.count": "120", "store.size": "4mb"},
		},
	}
	ts := newTestToolset(t, api)

	result, err := ts.Dispatch(context.Background(), ListIndexTool, json.RawMessage(`{"include_detail":true}`))
	require.NoError(t, err)
	assert.Equal(t, api.listResult, result)
}

func TestListIndicesSpecificIndexBypassesListing(t *testing.T) {
	api := &fakeAPI{
		getIndexRes: []interface{}{map[string]interface{}{"index": "logs-2024", "docs.count": "120"}},
	}
	ts := newTestToolset(t, api)

	result, err := ts.Dispatch(context.Background(), ListIndexTool, json.RawMessage(`{"index":"logs-2024"}`))
	require.NoError(t, err)
	assert.Equal(t, api.getIndexRes, result)
	assert.Zero(t, api.count("list_indices"), "list-all path must not be called")
	assert.Equal(t, 1, api.count("get_index logs-2024"))
}

func TestListIndicesUpstreamFailure(t *testing.T) {
	api := &fakeAPI{
		listErr: &types.UpstreamError{Method: "GET", Path: "/_cat/indices", StatusCode: 503, Message: "unavailable"},
	}
	ts := newTestToolset(t, api)

	result, err := ts.Dispatch(context.Background(), ListIndexTool, nil)
	require.NoError(t, err, "upstream failures never raise out of the handler")
	text := errorPayload(t, result)
	assert.Contains(t, text, "Error listing indices")
}

func TestGetIndexMapping(t *testing.T) {
	t.Run("returns mapping verbatim", func(t *testing.T) {
		api := &fakeAPI{mappingRes: map[string]interface{}{"logs": map[string]interface{}{"mappings": map[string]interface{}{}}}}
		ts := newTestToolset(t, api)

		result, err := ts.Dispatch(context.Background(), IndexMappingTool, json.RawMessage(`{"index":"logs"}`))
		require.NoError(t, err)
		assert.Equal(t, api.mappingRes, result)
	})

	t.Run("missing index rejected", func(t *testing.T) {
		api := &fakeAPI{}
		ts := newTestToolset(t, api)

		result, err := ts.Dispatch(context.Background(), IndexMappingTool, nil)
		require.NoError(t, err)
		text := errorPayload(t, result)
		assert.Contains(t, text, "Error getting mapping")
		assert.Empty(t, api.calls)
	})
}

func TestGetIndexStats(t *testing.T) {
	api := &fakeAPI{statsRes: map[string]interface{}{"_all": map[string]interface{}{"primaries": map[string]interface{}{}}}}
	ts := newTestToolset(t, api)

	result, err := ts.Dispatch(context.Background(), GetIndexStatsTool, json.RawMessage(`{"index":"logs","metric":"docs"}`))
	require.NoError(t, err)
	assert.Equal(t, api.statsRes, result)
	assert.Equal(t, 1, api.count("index_stats logs"))
}

func TestGetIndexInfo(t *testing.T) {
	api := &fakeAPI{infoRes: map[string]interface{}{"logs": map[string]interface{}{"settings": map[string]interface{}{}}}}
	ts := newTestToolset(t, api)

	result, err := ts.Dispatch(context.Background(), GetIndexInfoTool, json.RawMessage(`{"index":"logs"}`))
	require.NoError(t, err)
	assert.Equal(t, api.infoRes, result)
}
