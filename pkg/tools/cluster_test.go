package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetClusterState(t *testing.T) {
	api := &fakeAPI{stateRes: map[string]interface{}{"cluster_name": "test", "nodes": map[string]interface{}{}}}
	ts := newTestToolset(t, api)

	result, err := ts.Dispatch(context.Background(), GetClusterStateTool, json.RawMessage(`{"metric":"nodes"}`))
	require.NoError(t, err)
	assert.Equal(t, api.stateRes, result)
	assert.Equal(t, 1, api.count("cluster_state"))
}

func TestGetLongRunningTasks(t *testing.T) {
	api := &fakeAPI{tasksRes: []interface{}{map[string]interface{}{"action": "indices:data/write/bulk", "running_time": "1.2s"}}}
	ts := newTestToolset(t, api)

	result, err := ts.Dispatch(context.Background(), GetLongRunningTasksTool, nil)
	require.NoError(t, err)
	assert.Equal(t, api.tasksRes, result)
}

func TestClusterStateVersionProbeFailure(t *testing.T) {
	api := &fakeAPI{versionErr: assertableErr("cluster unreachable")}
	ts := newTestToolset(t, api)

	result, err := ts.Dispatch(context.Background(), GetClusterStateTool, nil)
	require.NoError(t, err)
	text := errorPayload(t, result)
	assert.Contains(t, text, "Error getting cluster state")
	assert.Zero(t, api.count("cluster_state"), "gate failure must produce no upstream side effect")
}

type assertableErr string

func (e assertableErr) Error() string { return string(e) }
