package tools

import (
	"context"
	"encoding/json"
)

func (t *Toolset) getClusterState(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	const action = "getting cluster state"

	var args GetClusterStateArgs
	if err := decodeArgs(raw, &args); err != nil {
		return t.fail(ctx, action, err)
	}
	api, err := t.resolve(args.BaseArgs)
	if err != nil {
		return t.fail(ctx, action, err)
	}
	if err := t.checkCompatibility(ctx, GetClusterStateTool, api); err != nil {
		return t.fail(ctx, action, err)
	}

	state, err := api.GetClusterState(ctx, args.Metric, args.Index)
	if err != nil {
		return t.fail(ctx, action, err)
	}
	return state, nil
}

func (t *Toolset) getLongRunningTasks(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	const action = "getting long-running tasks"

	var args GetLongRunningTasksArgs
	if err := decodeArgs(raw, &args); err != nil {
		return t.fail(ctx, action, err)
	}
	api, err := t.resolve(args.BaseArgs)
	if err != nil {
		return t.fail(ctx, action, err)
	}
	if err := t.checkCompatibility(ctx, GetLongRunningTasksTool, api); err != nil {
		return t.fail(ctx, action, err)
	}

	tasks, err := api.GetLongRunningTasks(ctx)
	if err != nil {
		return t.fail(ctx, action, err)
	}
	return tasks, nil
}
