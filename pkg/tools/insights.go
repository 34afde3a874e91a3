package tools

import (
	"context"
	"encoding/json"
)

func (t *Toolset) getQueryInsights(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	const action = "getting query insights"

	var args GetQueryInsightsArgs
	if err := decodeArgs(raw, &args); err != nil {
		return t.fail(ctx, action, err)
	}
	api, err := t.resolve(args.BaseArgs)
	if err != nil {
		return t.fail(ctx, action, err)
	}
	if err := t.checkCompatibility(ctx, GetQueryInsightsTool, api); err != nil {
		return t.fail(ctx, action, err)
	}

	insights, err := api.GetQueryInsights(ctx)
	if err != nil {
		return t.fail(ctx, action, err)
	}
	return insights, nil
}
