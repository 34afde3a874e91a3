package tools

import (
	"context"
	"encoding/json"
)

// genericAPI is the escape hatch for endpoints without a dedicated tool: a
// compatibility-gated passthrough with no capability-specific
// post-processing.
func (t *Toolset) genericAPI(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	const action = "calling OpenSearch API"

	var args GenericAPIArgs
	if err := decodeArgs(raw, &args); err != nil {
		return t.fail(ctx, action, err)
	}
	if err := args.validate(); err != nil {
		return t.fail(ctx, action, err)
	}
	api, err := t.resolve(args.BaseArgs)
	if err != nil {
		return t.fail(ctx, action, err)
	}
	if err := t.checkCompatibility(ctx, GenericOpenSearchAPITool, api); err != nil {
		return t.fail(ctx, action, err)
	}

	result, err := api.Perform(ctx, args.Method, args.Path, args.Params, args.Body, args.Headers)
	if err != nil {
		return t.fail(ctx, action, err)
	}
	return result, nil
}
