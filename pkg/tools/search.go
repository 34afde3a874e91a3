package tools

import (
	"context"
	"encoding/json"
)

func (t *Toolset) searchIndex(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	const action = "searching index"

	var args SearchIndexArgs
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
	if err := t.checkCompatibility(ctx, SearchIndexTool, api); err != nil {
		return t.fail(ctx, action, err)
	}

	result, err := api.SearchIndex(ctx, args.Index, args.Query)
	if err != nil {
		return t.fail(ctx, action, err)
	}
	return result, nil
}
