package tools

import (
	"context"
	"encoding/json"
	"log/slog"
)

// listIndices lists indices in the target cluster. A specific index bypasses
// the listing call and returns single-index detail; without it the default
// response is a bare list of index names unless include_detail is set.
func (t *Toolset) listIndices(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	const action = "listing indices"

	var args ListIndicesArgs
	if err := decodeArgs(raw, &args); err != nil {
		return t.fail(ctx, action, err)
	}
	api, err := t.resolve(args.BaseArgs)
	if err != nil {
		return t.fail(ctx, action, err)
	}
	if err := t.checkCompatibility(ctx, ListIndexTool, api); err != nil {
		return t.fail(ctx, action, err)
	}

	if args.Index != "" {
		info, err := api.GetIndex(ctx, args.Index)
		if err != nil {
			return t.fail(ctx, action, err)
		}
		return info, nil
	}

	indices, err := api.ListIndices(ctx)
	if err != nil {
		return t.fail(ctx, action, err)
	}

	if !args.IncludeDetail {
		// keep responses small by default; entries without an index
		// name are dropped rather than errored
		names := make([]string, 0, len(indices))
		for _, item := range indices {
			name, ok := item["index"].(string)
			if !ok {
				slog.Debug("dropping index entry without an index field", "entry", item)
				continue
			}
			names = append(names, name)
		}
		return names, nil
	}
	return indices, nil
}

func (t *Toolset) getIndexMapping(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	const action = "getting mapping"

	var args GetIndexMappingArgs
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
	if err := t.checkCompatibility(ctx, IndexMappingTool, api); err != nil {
		return t.fail(ctx, action, err)
	}

	mapping, err := api.GetIndexMapping(ctx, args.Index)
	if err != nil {
		return t.fail(ctx, action, err)
	}
	return mapping, nil
}

func (t *Toolset) getIndexInfo(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	const action = "getting index information"

	var args GetIndexInfoArgs
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
	if err := t.checkCompatibility(ctx, GetIndexInfoTool, api); err != nil {
		return t.fail(ctx, action, err)
	}

	info, err := api.GetIndexInfo(ctx, args.Index)
	if err != nil {
		return t.fail(ctx, action, err)
	}
	return info, nil
}

func (t *Toolset) getIndexStats(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	const action = "getting index statistics"

	var args GetIndexStatsArgs
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
	if err := t.checkCompatibility(ctx, GetIndexStatsTool, api); err != nil {
		return t.fail(ctx, action, err)
	}

	stats, err := api.GetIndexStats(ctx, args.Index, args.Metric)
	if err != nil {
		return t.fail(ctx, action, err)
	}
	return stats, nil
}
