// Package tools implements the OpenSearch query tool set: the descriptor
// registry, per-tool argument models, the version-compatibility gate, and
// the handlers that wrap each upstream call.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/isitobservable/opensearch-query-mcp/pkg/opensearch"
	"github.com/isitobservable/opensearch-query-mcp/pkg/types"
)

// Tool name constants, stable across transports.
const (
	ListIndexTool            = "ListIndexTool"
	IndexMappingTool         = "IndexMappingTool"
	SearchIndexTool          = "SearchIndexTool"
	GetClusterStateTool      = "GetClusterStateTool"
	GetIndexInfoTool         = "GetIndexInfoTool"
	GetIndexStatsTool        = "GetIndexStatsTool"
	GetQueryInsightsTool     = "GetQueryInsightsTool"
	GetLongRunningTasksTool  = "GetLongRunningTasksTool"
	GenericOpenSearchAPITool = "GenericOpenSearchApiTool"
)

// ClusterResolver hands out an upstream client for a tool invocation;
// per-invocation overrides select the target cluster.
type ClusterResolver interface {
	Resolve(override opensearch.Conn) (opensearch.API, error)
}

// Toolset owns the registry and the shared collaborators the handlers need.
type Toolset struct {
	resolver ClusterResolver
	registry *Registry
}

// NewToolset constructs the registry and registers every tool. A
// registration conflict here is a configuration defect and aborts startup.
func NewToolset(resolver ClusterResolver) (*Toolset, error) {
	t := &Toolset{
		resolver: resolver,
		registry: NewRegistry(),
	}

	descriptors := []Descriptor{
		{
			Name:        ListIndexTool,
			DisplayName: ListIndexTool,
			Description: "Lists indices in the OpenSearch cluster. By default, returns a filtered list of index names only to minimize response size. Set include_detail=true to return full metadata from cat.indices (docs.count, store.size, etc.). If an index parameter is provided, returns detailed information for that specific index including mappings and settings.",
			InputSchema: objectSchema(map[string]interface{}{
				"index": map[string]interface{}{
					"type":        "string",
					"description": "Specific index to describe; when set, detailed info for that index is returned",
				},
				"include_detail": map[string]interface{}{
					"type":        "boolean",
					"default":     false,
					"description": "Return full cat.indices metadata instead of bare index names",
				},
			}),
			Handler:     t.listIndices,
			MinVersion:  "1.0.0",
			HTTPMethods: []string{http.MethodGet},
		},
		{
			Name:        IndexMappingTool,
			DisplayName: IndexMappingTool,
			Description: "Retrieves index mapping and setting information for an index in OpenSearch",
			InputSchema: objectSchema(map[string]interface{}{
				"index": map[string]interface{}{
					"type":        "string",
					"description": "Name of the index to fetch mappings for",
				},
			}, "index"),
			Handler:     t.getIndexMapping,
			HTTPMethods: []string{http.MethodGet},
		},
		{
			Name:        SearchIndexTool,
			DisplayName: SearchIndexTool,
			Description: "Searches an index using a query written in query domain-specific language (DSL) in OpenSearch",
			InputSchema: objectSchema(map[string]interface{}{
				"index": map[string]interface{}{
					"type":        "string",
					"description": "Name of the index to search",
				},
				"query": map[string]interface{}{
					"type":        "object",
					"description": "OpenSearch query DSL body",
				},
			}, "index", "query"),
			Handler:     t.searchIndex,
			HTTPMethods: []string{http.MethodGet, http.MethodPost},
		},
		{
			Name:        GetClusterStateTool,
			DisplayName: GetClusterStateTool,
			Description: "Gets the current state of the cluster including node information, index settings, and more. Can be filtered by specific metrics and indices.",
			InputSchema: objectSchema(map[string]interface{}{
				"metric": map[string]interface{}{
					"type":        "string",
					"description": "Limit the response to a specific metric (e.g. nodes, metadata)",
				},
				"index": map[string]interface{}{
					"type":        "string",
					"description": "Limit the response to a specific index",
				},
			}),
			Handler:     t.getClusterState,
			MinVersion:  "1.0.0",
			HTTPMethods: []string{http.MethodGet},
		},
		{
			Name:        GetIndexInfoTool,
			DisplayName: GetIndexInfoTool,
			Description: "Gets detailed information about an index including mappings, settings, and aliases. Supports wildcards in index names.",
			InputSchema: objectSchema(map[string]interface{}{
				"index": map[string]interface{}{
					"type":        "string",
					"description": "Index name or pattern",
				},
			}, "index"),
			Handler:     t.getIndexInfo,
			MinVersion:  "1.0.0",
			HTTPMethods: []string{http.MethodGet},
		},
		{
			Name:        GetIndexStatsTool,
			DisplayName: GetIndexStatsTool,
			Description: "Gets statistics about an index including document count, store size, indexing and search performance metrics. Can be filtered to specific metrics.",
			InputSchema: objectSchema(map[string]interface{}{
				"index": map[string]interface{}{
					"type":        "string",
					"description": "Index name or pattern",
				},
				"metric": map[string]interface{}{
					"type":        "string",
					"description": "Limit the response to a specific stats metric",
				},
			}, "index"),
			Handler:     t.getIndexStats,
			MinVersion:  "1.0.0",
			HTTPMethods: []string{http.MethodGet},
		},
		{
			Name:        GetQueryInsightsTool,
			DisplayName: GetQueryInsightsTool,
			Description: "Gets query insights from the /_insights/top_queries endpoint, showing information about query patterns and performance.",
			InputSchema: objectSchema(nil),
			Handler:     t.getQueryInsights,
			MinVersion:  "2.12.0", // query insights requires OpenSearch 2.12+
			HTTPMethods: []string{http.MethodGet},
		},
		{
			Name:        GetLongRunningTasksTool,
			DisplayName: GetLongRunningTasksTool,
			Description: "Lists currently running cluster tasks sorted by running time, longest first.",
			InputSchema: objectSchema(nil),
			Handler:     t.getLongRunningTasks,
			MinVersion:  "1.0.0",
			HTTPMethods: []string{http.MethodGet},
		},
		{
			Name:        GenericOpenSearchAPITool,
			DisplayName: GenericOpenSearchAPITool,
			Description: "A flexible tool for calling any OpenSearch API endpoint. Supports all HTTP methods with custom paths, query parameters, request bodies, and headers. Use this when you need to access OpenSearch APIs that don't have dedicated tools, or when you need more control over the request.",
			InputSchema: objectSchema(map[string]interface{}{
				"method": map[string]interface{}{
					"type":        "string",
					"enum":        genericAPIMethods,
					"default":     http.MethodGet,
					"description": "HTTP method",
				},
				"path": map[string]interface{}{
					"type":        "string",
					"description": "API path, e.g. /_cat/indices",
				},
				"params": map[string]interface{}{
					"type":        "object",
					"description": "Query string parameters",
				},
				"body": map[string]interface{}{
					"type":        "object",
					"description": "JSON request body",
				},
				"headers": map[string]interface{}{
					"type":        "object",
					"description": "Additional request headers",
				},
			}, "path"),
			Handler:     t.genericAPI,
			MinVersion:  "1.0.0",
			HTTPMethods: genericAPIMethods,
		},
	}

	for _, d := range descriptors {
		if err := t.registry.Register(d); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Registry exposes the tool registry to the transport layer for discovery.
func (t *Toolset) Registry() *Registry { return t.registry }

// Dispatch runs the named tool against raw arguments. Unknown tool names are
// surfaced to the caller as the uniform error payload; only cancellation
// propagates as an error.
func (t *Toolset) Dispatch(ctx context.Context, name string, raw json.RawMessage) (interface{}, error) {
	d, err := t.registry.Get(name)
	if err != nil {
		return t.fail(ctx, "dispatching tool", err)
	}
	return d.Handler(ctx, raw)
}

// fail translates a handler failure into the uniform error payload.
// Cancellation is not a failure and propagates untranslated.
func (t *Toolset) fail(ctx context.Context, action string, err error) (interface{}, error) {
	if cerr := ctx.Err(); cerr != nil {
		return nil, cerr
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil, err
	}
	return types.ErrorContent(action, err), nil
}

// resolve hands the handler a client for the invocation's target cluster.
func (t *Toolset) resolve(args BaseArgs) (opensearch.API, error) {
	return t.resolver.Resolve(args.conn())
}
