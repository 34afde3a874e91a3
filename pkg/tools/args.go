package tools

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/isitobservable/opensearch-query-mcp/pkg/opensearch"
)

// BaseArgs carries the optional cluster-identification fields shared by
// every tool's arguments. Empty fields fall back to the configured default
// cluster.
type BaseArgs struct {
	OpenSearchURL      string `json:"opensearch_url,omitempty"`
	OpenSearchUsername string `json:"opensearch_username,omitempty"`
	OpenSearchPassword string `json:"opensearch_password,omitempty"`
}

func (b BaseArgs) conn() opensearch.Conn {
	return opensearch.Conn{
		URL:      b.OpenSearchURL,
		Username: b.OpenSearchUsername,
		Password: b.OpenSearchPassword,
	}
}

type ListIndicesArgs struct {
	BaseArgs
	Index         string `json:"index,omitempty"`
	IncludeDetail bool   `json:"include_detail,omitempty"`
}

type GetIndexMappingArgs struct {
	BaseArgs
	Index string `json:"index"`
}

func (a *GetIndexMappingArgs) validate() error {
	if a.Index == "" {
		return fmt.Errorf("index is required")
	}
	return nil
}

type SearchIndexArgs struct {
	BaseArgs
	Index string          `json:"index"`
	Query json.RawMessage `json:"query"`
}

func (a *SearchIndexArgs) validate() error {
	if a.Index == "" {
		return fmt.Errorf("index is required")
	}
	if len(a.Query) == 0 {
		return fmt.Errorf("query is required")
	}
	return nil
}

type GetClusterStateArgs struct {
	BaseArgs
	Metric string `json:"metric,omitempty"`
	Index  string `json:"index,omitempty"`
}

type GetIndexInfoArgs struct {
	BaseArgs
	Index string `json:"index"`
}

func (a *GetIndexInfoArgs) validate() error {
	if a.Index == "" {
		return fmt.Errorf("index is required")
	}
	return nil
}

type GetIndexStatsArgs struct {
	BaseArgs
	Index  string `json:"index"`
	Metric string `json:"metric,omitempty"`
}

func (a *GetIndexStatsArgs) validate() error {
	if a.Index == "" {
		return fmt.Errorf("index is required")
	}
	return nil
}

type GetQueryInsightsArgs struct {
	BaseArgs
}

type GetLongRunningTasksArgs struct {
	BaseArgs
}

// genericAPIMethods are the verbs the generic passthrough accepts.
var genericAPIMethods = []string{
	http.MethodGet, http.MethodPost, http.MethodPut,
	http.MethodDelete, http.MethodHead, http.MethodPatch,
}

type GenericAPIArgs struct {
	BaseArgs
	Method  string            `json:"method,omitempty"`
	Path    string            `json:"path"`
	Params  map[string]string `json:"params,omitempty"`
	Body    json.RawMessage   `json:"body,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
}

func (a *GenericAPIArgs) validate() error {
	if a.Method == "" {
		a.Method = http.MethodGet
	}
	a.Method = strings.ToUpper(a.Method)
	valid := false
	for _, m := range genericAPIMethods {
		if a.Method == m {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("method must be one of %s", strings.Join(genericAPIMethods, ", "))
	}
	if a.Path == "" {
		return fmt.Errorf("path is required")
	}
	return nil
}

// decodeArgs unmarshals raw tool arguments into the tool's typed model.
// Unknown fields are tolerated; type mismatches are rejected before any
// network call is attempted.
func decodeArgs(raw json.RawMessage, v interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// baseProperties returns the schema fragment for BaseArgs, merged into every
// tool's input schema.
func baseProperties() map[string]interface{} {
	return map[string]interface{}{
		"opensearch_url": map[string]interface{}{
			"type":        "string",
			"description": "Target cluster URL (defaults to the configured cluster; the configured credentials are only used against the configured cluster, so pass opensearch_username and opensearch_password when overriding the URL)",
		},
		"opensearch_username": map[string]interface{}{
			"type":        "string",
			"description": "Username for the target cluster",
		},
		"opensearch_password": map[string]interface{}{
			"type":        "string",
			"description": "Password for the target cluster",
		},
	}
}

// objectSchema builds a JSON-schema object with the base connection
// properties merged in.
func objectSchema(properties map[string]interface{}, required ...string) map[string]interface{} {
	props := baseProperties()
	for k, v := range properties {
		props[k] = v
	}
	schema := map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}
