// Package opensearch wraps the official OpenSearch Go client with the thin
// per-capability helpers the query tools call, plus a generic request
// passthrough for endpoints without a dedicated helper.
package opensearch

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	opensearchgo "github.com/opensearch-project/opensearch-go/v2"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/isitobservable/opensearch-query-mcp/pkg/telemetry"
	"github.com/isitobservable/opensearch-query-mcp/pkg/types"
)

// API is the upstream surface the tool handlers depend on. Tests substitute
// a recording fake.
type API interface {
	// Version returns the cluster's reported version string, e.g. "2.12.0".
	Version(ctx context.Context) (string, error)

	ListIndices(ctx context.Context) ([]map[string]interface{}, error)
	GetIndex(ctx context.Context, index string) (interface{}, error)
	GetIndexMapping(ctx context.Context, index string) (map[string]interface{}, error)
	SearchIndex(ctx context.Context, index string, query json.RawMessage) (map[string]interface{}, error)
	GetClusterState(ctx context.Context, metric, index string) (map[string]interface{}, error)
	GetIndexInfo(ctx context.Context, index string) (map[string]interface{}, error)
	GetIndexStats(ctx context.Context, index, metric string) (map[string]interface{}, error)
	GetQueryInsights(ctx context.Context) (interface{}, error)
	GetLongRunningTasks(ctx context.Context) (interface{}, error)

	// Perform issues an arbitrary request against the cluster.
	Perform(ctx context.Context, method, path string, params map[string]string, body []byte, headers map[string]string) (interface{}, error)
}

// Conn holds connection details for one cluster.
type Conn struct {
	URL      string
	Username string
	Password string
	Insecure bool
}

// Client implements API against a live cluster.
type Client struct {
	os    *opensearchgo.Client
	url   string
	calls metric.Int64Counter
}

func NewClient(conn Conn) (*Client, error) {
	cfg := opensearchgo.Config{
		Addresses: []string{conn.URL},
		Username:  conn.Username,
		Password:  conn.Password,
	}
	if conn.Insecure {
		cfg.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}
	oc, err := opensearchgo.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating OpenSearch client for %s: %w", conn.URL, err)
	}
	calls, err := telemetry.UpstreamCallsCounter()
	if err != nil {
		slog.Warn("opensearch: failed to create call counter, upstream metrics will be unavailable", "error", err)
		calls = nil
	}
	return &Client{os: oc, url: conn.URL, calls: calls}, nil
}

// recordCall counts one request issued to the cluster, failed or not.
func (c *Client) recordCall(ctx context.Context, method, path string, err error) {
	if c.calls == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("http.request.method", method),
		attribute.String("url.path", path),
		attribute.String("server.address", c.url),
	}
	if err != nil {
		attrs = append(attrs, attribute.String("error.type", types.ErrCodeUpstreamFailed))
	}
	c.calls.Add(ctx, 1, telemetry.WithAttrs(attrs...))
}

// URL returns the cluster address this client talks to.
func (c *Client) URL() string { return c.url }

func (c *Client) Version(ctx context.Context) (string, error) {
	res, err := opensearchapi.InfoRequest{}.Do(ctx, c.os)
	var info struct {
		Version struct {
			Number string `json:"number"`
		} `json:"version"`
	}
	if err := c.decode(ctx, res, err, http.MethodGet, "/", &info); err != nil {
		return "", err
	}
	if info.Version.Number == "" {
		return "", &types.UpstreamError{Method: http.MethodGet, Path: "/", Message: "cluster info response missing version number"}
	}
	return info.Version.Number, nil
}

func (c *Client) ListIndices(ctx context.Context) ([]map[string]interface{}, error) {
	res, err := opensearchapi.CatIndicesRequest{Format: "json"}.Do(ctx, c.os)
	var out []map[string]interface{}
	if err := c.decode(ctx, res, err, http.MethodGet, "/_cat/indices", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetIndex(ctx context.Context, index string) (interface{}, error) {
	res, err := opensearchapi.CatIndicesRequest{Format: "json", Index: []string{index}}.Do(ctx, c.os)
	var out interface{}
	if err := c.decode(ctx, res, err, http.MethodGet, "/_cat/indices/"+index, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetIndexMapping(ctx context.Context, index string) (map[string]interface{}, error) {
	res, err := opensearchapi.IndicesGetMappingRequest{Index: []string{index}}.Do(ctx, c.os)
	var out map[string]interface{}
	if err := c.decode(ctx, res, err, http.MethodGet, "/"+index+"/_mapping", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SearchIndex(ctx context.Context, index string, query json.RawMessage) (map[string]interface{}, error) {
	req := opensearchapi.SearchRequest{Index: []string{index}}
	if len(query) > 0 {
		req.Body = bytes.NewReader(query)
	}
	res, err := req.Do(ctx, c.os)
	var out map[string]interface{}
	if err := c.decode(ctx, res, err, http.MethodPost, "/"+index+"/_search", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetClusterState(ctx context.Context, metric, index string) (map[string]interface{}, error) {
	req := opensearchapi.ClusterStateRequest{}
	if metric != "" {
		req.Metric = []string{metric}
	}
	if index != "" {
		req.Index = []string{index}
	}
	res, err := req.Do(ctx, c.os)
	var out map[string]interface{}
	if err := c.decode(ctx, res, err, http.MethodGet, "/_cluster/state", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetIndexInfo(ctx context.Context, index string) (map[string]interface{}, error) {
	res, err := opensearchapi.IndicesGetRequest{Index: []string{index}}.Do(ctx, c.os)
	var out map[string]interface{}
	if err := c.decode(ctx, res, err, http.MethodGet, "/"+index, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetIndexStats(ctx context.Context, index, metric string) (map[string]interface{}, error) {
	req := opensearchapi.IndicesStatsRequest{Index: []string{index}}
	if metric != "" {
		req.Metric = []string{metric}
	}
	res, err := req.Do(ctx, c.os)
	var out map[string]interface{}
	if err := c.decode(ctx, res, err, http.MethodGet, "/"+index+"/_stats", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetQueryInsights(ctx context.Context) (interface{}, error) {
	return c.Perform(ctx, http.MethodGet, "/_insights/top_queries", nil, nil, nil)
}

func (c *Client) GetLongRunningTasks(ctx context.Context) (interface{}, error) {
	params := map[string]string{
		"format":   "json",
		"detailed": "true",
		"s":        "running_time:desc",
	}
	return c.Perform(ctx, http.MethodGet, "/_cat/tasks", params, nil, nil)
}

func (c *Client) Perform(ctx context.Context, method, path string, params map[string]string, body []byte, headers map[string]string) (out interface{}, retErr error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	var rdr io.Reader
	if len(body) > 0 {
		rdr = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, path, rdr)
	if err != nil {
		return nil, &types.UpstreamError{Method: method, Path: path, Message: err.Error()}
	}
	if len(params) > 0 {
		q := req.URL.Query()
		for k, v := range params {
			q.Set(k, v)
		}
		req.URL.RawQuery = q.Encode()
	}
	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	// build failures above never reach the cluster; count from here on
	defer func() { c.recordCall(ctx, method, path, retErr) }()

	res, err := c.os.Perform(req)
	if err != nil {
		return nil, &types.UpstreamError{Method: method, Path: path, Message: err.Error()}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &types.UpstreamError{Method: method, Path: path, StatusCode: res.StatusCode, Message: err.Error()}
	}
	if res.StatusCode >= http.StatusBadRequest {
		return nil, &types.UpstreamError{Method: method, Path: path, StatusCode: res.StatusCode, Message: strings.TrimSpace(string(raw))}
	}
	if len(raw) == 0 {
		// HEAD requests and empty bodies still signal success
		return map[string]interface{}{"status": res.StatusCode}, nil
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		// not JSON (cat endpoints without format=json); return as text
		return string(raw), nil
	}
	return out, nil
}

// decode consumes an opensearchapi response, mapping transport failures and
// non-2xx statuses to UpstreamError and unmarshalling the body into out.
// Every helper funnels through here, so this is where upstream calls are
// counted.
func (c *Client) decode(ctx context.Context, res *opensearchapi.Response, err error, method, path string, out interface{}) (retErr error) {
	defer func() { c.recordCall(ctx, method, path, retErr) }()
	if err != nil {
		return &types.UpstreamError{Method: method, Path: path, Message: err.Error()}
	}
	defer res.Body.Close()

	if res.IsError() {
		raw, _ := io.ReadAll(res.Body)
		return &types.UpstreamError{Method: method, Path: path, StatusCode: res.StatusCode, Message: strings.TrimSpace(string(raw))}
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return &types.UpstreamError{Method: method, Path: path, StatusCode: res.StatusCode, Message: fmt.Sprintf("decoding response: %v", err)}
	}
	return nil
}
