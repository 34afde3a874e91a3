// Package mcp bridges the tool registry to the Model Context Protocol
// transports: stdio, streamable HTTP and SSE.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/isitobservable/opensearch-query-mcp/pkg/config"
	"github.com/isitobservable/opensearch-query-mcp/pkg/telemetry"
	"github.com/isitobservable/opensearch-query-mcp/pkg/tools"
	"github.com/isitobservable/opensearch-query-mcp/pkg/types"
)

const (
	mcpProtocolVersion = "2025-03-26"
	maxResultAttrLen   = 1024
)

// sensitiveKeys are argument key substrings that should be redacted from span attributes.
var sensitiveKeys = []string{"secret", "token", "key", "password", "credential"}

type Server struct {
	cfg        *config.Config
	mcpServer  *mcp.Server
	httpServer *http.Server
	toolset    *tools.Toolset
	meters     *telemetry.Meters
}

func NewServer(cfg *config.Config, toolset *tools.Toolset) *Server {
	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    cfg.Namespace,
		Title:   "OpenSearch query MCP server",
		Version: "1.0.0",
	}, nil)

	meters, err := telemetry.NewMeters()
	if err != nil {
		slog.Warn("mcp: failed to create OTel meters, metrics will be unavailable", "error", err)
	}

	s := &Server{
		cfg:       cfg,
		mcpServer: mcpServer,
		toolset:   toolset,
		meters:    meters,
	}

	// The registry is populated once at startup, so tools are advertised
	// in registration order and never change afterwards.
	for _, d := range toolset.Registry().List() {
		s.mcpServer.AddTool(buildMCPTool(d), s.buildInstrumentedHandler(d))
	}

	return s
}

// Run serves the configured transport until ctx is cancelled or the listener
// fails.
func (s *Server) Run(ctx context.Context) error {
	switch s.cfg.Transport {
	case config.TransportStdio:
		slog.Info("mcp: serving on stdio")
		return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
	case config.TransportHTTP:
		handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
			return s.mcpServer
		}, nil)
		return s.serveHTTP(handler)
	case config.TransportSSE:
		handler := mcp.NewSSEHandler(func(r *http.Request) *mcp.Server {
			return s.mcpServer
		}, nil)
		return s.serveHTTP(handler)
	default:
		return fmt.Errorf("unsupported transport %q", s.cfg.Transport)
	}
}

func (s *Server) serveHTTP(handler http.Handler) error {
	handler = corsMiddleware(s.cfg.AllowOrigins, handler)
	handler = allowedHostsMiddleware(s.cfg.AllowedHosts, handler)
	handler = otelhttp.NewHandler(handler, "mcp")

	mux := http.NewServeMux()
	mux.Handle(s.cfg.Path, handler)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "ok")
	})

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	slog.Info("mcp: starting HTTP server", "transport", s.cfg.Transport, "addr", addr, "path", s.cfg.Path)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

func buildMCPTool(d tools.Descriptor) *mcp.Tool {
	schemaJSON, _ := json.Marshal(d.InputSchema)

	readOnly := true
	for _, m := range d.HTTPMethods {
		switch m {
		case http.MethodGet, http.MethodHead:
		default:
			readOnly = false
		}
	}

	tool := &mcp.Tool{
		Name:        d.Name,
		Description: d.Description,
		Annotations: &mcp.ToolAnnotations{
			Title:        d.DisplayName,
			ReadOnlyHint: readOnly,
		},
	}

	// Parse the JSON schema into the go-sdk's jsonschema.Schema type
	if err := json.Unmarshal(schemaJSON, &tool.InputSchema); err != nil {
		slog.Warn("mcp: failed to parse input schema", "tool", d.Name, "error", err)
	}

	return tool
}

// buildInstrumentedHandler creates a ToolHandler that wraps dispatch with
// OTel spans, metrics, and context propagation per GenAI + MCP semantic
// conventions.
func (s *Server) buildInstrumentedHandler(d tools.Descriptor) mcp.ToolHandler {
	tracer := otel.Tracer("opensearch-query-mcp")

	return func(ctx context.Context, request *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		// --- Context Propagation: extract traceparent/tracestate from params._meta ---
		meta := request.Params.GetMeta()
		if meta != nil {
			carrier := propagation.MapCarrier{}
			for k, v := range meta {
				if str, ok := v.(string); ok {
					carrier.Set(k, str)
				}
			}
			ctx = otel.GetTextMapPropagator().Extract(ctx, carrier)
		}

		sessionID := ""
		if request.Session != nil {
			sessionID = request.Session.ID()
		}

		spanName := fmt.Sprintf("execute_tool %s", d.Name)
		ctx, span := tracer.Start(ctx, spanName,
			trace.WithSpanKind(trace.SpanKindServer),
		)
		defer span.End()

		span.SetAttributes(
			attribute.String("gen_ai.operation.name", "execute_tool"),
			attribute.String("gen_ai.tool.name", d.Name),
			attribute.String("mcp.method.name", "tools/call"),
			attribute.String("mcp.protocol.version", mcpProtocolVersion),
			attribute.String("mcp.session.id", sessionID),
		)
		span.SetAttributes(attribute.String("gen_ai.tool.call.arguments", sanitizeArgs(request.Params.Arguments)))

		if s.cfg.ToolTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.cfg.ToolTimeout)
			defer cancel()
		}

		start := time.Now()
		result, err := s.toolset.Dispatch(ctx, d.Name, request.Params.Arguments)
		duration := time.Since(start).Seconds()

		if err != nil {
			// only cancellation crosses the dispatch boundary
			s.recordMetrics(ctx, d.Name, "cancelled", duration)
			s.recordError(ctx, span, d.Name, "cancelled", err)
			return nil, err
		}

		// the uniform {type:"text",text:...} payload marks a handled failure
		if payload, ok := result.([]types.TextContent); ok && len(payload) > 0 {
			s.recordMetrics(ctx, d.Name, "tool_error", duration)
			s.recordError(ctx, span, d.Name, "tool_error", fmt.Errorf("%s", payload[0].Text))
			return &mcp.CallToolResult{
				Content: []mcp.Content{&mcp.TextContent{Text: payload[0].Text}},
				IsError: true,
			}, nil
		}

		s.recordMetrics(ctx, d.Name, "", duration)
		span.SetStatus(codes.Ok, "")

		jsonBytes, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			s.recordError(ctx, span, d.Name, types.ErrCodeInternalError, err)
			return &mcp.CallToolResult{
				Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("failed to marshal result: %v", err)}},
				IsError: true,
			}, nil
		}

		resultStr := string(jsonBytes)
		if len(resultStr) > maxResultAttrLen {
			resultStr = resultStr[:maxResultAttrLen]
		}
		span.SetAttributes(attribute.String("gen_ai.tool.call.result", resultStr))

		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: string(jsonBytes)}},
		}, nil
	}
}

// recordMetrics records GenAI request duration and count metrics.
func (s *Server) recordMetrics(ctx context.Context, toolName, errType string, duration float64) {
	if s.meters == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("gen_ai.tool.name", toolName),
	}
	if errType != "" {
		attrs = append(attrs, attribute.String("error.type", errType))
	}
	s.meters.RequestDuration.Record(ctx, duration, telemetry.WithAttrs(attrs...))
	s.meters.RequestCount.Add(ctx, 1, telemetry.WithAttrs(attrs...))
}

// recordError records error metrics and sets span error status.
func (s *Server) recordError(ctx context.Context, span trace.Span, toolName, errType string, err error) {
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(attribute.String("error.type", errType))
	span.RecordError(err)

	if s.meters == nil {
		return
	}
	s.meters.ErrorsTotal.Add(ctx, 1, telemetry.WithAttrs(
		attribute.String("error.code", errType),
		attribute.String("gen_ai.tool.name", toolName),
	))
}

// sanitizeArgs returns a JSON string of the arguments with sensitive values redacted.
func sanitizeArgs(raw json.RawMessage) string {
	var args map[string]interface{}
	if len(raw) == 0 || json.Unmarshal(raw, &args) != nil {
		return "{}"
	}
	sanitized := make(map[string]interface{}, len(args))
	for k, v := range args {
		if isSensitiveKey(k) {
			sanitized[k] = "[REDACTED]"
		} else {
			sanitized[k] = v
		}
	}
	b, err := json.Marshal(sanitized)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// isSensitiveKey checks if a key name suggests it contains sensitive data.
func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, s := range sensitiveKeys {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}
