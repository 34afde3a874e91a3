package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Transport selects which listener wraps the dispatch layer.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
	TransportSSE   = "sse"
)

type Config struct {
	Transport    string
	Host         string
	Port         int
	Path         string
	Namespace    string
	LogLevel     string
	ToolTimeout  time.Duration
	AllowOrigins []string
	AllowedHosts []string

	// Default cluster connection. Per-tool arguments may override the
	// target cluster on a single invocation.
	OpenSearchURL      string
	OpenSearchUsername string
	OpenSearchPassword string
	OpenSearchInsecure bool
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded .env file")
	}

	transport := os.Getenv("OSQUERYMCP_TRANSPORT")
	if transport == "" {
		transport = TransportHTTP
	}
	switch transport {
	case TransportStdio, TransportHTTP, TransportSSE:
	default:
		return nil, fmt.Errorf("OSQUERYMCP_TRANSPORT must be one of stdio, http, sse (got %q)", transport)
	}

	host := os.Getenv("OSQUERYMCP_HOST")
	if host == "" {
		host = "127.0.0.1"
	}

	port := 8000
	if p := os.Getenv("OSQUERYMCP_PORT"); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		} else {
			slog.Warn("ignoring invalid OSQUERYMCP_PORT, using default", "value", p, "default", port)
		}
	}

	path := os.Getenv("OSQUERYMCP_PATH")
	if path == "" {
		path = "/mcp"
	}

	namespace := os.Getenv("OSQUERYMCP_NAMESPACE")
	if namespace == "" {
		namespace = "opensearch_query"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	toolTimeout := 30 * time.Second
	if v := os.Getenv("TOOL_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			toolTimeout = d
		} else {
			slog.Warn("ignoring invalid TOOL_TIMEOUT, using default", "value", v, "default", toolTimeout.String())
		}
	}

	osURL := os.Getenv("OPENSEARCH_URL")
	if osURL == "" {
		return nil, fmt.Errorf("OPENSEARCH_URL environment variable is required")
	}

	insecure := false
	if v := os.Getenv("OPENSEARCH_INSECURE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			insecure = b
		} else {
			slog.Warn("ignoring invalid OPENSEARCH_INSECURE, using default", "value", v, "default", insecure)
		}
	}

	return &Config{
		Transport:          transport,
		Host:               host,
		Port:               port,
		Path:               path,
		Namespace:          namespace,
		LogLevel:           logLevel,
		ToolTimeout:        toolTimeout,
		AllowOrigins:       splitList(os.Getenv("OSQUERYMCP_ALLOW_ORIGINS")),
		AllowedHosts:       splitList(os.Getenv("OSQUERYMCP_ALLOWED_HOSTS")),
		OpenSearchURL:      osURL,
		OpenSearchUsername: os.Getenv("OPENSEARCH_USERNAME"),
		OpenSearchPassword: os.Getenv("OPENSEARCH_PASSWORD"),
		OpenSearchInsecure: insecure,
	}, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// SetupLogging initializes the global slog logger with JSON output at the specified level.
func SetupLogging(level string) {
	var slogLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		slogLevel = slog.LevelDebug
	case "warn", "warning":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slogLevel})
	slog.SetDefault(slog.New(handler))
}
