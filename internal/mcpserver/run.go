package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"
)

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP runs MCP over streamable HTTP for remote clients.
	TransportHTTP TransportKind = "http"
)

// Config configures the MCP server transport.
type Config struct {
	Transport TransportKind
	HTTPAddr  string // HTTP listen address; defaults to localhost:8081 for HTTP transport.
}

// httpShutdownTimeout bounds graceful HTTP shutdown after cancellation.
const httpShutdownTimeout = 5 * time.Second

// Run serves the MCP server over the configured transport and blocks until
// context cancellation.
func Run(ctx context.Context, deps Deps, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}

	server := NewServer(deps)

	switch cfg.Transport {
	case TransportStdio:
		return runStdio(ctx, server)
	case TransportHTTP:
		return runHTTP(ctx, server, cfg)
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

func runStdio(ctx context.Context, server *mcp.Server) error {
	err := server.Run(ctx, &mcp.StdioTransport{})
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP over stdio: %w", err)
	}
	return nil
}

func runHTTP(ctx context.Context, server *mcp.Server, cfg Config) error {
	addr := cfg.HTTPAddr
	if addr == "" {
		addr = "localhost:8081"
	}

	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)

	mux := http.NewServeMux()
	mux.Handle("/mcp", handler)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	httpServer := &http.Server{Addr: addr, Handler: mux}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Printf("mcp http listening addr=%s", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve MCP over http: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), httpShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown MCP http server: %w", err)
		}
		return nil
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
