package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/hazyhaar/numen/pkg/api"
	"github.com/hazyhaar/numen/pkg/chassis"
	"github.com/hazyhaar/numen/pkg/kit"
	"github.com/hazyhaar/numen/pkg/mcpquic"
	"github.com/hazyhaar/numen/pkg/metrics"
)

const shutdownTimeout = 10 * time.Second

func serveCmd(a *app) *cobra.Command {
	var addr, transport string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API, metrics and MCP",
		Long: `Serve the REST API under /v1, Prometheus metrics under /metrics and
MCP over streamable HTTP under /mcp.

With transport "chassis" the same address is served over TLS on TCP
(HTTP/1.1, HTTP/2) and QUIC on UDP (HTTP/3 and MCP over QUIC).

With transport "quic" only MCP over QUIC is served, on UDP.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				a.cfg.Addr = addr
			}
			if transport != "" {
				a.cfg.Transport = transport
			}
			if err := a.cfg.validate(); err != nil {
				return err
			}
			return a.serve(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides the config")
	cmd.Flags().StringVar(&transport, "transport", "", "http, chassis or quic, overrides the config")
	return cmd
}

type host struct {
	mcp     *server.MCPServer
	handler http.Handler
}

// newHost wires endpoints, metrics and the MCP server into one handler.
func (a *app) newHost(reg *prometheus.Registry) *host {
	m := metrics.New(reg)
	eps := api.NewEndpoints(a.cfg.limits(), a.logger, m)
	mcpSrv := api.NewMCPServer(eps, version)
	streamable := server.NewStreamableHTTPServer(mcpSrv,
		server.WithHTTPContextFunc(func(ctx context.Context, _ *http.Request) context.Context {
			return kit.WithTransport(ctx, "mcp_http")
		}),
	)
	return &host{
		mcp: mcpSrv,
		handler: api.NewRouter(eps, api.RouterOptions{
			Metrics: m.Handler(),
			MCP:     streamable,
		}),
	}
}

func (a *app) serve(ctx context.Context) error {
	h := a.newHost(prometheus.NewRegistry())

	switch a.cfg.Transport {
	case transportQUIC:
		return a.serveQUIC(ctx, h)
	case transportChassis:
		srv, err := chassis.New(chassis.Config{
			Addr:      a.cfg.Addr,
			CertFile:  a.cfg.CertFile,
			KeyFile:   a.cfg.KeyFile,
			Handler:   h.handler,
			MCPServer: h.mcp,
			Logger:    a.logger,
		})
		if err != nil {
			return err
		}
		return srv.Start(ctx)
	}

	srv := &http.Server{
		Addr:              a.cfg.Addr,
		Handler:           h.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("numen listening", "addr", a.cfg.Addr, "version", version)
		var err error
		if a.cfg.CertFile != "" {
			err = srv.ListenAndServeTLS(a.cfg.CertFile, a.cfg.KeyFile)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// serveQUIC serves MCP alone on a QUIC listener until ctx is cancelled.
func (a *app) serveQUIC(ctx context.Context, h *host) error {
	tlsCfg, err := mcpquic.ServerTLSConfig(a.cfg.CertFile, a.cfg.KeyFile)
	if err != nil {
		return fmt.Errorf("quic tls: %w", err)
	}
	ln, err := mcpquic.Listen(a.cfg.Addr, tlsCfg, h.mcp, a.logger)
	if err != nil {
		return err
	}
	defer ln.Close()
	return ln.Serve(ctx)
}
