// Package chassis serves one address on two transports:
//
//   - TCP: TLS with HTTP/1.1 and HTTP/2
//   - UDP: QUIC, demultiplexed by ALPN into HTTP/3 ("h3") and MCP sessions
//     (mcpquic.ALPN)
//
// HTTP responses advertise HTTP/3 with an Alt-Svc header. Without a
// certificate pair a self-signed development certificate is generated.
package chassis

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/quic-go/quic-go"
	"github.com/quic-go/quic-go/http3"
	"golang.org/x/sync/errgroup"

	"github.com/hazyhaar/numen/pkg/mcpquic"
)

// ShutdownTimeout bounds the graceful TCP shutdown once Start's context ends.
const ShutdownTimeout = 10 * time.Second

const (
	connErrMCPDisabled     quic.ApplicationErrorCode = 0x10
	connErrUnsupportedALPN quic.ApplicationErrorCode = 0x11
)

type Config struct {
	Addr      string       // TCP and UDP listen address, e.g. ":8420"
	TLS       *tls.Config  // overrides CertFile/KeyFile
	CertFile  string
	KeyFile   string
	Handler   http.Handler // served on HTTP/1.1, HTTP/2 and HTTP/3
	MCPServer *server.MCPServer // nil disables MCP over QUIC
	Logger    *slog.Logger
}

type Server struct {
	addr    string
	logger  *slog.Logger
	tlsCfg  *tls.Config
	handler http.Handler
	mcp     *mcpquic.Handler

	mu     sync.Mutex
	tcp    *http.Server
	h3     *http3.Server
	quicLn *quic.Listener
}

func New(cfg Config) (*Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Handler == nil {
		return nil, errors.New("chassis: handler is required")
	}

	tlsCfg := cfg.TLS
	if tlsCfg == nil {
		var err error
		tlsCfg, err = mcpquic.ServerTLSConfig(cfg.CertFile, cfg.KeyFile, http3.NextProtoH3, mcpquic.ALPN)
		if err != nil {
			return nil, fmt.Errorf("chassis tls: %w", err)
		}
		if cfg.CertFile == "" {
			cfg.Logger.Warn("chassis: using self-signed development certificate")
		}
	}

	s := &Server{
		addr:    cfg.Addr,
		logger:  cfg.Logger,
		tlsCfg:  tlsCfg,
		handler: securityHeaders(altSvc(cfg.Addr, cfg.Handler)),
	}
	if cfg.MCPServer != nil {
		s.mcp = mcpquic.NewHandler(cfg.MCPServer, cfg.Logger)
	}
	return s, nil
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		next.ServeHTTP(w, r)
	})
}

// altSvc advertises HTTP/3 on the port of addr.
func altSvc(addr string, next http.Handler) http.Handler {
	_, port, err := net.SplitHostPort(addr)
	if err != nil || port == "" {
		port = "443"
	}
	value := fmt.Sprintf(`h3=":%s"; ma=86400`, port)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Alt-Svc", value)
		next.ServeHTTP(w, r)
	})
}

// Start listens on TCP and UDP and blocks until ctx is cancelled or a
// listener fails. Either way the listeners are closed before it returns.
func (s *Server) Start(ctx context.Context) error {
	tcpTLS := s.tlsCfg.Clone()
	tcpTLS.NextProtos = []string{"h2", "http/1.1"}
	tcpLn, err := tls.Listen("tcp", s.addr, tcpTLS)
	if err != nil {
		return fmt.Errorf("tcp listen: %w", err)
	}
	quicLn, err := quic.ListenAddr(s.addr, s.tlsCfg, mcpquic.QUICConfig())
	if err != nil {
		_ = tcpLn.Close()
		return fmt.Errorf("quic listen: %w", err)
	}

	tcpSrv := &http.Server{Handler: s.handler, TLSConfig: tcpTLS}
	h3Srv := &http3.Server{Handler: s.handler}
	s.mu.Lock()
	s.tcp, s.h3, s.quicLn = tcpSrv, h3Srv, quicLn
	s.mu.Unlock()

	s.logger.Info("chassis started", "addr", s.addr, "tcp", "h2,http/1.1", "udp", "h3,"+mcpquic.ALPN)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := tcpSrv.Serve(tcpLn); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("tcp serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return s.acceptQUIC(ctx, quicLn, h3Srv)
	})
	g.Go(func() error {
		<-ctx.Done()
		stopCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return s.Stop(stopCtx)
	})
	return g.Wait()
}

func (s *Server) acceptQUIC(ctx context.Context, ln *quic.Listener, h3Srv *http3.Server) error {
	for {
		conn, err := ln.Accept(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("quic accept: %w", err)
		}
		switch alpn := conn.ConnectionState().TLS.NegotiatedProtocol; alpn {
		case http3.NextProtoH3:
			go func() {
				if err := h3Srv.ServeQUICConn(conn); err != nil {
					s.logger.Debug("chassis: h3 connection closed", "remote", conn.RemoteAddr(), "error", err)
				}
			}()
		case mcpquic.ALPN:
			if s.mcp == nil {
				_ = conn.CloseWithError(connErrMCPDisabled, "MCP not enabled")
				continue
			}
			go s.mcp.ServeConn(ctx, conn)
		default:
			s.logger.Warn("chassis: unsupported alpn", "alpn", alpn, "remote", conn.RemoteAddr())
			_ = conn.CloseWithError(connErrUnsupportedALPN, "unsupported ALPN: "+alpn)
		}
	}
}

// Stop shuts down the TCP server gracefully and closes the QUIC side.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	if s.tcp != nil {
		if err := s.tcp.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs = append(errs, err)
		}
	}
	if s.quicLn != nil {
		errs = append(errs, s.quicLn.Close())
		s.quicLn = nil
	}
	if s.h3 != nil {
		errs = append(errs, s.h3.Close())
		s.h3 = nil
	}
	s.logger.Info("chassis stopped")
	return errors.Join(errs...)
}
