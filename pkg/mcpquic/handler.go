package mcpquic

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/server"
	"github.com/quic-go/quic-go"

	"github.com/hazyhaar/numen/pkg/kit"
)

// TransportName tags the request context of every tool call served here.
const TransportName = "mcp_quic"

// Handler serves MCP sessions on QUIC connections it does not own. The
// chassis hands it connections after ALPN demuxing; Listener uses it
// standalone.
type Handler struct {
	srv    *server.MCPServer
	logger *slog.Logger
}

func NewHandler(srv *server.MCPServer, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{srv: srv, logger: logger}
}

// ServeConn runs one MCP session on the first stream the client opens and
// returns when the stream ends or ctx is cancelled.
func (h *Handler) ServeConn(ctx context.Context, conn *quic.Conn) {
	remote := conn.RemoteAddr().String()
	log := h.logger.With("remote", remote)

	stream, err := conn.AcceptStream(ctx)
	if err != nil {
		log.Warn("mcp: accept stream", "error", err)
		_ = conn.CloseWithError(ConnErrorProtocolViolation, "no stream")
		return
	}
	if err := ReadPreamble(stream); err != nil {
		log.Warn("mcp: bad preamble", "error", err)
		stream.CancelRead(StreamErrorProtocolConfusion)
		stream.CancelWrite(StreamErrorProtocolConfusion)
		_ = conn.CloseWithError(ConnErrorProtocolViolation, "bad preamble")
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sess := newSession("quic-"+uuid.NewString(), stream)
	if err := h.srv.RegisterSession(ctx, sess); err != nil {
		log.Error("mcp: register session", "error", err)
		_ = stream.Close()
		return
	}
	defer h.srv.UnregisterSession(ctx, sess.id)

	log = log.With("session", sess.id)
	log.Info("mcp: session started")

	ctx = kit.WithTransport(ctx, TransportName)
	ctx = h.srv.WithContext(ctx, sess)
	go sess.forwardNotifications(ctx)

	if err := h.serveStream(ctx, sess, stream); err != nil {
		log.Warn("mcp: session aborted", "error", err)
	}
	_ = stream.Close()
	log.Info("mcp: session ended")
}

func (h *Handler) serveStream(ctx context.Context, sess *session, stream io.Reader) error {
	scanner := bufio.NewScanner(stream)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxMessageSize)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		msg := make(json.RawMessage, len(line))
		copy(msg, line)

		resp := h.srv.HandleMessage(ctx, msg)
		if resp == nil {
			continue
		}
		if err := sess.send(resp); err != nil {
			return err
		}
	}
	err := scanner.Err()
	if errors.Is(err, bufio.ErrTooLong) {
		if s, ok := stream.(*quic.Stream); ok {
			s.CancelRead(StreamErrorMessageTooLarge)
		}
	}
	if ctx.Err() != nil {
		return nil
	}
	return err
}
