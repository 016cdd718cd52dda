package mcpquic

import (
	"bytes"
	"context"
	"crypto/x509"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazyhaar/numen/pkg/kit"
)

func TestPreamble(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePreamble(&buf))
	assert.Equal(t, Preamble, buf.String())
	assert.NoError(t, ReadPreamble(&buf))

	err := ReadPreamble(strings.NewReader("MCP1{}"))
	assert.ErrorIs(t, err, ErrBadPreamble)

	err = ReadPreamble(strings.NewReader("NM"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrBadPreamble)
}

func TestSelfSignedCertificate(t *testing.T) {
	cert, err := SelfSignedCertificate()
	require.NoError(t, err)
	require.Len(t, cert.Certificate, 1)

	leaf, err := x509.ParseCertificate(cert.Certificate[0])
	require.NoError(t, err)
	assert.Equal(t, "localhost", leaf.Subject.CommonName)
	assert.NoError(t, leaf.VerifyHostname("127.0.0.1"))
	assert.True(t, leaf.NotAfter.After(time.Now().Add(300*24*time.Hour)))
}

func TestServerTLSConfig(t *testing.T) {
	cfg, err := ServerTLSConfig("", "")
	require.NoError(t, err)
	assert.Equal(t, []string{ALPN}, cfg.NextProtos)

	cfg, err = ServerTLSConfig("", "", "h3", ALPN)
	require.NoError(t, err)
	assert.Equal(t, []string{"h3", ALPN}, cfg.NextProtos)

	_, err = ServerTLSConfig("missing.crt", "missing.key")
	assert.Error(t, err)
}

func TestClientNotConnected(t *testing.T) {
	c := NewClient("127.0.0.1:1", nil)
	_, err := c.ListTools(context.Background())
	assert.ErrorIs(t, err, ErrNotConnected)
	_, err = c.CallTool(context.Background(), "x", nil)
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.NoError(t, c.Close())
}

func TestRoundTrip(t *testing.T) {
	srv := server.NewMCPServer("numen-test", "0.0.0", server.WithToolCapabilities(false))
	srv.AddTool(mcp.NewTool("transport"), func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText(kit.GetTransport(ctx)), nil
	})

	tlsCfg, err := ServerTLSConfig("", "")
	require.NoError(t, err)
	ln, err := Listen("127.0.0.1:0", tlsCfg, srv, nil)
	require.NoError(t, err)
	defer ln.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	go func() { _ = ln.Serve(ctx) }()

	c := NewClient(ln.Addr().String(), nil)
	require.NoError(t, c.Connect(ctx, "numen-test", "0.0.0"))
	defer c.Close()

	tools, err := c.ListTools(ctx)
	require.NoError(t, err)
	require.Len(t, tools.Tools, 1)
	assert.Equal(t, "transport", tools.Tools[0].Name)

	res, err := c.CallTool(ctx, "transport", nil)
	require.NoError(t, err)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, TransportName, text.Text)
}
