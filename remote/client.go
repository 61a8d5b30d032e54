package remote

import (
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/coder/websocket"
	"github.com/marben/irpc"
	mandel "github.com/marben/silver_mandel"
)

// Client renders jobs on a remote server.
type Client struct {
	*mandel.RendererIrpcClient
	ep *irpc.Endpoint
}

var _ mandel.Renderer = (*Client)(nil)

// Dial connects to a render server. addr is either a websocket URL
// (ws://localhost:8080/ws) or a TCP address (localhost:8081).
func Dial(ctx context.Context, addr string) (*Client, error) {
	conn, err := dial(ctx, addr)
	if err != nil {
		return nil, err
	}

	ep := irpc.NewEndpoint(conn,
		irpc.WithLocalAddress(conn.LocalAddr()),
		irpc.WithRemoteAddress(conn.RemoteAddr()),
	)
	client, err := mandel.NewRendererIrpcClient(ep)
	if err != nil {
		ep.Close()
		return nil, fmt.Errorf("NewRendererIrpcClient: %w", err)
	}
	return &Client{RendererIrpcClient: client, ep: ep}, nil
}

func dial(ctx context.Context, addr string) (net.Conn, error) {
	if strings.HasPrefix(addr, "ws://") || strings.HasPrefix(addr, "wss://") {
		c, _, err := websocket.Dial(ctx, addr, nil)
		if err != nil {
			return nil, fmt.Errorf("websocket.Dial %q: %w", addr, err)
		}
		// the connection outlives ctx; Close ends it
		return websocket.NetConn(context.Background(), c, websocket.MessageBinary), nil
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("net.Dial %q: %w", addr, err)
	}
	return conn, nil
}

// Close closes the connection. Calls in flight fail.
func (c *Client) Close() error {
	return c.ep.Close()
}
