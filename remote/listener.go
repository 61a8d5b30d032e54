package remote

import (
	"context"
	"net"
	"net/http"

	"github.com/coder/websocket"
	mandel "github.com/marben/silver_mandel"
)

// WebsocketListener implements net.Listener. Its Handler upgrades HTTP
// requests to websockets and hands them to Accept.
type WebsocketListener struct {
	ch     chan *websocket.Conn
	ctx    context.Context
	cancel context.CancelFunc
	addr   wsAddr
	opts   *websocket.AcceptOptions
}

var _ net.Listener = (*WebsocketListener)(nil)

// NewWebsocketListener creates a listener whose connections live until ctx
// is done or the listener is closed. addr only names the listener.
func NewWebsocketListener(ctx context.Context, addr string, opts *websocket.AcceptOptions) *WebsocketListener {
	ctx, cancel := context.WithCancel(ctx)
	return &WebsocketListener{
		ch:     make(chan *websocket.Conn),
		ctx:    ctx,
		cancel: cancel,
		addr:   wsAddr{addr: addr},
		opts:   opts,
	}
}

// Handler handles the http ws endpoint.
func (l *WebsocketListener) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, l.opts)
		if err != nil {
			mandel.Logger().Warn("websocket accept failed", "remote", r.RemoteAddr, "err", err)
			return
		}

		select {
		case l.ch <- c:
		case <-l.ctx.Done():
			c.Close(websocket.StatusGoingAway, "server closed")
		case <-r.Context().Done():
			c.CloseNow()
		}
	}
}

func (l *WebsocketListener) Accept() (net.Conn, error) {
	select {
	case c := <-l.ch:
		return websocket.NetConn(l.ctx, c, websocket.MessageBinary), nil
	case <-l.ctx.Done():
		return nil, net.ErrClosed
	}
}

func (l *WebsocketListener) Addr() net.Addr {
	return l.addr
}

func (l *WebsocketListener) Close() error {
	l.cancel()
	return nil
}

// wsAddr implements net.Addr
type wsAddr struct {
	addr string
}

func (a wsAddr) Network() string {
	return "ws"
}

func (a wsAddr) String() string {
	return a.addr
}
