// Package remote serves mandel.Renderer over irpc, on TCP or websocket
// connections, and provides the matching client.
package remote

import (
	"context"

	"github.com/marben/irpc"
	mandel "github.com/marben/silver_mandel"
)

// NewServer returns an irpc server providing r to every connected client.
// Call Serve once per listener; one server can serve TCP and websocket
// listeners at the same time.
func NewServer(r mandel.Renderer) *irpc.Server {
	srv := irpc.NewServer(irpc.WithOnConnect(func(ep *irpc.Endpoint) {
		mandel.Logger().Info("client connected", "remote", ep.RemoteAddr())
		go func() {
			<-ep.Context().Done()
			mandel.Logger().Info("client disconnected", "remote", ep.RemoteAddr(), "cause", context.Cause(ep.Context()))
		}()
	}))
	srv.AddService(mandel.NewRendererIrpcService(r))
	return srv
}
