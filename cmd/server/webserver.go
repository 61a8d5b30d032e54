package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/coder/websocket"
	mandel "github.com/marben/silver_mandel"
	"github.com/marben/silver_mandel/remote"
)

// webServer creates the HTTP server with the /ws irpc endpoint and a
// /landmarks listing. Websocket connections accepted on /ws are handed to
// the returned listener. Cancelling ctx ends them.
func webServer(ctx context.Context, port int) (*remote.WebsocketListener, *http.Server) {
	addr := fmt.Sprintf(":%d", port)
	wsListener := remote.NewWebsocketListener(ctx, addr, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"}, // TODO: tighten in prod
	})

	mux := http.NewServeMux()
	mux.Handle("/ws", wsListener.Handler())
	mux.HandleFunc("/landmarks", func(w http.ResponseWriter, _ *http.Request) {
		for _, name := range mandel.LandmarkNames() {
			lm, _ := mandel.LandmarkByName(name)
			fmt.Fprintf(w, "%s\t%s\n", name, lm.Center())
		}
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	log.Printf("listening on ws://localhost:%d/ws", port)
	return wsListener, srv
}
