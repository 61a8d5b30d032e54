package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/marben/irpc"
	mandel "github.com/marben/silver_mandel"
	"github.com/marben/silver_mandel/remote"
)

// main is the entry point for the Mandelbrot render server.
// Clients connect over tcp or websocket and call mandel.Renderer through irpc.
func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run() error {
	tcpPort := flag.Int("tcp", 8081, "irpc tcp port")
	httpPort := flag.Int("port", 8080, "HTTP port; the websocket endpoint is /ws")
	workers := flag.Int("workers", 4, "goroutines per accelerated job")
	verbose := flag.Bool("v", false, "log every generation")
	flag.Parse()

	if *verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
		mandel.SetLogger(slog.Default())
	}

	renderer := &mandel.RendererImpl{
		Workers: *workers,
		OnJobRender: func(j mandel.Job) {
			log.Printf("rendering %dx%d at %s zoom %d (%s)", j.Width, j.Height, j.Center, j.Zoom, j.Mode)
		},
	}
	defer renderer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	irpcServer := remote.NewServer(renderer)

	// TCP
	log.Printf("tcp listening on port: %d", *tcpPort)
	tcpListener, err := net.Listen("tcp", fmt.Sprintf(":%d", *tcpPort))
	if err != nil {
		return fmt.Errorf("net.Listen: %w", err)
	}

	// WEBSOCKET
	websocketListener, httpServer := webServer(ctx, *httpPort)

	errc := make(chan error, 3)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- fmt.Errorf("httpServer: %w", err)
		}
	}()

	// one irpc server serves both listeners
	go func() {
		if err := irpcServer.Serve(tcpListener); !errors.Is(err, irpc.ErrServerClosed) {
			errc <- fmt.Errorf("server.Serve tcp: %w", err)
		}
	}()
	go func() {
		if err := irpcServer.Serve(websocketListener); !errors.Is(err, irpc.ErrServerClosed) {
			errc <- fmt.Errorf("server.Serve ws: %w", err)
		}
	}()

	log.Printf("render server waiting for tcp and websocket connections")
	select {
	case <-ctx.Done():
	case err = <-errc:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if serr := httpServer.Shutdown(shutdownCtx); serr != nil {
		log.Printf("http shutdown: %v", serr)
	}
	if serr := irpcServer.Close(); serr != nil {
		log.Printf("irpc shutdown: %v", serr)
	}
	if err != nil {
		return err
	}
	log.Printf("server stopped")
	return nil
}
