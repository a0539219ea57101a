// Command server exposes the definability analysis pipeline over HTTP:
// GET /health and POST /api/analyze. Grounded on the quantum-playground
// service's cmd entrypoint pattern (internal/server + internal/app wiring),
// generalized to the unique analysis pipeline instead of circuit execution.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/fslivovsky/unique/internal/app"
	"github.com/fslivovsky/unique/internal/config"

	_ "github.com/fslivovsky/unique/solver/bruteforce"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configFile = flag.String("config", "", "optional config file (yaml/json/toml, viper-discovered)")
		port       = flag.IntP("port", "p", 0, "listen port (0: use config/env value)")
		localOnly  = flag.Bool("local-only", false, "bind to 127.0.0.1 instead of all interfaces")
	)
	flag.Parse()

	cfg, err := config.New(config.Options{ConfigFile: *configFile})
	if err != nil {
		fmt.Fprintf(os.Stderr, "server: loading config: %v\n", err)
		return 1
	}

	srv, err := app.NewServer(app.ServerOptions{C: cfg, Version: version})
	if err != nil {
		fmt.Fprintf(os.Stderr, "server: creating server: %v\n", err)
		return 1
	}

	listenPort := *port
	if listenPort == 0 {
		listenPort = cfg.GetInt("port")
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen(listenPort, *localOnly)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(os.Stderr, "server: %v\n", err)
			return 1
		}
	case sig := <-sigCh:
		fmt.Fprintf(os.Stderr, "server: received signal %v, shutting down\n", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "server: shutdown error: %v\n", err)
			return 1
		}
	}
	return 0
}
