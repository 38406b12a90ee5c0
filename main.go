// Command coil-server starts the sliding coil puzzle server.
//
// The default action runs the HTTP server exposing the REST API, the
// WebSocket state broadcast, and an /mcp HTTP endpoint; the "mcp"
// subcommand serves the MCP protocol over stdio instead. Flags control
// host/port, the level file, debug logging, and optional ngrok tunneling
// for external access during development.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/Inselaffe03/mortail-coil-arena/api"
	"github.com/Inselaffe03/mortail-coil-arena/game/engine"
	"github.com/Inselaffe03/mortail-coil-arena/game/level"
	"github.com/Inselaffe03/mortail-coil-arena/game/service"
	mcptransport "github.com/Inselaffe03/mortail-coil-arena/transport/mcp"
	"github.com/Inselaffe03/mortail-coil-arena/transport/websocket"
)

const (
	Version = "1.0.0"
	AppName = "Coil Puzzle Server"
)

func main() {
	// Load .env if present; absence is fine.
	_ = godotenv.Load()

	cmd := &cli.Command{
		Name:    "coil-server",
		Usage:   "single-player sliding coil puzzle over REST, WebSocket, and MCP",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Value: "localhost",
				Usage: "HTTP server host",
			},
			&cli.IntFlag{
				Name:  "port",
				Value: 8080,
				Usage: "HTTP server port",
			},
			&cli.StringFlag{
				Name:    "levels",
				Usage:   "path to a JSON level file (embedded classic set when empty)",
				Sources: cli.EnvVars("LEVELS_FILE"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
			&cli.BoolFlag{
				Name:    "ngrok",
				Usage:   "expose the server through an ngrok tunnel",
				Sources: cli.EnvVars("NGROK_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "ngrok-domain",
				Usage:   "custom ngrok domain (optional)",
				Sources: cli.EnvVars("NGROK_DOMAIN"),
			},
		},
		Action: runServer,
		Commands: []*cli.Command{
			{
				Name:    "mcp",
				Aliases: []string{"stdio-mcp"},
				Usage:   "serve the MCP protocol on stdin/stdout",
				Action:  runStdioMCP,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// setupLogging sets the global zerolog level from LOG_LEVEL, with the
// debug flag taking precedence.
func setupLogging(debug bool) {
	lvl := zerolog.InfoLevel
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		if parsed, err := zerolog.ParseLevel(env); err == nil {
			lvl = parsed
		}
	}
	if debug {
		lvl = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

// loadCatalog loads the level file named by the flag, or falls back to
// the embedded classic set.
func loadCatalog(path string) (*level.Catalog, error) {
	if path == "" {
		return level.DefaultCatalog(), nil
	}
	catalog, err := level.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load levels from %s: %w", path, err)
	}
	return catalog, nil
}

// runServer wires the engine, service, hub, and transports, then serves
// HTTP until interrupted.
func runServer(ctx context.Context, cmd *cli.Command) error {
	setupLogging(cmd.Bool("debug"))

	catalog, err := loadCatalog(cmd.String("levels"))
	if err != nil {
		return err
	}

	hub := websocket.NewHub()
	eng, err := engine.NewEngine(catalog, hub)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}
	// Seed the hub so the first listener gets an initial snapshot before
	// any mutation happens.
	hub.Broadcast(eng.Snapshot())

	gameService := service.NewGameService(eng, catalog)
	apiServer := api.NewServer(gameService, hub)
	mcpServer := mcptransport.NewServer(gameService)

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpServer.MCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		data, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(data)
	})

	addr := fmt.Sprintf("%s:%d", cmd.String("host"), cmd.Int("port"))
	httpServer := &http.Server{
		Addr:        addr,
		Handler:     mainRouter,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	serveCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Info().
			Str("addr", addr).
			Int("levels", catalog.Count()).
			Msgf("%s v%s listening", AppName, Version)
		log.Info().Msgf("REST API: http://%s/api", addr)
		log.Info().Msgf("WebSocket: ws://%s/ws", addr)
		log.Info().Msgf("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	if cmd.Bool("ngrok") {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(serveCtx, cmd.String("ngrok-domain"), mainRouter)
		}()
	}

	sig := <-stop
	log.Info().Str("signal", sig.String()).Msg("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	wg.Wait()
	log.Info().Msg("server stopped")
	return nil
}

// runNgrokTunnel serves the router through an ngrok tunnel until the
// context is cancelled. The auth token comes from NGROK_AUTHTOKEN.
func runNgrokTunnel(ctx context.Context, domain string, handler http.Handler) {
	authToken := os.Getenv("NGROK_AUTHTOKEN")
	if authToken == "" {
		log.Warn().Msg("ngrok enabled but NGROK_AUTHTOKEN is not set")
		return
	}

	var tunnel ngrokConfig.Tunnel
	if domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
		log.Info().Str("domain", domain).Msg("using custom ngrok domain")
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(authToken))
	if err != nil {
		log.Error().Err(err).Msg("failed to start ngrok tunnel")
		return
	}
	defer func() {
		if err := tun.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close ngrok tunnel")
		}
	}()

	log.Info().Str("url", tun.URL()).Msg("ngrok tunnel established")

	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("ngrok server error")
	}
	log.Info().Msg("ngrok tunnel closed")
}

// runStdioMCP serves the MCP tools over stdio, wiring the same engine and
// service stack without the HTTP layer.
func runStdioMCP(ctx context.Context, cmd *cli.Command) error {
	setupLogging(cmd.Bool("debug"))

	catalog, err := loadCatalog(cmd.String("levels"))
	if err != nil {
		return err
	}

	eng, err := engine.NewEngine(catalog)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}

	gameService := service.NewGameService(eng, catalog)
	mcpServer := mcptransport.NewServer(gameService)

	log.Info().Msg("MCP stdio server ready")
	return mcpServer.ServeStdio()
}
