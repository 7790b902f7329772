// Package main provides the server entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/osa030/moodmix/internal/api/rest"
	"github.com/osa030/moodmix/internal/app/assembler"
	"github.com/osa030/moodmix/internal/app/concept"
	"github.com/osa030/moodmix/internal/app/filter"
	"github.com/osa030/moodmix/internal/app/playlist"
	"github.com/osa030/moodmix/internal/app/recommend"
	"github.com/osa030/moodmix/internal/infra/config"
	"github.com/osa030/moodmix/internal/infra/logger"
	"github.com/osa030/moodmix/internal/infra/spotify"
	"github.com/osa030/moodmix/internal/infra/store"
	"github.com/osa030/moodmix/internal/infra/textgen"
)

var (
	app        = kingpin.New("moodmix-server", "MoodMix playlist generation server")
	configPath = app.Flag("config", "Path to config file").Default("config/server.yaml").String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = app.Flag("logfile", "Path to log file (default: stdout)").String()

	listFiltersCmd   = app.Command("list-filters", "List available filters and exit")
	listProvidersCmd = app.Command("list-providers", "List available text generators and recommendation providers and exit")
)

func init() {
	// start command (default) - no need to store the command
	app.Command("start", "Start the server (default)").Default()
}

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	switch command {
	case listFiltersCmd.FullCommand():
		printFilters()
		return
	case listProvidersCmd.FullCommand():
		printProviders()
		return
	}

	loggerConfig := logger.Config{
		Output: "stdout",
		Level:  "info",
	}
	if *verbose {
		loggerConfig.Level = "debug"
	}
	if *logfile != "" {
		loggerConfig.Output = *logfile
	}
	if err := logger.Init(loggerConfig); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	zlog.Info().Msgf("Loading config from %s", *configPath)
	cfg, err := config.Load(*configPath)
	if err != nil {
		zlog.Fatal().Msgf("Failed to load config: %v", err)
	}

	if err := run(cfg); err != nil {
		zlog.Error().Msgf("Server error: %v", err)
		os.Exit(1)
	}
}

// run executes the main server logic. Using a separate function ensures
// defer statements are executed even when returning with an error.
func run(cfg *config.Config) error {
	ctx := context.Background()

	spotifyClient, err := spotify.New(ctx, spotify.Config{
		ClientID:     cfg.Spotify.ClientID,
		ClientSecret: cfg.Spotify.ClientSecret,
		Market:       cfg.Spotify.Market,
	})
	if err != nil {
		return fmt.Errorf("failed to create Spotify client: %w", err)
	}

	// A missing text generator degrades to templated descriptions
	var gen concept.Generator
	if g, err := textgen.NewFromSettings(cfg.TextGen.Type, cfg.TextGen.Settings); err != nil {
		zlog.Warn().Msgf("Text generator unavailable, using fallback text: type=%s error=%v", cfg.TextGen.Type, err)
	} else {
		zlog.Info().Msgf("Text generator ready: type=%s", g.Name())
		gen = g
	}

	recommender, err := recommend.NewChainFromConfig(cfg, spotifyClient)
	if err != nil {
		return fmt.Errorf("failed to create recommendation providers: %w", err)
	}
	zlog.Info().Msgf("Recommendation providers ready: %s", strings.Join(recommender.Providers(), ","))

	filterChain, err := filter.NewChainFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("invalid filter config: %w", err)
	}
	for _, f := range filterChain.Filters() {
		zlog.Info().Msgf("Filter enabled: %s", f.Name())
	}

	// The store is optional; without it saving is skipped and list/delete report unavailability
	var repo playlist.Repository
	if cfg.Store.Disabled {
		zlog.Info().Msg("Playlist store disabled")
	} else if db, err := store.Open(cfg.Store.Path); err != nil {
		zlog.Error().Msgf("Failed to open playlist store, continuing without it: path=%s error=%v", cfg.Store.Path, err)
	} else {
		zlog.Info().Msgf("Playlist store opened: path=%s", cfg.Store.Path)
		defer db.Close()
		repo = db
	}
	storeService := playlist.NewStoreService(repo)

	service := playlist.NewService(
		concept.NewSynthesizer(gen),
		assembler.New(spotifyClient, recommender, filterChain),
		storeService,
	)

	handler := rest.NewRouter(service, storeService, rest.Options{CORSOrigins: cfg.Server.CORSOrigins})

	serverAddr := cfg.Server.Addr
	// Create server with h2c (HTTP/2 cleartext) support
	server := &http.Server{
		Addr:              serverAddr,
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrCh := make(chan error, 1)
	serverStartedCh := make(chan struct{})

	go func() {
		zlog.Info().Msgf("Starting server: addr=%s", serverAddr)
		close(serverStartedCh)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		}
	}()

	<-serverStartedCh
	// Give the server a moment to fully initialize
	time.Sleep(100 * time.Millisecond)

	executeHooks(cfg.Server.Hooks.OnStarted, "on_started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		zlog.Info().Msg("Received shutdown signal...")
	case err := <-serverErrCh:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Error().Msgf("Failed to shutdown server: %v", err)
	}

	zlog.Info().Msg("Server stopped")

	executeHooks(cfg.Server.Hooks.OnStopped, "on_stopped")

	return nil
}

// printFilters prints available filters.
func printFilters() {
	fmt.Println("Available Filters:")
	registry := filter.GetRegistered()
	for _, name := range filter.Names() {
		f := registry[name]()
		codes := strings.Join(f.ReturnCodes(), ", ")
		fmt.Printf("  %-30s - %s [codes: %s]\n", f.Name(), f.Description(), codes)
	}
}

// printProviders prints available text generators and recommendation providers.
func printProviders() {
	fmt.Println("Text Generators:")
	for _, t := range textgen.Types {
		fmt.Printf("  %s\n", t)
	}
	fmt.Println("Recommendation Providers (tried in configured order):")
	for _, t := range recommend.Types() {
		fmt.Printf("  %s\n", t)
	}
}

// executeHooks runs a list of shell commands.
func executeHooks(hooks []string, stage string) {
	if len(hooks) == 0 {
		return
	}

	zlog.Info().Msgf("Executing %s hooks (%d commands)", stage, len(hooks))

	for _, hook := range hooks {
		zlog.Info().Msgf("Executing hook: %s", hook)
		// Use sh -c to allow shell features like redirection or pipes
		cmd := exec.Command("sh", "-c", hook)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr

		if err := cmd.Run(); err != nil {
			zlog.Error().Err(err).Msgf("Failed to execute hook: %s", hook)
		}
	}
}
