package main

import (
	"baro-server/api"
	"baro-server/auth"
	"baro-server/engine"
	"baro-server/moderation"
	"baro-server/observability"
	"baro-server/projection"
	"baro-server/repositories"
	"baro-server/search"
	"baro-server/services"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/database"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and centralizes error reporting.
// This pattern is preferred over calling os.Exit or panic directly because:
// 1. It ensures all 'defer' statements (like database cleanup) are executed before the program exits.
// 2. It improves testability by decoupling the initialization logic from the main entry point.
// 3. It provides a structured way to handle graceful shutdowns for the HTTP server.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Stores (BadgerDB for profiles, Bluge for message search)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.INFO))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	if log.Enabled(context.Background(), slog.LevelDebug) {
		debugPort := 8081
		endpoint := "/inspect"
		log.Info("Debug Badger inspector available",
			"url", fmt.Sprintf("http://localhost:%d%s", debugPort, endpoint))
		database.StartDebugServer(db, debugPort, endpoint, ProfileMapper)
	}

	blugeWriter, err := bluge.OpenWriter(bluge.DefaultConfig(config.BlugeFilepath))
	if err != nil {
		return fmt.Errorf("failed to open bluge writer: %w", err)
	}
	defer func() {
		log.Info("Closing Bluge...")
		_ = blugeWriter.Close()
	}()

	// 3. Core components
	registry := repositories.NewRoomRegistry()
	ledger := repositories.NewMessageLedger()
	projector := projection.NewSummaryProjector()
	stats := observability.NewExchangeStats(log)
	index := search.NewMessageIndex(blugeWriter, log)
	responseEngine := engine.NewHTTPEngine(config.EngineURL, config.EngineTimeout, log)

	moderator, err := loadModerator(config.CensoredWordsPath, log)
	if err != nil {
		return fmt.Errorf("moderation setup failed: %w", err)
	}

	botService := services.NewBotService(
		registry, ledger, projector, responseEngine, moderator, index, stats, log,
	)

	// 4. Auth & profiles
	profileRepository := repositories.NewProfileRepository(db, log)
	tokens := auth.NewTokenManager(config.AuthTokenSecret, config.AuthTokenDuration)
	authService := services.NewAuthService(profileRepository, tokens, log)

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 6. HTTP Server Setup
	handler := api.NewHandler(botService, authService, stats, log)
	router := api.NewRouter(handler, tokens, log)

	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	server := &http.Server{Addr: address, Handler: router}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "address", address, "at", time.Now().UTC())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// 7. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 8. Final Cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	log.Info("Program stopped cleanly")

	return nil
}

// loadModerator builds the censored-word moderator when a word list is
// configured; moderation stays disabled otherwise.
func loadModerator(path string, log *slog.Logger) (*moderation.Moderator, error) {
	if path == "" {
		log.Info("Moderation disabled, no censored word list configured")
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var words []string
	for _, line := range strings.Split(string(data), "\n") {
		if word := strings.TrimSpace(line); word != "" {
			words = append(words, word)
		}
	}

	moderator, err := moderation.NewModerator(words, '*')
	if err != nil {
		return nil, err
	}
	log.Info("Moderation enabled", "words", len(words))
	return moderator, nil
}

// ProfileMapper renders a stored profile row in the debug inspector.
func ProfileMapper(key string, val []byte) database.InspectRow {
	row := database.DefaultMapper(key, val)

	var profile struct {
		ID       string `json:"id"`
		Nickname string `json:"nickname"`
	}
	if err := json.Unmarshal(val, &profile); err != nil {
		row.Detail = "Error: unmarshal failed"
		return row
	}

	row.Type = "PROFILE"
	row.EntityID = profile.ID
	if len(row.EntityID) > 8 {
		row.EntityID = row.EntityID[:8]
	}
	row.Detail = profile.Nickname
	return row
}
