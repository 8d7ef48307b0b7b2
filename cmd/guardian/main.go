// Command guardian wires the data-access layer together and runs a short
// smoke session against the configured backend. With no backend running it
// demonstrates the offline degradation path end to end.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/mkjena1512-star/path-safe-guardian-92/client"
	"github.com/mkjena1512-star/path-safe-guardian-92/internal/config"
	"github.com/mkjena1512-star/path-safe-guardian-92/internal/connectivity"
	"github.com/mkjena1512-star/path-safe-guardian-92/internal/credstore"
)

func main() {
	var (
		envFile = flag.String("env", ".env", "Path to .env file (optional)")
		email   = flag.String("email", "demo@example.com", "Login email for the smoke session")
		debug   = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "load env (%s): %v\n", *envFile, err)
		os.Exit(1)
	}

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	if err := run(context.Background(), log, *email); err != nil {
		log.Fatal().Err(err).Msg("guardian session failed")
	}
}

func run(ctx context.Context, log zerolog.Logger, email string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log.Info().Str("base_url", cfg.BaseURL).Dur("timeout", cfg.Timeout).Msg("configured")

	tokens, err := credstore.NewFileStore(cfg.StateDir)
	if err != nil {
		return err
	}

	c, err := client.New(client.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Tokens:  tokens,
		Redirect: client.RedirectorFunc(func() {
			log.Warn().Msg("session invalidated, returning to login")
		}),
		Logger: &log,
	})
	if err != nil {
		return err
	}

	prober := connectivity.NewProber(connectivity.ProberConfig{
		Endpoint: cfg.BaseURL + "/health",
		Interval: 10 * time.Second,
	})
	monitor := connectivity.NewMonitor(prober, log)
	monitor.Subscribe(func(online bool) {
		log.Info().Bool("online", online).Msg("connectivity changed")
	})
	monitor.Start(ctx)
	log.Info().Bool("online", monitor.Online()).Msg("initial connectivity")

	auth, err := c.Login(ctx, email, "demo-password")
	if err != nil {
		return err
	}
	if err := c.SetToken(auth.Token); err != nil {
		return err
	}
	log.Info().Str("user", auth.User.Name).Str("role", auth.User.Role).Msg("logged in")

	score, err := c.GetSafetyScore(ctx)
	if err != nil {
		return err
	}
	log.Info().Int("score", score.SafetyScore).Strs("factors", score.Factors).Msg("safety score")

	history, err := c.GetLocationHistory(ctx)
	if err != nil {
		return err
	}
	for _, loc := range history.Locations {
		log.Info().
			Float64("lat", loc.Lat).
			Float64("lng", loc.Lng).
			Str("label", loc.Label).
			Time("at", loc.Timestamp).
			Msg("location")
	}

	stats := c.Metrics()
	log.Info().
		Int64("total", stats["total_calls"]).
		Int64("live", stats["live_results"]).
		Int64("fallbacks", stats["fallbacks"]).
		Msg("session summary")

	return nil
}
