package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"downsweep/internal/advisor"
	"downsweep/internal/cleaner"
	"downsweep/internal/config"
	"downsweep/internal/safeio"
	"downsweep/internal/suppress"
	"downsweep/internal/ui"
)

func main() {
	dir := flag.String("dir", "", "directory to clean (overrides config)")
	cfgPath := flag.String("config", "", "path to config file")
	model := flag.String("model", "", "Gemini model id (overrides config)")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if !*verbose {
		logger = logger.Level(zerolog.WarnLevel)
	}

	_ = godotenv.Load()
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not load configuration")
	}
	if *dir != "" {
		cfg.TargetDir = *dir
	}
	if *model != "" {
		cfg.Model = *model
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		logger.Fatal().Msg("GEMINI_API_KEY is not set; add it to your environment or .env file")
	}

	ctx := context.Background()
	oracle, err := advisor.NewGeminiOracle(ctx, apiKey, cfg.Model)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not create advisory client")
	}
	defer oracle.Close()

	fs, err := safeio.NewSafeFS(cfg.TargetDir)
	if err != nil {
		logger.Fatal().Err(err).Str("dir", cfg.TargetDir).Msg("target directory unavailable")
	}

	store := suppress.NewStore(cfg.SuppressionPath, logger)
	prompt := ui.NewTerm()

	for {
		sessionLog := logger.With().Str("session_id", uuid.NewString()).Logger()
		sess := &cleaner.Session{
			FS:    fs,
			Store: store,
			Advisor: &advisor.Client{
				Oracle:         oracle,
				KeepRecentDays: cfg.KeepRecentDays,
				Log:            sessionLog,
			},
			Prompt:       prompt,
			Log:          sessionLog,
			ArtifactName: cfg.ArtifactName,
		}

		if err := sess.Run(ctx); err != nil {
			sessionLog.Error().Err(err).Msg("session failed")
			fmt.Fprintln(os.Stderr, "Session failed:", err)
			var malformed *advisor.MalformedResponseError
			if errors.As(err, &malformed) && len(malformed.Raw) > 0 {
				fmt.Fprintln(os.Stderr, "Raw advisory payload for inspection:")
				fmt.Fprintln(os.Stderr, string(malformed.Raw))
			}
		}

		choice, err := prompt.Choose("What would you like to do?", []string{"Run cleanup again", "Exit"})
		if err != nil || choice != 0 {
			fmt.Println("Goodbye!")
			return
		}
		fmt.Println()
	}
}
