package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"hotelbot/internal/adapters/observability"
	"hotelbot/internal/shared"
)

var (
	// Global flags
	envFile  string
	logLevel string

	cfg shared.Config
)

var rootCmd = &cobra.Command{
	Use:   "hotelbot",
	Short: "HotelBot - chat with the hotel database",
	Long: `HotelBot answers questions about hotels, rooms, prices and bookings
stored in MySQL, using Gemini function calling for the lookups.

Run without arguments to start the interactive chat.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		shared.LoadDotEnv(envFile)
		cfg = shared.Load()
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return chatCmd.RunE(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load (overrides the environment)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (default from LOG_LEVEL)")

	rootCmd.Flags().BoolVar(&plain, "plain", false, "print replies without markdown rendering")
	rootCmd.AddCommand(chatCmd, askCmd, migrateCmd, seedCmd, viewCmd, checkCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
