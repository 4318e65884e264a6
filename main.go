package main

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"github.com/kova98/rivalwatch/config"
)

//go:embed data/migrations/*.sql
var embedMigrations embed.FS

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rivalwatch",
		Short: "Competitor website monitoring",
		Long: `rivalwatch scrapes competitor websites on a schedule, classifies and scores
what it finds, notifies users about high-impact updates and aggregates
recent updates into trends.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadConfig()

			opts := slog.HandlerOptions{Level: config.Config.LogLevel}
			logger := slog.New(slog.NewJSONHandler(os.Stdout, &opts))
			slog.SetDefault(logger)
		},
	}

	cmd.AddCommand(
		serveCmd(),
		monitorCmd(),
		trendsCmd(),
		statsCmd(),
		migrateCmd(),
		competitorCmd(),
		userCmd(),
		notificationsCmd(),
	)

	return cmd
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
