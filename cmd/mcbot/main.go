package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/EgorLis/mcbot/internal/bot"
	"github.com/EgorLis/mcbot/internal/config"
	"github.com/EgorLis/mcbot/internal/logging"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "mcbot",
	Short: "Minecraft chat bot: follow, goto, eat, equip and a toy shop over chat commands",
	Long: `mcbot connects to a Minecraft server through the game bridge, keeps the
session alive (anti-AFK, reconnect) and answers "!" chat commands.

Configuration comes from the environment (MC_HOST, MC_PORT, MC_USER, MC_PASS,
MC_VERSION, MC_OWNER, AFK_INTERVAL, MC_RECONNECT_DELAY, MC_BRIDGE_URL,
MC_LOG_FILE, MC_LOG_LEVEL) and an optional .env file.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b := bot.New(cfg, log)
	log.Info("running… press Ctrl+C to stop", zap.String("bridge", cfg.BridgeURL))
	return b.Run(ctx)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
