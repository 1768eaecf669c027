// Command bot runs the WhoCall Telegram bot and offers an offline lookup.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"whocall-bot/api/internal/config"
	"whocall-bot/api/internal/logger"
)

func main() {
	log, err := bootLogger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "could not build logger:", err)
		os.Exit(1)
	}

	ctx := context.Background()
	defer func() {
		if p := recover(); p != nil {
			log.Error("captured panic, exiting...", zap.Any("panic", p))
			_ = log.Sync()

			panic(p)
		}
	}()

	err = rootCommand().ExecuteContext(ctx)
	if err != nil {
		log.Error("command failed", zap.Error(err))
	}
	_ = log.Sync()
	if err != nil {
		os.Exit(1) //nolint: gocritic
	}
}

// bootLogger builds the process logger. .env is read first so ENVIRONMENT
// set only there applies to startup errors too.
func bootLogger() (*zap.Logger, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	return logger.New(os.Getenv("ENVIRONMENT"))
}

func rootCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "whocall",
		Short:         "Telegram bot that looks up phone numbers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "optional YAML config file")

	cmd.AddCommand(
		serveCommand(&configPath),
		lookupCommand(),
	)
	return cmd
}
