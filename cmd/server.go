/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/usersdb/usersdb/internal/handlers"
	"github.com/usersdb/usersdb/internal/server"
	"github.com/usersdb/usersdb/internal/storage"
)

var shutdownTimeout time.Duration

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Starts the usersdb HTTP server",
	Long: `Starts the usersdb HTTP server. Usage:

	usersdb server
`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		state := mustState(ctx)
		defer closeState(state)

		var exporter handlers.Exporter
		exports, err := state.Exports(ctx)
		switch {
		case errors.Is(err, storage.ErrDisabled):
		case err != nil:
			state.Log.Fatal().Err(err).Msg("failed to connect object storage")
		default:
			exporter = exports
		}

		srv := server.New(state.Config, state.Log, state.Users(), exporter)
		if err := srv.Run(ctx, shutdownTimeout); err != nil {
			state.Log.Error().Err(err).Msg("server error")
		}
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 10*time.Second, "time allowed for in-flight requests on shutdown")
}
