/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/usersdb/usersdb/config"
	"github.com/usersdb/usersdb/internal/app"
	"github.com/usersdb/usersdb/internal/logger"
	"github.com/usersdb/usersdb/types"
)

// demoUser is what the root command inserts.
var demoUser = types.InsertUser{
	Name:  "Ali",
	Email: "ali@veli",
	State: types.UserStateActive,
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "usersdb",
	Short: "CRUD operations on the users table",
	Long: `usersdb inserts, updates, deletes and reads rows of a Postgres users table.

Run without a subcommand it inserts a sample user and prints the result:

	usersdb
`,
	Run: func(cmd *cobra.Command, args []string) {
		state := mustState(cmd.Context())
		defer closeState(state)

		printInsertResult(cmd.Context(), cmd.OutOrStdout(), state.Users(), demoUser)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

type userInserter interface {
	InsertUser(ctx context.Context, user types.InsertUser) (int64, error)
}

func printInsertResult(ctx context.Context, out io.Writer, users userInserter, user types.InsertUser) {
	n, err := users.InsertUser(ctx, user)
	if err != nil {
		fmt.Fprintf(out, "insert_result: error: %v\n", err)
		return
	}
	fmt.Fprintf(out, "insert_result: %d\n", n)
}

// loadConfig reads and validates configuration. Invalid configuration is fatal.
func loadConfig() (config.Config, zerolog.Logger) {
	cfg := config.LoadConfig()
	log := logger.New(cfg)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	return cfg, log
}

// mustState builds the shared application state or exits.
func mustState(ctx context.Context) *app.State {
	cfg, log := loadConfig()
	state, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize")
	}
	return state
}

func closeState(state *app.State) {
	if err := state.Close(); err != nil {
		state.Log.Warn().Err(err).Msg("failed to close resources")
	}
}
