/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/usersdb/usersdb/internal/app"
	"github.com/usersdb/usersdb/types"
)

var (
	userName  string
	userEmail string
	userState string
)

// usersCmd groups the per-operation user commands.
var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Insert, update, delete and read users",
}

var usersInsertCmd = &cobra.Command{
	Use:   "insert",
	Short: "Insert a user and print the number of rows written",
	RunE: withState(func(ctx context.Context, state *app.State, out io.Writer, _ []string) error {
		user, err := insertFromFlags()
		if err != nil {
			return err
		}
		n, err := state.Users().InsertUser(ctx, user)
		if err != nil {
			return err
		}
		return printJSON(out, map[string]int64{"inserted": n})
	}),
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Insert a user and print its id",
	RunE: withState(func(ctx context.Context, state *app.State, out io.Writer, _ []string) error {
		user, err := insertFromFlags()
		if err != nil {
			return err
		}
		id, err := state.Users().CreateUser(ctx, user)
		if err != nil {
			return err
		}
		return printJSON(out, map[string]int64{"id": id})
	}),
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Replace a user's name and email",
	Args:  cobra.ExactArgs(1),
	RunE: withState(func(ctx context.Context, state *app.State, out io.Writer, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		updated, err := state.Users().UpdateUser(ctx, types.UpdateUser{ID: id, Name: userName, Email: userEmail})
		if err != nil {
			return err
		}
		return printJSON(out, map[string]bool{"updated": updated})
	}),
}

var usersActivateCmd = &cobra.Command{
	Use:   "activate <id>",
	Short: "Mark a user active",
	Args:  cobra.ExactArgs(1),
	RunE: withState(func(ctx context.Context, state *app.State, out io.Writer, args []string) error {
		return setState(ctx, out, args[0], state.Users().SetUserActive)
	}),
}

var usersDisableCmd = &cobra.Command{
	Use:   "disable <id>",
	Short: "Mark a user disabled",
	Args:  cobra.ExactArgs(1),
	RunE: withState(func(ctx context.Context, state *app.State, out io.Writer, args []string) error {
		return setState(ctx, out, args[0], state.Users().SetUserDisabled)
	}),
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	RunE: withState(func(ctx context.Context, state *app.State, out io.Writer, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		n, err := state.Users().DeleteUser(ctx, types.DeleteUser{ID: id})
		if err != nil {
			return err
		}
		return printJSON(out, map[string]int64{"deleted": n})
	}),
}

var usersGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Print one user",
	Args:  cobra.ExactArgs(1),
	RunE: withState(func(ctx context.Context, state *app.State, out io.Writer, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		user, err := state.Users().GetUser(ctx, id)
		if err != nil {
			return err
		}
		return printJSON(out, user)
	}),
}

var usersActiveCmd = &cobra.Command{
	Use:   "active",
	Short: "Print every active user",
	RunE: withState(func(ctx context.Context, state *app.State, out io.Writer, _ []string) error {
		users, err := state.Users().GetActiveUsers(ctx)
		if err != nil {
			return err
		}
		return printJSON(out, users)
	}),
}

var usersWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print user events as they are published",
	RunE: withState(func(ctx context.Context, state *app.State, out io.Writer, _ []string) error {
		if state.Events == nil {
			return errors.New("no message broker configured; set MQ_BACKEND")
		}
		ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		state.Log.Info().Str("channel", state.Config.MQ.Channel).Msg("watching user events")
		return state.Events.Watch(ctx, func(_ context.Context, event types.UserEvent) error {
			return printJSON(out, event)
		})
	}),
}

var usersExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every active user to the object store as JSON",
	RunE: withState(func(ctx context.Context, state *app.State, out io.Writer, _ []string) error {
		exports, err := state.Exports(ctx)
		if err != nil {
			return err
		}
		result, err := exports.ExportActiveUsers(ctx)
		if err != nil {
			return err
		}
		return printJSON(out, result)
	}),
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(
		usersInsertCmd,
		usersCreateCmd,
		usersUpdateCmd,
		usersActivateCmd,
		usersDisableCmd,
		usersDeleteCmd,
		usersGetCmd,
		usersActiveCmd,
		usersWatchCmd,
		usersExportCmd,
	)

	for _, c := range []*cobra.Command{usersInsertCmd, usersCreateCmd, usersUpdateCmd} {
		c.Flags().StringVar(&userName, "name", "", "user name")
		c.Flags().StringVar(&userEmail, "email", "", "user email")
		_ = c.MarkFlagRequired("name")
		_ = c.MarkFlagRequired("email")
	}
	for _, c := range []*cobra.Command{usersInsertCmd, usersCreateCmd} {
		c.Flags().StringVar(&userState, "state", "active", "initial state: active or disabled")
	}
}

// withState opens the shared state for the duration of one command.
func withState(run func(ctx context.Context, state *app.State, out io.Writer, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		state := mustState(cmd.Context())
		defer closeState(state)
		cmd.SilenceUsage = true
		return run(cmd.Context(), state, cmd.OutOrStdout(), args)
	}
}

func insertFromFlags() (types.InsertUser, error) {
	state, err := types.ParseUserState(userState)
	if err != nil {
		return types.InsertUser{}, err
	}
	return types.InsertUser{Name: userName, Email: userEmail, State: state}, nil
}

func setState(ctx context.Context, out io.Writer, raw string, set func(context.Context, int64) (bool, error)) error {
	id, err := parseID(raw)
	if err != nil {
		return err
	}
	updated, err := set(ctx, id)
	if err != nil {
		return err
	}
	return printJSON(out, map[string]bool{"updated": updated})
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid user id %q", raw)
	}
	return id, nil
}

func printJSON(out io.Writer, value any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
