package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"timelog/internal/bootstrap"
	sessiondto "timelog/internal/modules/session/dto"
	"timelog/internal/platform/config"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootFlags struct {
	dataDir  string
	logLevel string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "timelog",
		Short:         "Track named work sessions in a local SQLite database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.dataDir, "data", defaultDataDir(), "data directory")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level override: trace|debug|info|warn|error")

	root.AddCommand(newInitCmd(flags))
	root.AddCommand(newBeginCmd(flags))
	root.AddCommand(newEndCmd(flags))
	root.AddCommand(newStatusCmd(flags))
	root.AddCommand(newCancelCmd(flags))
	root.AddCommand(newWatchCmd(flags))
	return root
}

func defaultDataDir() string {
	if dir := os.Getenv("TIMELOG_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

func loadApp(cmd *cobra.Command, flags *rootFlags) (*bootstrap.App, error) {
	return loadAppWithLog(flags, cmd.ErrOrStderr())
}

func loadAppWithLog(flags *rootFlags, logOut io.Writer) (*bootstrap.App, error) {
	cfg, err := config.New(flags.dataDir)
	if err != nil {
		return nil, err
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	return bootstrap.New(cfg, logOut)
}

func newInitCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the sessions table if it does not exist",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, flags)
			if err != nil {
				return err
			}
			if err := app.SessionCLI.Init(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "sessions table ready")
			return nil
		},
	}
}

func newBeginCmd(flags *rootFlags) *cobra.Command {
	var title, description string
	begin := &cobra.Command{
		Use:   "begin --title <title>",
		Short: "Begin a session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(title) == "" {
				return fmt.Errorf("--title is required")
			}
			app, err := loadApp(cmd, flags)
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.Begin(context.Background(), title, description)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session begun: %s title=%q at=%s\n", out.SessionID, out.Title, out.StartedAt.Format(timeLayout))
			return nil
		},
	}
	begin.Flags().StringVar(&title, "title", "", "session title")
	begin.Flags().StringVar(&description, "description", "", "session description")
	return begin
}

func newEndCmd(flags *rootFlags) *cobra.Command {
	var sessionID string
	end := &cobra.Command{
		Use:   "end",
		Short: "End the active session and record it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, flags)
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.End(context.Background(), sessionID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session ended: %s row=%d title=%q start=%s end=%s duration=%s\n",
				out.SessionID, out.RecordID, out.Title, out.StartedAt.Format(timeLayout), out.EndedAt.Format(timeLayout), out.Duration)
			if out.NotePath != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "note=%s\n", out.NotePath)
			}
			if out.NoteError != "" {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: journal note not written: %s\n", out.NoteError)
			}
			return nil
		},
	}
	end.Flags().StringVar(&sessionID, "session-id", "", "optional session id (defaults to active session)")
	return end
}

func newStatusCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the active session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, flags)
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.Status(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "id: %s\n%s", out.SessionID, out.Summary)
			return nil
		},
	}
}

func newCancelCmd(flags *rootFlags) *cobra.Command {
	var record bool
	cancel := &cobra.Command{
		Use:   "cancel",
		Short: "Discard the active session without recording it",
		Long:  "Discard the active session. With --record the unfinished session is stored first with no start or end; this needs allow_incomplete in the config.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, flags)
			if err != nil {
				return err
			}
			if !record {
				if err := app.SessionCLI.Cancel(context.Background()); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "session discarded")
				return nil
			}
			out, err := app.SessionCLI.CancelAndRecord(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session discarded: %s row=%d title=%q (no time range)\n", out.SessionID, out.RecordID, out.Title)
			return nil
		},
	}
	cancel.Flags().BoolVar(&record, "record", false, "store the unfinished session with an empty time range")
	return cancel
}

func newWatchCmd(flags *rootFlags) *cobra.Command {
	var title, description string
	watch := &cobra.Command{
		Use:   "watch",
		Short: "Run the live stopwatch UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// log lines would corrupt the alternate screen
			app, err := loadAppWithLog(flags, io.Discard)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(app, sessiondto.BeginInput{Title: title, Description: description})
		},
	}
	watch.Flags().StringVar(&title, "title", "", "begin a session with this title on start")
	watch.Flags().StringVar(&description, "description", "", "session description")
	return watch
}
