package cmd

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"thoreinstein.com/shadow/pkg/board"
	"thoreinstein.com/shadow/pkg/config"
	"thoreinstein.com/shadow/pkg/session"
)

// sessionsCmd represents the sessions command
var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Inspect and manage the analysis session history",
	Long: `Inspect and manage the recorded analysis sessions.

Every analysis run is recorded with its notes and synthesized results. These
subcommands list the history, show a single session, and reset the store.`,
}

// sessionsListCmd lists recorded sessions, newest first
var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSessionsListCommand()
	},
}

// sessionsShowCmd prints one session in full
var sessionsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a recorded session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSessionsShowCommand(args[0])
	},
}

// sessionsResetCmd clears the session history
var sessionsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all recorded sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSessionsResetCommand()
	},
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsShowCmd)
	sessionsCmd.AddCommand(sessionsResetCmd)
}

func withStore(fn func(*session.Store) error) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	return fn(store)
}

func runSessionsListCommand() error {
	return withStore(func(store *session.Store) error {
		sessions, err := store.Load()
		if err != nil {
			return errors.Wrap(err, "failed to load sessions")
		}
		if len(sessions) == 0 {
			fmt.Println("No sessions recorded.")
			return nil
		}

		for _, sess := range sessions {
			pending := 0
			for _, t := range sess.Analysis.SuggestedTickets {
				if t.Status == board.StatusSuggested {
					pending++
				}
			}
			fmt.Printf("%s  %s\n", sess.ID, sess.Date)
			fmt.Printf("    %d outcomes, %d tickets (%d pending)\n",
				len(sess.Analysis.Outcomes), len(sess.Analysis.SuggestedTickets), pending)
		}
		return nil
	})
}

func runSessionsShowCommand(id string) error {
	return withStore(func(store *session.Store) error {
		sess, err := store.Get(id)
		if err != nil {
			return err
		}

		fmt.Printf("Session %s (%s)\n\n", sess.ID, sess.Date)
		fmt.Println("Notes:")
		for _, line := range strings.Split(sess.Notes, "\n") {
			fmt.Printf("  %s\n", line)
		}
		fmt.Println()
		printAnalysis(&sess.Analysis)
		return nil
	})
}

func runSessionsResetCommand() error {
	return withStore(func(store *session.Store) error {
		if err := store.Reset(); err != nil {
			return errors.Wrap(err, "failed to reset session history")
		}
		fmt.Println("Session history cleared.")
		return nil
	})
}
