package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"thoreinstein.com/shadow/pkg/board"
	"thoreinstein.com/shadow/pkg/config"
	"thoreinstein.com/shadow/pkg/session"
	"thoreinstein.com/shadow/pkg/synthesis"
)

// analyzeCmd runs a one-shot analysis without the interactive board
var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyze meeting notes from a file or stdin",
	Long: `Run a single analysis pass over meeting notes and print the synthesized
outcomes and suggested tickets.

Notes are read from the given file, or from stdin when no file is provided.
The team profile and backlog context come from the config file; with demo
mode enabled the bundled demo dataset fills in missing context.

Examples:
  shadow analyze notes.txt
  pbpaste | shadow analyze
  shadow analyze notes.txt --json
  shadow analyze notes.txt --save`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		return runAnalyzeCommand(path)
	},
}

var (
	analyzeJSON bool
	analyzeSave bool
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the analysis as JSON")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "Record the analysis in the session history")
}

func runAnalyzeCommand(path string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	notes, err := readNotes(path)
	if err != nil {
		return err
	}

	synth, err := synthesisClient(cfg)
	if err != nil {
		return err
	}

	bundle := analysisBundle(cfg, notes)
	analysis, err := synth.Analyze(context.Background(), bundle)
	if err != nil {
		return errors.Wrap(err, "analysis failed")
	}

	if analyzeSave {
		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		sess := session.New(notes, *analysis)
		if err := store.Append(sess); err != nil {
			return errors.Wrap(err, "failed to record session")
		}
		fmt.Printf("Recorded session %s\n\n", sess.ID)
	}

	if analyzeJSON {
		out, err := json.MarshalIndent(analysis, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to encode analysis")
		}
		fmt.Println(string(out))
		return nil
	}

	printAnalysis(analysis)
	return nil
}

// readNotes reads the meeting notes from the given file, or stdin when the
// path is empty.
func readNotes(path string) (string, error) {
	var data []byte
	var err error

	if path == "" || path == "-" {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return "", errors.Wrap(err, "failed to read notes from stdin")
		}
	} else {
		data, err = os.ReadFile(path)
		if err != nil {
			return "", errors.Wrapf(err, "failed to read notes from %s", path)
		}
	}

	notes := strings.TrimSpace(string(data))
	if notes == "" {
		return "", errors.New("no meeting notes provided")
	}
	return notes, nil
}

// analysisBundle assembles the synthesis context from config, filling in the
// demo dataset where the config is silent.
func analysisBundle(cfg *config.Config, notes string) *synthesis.ContextBundle {
	bundle := &synthesis.ContextBundle{
		Team:  teamFromConfig(&cfg.Team),
		Notes: notes,
	}

	if cfg.Demo.Enabled {
		dataset := demoDataset(cfg)
		if bundle.Team.IsZero() {
			bundle.Team = dataset.Team
		}
		bundle.Backlog = dataset.Backlog
		bundle.Commits = dataset.Commits
	}
	return bundle
}

func printAnalysis(analysis *board.Analysis) {
	fmt.Printf("Outcomes (%d)\n", len(analysis.Outcomes))
	for _, o := range analysis.Outcomes {
		fmt.Printf("  [%s] %s\n", o.Type, o.Content)
		if o.Context != "" {
			fmt.Printf("         %s\n", o.Context)
		}
	}

	fmt.Printf("\nSuggested tickets (%d)\n", len(analysis.SuggestedTickets))
	for _, t := range analysis.SuggestedTickets {
		fmt.Printf("  [%s/%s] %s\n", t.Priority, t.Type, t.Title)
		if t.Description != "" {
			fmt.Printf("    %s\n", t.Description)
		}
		for _, ac := range t.AcceptanceCriteria {
			fmt.Printf("    - %s\n", ac)
		}
		if t.Source != "" {
			fmt.Printf("    source: %s\n", t.Source)
		}
	}
}
