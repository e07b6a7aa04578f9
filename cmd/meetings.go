package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"thoreinstein.com/shadow/pkg/config"
)

// meetingsCmd fetches and prints the recorded meeting logs
var meetingsCmd = &cobra.Command{
	Use:   "meetings",
	Short: "List recorded meeting logs from the meeting service",
	Long: `Fetch the recorded meeting logs from the configured meeting log service
and print them.

The service URL and bearer token come from the meetings section of the config
file, or from the SHADOW_MEETINGS_TOKEN environment variable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMeetingsCommand()
	},
}

var meetingsFull bool

func init() {
	rootCmd.AddCommand(meetingsCmd)

	meetingsCmd.Flags().BoolVar(&meetingsFull, "full", false, "Print the full notes of each meeting")
}

func runMeetingsCommand() error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}
	if !cfg.Meetings.Enabled {
		return errors.New("meeting log fetching is disabled (meetings.enabled = false)")
	}

	logs, err := meetingsClient(cfg).Fetch(context.Background())
	if err != nil {
		return errors.Wrap(err, "failed to fetch meeting logs")
	}
	if len(logs) == 0 {
		fmt.Println("No meeting logs found.")
		return nil
	}

	for _, log := range logs {
		title := log.Title
		if title == "" {
			title = "Meeting Log"
		}
		fmt.Printf("%s  %s\n", title, log.CalendarEventTime)
		if log.CreatorName != "" {
			fmt.Printf("    %s <%s>\n", log.CreatorName, log.CreatorEmail)
		}

		notes := log.Notes()
		if notes == "" {
			continue
		}
		if meetingsFull {
			for _, line := range strings.Split(notes, "\n") {
				fmt.Printf("    %s\n", line)
			}
		} else {
			preview := firstNotesLine(notes)
			if len(preview) > 100 {
				preview = preview[:97] + "..."
			}
			fmt.Printf("    %s\n", preview)
		}
	}
	return nil
}

func firstNotesLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
