package cmd

import (
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"

	"thoreinstein.com/shadow/pkg/ai"
	"thoreinstein.com/shadow/pkg/board"
	"thoreinstein.com/shadow/pkg/config"
	"thoreinstein.com/shadow/pkg/demo"
	"thoreinstein.com/shadow/pkg/meetings"
	"thoreinstein.com/shadow/pkg/session"
	"thoreinstein.com/shadow/pkg/synthesis"
)

// openStore opens the session database configured in storage.database_path.
func openStore(cfg *config.Config) (*session.Store, error) {
	store, err := session.NewStore(cfg.Storage.DatabasePath, cfg.Storage.MaxSessions)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open session store")
	}
	return store, nil
}

// synthesisClient builds the AI-backed synthesis client for the configured
// provider.
func synthesisClient(cfg *config.Config) (*synthesis.Client, error) {
	provider, err := ai.NewProvider(&cfg.AI, verbose)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize AI provider")
	}
	return synthesis.NewClient(provider), nil
}

// meetingsClient builds the client for the external meeting log service.
func meetingsClient(cfg *config.Config) *meetings.Client {
	var logger *slog.Logger
	if verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return meetings.NewClient(cfg.Meetings.BaseURL, cfg.Meetings.Token, logger)
}

// teamFromConfig maps the config team profile onto the domain type.
func teamFromConfig(tc *config.TeamConfig) board.TeamConfig {
	return board.TeamConfig{
		Name:               tc.Name,
		ProductDescription: tc.ProductDescription,
		Members:            tc.Members,
		GithubConnected:    tc.GithubConnected,
		JiraConnected:      tc.JiraConnected,
		SlackConnected:     tc.SlackConnected,
	}
}

// demoDataset resolves the configured demo dataset, falling back to the
// default when the id is unknown.
func demoDataset(cfg *config.Config) demo.Dataset {
	return demo.ByID(cfg.Demo.Dataset)
}
