package cmd

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"thoreinstein.com/shadow/pkg/app"
	"thoreinstein.com/shadow/pkg/bootstrap"
	"thoreinstein.com/shadow/pkg/config"
	"thoreinstein.com/shadow/pkg/tui"
)

var cfgFile string
var verbose bool
var appConfig *config.Config

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "shadow",
	Short: "ShadowPM - the agentic product manager",
	Long: `ShadowPM turns raw meeting notes into structured outcomes and sync-ready
tickets, reconciled against your backlog and recent commits.

Run it without arguments to open the interactive board. Subcommands cover
one-shot analysis, session history, and the meeting log service.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Pre-parse global flags so config is available before cobra runs.
	cfgFile, verbose = bootstrap.PreParseGlobalFlags(os.Args)

	if err := initConfig(); err != nil {
		cobra.CheckErr(err)
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() {
		_ = initConfig()
	})

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "C", "", "config file (default is $HOME/.config/shadow/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	var err error
	appConfig, verbose, err = bootstrap.InitConfig(cfgFile, verbose)
	return err
}

// resetConfig clears the cached configuration.
// This is primarily used in tests to ensure each test starts with a fresh config.
func resetConfig() {
	appConfig = nil
	bootstrap.Reset()
	viper.Reset()
}

func runTUI() error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ctrl, err := app.NewController(store, teamFromConfig(&cfg.Team))
	if err != nil {
		return errors.Wrap(err, "failed to load session history")
	}

	dataset := demoDataset(cfg)
	// A team configured in the file skips onboarding, so give it the demo
	// context it would otherwise pick up there.
	if ctrl.View() != app.ViewOnboarding && cfg.Demo.Enabled && len(ctrl.Backlog()) == 0 {
		ctrl.SetContext(dataset.Backlog, dataset.Commits)
	}

	synth, err := synthesisClient(cfg)
	if err != nil {
		return err
	}

	program := tea.NewProgram(
		tui.NewApp(ctrl, synth, meetingsClient(cfg), dataset),
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil {
		return errors.Wrap(err, "failed to run interface")
	}
	return nil
}
