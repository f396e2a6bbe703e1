package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/inverted-search/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/inverted-search/internal/indexer/store"
	"github.com/Adithya-Monish-Kumar-K/inverted-search/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/inverted-search/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/inverted-search/pkg/metrics"
)

// app carries state shared by every subcommand of one invocation.
type app struct {
	configPath string
	logLevel   string
	logFormat  string
	backupDir  string

	cfg      *config.Config
	registry *prometheus.Registry
	metrics  *metrics.Metrics
}

// NewRootCmd creates the root command for the invsearch CLI.
func NewRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "invsearch",
		Short: "Build, save, reload and query an inverted index of text files",
		Long: `invsearch records, for every distinct word in a set of .txt files,
which files contain it and how many times.

The index is built once from the file list or reloaded once from a backup,
then displayed, searched and saved any number of times.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to YAML config file")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "Log format: text, json")
	cmd.PersistentFlags().StringVar(&a.backupDir, "backup-dir", "", "Directory holding backup.txt for the file backend")

	cmd.AddCommand(newShellCmd(a))
	cmd.AddCommand(newBuildCmd(a))
	cmd.AddCommand(newSearchCmd(a))
	cmd.AddCommand(newDisplayCmd(a))

	return cmd
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Logging.Format = a.logFormat
	}
	if a.backupDir != "" {
		cfg.Backup.Dir = a.backupDir
	}
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())

	a.cfg = cfg
	a.registry = prometheus.NewRegistry()
	a.metrics = metrics.New(a.registry)
	return nil
}

// newEngine opens the configured backup store and an empty engine over it.
// The returned close func releases the store.
func (a *app) newEngine() (*indexer.Engine, func(), error) {
	st, err := store.Open(a.cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("opening backup store: %w", err)
	}
	return indexer.NewEngine(a.cfg, st, a.metrics), func() { st.Close() }, nil
}
