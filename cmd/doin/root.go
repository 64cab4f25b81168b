package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"doin/internal/config"
	"doin/internal/logging"
	"doin/internal/storage"
	"doin/internal/ui"
)

var version = "0.1.0"

type options struct {
	configPath string
	logFile    string
	verbose    int
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "doin <path>",
		Short: "Slow task management in the terminal",
		Long: `doin opens a task file in a full-screen terminal view. Tasks are listed on
the left with the selected task's description on the right; add, edit and
delete write the list straight back to the file.

Files ending in .db, .sqlite or .sqlite3 are SQLite databases; anything else
is a JSON array of {"id", "title", "content"} objects.`,
		Example: strings.TrimSpace(`
  doin tasks.json
  doin -v --log-file /tmp/doin.log tasks.db
  doin list tasks.json
`),
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(opts, args[0])
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default $DOIN_CONFIG or the user config dir)")
	cmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "write logs to this file")
	cmd.PersistentFlags().CountVarP(&opts.verbose, "verbose", "v", "more log output (repeatable)")

	cmd.AddCommand(newListCmd())
	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <path>",
		Short: "Print the task list without starting the interface",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := storage.Open(args[0])
			if err != nil {
				return err
			}
			defer store.Close()

			tasks, err := store.Load()
			if err != nil {
				return err
			}
			return printTasks(cmd.OutOrStdout(), tasks)
		},
	}
}

func loadConfig(opts *options) (config.Config, error) {
	path := opts.configPath
	if path == "" {
		path = config.ResolveConfigPath()
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}
	if opts.logFile != "" {
		cfg.LogFile = opts.logFile
	}
	return cfg, nil
}

func runTUI(opts *options, path string) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(cfg.LogFile, cfg.LogLevel, opts.verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	defer closeLog()

	store, err := storage.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	logger.Info("starting", "version", version, "path", path, "backend", storage.Backend(store))
	return ui.Run(store, cfg, logger)
}

var boxStyle = lipgloss.NewStyle().
	Border(lipgloss.NormalBorder()).
	Padding(0, 1)

func printTasks(w io.Writer, tasks []storage.Task) error {
	lines := []string{"TASKS"}
	for _, t := range tasks {
		lines = append(lines, fmt.Sprintf("[%d]. %s", t.ID, t.Title))
	}
	if len(tasks) == 0 {
		lines = append(lines, "(no tasks)")
	}
	_, err := fmt.Fprintln(w, boxStyle.Render(strings.Join(lines, "\n")))
	return err
}
