package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/taskrank-api/internal/config"
	"github.com/phrazzld/taskrank-api/internal/domain"
	"github.com/phrazzld/taskrank-api/internal/domain/priority"
	"github.com/phrazzld/taskrank-api/internal/platform/logger"
	"github.com/phrazzld/taskrank-api/internal/platform/memory"
	"github.com/phrazzld/taskrank-api/internal/service"
	"github.com/spf13/cobra"
)

// ErrCyclesFound is returned by the cycles command when the task file has
// circular dependencies, so the process exits non-zero.
var ErrCyclesFound = errors.New("circular dependencies found")

var appVersion = "dev"

// SetVersion sets the version reported by the version command.
func SetVersion(version string) {
	appVersion = version
}

// NewRootCmd builds the taskrank command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "taskrank",
		Short: "Rank tasks by urgency, importance, effort and dependencies",
		Long: `taskrank scores a list of tasks and orders them by priority.

Tasks are read from a YAML or JSON file holding a list of records with
id, title, due_date (YYYY-MM-DD), estimated_hours, importance (1-10) and
dependencies. Scoring settings come from the same TASKRANK_* environment
variables and config file as the API server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolP("verbose", "v", false, "log at the configured level instead of warnings only")
	root.AddCommand(newAnalyzeCmd(), newCyclesCmd(), newStrategiesCmd(), newVersionCmd())
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// loadConfig reads configuration and routes logs to stderr. Without
// --verbose only warnings and errors are logged.
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading configuration: %w", err)
	}

	logCfg := cfg.Server
	if verbose, _ := cmd.Flags().GetBool("verbose"); !verbose {
		logCfg.LogLevel = "warn"
	}
	log, err := logger.SetupWithWriter(logCfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, fmt.Errorf("setting up logger: %w", err)
	}
	return cfg, log, nil
}

func newAnalyzeCmd() *cobra.Command {
	var (
		file     string
		strategy string
		today    string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Score and rank the tasks in a file",
		Example: `  taskrank analyze --file tasks.yaml
  taskrank analyze --file tasks.json --strategy deadline_driven --today 2025-03-10
  cat tasks.yaml | taskrank analyze --file - --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != outputTable && output != outputJSON {
				return fmt.Errorf("unsupported output format %q (use %s or %s)", output, outputTable, outputJSON)
			}

			cfg, log, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			engineOpts := []priority.Option{priority.WithWorkers(cfg.Scoring.Workers)}
			if today != "" {
				day, err := domain.ParseDate(today)
				if err != nil {
					return fmt.Errorf("invalid --today %q: %w", today, domain.ErrDueDateFormat)
				}
				engineOpts = append(engineOpts, priority.WithClock(func() time.Time { return day }))
			}

			tasks, err := loadTasks(file, cmd.InOrStdin())
			if err != nil {
				return err
			}

			analysis, err := service.NewAnalysisService(
				priority.NewEngine(engineOpts...),
				memory.NewTaskStore(log),
				cfg.Scoring,
				log,
			)
			if err != nil {
				return err
			}

			result, err := analysis.Analyze(cmd.Context(), tasks, strategy)
			if err != nil {
				var cycleErr *priority.CycleError
				if errors.As(err, &cycleErr) {
					_ = writeCycles(cmd.ErrOrStderr(), cycleErr.Cycles)
				}
				return err
			}

			if output == outputJSON {
				return writeAnalysisJSON(cmd.OutOrStdout(), result)
			}
			return writeAnalysisTable(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "task file (YAML or JSON, - for stdin)")
	cmd.Flags().StringVarP(&strategy, "strategy", "s", "", "scoring strategy (default from configuration)")
	cmd.Flags().StringVar(&today, "today", "", "reference date as YYYY-MM-DD (default: current date)")
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format: table or json")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newCyclesCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "cycles",
		Short: "Report circular dependencies in a task file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := loadTasks(file, cmd.InOrStdin())
			if err != nil {
				return err
			}

			domain.AssignFallbackIDs(tasks)
			cycles := priority.DetectCycles(tasks)
			if err := writeCycles(cmd.OutOrStdout(), cycles); err != nil {
				return err
			}
			if len(cycles) > 0 {
				return fmt.Errorf("%w: %d cycle(s)", ErrCyclesFound, len(cycles))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "task file (YAML or JSON, - for stdin)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newStrategiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List strategy profiles and their weights",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return writeStrategies(cmd.OutOrStdout(), cfg.Scoring.DefaultStrategy)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "taskrank %s\n", appVersion)
		},
	}
}
