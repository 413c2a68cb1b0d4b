package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fleet-workhours/internal/config"
	"fleet-workhours/internal/logging"

	"github.com/spf13/cobra"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	config  *config.Config
	factory APIFactory
	app     *App
	out     io.Writer
}

// NewRootCommand creates the root cobra command with global flags. factory
// opens the store for commands that need one.
func NewRootCommand(cfg *config.Config, factory APIFactory) *RootCommand {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	root := &RootCommand{
		config:  cfg,
		factory: factory,
		out:     os.Stdout,
	}

	root.cmd = &cobra.Command{
		Use:   "wh",
		Short: "Working-hours arithmetic for a vehicle workshop",
		Long: `wh (workshop hours) computes working time inside a daily working window
(07:30-16:30 by default) and tracks work orders against their estimates.

FEATURES:
  • Working hours elapsed between two timestamps
  • Completion time of a job from its start and estimated hours
  • Work orders with ETA, pauses measured in working time and progress
  • Scheduling conflict detection against open work orders
  • Reports as a table, CSV or XLSX, and a JSON HTTP API

EXAMPLES:
  wh elapsed "2025-11-07 09:00" "2025-11-07 12:00"   # 3h 0m
  wh eta "2025-11-10 15:00" 3                          # 2025-11-11 09:00
  wh create "AB 123" 4.5 --desc "clutch"               # Open a work order
  wh pause start 1 --reason "waiting for parts"        # Pause it
  wh pause stop 1                                      # Resume work
  wh check "2025-11-12 08:00" 6                        # Overlapping work orders
  wh report --format xlsx --output report.xlsx         # Export a report
  wh serve --addr :8080                                # Run the HTTP API

TIMESTAMPS:
  2006-01-02 15:04, 2006-01-02T15:04 or RFC3339, read in the local zone
  unless an offset is given. "now" is accepted wherever a timestamp is.

CONFIGURATION:
  Priority order: command-line flags > environment variables > config file > defaults.
  The config file is ~/.wh.yaml, or WH_CONFIG. A .env file in the working
  directory is loaded into the environment first.

    WH_WINDOW_OPEN, WH_WINDOW_CLOSE        Working window (default 07:30, 16:30)
    WH_WORKDAYS, WH_HOLIDAYS               Calendar, e.g. "mon,tue,wed,thu,fri"
    WH_DB_DRIVER, WH_DB_DSN                sqlite (default) or postgres
    WH_DB_DIR, WH_DB_FILENAME              sqlite file (default ~/.wh/wh.db)
    WH_DB_QUERY_TIMEOUT                    Query timeout (default 10s)
    WH_MAX_ESTIMATE_HOURS                  Largest estimate accepted (default 10000)
    WH_TIME_FORMAT                         Display format (default 2006-01-02 15:04)
    WH_APP_TIMEOUT, WH_APP_VERBOSE         Command timeout, verbose output
    WH_SERVER_ADDR                         HTTP listen address (default :8080)
    WH_DEBUG                               Debug logging to stderr`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.setup()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// SetOutput redirects command output
func (r *RootCommand) SetOutput(w io.Writer) {
	r.out = w
	r.cmd.SetOut(w)
	r.cmd.SetErr(w)
}

// SetArgs sets the arguments to execute instead of os.Args
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// Execute runs the root command and releases the store afterwards. Errors are
// reduced to their user-facing message.
func (r *RootCommand) Execute() error {
	err := r.cmd.Execute()
	if r.app != nil {
		if closeErr := r.app.Close(); closeErr != nil {
			logging.Debugf("failed to close store: %v\n", closeErr)
		}
	}
	return NewErrorHandler().HandleSimple(err)
}

// Config returns the effective configuration after flags are applied
func (r *RootCommand) Config() *config.Config {
	return r.config
}

// setup applies flag overrides, validates the configuration and builds the App
func (r *RootCommand) setup() error {
	overrides, err := r.getConfigFromFlags()
	if err != nil {
		return err
	}
	overrides.Apply(r.config)
	if err := r.config.Validate(); err != nil {
		return err
	}

	app, err := NewApp(r.config, r.factory, r.out)
	if err != nil {
		return err
	}
	r.app = app
	return nil
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Working time
	flags.String("window-open", "", "Window opening time HH:MM (overrides WH_WINDOW_OPEN)")
	flags.String("window-close", "", "Window closing time HH:MM (overrides WH_WINDOW_CLOSE)")
	flags.StringSlice("workdays", nil, "Working weekdays, e.g. mon,tue,wed (overrides WH_WORKDAYS)")
	flags.StringSlice("holidays", nil, "Non-working dates YYYY-MM-DD (overrides WH_HOLIDAYS)")

	// Database configuration
	flags.String("db-driver", "", "Database driver: sqlite or postgres (overrides WH_DB_DRIVER)")
	flags.String("db-dsn", "", "Database DSN (overrides WH_DB_DSN)")
	flags.String("db-dir", "", "Database directory (overrides WH_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides WH_DB_FILENAME)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides WH_DB_QUERY_TIMEOUT)")

	// Estimates and display
	flags.Float64("max-estimate-hours", 0, "Largest estimate accepted (overrides WH_MAX_ESTIMATE_HOURS)")
	flags.String("time-format", "", "Time display format (overrides WH_TIME_FORMAT)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Command timeout (overrides WH_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides WH_APP_VERBOSE)")
	flags.String("server-addr", "", "HTTP listen address (overrides WH_SERVER_ADDR)")
}

// getConfigFromFlags collects the global flags that were set on the command line
func (r *RootCommand) getConfigFromFlags() (*config.ConfigOverrides, error) {
	if r.config == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}

	flags := r.cmd.PersistentFlags()
	o := &config.ConfigOverrides{}

	str := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	slice := func(name string) *[]string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetStringSlice(name)
		return &v
	}
	dur := func(name string) *time.Duration {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetDuration(name)
		return &v
	}

	o.WindowOpen = str("window-open")
	o.WindowClose = str("window-close")
	o.Workdays = slice("workdays")
	o.Holidays = slice("holidays")

	o.DBDriver = str("db-driver")
	o.DBDSN = str("db-dsn")
	o.DBDir = str("db-dir")
	o.DBFilename = str("db-filename")
	o.DBQueryTimeout = dur("db-query-timeout")

	if flags.Changed("max-estimate-hours") {
		v, _ := flags.GetFloat64("max-estimate-hours")
		o.MaxEstimateHours = &v
	}
	o.TimeFormat = str("time-format")

	o.Timeout = dur("app-timeout")
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		o.Verbose = &v
	}
	o.ServerAddr = str("server-addr")

	return o, nil
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

// run executes a handler under the application timeout
func (r *RootCommand) run(cmd *cobra.Command, handler interface {
	Execute(ctx context.Context, args []string) error
}, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
	defer cancel()
	return handler.Execute(ctx, args)
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	// Calculators
	elapsedCmd := &cobra.Command{
		Use:   "elapsed START END",
		Short: "Working hours between two timestamps",
		Long: `Print the working time between START and END. Time outside the working
window does not count; END before START gives zero.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, NewElapsedCommand(r.app), args)
		},
	}

	etaCmd := &cobra.Command{
		Use:   "eta START HOURS",
		Short: "Completion time of a job",
		Long: `Print when HOURS of work started at START finish. HOURS is decimal
(4.5) or a duration (4h30m). A start outside the window begins at the
next opening.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, NewEtaCommand(r.app), args)
		},
	}

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "Show the working window in effect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, NewWindowCommand(r.app), args)
		},
	}

	// Work orders
	var createOpts CreateOptions
	createCmd := &cobra.Command{
		Use:   "create PLATE HOURS",
		Short: "Open a work order",
		Long:  "Open a work order for a vehicle with its estimated working hours and print its ETA.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, NewCreateCommand(r.app, createOpts), args)
		},
	}
	createCmd.Flags().StringVarP(&createOpts.Description, "desc", "d", "", "Description of the work")
	createCmd.Flags().StringVar(&createOpts.At, "at", "", "Creation time (default now)")

	var listOpts ListOptions
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List work orders with their progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, NewListCommand(r.app, listOpts), args)
		},
	}
	addListFlags(listCmd, &listOpts)

	showCmd := &cobra.Command{
		Use:   "show ID|REFERENCE",
		Short: "Show a work order with its pauses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, NewShowCommand(r.app), args)
		},
	}

	var completeAt string
	completeCmd := &cobra.Command{
		Use:   "complete ID|REFERENCE",
		Short: "Complete a work order",
		Long:  "Complete a work order. Any active pause is stopped at the completion time.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, NewCompleteCommand(r.app, completeAt), args)
		},
	}
	completeCmd.Flags().StringVar(&completeAt, "at", "", "Completion time (default now)")

	estimateCmd := &cobra.Command{
		Use:   "estimate ID|REFERENCE HOURS",
		Short: "Revise the estimate of an open work order",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, NewEstimateCommand(r.app), args)
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete ID|REFERENCE",
		Short: "Delete a work order and its pauses",
		Long:  "Delete a work order and all its pauses. This operation cannot be undone.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, NewDeleteCommand(r.app), args)
		},
	}

	overdueCmd := &cobra.Command{
		Use:   "overdue",
		Short: "List open work orders past their ETA",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, NewOverdueCommand(r.app), args)
		},
	}

	// Pauses
	pauseCmd := &cobra.Command{
		Use:   "pause",
		Short: "Pause and resume work orders",
	}

	var pauseStartOpts PauseOptions
	pauseStartCmd := &cobra.Command{
		Use:   "start ID|REFERENCE",
		Short: "Pause a work order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, NewPauseStartCommand(r.app, pauseStartOpts), args)
		},
	}
	pauseStartCmd.Flags().StringVarP(&pauseStartOpts.Reason, "reason", "r", "", "Why work stopped")
	pauseStartCmd.Flags().StringVar(&pauseStartOpts.At, "at", "", "Pause start (default now)")

	var pauseStopOpts PauseOptions
	pauseStopCmd := &cobra.Command{
		Use:   "stop ID|REFERENCE",
		Short: "Resume a paused work order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, NewPauseStopCommand(r.app, pauseStopOpts), args)
		},
	}
	pauseStopCmd.Flags().StringVar(&pauseStopOpts.At, "at", "", "Pause end (default now)")

	pauseListCmd := &cobra.Command{
		Use:   "list ID|REFERENCE",
		Short: "List the pauses of a work order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, NewPauseListCommand(r.app), args)
		},
	}
	pauseCmd.AddCommand(pauseStartCmd, pauseStopCmd, pauseListCmd)

	// Scheduling and reporting
	checkCmd := &cobra.Command{
		Use:   "check START HOURS",
		Short: "List open work orders overlapping a planned job",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, NewCheckCommand(r.app), args)
		},
	}

	var reportOpts ReportOptions
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Summarise work orders",
		Long: `Summarise work orders: worked and paused hours, overdue counts and
pause statistics.

Formats:
  table - rendered to the terminal (default)
  csv   - to stdout, or --output FILE
  xlsx  - to --output FILE`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, NewReportCommand(r.app, reportOpts), args)
		},
	}
	reportCmd.Flags().StringVarP(&reportOpts.Format, "format", "f", FormatTable, "Output format: table, csv or xlsx")
	reportCmd.Flags().StringVarP(&reportOpts.Output, "output", "o", "", "Output file")
	addListFlags(reportCmd, &reportOpts.ListOptions)

	var serveAddr string
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return NewServeCommand(r.app, serveAddr).Execute(ctx, args)
		},
	}
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from configuration)")

	r.cmd.AddCommand(
		elapsedCmd,
		etaCmd,
		windowCmd,
		createCmd,
		listCmd,
		showCmd,
		completeCmd,
		estimateCmd,
		deleteCmd,
		overdueCmd,
		pauseCmd,
		checkCmd,
		reportCmd,
		serveCmd,
	)
}

func addListFlags(cmd *cobra.Command, opts *ListOptions) {
	cmd.Flags().StringVarP(&opts.Plate, "plate", "p", "", "Only plates containing this text")
	cmd.Flags().BoolVar(&opts.Open, "open", false, "Only open work orders")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 0, "Maximum number of work orders")
}
