package cli

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"schedsim/internal/job"
	"schedsim/internal/logging"
	"schedsim/internal/metrics"
	"schedsim/internal/sched"
)

var (
	flagConfig      string
	flagEnvFile     string
	flagPolicy      string
	flagQuantum     int64
	flagCollapse    bool
	flagNoTrace     bool
	flagCSV         string
	flagMetricsFile string
	flagDetails     bool
	flagDebug       bool
	flagLogLevel    string
	flagLogFormat   string
)

// NewRootCmd creates the root cobra command for the schedsim CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "schedsim [flags] <workload>",
		Short: "schedsim replays a batch of CPU bursts under a scheduling policy",
		Long: "schedsim reads tasks (name, priority, burst) from a workload file, runs them on a\n" +
			"single virtual processor under fcfs, rr or priority_rr and prints average waiting,\n" +
			"turnaround and response times.",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0])
		},
	}

	root.Flags().StringVarP(&flagConfig, "config", "c", "config.yml", "YAML config file (missing file means defaults)")
	root.Flags().StringVar(&flagEnvFile, "env-file", "", "Load SCHEDSIM_* variables from a .env file")
	root.Flags().StringVarP(&flagPolicy, "policy", "p", "", "Scheduling policy (fcfs, rr, priority_rr)")
	root.Flags().Int64VarP(&flagQuantum, "quantum", "q", 0, "Round-robin time quantum")
	root.Flags().BoolVar(&flagCollapse, "collapse-last-slice", true, "Give the last task of a shared priority level its whole remaining burst")
	root.Flags().BoolVar(&flagNoTrace, "no-trace", false, "Do not print a line per dispatched slice")
	root.Flags().StringVar(&flagCSV, "csv", "", "Write scheduler events to this CSV file")
	root.Flags().StringVar(&flagMetricsFile, "metrics-file", "", "Write Prometheus metrics in text format to this file")
	root.Flags().BoolVar(&flagDetails, "details", false, "Print per-task timings after the averages")
	root.Flags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.Flags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.Flags().StringVar(&flagLogFormat, "log-format", "", "Log format (console, json)")

	return root
}

// loadConfig layers the config file, the environment and the command line flags.
func loadConfig(cmd *cobra.Command) (sched.Config, error) {
	if flagEnvFile != "" {
		if err := godotenv.Load(flagEnvFile); err != nil {
			return sched.Config{}, fmt.Errorf("load env file: %w", err)
		}
	}

	cfg, err := sched.Read(flagConfig)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("policy") {
		cfg.Policy = flagPolicy
	}
	if flags.Changed("quantum") {
		cfg.Quantum = flagQuantum
	}
	if flags.Changed("collapse-last-slice") {
		cfg.CollapseLastSlice = flagCollapse
	}
	if flagNoTrace {
		cfg.Trace = false
	}
	if flags.Changed("csv") {
		cfg.CSVPath = flagCSV
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsPath = flagMetricsFile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = flagLogFormat
	}
	if flagDebug {
		cfg.LogLevel = "debug"
	}
	return cfg, cfg.Validate()
}

func run(cmd *cobra.Command, workload string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	specs, err := job.LoadFile(workload)
	if err != nil {
		return err
	}
	logger.Debug("workload loaded", zap.String("path", workload), zap.Int("tasks", len(specs)))

	out := cmd.OutOrStdout()
	reg := prometheus.NewRegistry()
	opts := []sched.Option{
		sched.WithLogger(logger),
		sched.WithMetrics(metrics.NewRegistry(reg)),
		sched.WithOutput(out),
	}
	if cfg.Trace {
		opts = append(opts, sched.WithProcessor(sched.NewTraceProcessor(out)))
	}

	s, err := sched.New(cfg, opts...)
	if err != nil {
		return err
	}
	defer s.Close()

	if cfg.CSVPath != "" {
		if err := s.EnableCSVLogging(cfg.CSVPath); err != nil {
			return fmt.Errorf("open csv log: %w", err)
		}
	}

	if err := job.Submit(s, specs); err != nil {
		return err
	}

	res, err := s.Schedule()
	if errors.Is(err, sched.ErrEmptyBatch) {
		fmt.Fprintln(out, err)
		return nil
	}
	if err != nil {
		return err
	}

	if flagDetails {
		printDetails(out, res)
	}
	if cfg.MetricsPath != "" {
		if err := prometheus.WriteToTextfile(cfg.MetricsPath, reg); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return s.Close()
}

// printDetails writes one row per task in completion order.
func printDetails(w io.Writer, res sched.Result) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\nID\tNAME\tPRIORITY\tBURST\tSTART\tCOMPLETION\tWAIT\tTURNAROUND\tRESPONSE")
	for _, t := range res.Order {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\n",
			t.ID, t.Name, t.Priority, t.Burst, t.FirstStart, t.Completion, t.Wait(), t.Turnaround(), t.Response())
	}
	tw.Flush()
}
