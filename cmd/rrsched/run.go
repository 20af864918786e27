package main

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/viant/afs"
	"github.com/viant/afs/file"

	"github.com/TigerCipher/rrsched/internal/config"
	"github.com/TigerCipher/rrsched/internal/dispatcher"
	"github.com/TigerCipher/rrsched/internal/report"
	"github.com/TigerCipher/rrsched/internal/tracing"
	"github.com/TigerCipher/rrsched/internal/workload"
)

const stdinArg = "-"

func runCmd(v *viper.Viper, load loader) *cobra.Command {
	var (
		flagInputFormat string
		flagOutput      string
	)

	cmd := &cobra.Command{
		Use:   "run [workload-url|-]",
		Short: "Schedule a workload and print the results",
		Long: `Schedule the processes in the workload (a local path or any URL the storage layer
understands, or - for stdin) and print the results. Without an argument the built-in
sample workload is scheduled. Text workloads hold one "id arrival burst [priority]"
record per line; .csv files hold "id,burst,arrival[,priority]" rows; .yaml files hold
a processes list and an optional quantum.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if cfg.Trace != "" {
				if err := tracing.Init("rrsched", version, cfg.Trace); err != nil {
					return fmt.Errorf("init tracing: %w", err)
				}
				defer func() { _ = tracing.Shutdown(context.Background()) }()
			}

			inputFormat, err := workload.ParseFormat(flagInputFormat)
			if err != nil {
				return err
			}
			fs := afs.New()
			w, err := loadWorkload(ctx, fs, cmd.InOrStdin(), args, inputFormat)
			if err != nil {
				return err
			}

			quantum := cfg.Quantum
			if w.Quantum > 0 && !cmd.Flags().Changed("quantum") {
				quantum = w.Quantum
			}
			res, err := schedule(ctx, w, quantum, cfg.MinimizeChart, cfg.MaxSlices)
			if err != nil {
				return err
			}

			format, err := report.ParseFormat(cfg.Format)
			if err != nil {
				return err
			}
			if flagOutput == "" {
				return report.Write(cmd.OutOrStdout(), format, "Round-robin", res)
			}
			var buf bytes.Buffer
			if err := report.Write(&buf, format, "Round-robin", res); err != nil {
				return err
			}
			if err := fs.Upload(ctx, flagOutput, file.DefaultFileOsMode, &buf); err != nil {
				return fmt.Errorf("write report %v: %w", flagOutput, err)
			}
			return nil
		},
	}

	cmd.Flags().Int("quantum", dispatcher.DefaultQuantum, "Time slice in ticks")
	cmd.Flags().Bool("minimize", false, "Merge consecutive Gantt slices of the same process")
	cmd.Flags().String("format", string(report.FormatFixed), "Output format: fixed, table or json")
	cmd.Flags().String("trace", "", "Write OpenTelemetry spans to this file")
	cmd.Flags().Int("max-slices", config.DefaultMaxSlices, "Reject workloads that need more time slices")
	cmd.Flags().StringVar(&flagInputFormat, "input-format", "", "Workload format: text, csv or yaml (default: by extension)")
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Write the report to this URL instead of stdout")

	cobra.CheckErr(bindFlags(v, cmd, map[string]string{
		"quantum":        "quantum",
		"minimize_chart": "minimize",
		"format":         "format",
		"trace":          "trace",
		"max_slices":     "max-slices",
	}))
	return cmd
}

func loadWorkload(ctx context.Context, fs afs.Service, stdin io.Reader, args []string, format workload.Format) (*workload.Workload, error) {
	switch {
	case len(args) == 0:
		return workload.Sample(), nil
	case args[0] == stdinArg:
		return workload.Decode(format, stdin)
	}
	return workload.Load(ctx, fs, args[0], format)
}

func schedule(ctx context.Context, w *workload.Workload, quantum int, minimize bool, maxSlices int) (*dispatcher.Result, error) {
	d := dispatcher.New(dispatcher.WithMinimizedChart(minimize), dispatcher.WithMaxSlices(maxSlices))
	if err := d.SetQuantum(quantum); err != nil {
		return nil, err
	}
	for _, p := range w.Processes {
		if err := d.AddProcess(p); err != nil {
			return nil, err
		}
	}
	if err := d.Run(ctx); err != nil {
		return nil, err
	}
	return d.Result()
}
