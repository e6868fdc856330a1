package main

import (
	"fmt"
	"os"

	"dataprep/adapters/excel"
	"dataprep/domain/dataset"
	"dataprep/internal/cleaning"
	"dataprep/internal/profiling"
	"dataprep/internal/quality"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// options shared by every subcommand
type options struct {
	format string
	sheet  string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "dataprep-cli",
		Short:         "Profile, check and clean CSV and Excel files from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.format, "format", "json", "Output format: json or yaml")
	rootCmd.PersistentFlags().StringVar(&opts.sheet, "sheet", "", "Worksheet to read from Excel files (default: first sheet)")

	rootCmd.AddCommand(
		newInfoCmd(opts),
		newStatsCmd(opts),
		newMissingCmd(opts),
		newDuplicatesCmd(opts),
		newOutliersCmd(opts),
		newCleanCmd(opts),
	)
	return rootCmd
}

func (o *options) load(path string) (*dataset.Dataset, error) {
	config := excel.DefaultReaderConfig()
	config.SheetName = o.sheet
	ds, err := excel.NewDataReader(config).ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return ds, nil
}

func newInfoCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "info [file]",
		Short: "Show the shape and inferred column types of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := opts.load(args[0])
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.format, map[string]interface{}{
				"shape":       map[string]int{"rows": ds.Len(), "columns": ds.Width()},
				"columns":     ds.Names(),
				"column_info": profiling.DescribeColumns(ds),
			})
		},
	}
}

func newStatsCmd(opts *options) *cobra.Command {
	var column string

	cmd := &cobra.Command{
		Use:   "stats [file]",
		Short: "Compute descriptive statistics for one or all columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := opts.load(args[0])
			if err != nil {
				return err
			}
			result, err := profiling.ComputeStatistics(ds, column)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.format, result)
		},
	}

	cmd.Flags().StringVar(&column, "column", "", "Column to describe (default: all columns)")
	return cmd
}

func newMissingCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "missing [file]",
		Short: "Count null cells per column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := opts.load(args[0])
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.format, quality.DetectMissing(ds))
		},
	}
}

func newDuplicatesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "duplicates [file]",
		Short: "Find rows that repeat an earlier row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := opts.load(args[0])
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.format, quality.DetectDuplicates(ds))
		},
	}
}

func newOutliersCmd(opts *options) *cobra.Command {
	var column, method string

	cmd := &cobra.Command{
		Use:   "outliers [file]",
		Short: "Flag outlying values of a numeric column",
		Long: `Flag outlying values of a numeric column.

Methods:
- zscore: |x - mean| / sd above 3
- iqr:    outside [Q1 - 1.5*IQR, Q3 + 1.5*IQR]

Example: dataprep-cli outliers sales.csv --column revenue --method iqr`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := quality.ParseMethod(method)
			if err != nil {
				return err
			}
			ds, err := opts.load(args[0])
			if err != nil {
				return err
			}
			report, err := quality.DetectOutliers(ds, column, parsed)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.format, report)
		},
	}

	cmd.Flags().StringVar(&column, "column", "", "Numeric column to check")
	cmd.Flags().StringVar(&method, "method", string(quality.MethodZScore), "Detection method: zscore or iqr")
	_ = cmd.MarkFlagRequired("column")
	return cmd
}

func newCleanCmd(opts *options) *cobra.Command {
	var (
		configPath string
		outPath    string
		flags      = cleaning.DefaultConfig()
	)

	cmd := &cobra.Command{
		Use:   "clean [file]",
		Short: "Run the cleaning pipeline and write the cleaned file",
		Long: `Run the cleaning pipeline: missing values, then duplicates, then outliers.

Options come from --config (YAML with the keys handle_missing, remove_duplicates,
remove_outliers, outlier_column and outlier_method) and are overridden by flags.
The cleaned table is written to --out; its extension selects CSV or XLSX.

Example: dataprep-cli clean sales.csv --handle-missing median --out cleaned.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := cleaning.DefaultConfig()
			if configPath != "" {
				var err error
				if cfg, err = readCleaningConfig(configPath); err != nil {
					return err
				}
			}
			overrideChanged(cmd, &cfg, flags)
			return runClean(cmd, opts, args[0], outPath, cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "YAML file with cleaning options")
	cmd.Flags().StringVar(&outPath, "out", "", "Write the cleaned table to this .csv or .xlsx file")
	cmd.Flags().StringVar((*string)(&flags.HandleMissing), "handle-missing", string(flags.HandleMissing), "Missing-value policy: drop, mean or median")
	cmd.Flags().BoolVar(&flags.RemoveDuplicates, "remove-duplicates", flags.RemoveDuplicates, "Drop repeated rows")
	cmd.Flags().BoolVar(&flags.RemoveOutliers, "remove-outliers", flags.RemoveOutliers, "Drop outlying rows of --outlier-column")
	cmd.Flags().StringVar(&flags.OutlierColumn, "outlier-column", "", "Numeric column used for outlier removal")
	cmd.Flags().StringVar((*string)(&flags.OutlierMethod), "outlier-method", string(flags.OutlierMethod), "Outlier method: zscore or iqr")
	return cmd
}
