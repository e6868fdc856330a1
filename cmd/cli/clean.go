package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"dataprep/adapters/excel"
	"dataprep/domain/dataset"
	"dataprep/internal/cleaning"

	"github.com/spf13/cobra"
)

func readCleaningConfig(path string) (cleaning.Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return cleaning.Config{}, err
	}
	defer file.Close()
	return cleaning.DecodeConfig(file)
}

// overrideChanged copies the flags the user actually set over cfg
func overrideChanged(cmd *cobra.Command, cfg *cleaning.Config, flags cleaning.Config) {
	changed := cmd.Flags().Changed
	if changed("handle-missing") {
		cfg.HandleMissing = flags.HandleMissing
	}
	if changed("remove-duplicates") {
		cfg.RemoveDuplicates = flags.RemoveDuplicates
	}
	if changed("remove-outliers") {
		cfg.RemoveOutliers = flags.RemoveOutliers
	}
	if changed("outlier-column") {
		cfg.OutlierColumn = flags.OutlierColumn
	}
	if changed("outlier-method") {
		cfg.OutlierMethod = flags.OutlierMethod
	}
}

func runClean(cmd *cobra.Command, opts *options, path, outPath string, cfg cleaning.Config) error {
	var write func(*dataset.Dataset, io.Writer) error
	if outPath != "" {
		switch strings.ToLower(filepath.Ext(outPath)) {
		case ".csv":
			write = excel.WriteCSV
		case ".xlsx":
			write = excel.WriteXLSX
		default:
			return fmt.Errorf("--out needs a .csv or .xlsx extension, got %s", outPath)
		}
	}

	ds, err := opts.load(path)
	if err != nil {
		return err
	}
	result, err := cleaning.Clean(ds, cfg)
	if err != nil {
		return err
	}

	if write != nil {
		if err := writeFile(outPath, func(w io.Writer) error { return write(result.Dataset, w) }); err != nil {
			return err
		}
	}

	return render(cmd.OutOrStdout(), opts.format, map[string]interface{}{
		"rows_before":  result.RowsBefore,
		"rows_after":   result.RowsAfter,
		"rows_removed": result.RowsRemoved,
		"stages":       result.Stages,
		"output":       outPath,
	})
}

func writeFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(file); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return file.Close()
}
