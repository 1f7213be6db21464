package main

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/vibe-bed/internal/bed"
	"github.com/inodb/vibe-bed/internal/container"
	"github.com/inodb/vibe-bed/internal/duckdb"
)

// bedSet is an interval set keyed by chromosome name.
type bedSet = container.Container[string, *bed.Record]

const duckdbPrefix = "duckdb:"

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usagef("%s expects %d argument(s), got %d", cmd.CommandPath(), n, len(args))
		}
		return nil
	}
}

func minArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return usagef("%s expects at least %d argument(s), got %d", cmd.CommandPath(), n, len(args))
		}
		return nil
	}
}

func openStore() (*duckdb.Store, error) {
	path := viper.GetString("duckdb")
	if path == "" {
		return nil, usagef("--duckdb is required for DuckDB tables")
	}
	return duckdb.Open(path)
}

// readRecords reads a BED file or a duckdb:<table> input. columns is the
// BED layout to use when writing records back out.
func readRecords(path string) (recs []*bed.Record, columns int, err error) {
	if table, ok := strings.CutPrefix(path, duckdbPrefix); ok {
		store, err := openStore()
		if err != nil {
			return nil, 0, err
		}
		defer store.Close()
		recs, err := store.LoadIntervals(table)
		if err != nil {
			return nil, 0, fmt.Errorf("load %s: %w", path, err)
		}
		return recs, 6, nil
	}

	r, err := bed.NewReader(path)
	if err != nil {
		return nil, 0, err
	}
	defer r.Close()

	recs, err = r.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("read %s: %w", path, err)
	}
	return recs, max(r.Columns(), 3), nil
}

// loadSet reads an input and sorts it in parallel.
func loadSet(ctx context.Context, path string) (*bedSet, int, error) {
	recs, columns, err := readRecords(path)
	if err != nil {
		return nil, 0, err
	}

	set := container.New[string, *bed.Record](recs)
	set.SetLogger(logger)
	if err := set.ParSort(ctx, viper.GetInt("threads")); err != nil {
		return nil, 0, fmt.Errorf("sort %s: %w", path, err)
	}
	logger.Debug("loaded intervals",
		zap.String("input", path),
		zap.Int("records", set.Len()),
		zap.Int("chromosomes", len(set.Chromosomes())))
	return set, columns, nil
}

// output is where a command's records go: a BED writer, or a DuckDB table
// when --to-duckdb is set.
type output struct {
	w       *bed.Writer
	table   string
	pending []*bed.Record
}

func openOutput(cmd *cobra.Command, columns int) (*output, error) {
	if table := viper.GetString("to-duckdb"); table != "" {
		return &output{table: table}, nil
	}

	path := viper.GetString("output")
	var (
		w   *bed.Writer
		err error
	)
	if path == "" || path == "-" {
		w = bed.NewWriter(cmd.OutOrStdout())
	} else if w, err = bed.Create(path); err != nil {
		return nil, err
	}
	w.SetColumns(columns)
	return &output{w: w}, nil
}

func (o *output) Write(rec *bed.Record, extra ...string) error {
	if o.table != "" {
		o.pending = append(o.pending, rec)
		return nil
	}
	return o.w.WriteWith(rec, extra...)
}

func (o *output) WriteSeq(seq iter.Seq[*bed.Record]) error {
	for rec := range seq {
		if err := o.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

func (o *output) Close() error {
	if o.table == "" {
		return o.w.Close()
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.WriteIntervals(o.table, o.pending); err != nil {
		return err
	}
	logger.Info("wrote intervals to duckdb",
		zap.String("table", o.table),
		zap.Int("records", len(o.pending)))
	return nil
}

// writeSet writes every record of seq and closes the output.
func writeSet(cmd *cobra.Command, columns int, seq iter.Seq[*bed.Record]) error {
	out, err := openOutput(cmd, columns)
	if err != nil {
		return err
	}
	if err := out.WriteSeq(seq); err != nil {
		return err
	}
	return out.Close()
}

func writeRecords(cmd *cobra.Command, columns int, recs []*bed.Record) error {
	return writeSet(cmd, columns, slices.Values(recs))
}
