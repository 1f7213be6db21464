package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inodb/vibe-bed/internal/bed"
	"github.com/inodb/vibe-bed/internal/container"
	"github.com/inodb/vibe-bed/internal/duckdb"
	"github.com/inodb/vibe-bed/internal/interval"
)

func newQueryCmd() *cobra.Command {
	var (
		qf      queryFlags
		indexed bool
	)
	cmd := &cobra.Command{
		Use:   "query <bed> <region>...",
		Short: "Report intervals overlapping one or more regions",
		Long: `Report the intervals overlapping each region. Regions are written as
chr, chr:pos or chr:start-end with 1-based inclusive positions. A duckdb:<table>
input is queried in the database directly.`,
		Example: `  vibe-bed query peaks.bed chr1:1,000,001-1,100,000
  vibe-bed query --indexed peaks.bed chr2:5000
  vibe-bed query --duckdb bed.db duckdb:peaks chr1:100-200`,
		Args: minArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := qf.build(cmd)
			if err != nil {
				return err
			}
			regions := make([]*bed.Record, 0, len(args)-1)
			for _, arg := range args[1:] {
				r, err := bed.ParseRegion(arg)
				if err != nil {
					return usagef("%v", err)
				}
				regions = append(regions, r)
			}

			if table, ok := strings.CutPrefix(args[0], duckdbPrefix); ok {
				return queryTable(cmd, table, regions, q)
			}

			set, columns, err := loadSet(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out, err := openOutput(cmd, columns)
			if err != nil {
				return err
			}

			var idx *container.Indexed[string, *bed.Record]
			if indexed {
				if idx, err = container.NewIndexed(set); err != nil {
					return err
				}
			}

			for _, region := range regions {
				if idx != nil && interval.Len[string](region) == 1 {
					for _, rec := range idx.Stab(region.Chr(), region.Start()) {
						if !interval.Predicate[string](q, rec, region) {
							continue
						}
						if err := out.Write(rec); err != nil {
							return err
						}
					}
					continue
				}

				write := func(rec *bed.Record) bool {
					err = out.Write(rec)
					return err == nil
				}
				if idx != nil {
					if qerr := idx.Query(region, q, write); qerr != nil {
						return qerr
					}
				} else {
					hits, ferr := set.FindIter(region, q)
					if ferr != nil {
						return ferr
					}
					for rec := range hits {
						if !write(rec) {
							break
						}
					}
				}
				if err != nil {
					return err
				}
			}
			return out.Close()
		},
	}
	qf.register(cmd)
	cmd.Flags().BoolVar(&indexed, "indexed", false, "Answer regions from an interval tree instead of a sorted scan")
	return cmd
}

// queryTable pushes each region down to SQL and applies q to the rows
// that come back.
func queryTable(cmd *cobra.Command, table string, regions []*bed.Record, q interval.Query) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	var hits []*bed.Record
	for _, region := range regions {
		recs, err := store.QueryIntervals(table, region.Chr(), region.Start(), region.End())
		if err != nil {
			store.Close()
			return err
		}
		for _, rec := range recs {
			if interval.Predicate[string](q, rec, region) {
				hits = append(hits, rec)
			}
		}
	}
	// --to-duckdb reopens the database on output.
	if err := store.Close(); err != nil {
		return err
	}
	return writeRecords(cmd, 6, hits)
}

func newLoadCmd() *cobra.Command {
	var (
		table string
		force bool
	)
	cmd := &cobra.Command{
		Use:   "load <bed>",
		Short: "Load a BED file into a DuckDB table",
		Long: `Load a BED file into a DuckDB table. The table is reloaded only when the
file's size or modification time changed since the last load, unless --force.`,
		Example: `  vibe-bed load --duckdb bed.db --table peaks peaks.bed.gz`,
		Args:    exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if table == "" {
				return usagef("--table is required")
			}
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			fp, err := duckdb.StatFile(args[0])
			if err != nil {
				return fmt.Errorf("stat %s: %w", args[0], err)
			}
			fresh, err := store.SourceFresh(table, fp)
			if err != nil {
				return err
			}
			if fresh && !force {
				logger.Info("table is up to date", zap.String("table", table), zap.String("source", args[0]))
				return nil
			}

			set, _, err := loadSet(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := store.ClearIntervals(table); err != nil {
				return err
			}
			if err := store.WriteIntervals(table, set.Records()); err != nil {
				return err
			}
			if err := store.SetSource(table, fp); err != nil {
				return err
			}
			logger.Info("loaded intervals",
				zap.String("table", table),
				zap.String("source", args[0]),
				zap.Int("records", set.Len()))
			return nil
		},
	}
	cmd.Flags().StringVar(&table, "table", "", "Destination table")
	cmd.Flags().BoolVar(&force, "force", false, "Reload even if the table is up to date")
	return cmd
}
