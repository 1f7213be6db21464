package main

import (
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inodb/vibe-bed/internal/interval"
)

func newSortCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sort <bed>",
		Short: "Sort intervals by chromosome, start, end and strand",
		Example: `  vibe-bed sort peaks.bed
  vibe-bed sort -t 8 -o sorted.bed.gz peaks.bed`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, columns, err := loadSet(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeSet(cmd, columns, set.All())
		},
	}
}

func newMergeCmd() *cobra.Command {
	var (
		stranded bool
		strand   string
	)
	cmd := &cobra.Command{
		Use:   "merge <bed>",
		Short: "Merge overlapping and bordering intervals",
		Example: `  vibe-bed merge peaks.bed
  vibe-bed merge --stranded genes.bed
  vibe-bed merge --strand - genes.bed`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, columns, err := loadSet(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			var merged *bedSet
			switch {
			case strand != "":
				s, err := interval.ParseStrand(strand)
				if err != nil {
					return usagef("--strand: %v", err)
				}
				merged, err = set.MergeSpecificStrand(s)
				if err != nil {
					return err
				}
			case stranded:
				if merged, err = set.MergeStranded(); err != nil {
					return err
				}
			default:
				if merged, err = set.Merge(); err != nil {
					return err
				}
			}
			logger.Debug("merged intervals",
				zap.Int("records", set.Len()),
				zap.Int("merged", merged.Len()))
			return writeSet(cmd, columns, merged.All())
		},
	}
	cmd.Flags().BoolVarP(&stranded, "stranded", "s", false, "Merge each strand separately")
	cmd.Flags().StringVar(&strand, "strand", "", "Only merge intervals on this strand (+ or -)")
	return cmd
}

func newComplementCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complement <bed>",
		Short: "Report the gaps between intervals on each chromosome",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, _, err := loadSet(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			merged, err := set.Merge()
			if err != nil {
				return err
			}
			gaps, err := merged.Complement()
			if err != nil {
				return err
			}
			return writeSet(cmd, 3, gaps)
		},
	}
}

func newClusterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cluster <bed>",
		Short: "Tag each interval with the id of its overlapping cluster",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, columns, err := loadSet(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			clusters, err := set.Clusters()
			if err != nil {
				return err
			}

			out, err := openOutput(cmd, columns)
			if err != nil {
				return err
			}
			for rec, id := range clusters {
				if err := out.Write(rec, strconv.Itoa(id)); err != nil {
					return err
				}
			}
			return out.Close()
		},
	}
}

func newSegmentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "segment <bed>",
		Short: "Split overlapping intervals into non-overlapping segments",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, columns, err := loadSet(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			segments, err := set.Segment()
			if err != nil {
				return err
			}
			return writeSet(cmd, columns, segments.All())
		},
	}
}

func newSampleCmd() *cobra.Command {
	var (
		n       int
		seed    uint64
		shuffle bool
	)
	cmd := &cobra.Command{
		Use:   "sample <bed>",
		Short: "Draw a random sample of intervals",
		Example: `  vibe-bed sample -n 100 --seed 7 peaks.bed
  vibe-bed sample --shuffle peaks.bed`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, columns, err := loadSet(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if shuffle {
				set.Shuffle(seed)
				return writeSet(cmd, columns, set.All())
			}
			sample, err := set.SampleIter(n, seed)
			if err != nil {
				return err
			}
			return writeSet(cmd, columns, sample)
		},
	}
	cmd.Flags().IntVarP(&n, "number", "n", 1, "Number of intervals to sample")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed")
	cmd.Flags().BoolVar(&shuffle, "shuffle", false, "Emit every interval in random order")
	return cmd
}
