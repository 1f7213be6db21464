package main

import (
	"slices"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inodb/vibe-bed/internal/bed"
	"github.com/inodb/vibe-bed/internal/container"
	"github.com/inodb/vibe-bed/internal/interval"
	"github.com/inodb/vibe-bed/internal/pipeline"
)

// pairFlags are the -a and -b inputs of two-set commands.
type pairFlags struct {
	a, b string
}

func (p *pairFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&p.a, "a", "a", "", "Query intervals (BED or duckdb:<table>)")
	cmd.Flags().StringVarP(&p.b, "b", "b", "", "Target intervals (BED or duckdb:<table>)")
}

func (p *pairFlags) load(cmd *cobra.Command) (a, b *bedSet, columns int, err error) {
	if p.a == "" || p.b == "" {
		return nil, nil, 0, usagef("both -a and -b are required")
	}
	a, columns, err = loadSet(cmd.Context(), p.a)
	if err != nil {
		return nil, nil, 0, err
	}
	b, _, err = loadSet(cmd.Context(), p.b)
	if err != nil {
		return nil, nil, 0, err
	}
	return a, b, columns, nil
}

// queryFlags select the overlap predicate used by intersect and coverage.
type queryFlags struct {
	fracA, fracB float64
	reciprocal   bool
	either       bool
	minOverlap   int64
	exact        int64
	strand       string
}

func (f *queryFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.Float64VarP(&f.fracA, "fraction-a", "f", 0, "Minimum overlap as a fraction of the -a interval")
	fs.Float64VarP(&f.fracB, "fraction-b", "F", 0, "Minimum overlap as a fraction of the -b interval")
	fs.BoolVarP(&f.reciprocal, "reciprocal", "r", false, "Require the -a fraction of both intervals")
	fs.BoolVarP(&f.either, "either", "e", false, "Require either fraction instead of both")
	fs.Int64Var(&f.minOverlap, "min-overlap", 0, "Minimum overlap in bases")
	fs.Int64Var(&f.exact, "exact", 0, "Exact overlap in bases")
	f.registerStrand(cmd)
}

func (f *queryFlags) registerStrand(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.strand, "strand", "ignore", "Strand requirement: ignore, same, opposite")
}

func (f *queryFlags) build(cmd *cobra.Command) (interval.Query, error) {
	sm, err := interval.ParseStrandMethod(f.strand)
	if err != nil {
		return interval.Query{}, usagef("--strand: %v", err)
	}

	fs := cmd.Flags()
	fracB := f.fracB
	if f.reciprocal {
		fracB = f.fracA
	}

	var m interval.QueryMethod
	switch {
	case fs.Changed("exact"):
		m = interval.MethodCompareExact(f.exact)
	case fs.Changed("min-overlap"):
		m = interval.MethodCompareBy(f.minOverlap)
	case f.fracA > 0 && fracB > 0 && f.either:
		m = interval.MethodReciprocalOr(f.fracA, fracB)
	case f.fracA > 0 && fracB > 0:
		m = interval.MethodReciprocalAnd(f.fracA, fracB)
	case fs.Changed("fraction-a"):
		m = interval.MethodByQueryFraction(f.fracA)
	case fs.Changed("fraction-b"):
		m = interval.MethodByTargetFraction(f.fracB)
	default:
		m = interval.MethodCompare()
	}

	q := interval.NewQuery(m, sm)
	if err := q.Validate(); err != nil {
		return interval.Query{}, usagef("%v", err)
	}
	return q, nil
}

func newIntersectCmd() *cobra.Command {
	var (
		pair   pairFlags
		qf     queryFlags
		target bool
	)
	cmd := &cobra.Command{
		Use:   "intersect -a <bed> -b <bed>",
		Short: "Report the overlapping parts of two interval sets",
		Example: `  vibe-bed intersect -a reads.bed -b exons.bed
  vibe-bed intersect -a a.bed -b b.bed -f 0.5 -r --strand same`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := qf.build(cmd)
			if err != nil {
				return err
			}
			a, b, columns, err := pair.load(cmd)
			if err != nil {
				return err
			}

			var hits *bedSet
			if target {
				hits, err = a.IntersectTarget(b, q)
			} else {
				hits, err = a.IntersectQuery(b, q)
			}
			if err != nil {
				return err
			}
			return writeSet(cmd, columns, hits.All())
		},
	}
	pair.register(cmd)
	qf.register(cmd)
	cmd.Flags().BoolVar(&target, "target", false, "Report the -b records' names, scores and strands")
	return cmd
}

func newSubtractCmd() *cobra.Command {
	var pair pairFlags
	cmd := &cobra.Command{
		Use:   "subtract -a <bed> -b <bed>",
		Short: "Remove the parts of -a covered by -b",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, b, columns, err := pair.load(cmd)
			if err != nil {
				return err
			}
			if b.IsEmpty() {
				return writeSet(cmd, columns, a.All())
			}
			if b, err = b.Merge(); err != nil {
				return err
			}

			results := pipeline.Parallel(pipeline.Feed(a.Records()), viper.GetInt("threads"),
				func(rec *bed.Record) ([]*bed.Record, error) {
					rest, err := b.SubtractFrom(rec)
					if err != nil {
						return nil, err
					}
					return slices.Collect(rest), nil
				})

			out, err := openOutput(cmd, columns)
			if err != nil {
				return err
			}
			if err := pipeline.OrderedCollect(results, func(r pipeline.WorkResult[*bed.Record, []*bed.Record]) error {
				if r.Err != nil {
					return r.Err
				}
				for _, piece := range r.Out {
					if err := out.Write(piece); err != nil {
						return err
					}
				}
				return nil
			}); err != nil {
				return err
			}
			return out.Close()
		},
	}
	pair.register(cmd)
	return cmd
}

type closestHit struct {
	rec      *bed.Record
	distance int64
}

func newClosestCmd() *cobra.Command {
	var (
		pair       pairFlags
		qf         queryFlags
		upstream   bool
		downstream bool
	)
	cmd := &cobra.Command{
		Use:   "closest -a <bed> -b <bed>",
		Short: "Report the nearest -b interval for every -a interval",
		Long: `For every -a interval report the nearest -b interval on the same chromosome
and the distance between them (0 when they overlap or touch). Upstream and
downstream follow the -a interval's strand.`,
		Example: `  vibe-bed closest -a peaks.bed -b tss.bed
  vibe-bed closest -a peaks.bed -b tss.bed --upstream --strand same`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if upstream && downstream {
				return usagef("--upstream and --downstream are mutually exclusive")
			}
			sm, err := interval.ParseStrandMethod(qf.strand)
			if err != nil {
				return usagef("--strand: %v", err)
			}
			a, b, columns, err := pair.load(cmd)
			if err != nil {
				return err
			}

			find := b.Closest
			switch {
			case upstream:
				find = b.ClosestUpstream
			case downstream:
				find = b.ClosestDownstream
			}
			if b.IsEmpty() {
				find = func(interval.Coordinates[string], interval.StrandMethod) (*bed.Record, bool, error) {
					return nil, false, nil
				}
			}

			results := pipeline.Parallel(pipeline.Feed(a.Records()), viper.GetInt("threads"),
				func(rec *bed.Record) (closestHit, error) {
					hit, ok, err := find(rec, sm)
					if err != nil || !ok {
						return closestHit{distance: -1}, err
					}
					d, _ := interval.Distance[string](rec, hit)
					return closestHit{rec: hit, distance: d}, nil
				})

			out, err := openOutput(cmd, columns)
			if err != nil {
				return err
			}
			if err := pipeline.OrderedCollect(results, func(r pipeline.WorkResult[*bed.Record, closestHit]) error {
				if r.Err != nil {
					return r.Err
				}
				extra := append(bed.Fields(r.Out.rec, columns), strconv.FormatInt(r.Out.distance, 10))
				return out.Write(r.Item, extra...)
			}); err != nil {
				return err
			}
			return out.Close()
		},
	}
	pair.register(cmd)
	qf.registerStrand(cmd)
	cmd.Flags().BoolVar(&upstream, "upstream", false, "Only consider intervals upstream of -a")
	cmd.Flags().BoolVar(&downstream, "downstream", false, "Only consider intervals downstream of -a")
	return cmd
}

func newCoverageCmd() *cobra.Command {
	var (
		pair pairFlags
		qf   queryFlags
	)
	cmd := &cobra.Command{
		Use:   "coverage -a <bed> -b <bed>",
		Short: "Count -b hits and covered bases for every -a interval",
		Long: `For every -a interval report the number of -b intervals satisfying the
overlap options, the number of -a bases covered by any overlapping -b
interval, the -a length and the covered fraction.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := qf.build(cmd)
			if err != nil {
				return err
			}
			a, b, columns, err := pair.load(cmd)
			if err != nil {
				return err
			}
			idx, err := container.NewIndexed(b)
			if err != nil {
				return err
			}

			type coverage struct{ count, covered int64 }
			results := pipeline.Parallel(pipeline.Feed(a.Records()), viper.GetInt("threads"),
				func(rec *bed.Record) (coverage, error) {
					n, err := idx.Count(rec, q)
					if err != nil {
						return coverage{}, err
					}
					return coverage{count: int64(n), covered: idx.Coverage(rec)}, nil
				})

			out, err := openOutput(cmd, columns)
			if err != nil {
				return err
			}
			if err := pipeline.OrderedCollect(results, func(r pipeline.WorkResult[*bed.Record, coverage]) error {
				if r.Err != nil {
					return r.Err
				}
				length := interval.Len[string](r.Item)
				frac := 0.0
				if length > 0 {
					frac = float64(r.Out.covered) / float64(length)
				}
				return out.Write(r.Item,
					strconv.FormatInt(r.Out.count, 10),
					strconv.FormatInt(r.Out.covered, 10),
					strconv.FormatInt(length, 10),
					strconv.FormatFloat(frac, 'f', 7, 64))
			}); err != nil {
				return err
			}
			return out.Close()
		},
	}
	pair.register(cmd)
	qf.register(cmd)
	return cmd
}
