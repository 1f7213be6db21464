package bed

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/inodb/vibe-bed/internal/interval"
)

// ParseRegion parses a region of the form chr, chr:pos or chr:start-end,
// with 1-based inclusive positions, into a 0-based half-open record. A bare
// chromosome covers the whole chromosome.
func ParseRegion(region string) (*Record, error) {
	if region == "" {
		return nil, fmt.Errorf("parse region: empty region string")
	}
	region = strings.ReplaceAll(region, ",", "")

	chr, rng, found := strings.Cut(region, ":")
	if chr == "" {
		return nil, fmt.Errorf("parse region %q: empty chromosome", region)
	}
	if !found {
		return newRecord(chr, 0, math.MaxInt64), nil
	}

	first, last, isRange := strings.Cut(rng, "-")
	start, err := strconv.ParseInt(first, 10, 64)
	if err != nil || start <= 0 {
		return nil, fmt.Errorf("parse region %q: position %s out of range", region, first)
	}
	if !isRange {
		return newRecord(chr, start-1, start), nil
	}

	end, err := strconv.ParseInt(last, 10, 64)
	if err != nil || end < start {
		return nil, fmt.Errorf("parse region %q: invalid range %s", region, rng)
	}
	return newRecord(chr, start-1, end), nil
}

func newRecord(chr string, start, end int64) *Record {
	return interval.NewBed6(chr, start, end, "", 0, interval.NoStrand)
}
