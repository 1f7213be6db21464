package interval

import (
	"cmp"
	"fmt"
	"strconv"
)

// Bed3 is a chromosome, start and end with no strand.
type Bed3[C cmp.Ordered] struct {
	chr        C
	start, end int64
}

func NewBed3[C cmp.Ordered](chr C, start, end int64) *Bed3[C] {
	return &Bed3[C]{chr: chr, start: start, end: end}
}

func (b *Bed3[C]) Chr() C { return b.chr }
func (b *Bed3[C]) Start() int64 { return b.start }
func (b *Bed3[C]) End() int64 { return b.end }
func (b *Bed3[C]) Strand() Strand { return NoStrand }
func (b *Bed3[C]) SetChr(c C) { b.chr = c }
func (b *Bed3[C]) SetStart(v int64) { b.start = v }
func (b *Bed3[C]) SetEnd(v int64) { b.end = v }
func (b *Bed3[C]) SetStrand(Strand) {}
func (b *Bed3[C]) Clone() *Bed3[C] {
	c := *b
	return &c
}

func (b *Bed3[C]) String() string { return fmt.Sprintf("%v\t%d\t%d", b.chr, b.start, b.end) }

// StrandedBed3 is a Bed3 with a strand.
type StrandedBed3[C cmp.Ordered] struct {
	Bed3[C]
	strand Strand
}

func NewStrandedBed3[C cmp.Ordered](chr C, start, end int64, strand Strand) *StrandedBed3[C] {
	return &StrandedBed3[C]{Bed3: Bed3[C]{chr: chr, start: start, end: end}, strand: strand}
}

func (b *StrandedBed3[C]) Strand() Strand { return b.strand }
func (b *StrandedBed3[C]) SetStrand(s Strand) { b.strand = s }
func (b *StrandedBed3[C]) Clone() *StrandedBed3[C] {
	c := *b
	return &c
}

func (b *StrandedBed3[C]) String() string {
	return fmt.Sprintf("%v\t%d\t%d\t%s", b.chr, b.start, b.end, b.strand)
}

// Bed6 carries the name, score and strand columns of a BED6 line.
type Bed6[C cmp.Ordered] struct {
	Bed3[C]
	Name   string
	Score  float64
	strand Strand
}

func NewBed6[C cmp.Ordered](chr C, start, end int64, name string, score float64, strand Strand) *Bed6[C] {
	return &Bed6[C]{
		Bed3:   Bed3[C]{chr: chr, start: start, end: end},
		Name:   name,
		Score:  score,
		strand: strand,
	}
}

func (b *Bed6[C]) Strand() Strand { return b.strand }
func (b *Bed6[C]) SetStrand(s Strand) { b.strand = s }
func (b *Bed6[C]) Clone() *Bed6[C] {
	c := *b
	return &c
}

func (b *Bed6[C]) String() string {
	name := b.Name
	if name == "" {
		name = "."
	}
	return fmt.Sprintf("%v\t%d\t%d\t%s\t%s\t%s", b.chr, b.start, b.end, name,
		strconv.FormatFloat(b.Score, 'g', -1, 64), b.strand)
}

// BedGraph is a Bed3 with a numeric value.
type BedGraph[C cmp.Ordered] struct {
	Bed3[C]
	Score float64
}

func NewBedGraph[C cmp.Ordered](chr C, start, end int64, score float64) *BedGraph[C] {
	return &BedGraph[C]{Bed3: Bed3[C]{chr: chr, start: start, end: end}, Score: score}
}

func (b *BedGraph[C]) Clone() *BedGraph[C] {
	c := *b
	return &c
}

func (b *BedGraph[C]) String() string {
	return fmt.Sprintf("%v\t%d\t%d\t%s", b.chr, b.start, b.end,
		strconv.FormatFloat(b.Score, 'g', -1, 64))
}
