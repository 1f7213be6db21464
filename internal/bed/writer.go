package bed

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/pierrec/lz4/v4"
)

// Writer writes records as tab-delimited BED lines.
type Writer struct {
	w       *bufio.Writer
	columns int
	closers []io.Closer
}

// NewWriter creates a writer emitting six columns per line.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w), columns: 6}
}

// Create opens path for writing. "-" writes stdout. Paths ending in .gz
// or .lz4 are compressed.
func Create(path string) (*Writer, error) {
	if path == "-" {
		return NewWriter(os.Stdout), nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create bed file: %w", err)
	}

	var (
		out     io.Writer = f
		closers           = []io.Closer{f}
	)
	switch {
	case strings.HasSuffix(path, ".gz"):
		zw := gzip.NewWriter(f)
		out, closers = zw, append([]io.Closer{zw}, closers...)
	case strings.HasSuffix(path, ".lz4"):
		zw := lz4.NewWriter(f)
		out, closers = zw, append([]io.Closer{zw}, closers...)
	}

	bw := NewWriter(out)
	bw.closers = closers
	return bw, nil
}

// SetColumns sets how many BED columns are written, clamped to 3..6.
func (bw *Writer) SetColumns(n int) {
	bw.columns = min(max(n, 3), 6)
}

// Write writes a single record.
func (bw *Writer) Write(rec *Record) error {
	return bw.WriteWith(rec)
}

// WriteWith writes a record followed by extra tab-separated columns.
func (bw *Writer) WriteWith(rec *Record, extra ...string) error {
	fields := append(Fields(rec, bw.columns), extra...)
	_, err := bw.w.WriteString(strings.Join(fields, "\t") + "\n")
	return err
}

// Fields renders the first columns of rec as BED fields. A nil record
// renders as placeholders.
func Fields(rec *Record, columns int) []string {
	columns = min(max(columns, 3), 6)
	if rec == nil {
		fields := []string{".", "-1", "-1", ".", "0", "."}
		return fields[:columns]
	}

	fields := make([]string, 0, 6)
	fields = append(fields,
		rec.Chr(),
		strconv.FormatInt(rec.Start(), 10),
		strconv.FormatInt(rec.End(), 10))

	if columns > 3 {
		name := rec.Name
		if name == "" {
			name = "."
		}
		fields = append(fields, name)
	}
	if columns > 4 {
		fields = append(fields, strconv.FormatFloat(rec.Score, 'g', -1, 64))
	}
	if columns > 5 {
		fields = append(fields, rec.Strand().String())
	}
	return fields
}

// Columns returns how many BED columns are written per record.
func (bw *Writer) Columns() int {
	return bw.columns
}

// WriteAll writes every record in order.
func (bw *Writer) WriteAll(recs []*Record) error {
	for _, rec := range recs {
		if err := bw.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes any buffered data.
func (bw *Writer) Flush() error {
	return bw.w.Flush()
}

// Close flushes buffered data and closes any compressor and file opened
// by Create.
func (bw *Writer) Close() error {
	if err := bw.Flush(); err != nil {
		return err
	}
	for _, c := range bw.closers {
		if err := c.Close(); err != nil {
			return err
		}
	}
	return nil
}
