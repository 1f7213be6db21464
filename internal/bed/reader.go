// Package bed reads and writes BED interval files.
package bed

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/pierrec/lz4/v4"

	"github.com/inodb/vibe-bed/internal/interval"
)

// Record is a BED line keyed by chromosome name.
type Record = interval.Bed6[string]

var (
	gzipMagic = []byte{0x1f, 0x8b}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// Reader reads records from a BED file.
type Reader struct {
	reader     *bufio.Reader
	file       *os.File
	gzipReader *gzip.Reader
	lineNumber int
	columns    int
}

// NewReader opens a BED file. "-" reads stdin. Gzip and lz4 frame input
// is detected from the leading bytes.
func NewReader(path string) (*Reader, error) {
	if path == "-" {
		return NewReaderFromReader(os.Stdin)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bed file: %w", err)
	}

	r, err := NewReaderFromReader(file)
	if err != nil {
		file.Close()
		return nil, err
	}
	r.file = file
	return r, nil
}

// NewReaderFromReader creates a reader from an io.Reader (e.g., stdin).
func NewReaderFromReader(src io.Reader) (*Reader, error) {
	br := bufio.NewReader(src)
	magic, err := br.Peek(len(lz4Magic))
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read bed header: %w", err)
	}

	r := &Reader{}
	switch {
	case bytes.HasPrefix(magic, gzipMagic):
		r.gzipReader, err = gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		r.reader = bufio.NewReader(r.gzipReader)
	case bytes.HasPrefix(magic, lz4Magic):
		r.reader = bufio.NewReader(lz4.NewReader(br))
	default:
		r.reader = br
	}
	return r, nil
}

// Next reads the next record.
// Returns nil, nil when there are no more records.
func (r *Reader) Next() (*Record, error) {
	for {
		line, err := r.reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("read bed line: %w", err)
		}
		if line == "" && err == io.EOF {
			return nil, nil
		}
		r.lineNumber++

		line = strings.TrimRight(line, "\r\n")
		if skipLine(line) {
			if err == io.EOF {
				return nil, nil
			}
			continue
		}
		return r.parseLine(line)
	}
}

// ReadAll reads every remaining record.
func (r *Reader) ReadAll() ([]*Record, error) {
	var out []*Record
	for {
		rec, err := r.Next()
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return out, nil
		}
		out = append(out, rec)
	}
}

func skipLine(line string) bool {
	return strings.TrimSpace(line) == "" ||
		strings.HasPrefix(line, "#") ||
		strings.HasPrefix(line, "track") ||
		strings.HasPrefix(line, "browser")
}

func (r *Reader) parseLine(line string) (*Record, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 3 {
		return nil, &ParseError{
			Line:    r.lineNumber,
			Message: fmt.Sprintf("expected at least 3 columns, found %d", len(fields)),
		}
	}

	start, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil || start < 0 {
		return nil, &ParseError{Line: r.lineNumber, Message: fmt.Sprintf("invalid start: %s", fields[1])}
	}
	end, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return nil, &ParseError{Line: r.lineNumber, Message: fmt.Sprintf("invalid end: %s", fields[2])}
	}
	if start > end {
		return nil, &ParseError{Line: r.lineNumber, Message: fmt.Sprintf("start %d is after end %d", start, end)}
	}

	var (
		name   string
		score  float64
		strand interval.Strand
	)
	if len(fields) > 3 && fields[3] != "." {
		name = fields[3]
	}
	if len(fields) > 4 && fields[4] != "." {
		score, err = strconv.ParseFloat(fields[4], 64)
		if err != nil {
			return nil, &ParseError{Line: r.lineNumber, Message: fmt.Sprintf("invalid score: %s", fields[4])}
		}
	}
	if len(fields) > 5 && fields[5] != "." {
		strand, err = interval.ParseStrand(fields[5])
		if err != nil {
			return nil, &ParseError{Line: r.lineNumber, Message: err.Error()}
		}
	}

	r.columns = max(r.columns, min(len(fields), 6))
	return interval.NewBed6(fields[0], start, end, name, score, strand), nil
}

// LineNumber returns the current line number being processed.
func (r *Reader) LineNumber() int {
	return r.lineNumber
}

// Columns returns the widest BED layout seen so far, between 3 and 6.
func (r *Reader) Columns() int {
	return r.columns
}

// Close closes the reader and underlying file.
func (r *Reader) Close() error {
	if r.gzipReader != nil {
		r.gzipReader.Close()
	}
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// ParseError represents an error during BED parsing with line context.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("bed parse error at line %d: %s", e.Line, e.Message)
}
