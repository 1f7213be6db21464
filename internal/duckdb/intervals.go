package duckdb

import (
	"context"
	"database/sql/driver"
	"fmt"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/inodb/vibe-bed/internal/bed"
	"github.com/inodb/vibe-bed/internal/interval"
)

// WriteIntervals batch-inserts records into table using the Appender API,
// creating the table if needed.
func (s *Store) WriteIntervals(table string, records []*bed.Record) error {
	if err := s.ensureTable(table); err != nil {
		return fmt.Errorf("create table %s: %w", table, err)
	}
	if len(records) == 0 {
		return nil
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", table)
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for _, r := range records {
		if err := appender.AppendRow(
			r.Chr(), r.Start(), r.End(), r.Name, r.Score, int8(r.Strand()),
		); err != nil {
			return fmt.Errorf("append interval: %w", err)
		}
	}

	return appender.Flush()
}

// ClearIntervals removes every record from table.
func (s *Store) ClearIntervals(table string) error {
	if err := s.ensureTable(table); err != nil {
		return err
	}
	_, err := s.db.Exec("DELETE FROM " + table)
	return err
}

// LoadIntervals reads every record of table ordered by chromosome, start,
// end and strand.
func (s *Store) LoadIntervals(table string) ([]*bed.Record, error) {
	if err := s.ensureTable(table); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(`SELECT chrom, start, end_, name, score, strand
		FROM ` + table + `
		ORDER BY chrom, start, end_, strand`)
	if err != nil {
		return nil, fmt.Errorf("query intervals: %w", err)
	}
	defer rows.Close()

	return scanIntervals(rows)
}

// QueryIntervals returns the records of table overlapping the half-open
// range [start, end) on chrom.
func (s *Store) QueryIntervals(table, chrom string, start, end int64) ([]*bed.Record, error) {
	if err := s.ensureTable(table); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(`SELECT chrom, start, end_, name, score, strand
		FROM `+table+`
		WHERE chrom=? AND start < ? AND end_ > ?
		ORDER BY start, end_, strand`, chrom, end, start)
	if err != nil {
		return nil, fmt.Errorf("query region: %w", err)
	}
	defer rows.Close()

	return scanIntervals(rows)
}

// scanIntervals scans rows into records.
func scanIntervals(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]*bed.Record, error) {
	var out []*bed.Record
	for rows.Next() {
		var (
			chrom, name string
			start, end  int64
			score       float64
			strand      int8
		)
		if err := rows.Scan(&chrom, &start, &end, &name, &score, &strand); err != nil {
			return nil, fmt.Errorf("scan interval: %w", err)
		}
		out = append(out, interval.NewBed6(chrom, start, end, name, score, interval.Strand(strand)))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate intervals: %w", err)
	}
	return out, nil
}
