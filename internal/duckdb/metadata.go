package duckdb

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"
)

// FileFingerprint holds stat-based identity for a file.
type FileFingerprint struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// StatFile creates a FileFingerprint from an on-disk file.
func StatFile(path string) (FileFingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileFingerprint{}, err
	}
	return FileFingerprint{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

func (s *Store) ensureSources() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS interval_sources (
		table_name VARCHAR PRIMARY KEY,
		path VARCHAR,
		size BIGINT,
		mod_time BIGINT
	)`)
	return err
}

// SetSource records the file a table was loaded from.
func (s *Store) SetSource(table string, fp FileFingerprint) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO interval_sources VALUES (?, ?, ?, ?)`,
		table, fp.Path, fp.Size, fp.ModTime.UnixNano())
	if err != nil {
		return fmt.Errorf("record source of %s: %w", table, err)
	}
	return nil
}

// SourceFresh reports whether table was loaded from a file matching fp.
func (s *Store) SourceFresh(table string, fp FileFingerprint) (bool, error) {
	var (
		path    string
		size    int64
		modTime int64
	)
	err := s.db.QueryRow(`SELECT path, size, mod_time FROM interval_sources WHERE table_name=?`, table).
		Scan(&path, &size, &modTime)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup source of %s: %w", table, err)
	}
	return path == fp.Path && size == fp.Size && modTime == fp.ModTime.UnixNano(), nil
}
