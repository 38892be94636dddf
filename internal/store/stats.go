package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath       string     `json:"db_path"`
	DBSizeBytes  int64      `json:"db_size_bytes"`
	TotalKeys    int        `json:"total_keys"`
	TotalHistory int        `json:"total_history"`
	Keys         []KeyStats `json:"keys"`
}

// KeyStats holds per-key counts.
type KeyStats struct {
	Key      string `json:"key"`
	Versions int    `json:"versions"`
	Bytes    int    `json:"bytes"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM settings`).Scan(&st.TotalKeys)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM settings_history`).Scan(&st.TotalHistory)

	rows, err := s.db.QueryContext(ctx, `
		SELECT key, version, LENGTH(value) FROM settings ORDER BY key`)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var ks KeyStats
		rows.Scan(&ks.Key, &ks.Versions, &ks.Bytes)
		st.Keys = append(st.Keys, ks)
	}

	return st, nil
}
