// Package storage provides SQLite-based persistence for level completions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/portfolio-drive/internal/config"
)

// AnonymousPlayer is recorded when no player name is known.
const AnonymousPlayer = "local"

// Store manages the SQLite database connection for level results.
type Store struct {
	db *sql.DB
}

// LevelResult is one completed level run.
type LevelResult struct {
	ID            int64
	Player        string
	Level         int
	Ticks         uint64 // Ticks from level start to reaching the finish
	Distance      float64
	Collisions    int
	ManualAdvance bool // Whether the player skipped the post-level delay
	CreatedAt     time.Time
}

// LevelStats contains aggregated statistics for a level.
type LevelStats struct {
	Level           int
	Completions     int
	BestTicks       uint64
	AvgTicks        float64
	TotalCollisions int64
	LastPlayed      time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := config.ExpandHome(dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS level_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL,
			level INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			distance REAL NOT NULL DEFAULT 0,
			collisions INTEGER NOT NULL DEFAULT 0,
			manual_advance INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_level_results_level ON level_results(level);
		CREATE INDEX IF NOT EXISTS idx_level_results_best ON level_results(level, ticks ASC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveLevelResult records a completed level.
// Returns the ID of the inserted record.
func (s *Store) SaveLevelResult(r LevelResult) (int64, error) {
	player := r.Player
	if player == "" {
		player = AnonymousPlayer
	}

	result, err := s.db.Exec(
		`INSERT INTO level_results (player, level, ticks, distance, collisions, manual_advance)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		player, r.Level, int64(r.Ticks), r.Distance, r.Collisions, r.ManualAdvance, //#nosec G115 -- tick counts fit in int64
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save level result: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// MarkManualAdvance flags a saved result as left through a manual advance.
func (s *Store) MarkManualAdvance(id int64) error {
	_, err := s.db.Exec("UPDATE level_results SET manual_advance = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot update level result: %w", err)
	}
	return nil
}

// BestLevelResults retrieves the fastest N completions of a level.
// Results are ordered by ticks ascending.
func (s *Store) BestLevelResults(level, limit int) ([]LevelResult, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, player, level, ticks, distance, collisions, manual_advance, created_at
		 FROM level_results
		 WHERE level = ?
		 ORDER BY ticks ASC, id ASC
		 LIMIT ?`,
		level, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level results: %w", err)
	}
	defer rows.Close()

	var results []LevelResult
	for rows.Next() {
		var r LevelResult
		var ticks int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Player, &r.Level, &ticks, &r.Distance, &r.Collisions, &r.ManualAdvance, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Ticks = uint64(ticks) //#nosec G115 -- stored ticks are never negative
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// LevelStats retrieves aggregated statistics for a level.
func (s *Store) LevelStats(level int) (*LevelStats, error) {
	stats := &LevelStats{Level: level}

	var best int64
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MIN(ticks), 0), COALESCE(AVG(ticks), 0), COALESCE(SUM(collisions), 0)
		 FROM level_results WHERE level = ?`,
		level,
	).Scan(&stats.Completions, &best, &stats.AvgTicks, &stats.TotalCollisions)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	stats.BestTicks = uint64(best) //#nosec G115 -- stored ticks are never negative

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM level_results WHERE level = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		level,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// AllLevelStats retrieves statistics for every level that has been completed.
func (s *Store) AllLevelStats() (map[int]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level, COUNT(*), MIN(ticks), AVG(ticks), SUM(collisions), MAX(created_at)
		 FROM level_results
		 GROUP BY level`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[int]*LevelStats)
	for rows.Next() {
		var ls LevelStats
		var best int64
		var lastPlayed any
		if err := rows.Scan(&ls.Level, &ls.Completions, &best, &ls.AvgTicks, &ls.TotalCollisions, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ls.BestTicks = uint64(best) //#nosec G115 -- stored ticks are never negative
		ls.LastPlayed = parseTime(lastPlayed)

		stats[ls.Level] = &ls
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ClearResults deletes all recorded level results.
func (s *Store) ClearResults() error {
	_, err := s.db.Exec("DELETE FROM level_results")
	if err != nil {
		return fmt.Errorf("storage: cannot clear level results: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
