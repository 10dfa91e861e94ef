// Package session persists profiling runs: the dataset profile and the
// recommendation batch produced for it, keyed by a generated id.
package session

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/wilson-adhikari/Insight-Bridge/internal/profile"
	"github.com/wilson-adhikari/Insight-Bridge/internal/recommend"
	"github.com/wilson-adhikari/Insight-Bridge/internal/timeutil"
)

// ErrNotFound is returned when a run id does not exist.
var ErrNotFound = errors.New("session run not found")

// Store wraps the sqlite database holding profiling runs.
type Store struct {
	*sql.DB
	clock timeutil.Clock
}

// Run is one stored profiling pass.
type Run struct {
	ID              string                     `json:"id"`
	Dataset         string                     `json:"dataset"`
	RowCount        int                        `json:"row_count"`
	Profile         *profile.DatasetProfile    `json:"profile"`
	Recommendations []recommend.Recommendation `json:"recommendations"`
	CreatedAt       time.Time                  `json:"created_at"`
}

// RunSummary is the listing view of a stored run.
type RunSummary struct {
	ID              string    `json:"id"`
	Dataset         string    `json:"dataset"`
	RowCount        int       `json:"row_count"`
	Recommendations int       `json:"recommendations"`
	CreatedAt       time.Time `json:"created_at"`
}

// Open opens (or creates) the store at path. Use ":memory:" for an
// ephemeral store. A nil clock means the real one.
func Open(path string, clock timeutil.Clock) (*Store, error) {
	if clock == nil {
		clock = timeutil.RealClock{}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session db: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id                    TEXT PRIMARY KEY,
			dataset               TEXT NOT NULL,
			row_count             INTEGER NOT NULL,
			profile_json          TEXT NOT NULL,
			recommendations_json  TEXT NOT NULL,
			created_at            TIMESTAMP NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create runs table: %w", err)
	}

	return &Store{DB: db, clock: clock}, nil
}

// SaveRun stores one profiling pass and returns its generated id.
func (s *Store) SaveRun(dp *profile.DatasetProfile, recs []recommend.Recommendation) (string, error) {
	profileJSON, err := json.Marshal(dp)
	if err != nil {
		return "", fmt.Errorf("failed to marshal profile: %w", err)
	}
	recsJSON, err := json.Marshal(recs)
	if err != nil {
		return "", fmt.Errorf("failed to marshal recommendations: %w", err)
	}

	id := uuid.NewString()
	_, err = s.Exec(
		`INSERT INTO runs (id, dataset, row_count, profile_json, recommendations_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, dp.Dataset, dp.RowCount, string(profileJSON), string(recsJSON),
		s.clock.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}
	return id, nil
}

// Runs lists stored runs, most recent first.
func (s *Store) Runs() ([]RunSummary, error) {
	rows, err := s.Query(
		`SELECT id, dataset, row_count, recommendations_json, created_at
		 FROM runs ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var rs RunSummary
		var recsJSON string
		if err := rows.Scan(&rs.ID, &rs.Dataset, &rs.RowCount, &recsJSON, &rs.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		var recs []recommend.Recommendation
		if err := json.Unmarshal([]byte(recsJSON), &recs); err != nil {
			return nil, fmt.Errorf("corrupt recommendations for run %s: %w", rs.ID, err)
		}
		rs.Recommendations = len(recs)
		out = append(out, rs)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Run fetches one stored run by id.
func (s *Store) Run(id string) (*Run, error) {
	var r Run
	var profileJSON, recsJSON string
	err := s.QueryRow(
		`SELECT id, dataset, row_count, profile_json, recommendations_json, created_at
		 FROM runs WHERE id = ?`, id,
	).Scan(&r.ID, &r.Dataset, &r.RowCount, &profileJSON, &recsJSON, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch run: %w", err)
	}

	if err := json.Unmarshal([]byte(profileJSON), &r.Profile); err != nil {
		return nil, fmt.Errorf("corrupt profile for run %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(recsJSON), &r.Recommendations); err != nil {
		return nil, fmt.Errorf("corrupt recommendations for run %s: %w", id, err)
	}
	return &r, nil
}

// DeleteRun removes a stored run. Deleting a missing id returns
// ErrNotFound.
func (s *Store) DeleteRun(id string) error {
	res, err := s.Exec(`DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("run %q: %w", id, ErrNotFound)
	}
	return nil
}
