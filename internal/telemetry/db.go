// Package telemetry records finished turns and runs for offline analysis.
// Storage here is reporting-only: a run is always replayable from its seed
// and policy, so nothing in this package is ever read back into the
// simulation.
package telemetry

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/manorsim/internal/sim"
)

// DB wraps a SQLite connection for run telemetry.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a telemetry database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		seed TEXT NOT NULL,
		policy_id TEXT NOT NULL,
		started_at TEXT NOT NULL,
		finished_at TEXT,
		turns_played INTEGER NOT NULL DEFAULT 0,
		game_over INTEGER NOT NULL DEFAULT 0,
		game_over_reason TEXT NOT NULL DEFAULT '',
		final_population INTEGER,
		final_coin INTEGER,
		final_bushels INTEGER,
		final_unrest INTEGER,
		projects_completed INTEGER
	);

	CREATE TABLE IF NOT EXISTS turn_reports (
		run_id TEXT NOT NULL,
		turn_index INTEGER NOT NULL,
		population INTEGER NOT NULL,
		coin INTEGER NOT NULL,
		bushels INTEGER NOT NULL,
		unrest INTEGER NOT NULL,
		deaths INTEGER NOT NULL,
		runaways INTEGER NOT NULL,
		report_json TEXT NOT NULL,
		PRIMARY KEY (run_id, turn_index)
	);

	CREATE INDEX IF NOT EXISTS idx_turn_reports_run ON turn_reports(run_id);
	CREATE INDEX IF NOT EXISTS idx_runs_seed ON runs(seed);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// BeginRun registers a run and returns its telemetry id.
func (db *DB) BeginRun(seed, policyID string) (string, error) {
	runID := uuid.NewString()
	_, err := db.conn.Exec(
		"INSERT INTO runs (run_id, seed, policy_id, started_at) VALUES (?, ?, ?, ?)",
		runID, seed, policyID, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("begin run: %w", err)
	}
	return runID, nil
}

// RecordTurn stores one applied turn's report alongside the headline
// numbers of the state it produced.
func (db *DB) RecordTurn(runID string, report *sim.TurnReport, st *sim.RunState) error {
	raw, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	_, err = db.conn.Exec(`INSERT OR REPLACE INTO turn_reports
		(run_id, turn_index, population, coin, bushels, unrest, deaths, runaways, report_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, report.TurnIndex,
		st.Manor.Population, st.Manor.Coin, st.Manor.BushelsStored, st.Manor.Unrest,
		report.PopChange.Deaths, report.PopChange.Runaways,
		string(raw),
	)
	if err != nil {
		return fmt.Errorf("insert turn %d: %w", report.TurnIndex, err)
	}
	return nil
}

// FinishRun stamps the run row with its outcome.
func (db *DB) FinishRun(runID string, st *sim.RunState) error {
	gameOver := 0
	if st.GameOver {
		gameOver = 1
	}
	_, err := db.conn.Exec(`UPDATE runs SET
		finished_at = ?, turns_played = ?, game_over = ?, game_over_reason = ?,
		final_population = ?, final_coin = ?, final_bushels = ?, final_unrest = ?,
		projects_completed = ?
		WHERE run_id = ?`,
		time.Now().UTC().Format(time.RFC3339), len(st.Log), gameOver, st.GameOverReason,
		st.Manor.Population, st.Manor.Coin, st.Manor.BushelsStored, st.Manor.Unrest,
		st.Manor.Construction.Completed,
		runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	slog.Info("run recorded", "run_id", runID, "turns", len(st.Log), "game_over", st.GameOver)
	return nil
}

// RunSummary is one row of the runs table.
type RunSummary struct {
	RunID          string `db:"run_id"`
	Seed           string `db:"seed"`
	PolicyID       string `db:"policy_id"`
	TurnsPlayed    int    `db:"turns_played"`
	GameOver       bool   `db:"game_over"`
	GameOverReason string `db:"game_over_reason"`
}

// RecentRuns returns the most recently started runs.
func (db *DB) RecentRuns(limit int) ([]RunSummary, error) {
	var runs []RunSummary
	err := db.conn.Select(&runs,
		`SELECT run_id, seed, policy_id, turns_played, game_over, game_over_reason
		 FROM runs ORDER BY started_at DESC, run_id DESC LIMIT ?`,
		limit,
	)
	return runs, err
}

// TurnReports reads back a run's reports in turn order.
func (db *DB) TurnReports(runID string) ([]sim.TurnReport, error) {
	var rows []string
	err := db.conn.Select(&rows,
		"SELECT report_json FROM turn_reports WHERE run_id = ? ORDER BY turn_index",
		runID,
	)
	if err != nil {
		return nil, err
	}
	reports := make([]sim.TurnReport, 0, len(rows))
	for _, raw := range rows {
		var r sim.TurnReport
		if err := json.Unmarshal([]byte(raw), &r); err != nil {
			return nil, fmt.Errorf("decode report: %w", err)
		}
		reports = append(reports, r)
	}
	return reports, nil
}
