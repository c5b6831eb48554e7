// Package sqlite provides the durable game-state store. Saves are an
// optimistic compare-and-swap on updated_at, so concurrent actions against
// the same game id serialize at this boundary: the stale writer receives
// store.ErrConflict and nothing is partially applied.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"baseball-games-service/internal/domain/games"
	"baseball-games-service/internal/store"
	"baseball-games-service/internal/store/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed persistence for game states.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a game-state SQLite store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	s := &Store{sqlDB: sqlDB}
	if err := applyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return s, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// GetGame loads one game state by id.
func (s *Store) GetGame(ctx context.Context, id string) (games.GameState, error) {
	if err := ctx.Err(); err != nil {
		return games.GameState{}, err
	}
	if s == nil || s.sqlDB == nil {
		return games.GameState{}, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return games.GameState{}, fmt.Errorf("game id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, status, home_team, away_team, start_time, current_inning, current_half,
       outs, home_score, away_score, home_inning_scores, away_inning_scores,
       notes, started_at, ended_at, updated_at
FROM game_states
WHERE id = ?
`, id)
	state, err := scanGameState(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return games.GameState{}, store.ErrNotFound
		}
		return games.GameState{}, fmt.Errorf("get game state: %w", err)
	}
	return state, nil
}

// CreateGame inserts a new game state. store.ErrAlreadyExists reports a
// taken id.
func (s *Store) CreateGame(ctx context.Context, state games.GameState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	normalized, err := normalizeGameState(state)
	if err != nil {
		return err
	}
	homeScores, awayScores, err := encodeInningScores(normalized)
	if err != nil {
		return err
	}

	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO game_states (
	id, status, home_team, away_team, start_time, current_inning, current_half,
	outs, home_score, away_score, home_inning_scores, away_inning_scores,
	notes, started_at, ended_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
		normalized.ID,
		string(normalized.Status),
		normalized.HomeTeam,
		normalized.AwayTeam,
		toMillis(normalized.StartTime),
		normalized.CurrentInning,
		string(normalized.CurrentHalf),
		normalized.Outs,
		normalized.HomeScore,
		normalized.AwayScore,
		homeScores,
		awayScores,
		normalized.Notes,
		nullableMillis(normalized.StartedAt),
		nullableMillis(normalized.EndedAt),
		toMillis(normalized.UpdatedAt),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return store.ErrAlreadyExists
		}
		return fmt.Errorf("create game state: %w", err)
	}
	return nil
}

// SaveGame replaces a game's state when the stored updated_at still equals
// expect. store.ErrConflict reports a lost race, store.ErrNotFound an
// unknown id.
func (s *Store) SaveGame(ctx context.Context, state games.GameState, expect time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	normalized, err := normalizeGameState(state)
	if err != nil {
		return err
	}
	homeScores, awayScores, err := encodeInningScores(normalized)
	if err != nil {
		return err
	}

	result, err := s.sqlDB.ExecContext(ctx, `
UPDATE game_states
SET status = ?, home_team = ?, away_team = ?, start_time = ?, current_inning = ?,
    current_half = ?, outs = ?, home_score = ?, away_score = ?,
    home_inning_scores = ?, away_inning_scores = ?, notes = ?,
    started_at = ?, ended_at = ?, updated_at = ?
WHERE id = ? AND updated_at = ?
`,
		string(normalized.Status),
		normalized.HomeTeam,
		normalized.AwayTeam,
		toMillis(normalized.StartTime),
		normalized.CurrentInning,
		string(normalized.CurrentHalf),
		normalized.Outs,
		normalized.HomeScore,
		normalized.AwayScore,
		homeScores,
		awayScores,
		normalized.Notes,
		nullableMillis(normalized.StartedAt),
		nullableMillis(normalized.EndedAt),
		toMillis(normalized.UpdatedAt),
		normalized.ID,
		toMillis(expect),
	)
	if err != nil {
		return fmt.Errorf("save game state: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("save game state rows affected: %w", err)
	}
	if affected == 0 {
		exists, existsErr := s.gameExists(ctx, normalized.ID)
		if existsErr != nil {
			return existsErr
		}
		if exists {
			return store.ErrConflict
		}
		return store.ErrNotFound
	}
	return nil
}

// ListGames returns every stored state sorted by id.
func (s *Store) ListGames(ctx context.Context) ([]games.GameState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, status, home_team, away_team, start_time, current_inning, current_half,
       outs, home_score, away_score, home_inning_scores, away_inning_scores,
       notes, started_at, ended_at, updated_at
FROM game_states
ORDER BY id ASC
`)
	if err != nil {
		return nil, fmt.Errorf("list game states: %w", err)
	}
	defer rows.Close()

	var states []games.GameState
	for rows.Next() {
		state, scanErr := scanGameState(rows.Scan)
		if scanErr != nil {
			return nil, fmt.Errorf("scan game state row: %w", scanErr)
		}
		states = append(states, state)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate game state rows: %w", err)
	}
	return states, nil
}

func (s *Store) gameExists(ctx context.Context, id string) (bool, error) {
	var found int
	err := s.sqlDB.QueryRowContext(ctx, "SELECT 1 FROM game_states WHERE id = ?", id).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check game state exists: %w", err)
	}
	return true, nil
}

type scanner func(dest ...any) error

func normalizeGameState(state games.GameState) (games.GameState, error) {
	state.ID = strings.TrimSpace(state.ID)
	state.HomeTeam = strings.TrimSpace(state.HomeTeam)
	state.AwayTeam = strings.TrimSpace(state.AwayTeam)
	if state.ID == "" {
		return games.GameState{}, fmt.Errorf("game id is required")
	}
	if state.Status == "" {
		return games.GameState{}, fmt.Errorf("game status is required")
	}
	if state.UpdatedAt.IsZero() {
		return games.GameState{}, fmt.Errorf("updated_at is required")
	}
	state.StartTime = state.StartTime.UTC()
	state.UpdatedAt = state.UpdatedAt.UTC()
	if state.StartedAt != nil {
		started := state.StartedAt.UTC()
		state.StartedAt = &started
	}
	if state.EndedAt != nil {
		ended := state.EndedAt.UTC()
		state.EndedAt = &ended
	}
	return state, nil
}

func encodeInningScores(state games.GameState) (string, string, error) {
	home := state.HomeInningScores
	if home == nil {
		home = []int{}
	}
	away := state.AwayInningScores
	if away == nil {
		away = []int{}
	}
	homeJSON, err := json.Marshal(home)
	if err != nil {
		return "", "", fmt.Errorf("encode home inning scores: %w", err)
	}
	awayJSON, err := json.Marshal(away)
	if err != nil {
		return "", "", fmt.Errorf("encode away inning scores: %w", err)
	}
	return string(homeJSON), string(awayJSON), nil
}

func decodeInningScores(value string) ([]int, error) {
	if strings.TrimSpace(value) == "" {
		return []int{}, nil
	}
	var scores []int
	if err := json.Unmarshal([]byte(value), &scores); err != nil {
		return nil, fmt.Errorf("decode inning scores: %w", err)
	}
	if scores == nil {
		scores = []int{}
	}
	return scores, nil
}

func scanGameState(scan scanner) (games.GameState, error) {
	var (
		state      games.GameState
		status     string
		half       string
		startTime  int64
		homeScores string
		awayScores string
		startedAt  sql.NullInt64
		endedAt    sql.NullInt64
		updatedAt  int64
	)
	if err := scan(
		&state.ID,
		&status,
		&state.HomeTeam,
		&state.AwayTeam,
		&startTime,
		&state.CurrentInning,
		&half,
		&state.Outs,
		&state.HomeScore,
		&state.AwayScore,
		&homeScores,
		&awayScores,
		&state.Notes,
		&startedAt,
		&endedAt,
		&updatedAt,
	); err != nil {
		return games.GameState{}, err
	}

	state.Status = games.GameStatus(status)
	state.CurrentHalf = games.Half(half)
	state.StartTime = fromMillis(startTime)
	state.UpdatedAt = fromMillis(updatedAt)
	if startedAt.Valid {
		value := fromMillis(startedAt.Int64)
		state.StartedAt = &value
	}
	if endedAt.Valid {
		value := fromMillis(endedAt.Int64)
		state.EndedAt = &value
	}

	home, err := decodeInningScores(homeScores)
	if err != nil {
		return games.GameState{}, err
	}
	away, err := decodeInningScores(awayScores)
	if err != nil {
		return games.GameState{}, err
	}
	state.HomeInningScores = home
	state.AwayInningScores = away
	return state, nil
}

func nullableMillis(value *time.Time) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: toMillis(*value), Valid: true}
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	value := strings.ToLower(err.Error())
	return strings.Contains(value, "unique constraint failed")
}
