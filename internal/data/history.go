package data

import (
	"context"
	"database/sql"
	json2 "encoding/json"
	"errors"
	"time"

	"CourtsideApi/internal/engine"
)

// HistoryModel stores finished-game records. Player and event lists are kept
// as jsonb so the stored record round-trips the engine types without a
// relational mapping for every stat.
type HistoryModel struct {
	db *sql.DB
}

func (m *HistoryModel) Insert(userID int64, record *engine.Record) error {
	players, err := json2.Marshal(record.Players)
	if err != nil {
		return err
	}
	events, err := json2.Marshal(record.Events)
	if err != nil {
		return err
	}

	stmt := `
		INSERT INTO history (id, user_id, date, name, team_size, duration_seconds,
			score_us, score_them, players, events, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	args := []any{
		record.ID,
		userID,
		record.Date,
		record.Name,
		record.TeamSize,
		record.DurationSeconds,
		record.ScoreUs,
		record.ScoreThem,
		players,
		events,
		record.Notes,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err = m.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "history_pkey"`:
			return ErrEditConflict
		default:
			return err
		}
	}

	return nil
}

func (m *HistoryModel) Get(userID int64, id string) (*engine.Record, error) {
	stmt := `
		SELECT id, date, name, team_size, duration_seconds, score_us, score_them,
			players, events, notes
		FROM history
		WHERE user_id = $1 AND id = $2`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	record, err := scanRecord(m.db.QueryRowContext(ctx, stmt, userID, id))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return record, nil
}

// GetAll returns the user's records newest first.
func (m *HistoryModel) GetAll(userID int64) ([]*engine.Record, error) {
	stmt := `
		SELECT id, date, name, team_size, duration_seconds, score_us, score_them,
			players, events, notes
		FROM history
		WHERE user_id = $1
		ORDER BY date DESC, id`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := m.db.QueryContext(ctx, stmt, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*engine.Record

	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func (m *HistoryModel) Delete(userID int64, id string) error {
	stmt := `
		DELETE FROM history
		WHERE user_id = $1 AND id = $2`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	result, err := m.db.ExecContext(ctx, stmt, userID, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*engine.Record, error) {
	var record engine.Record
	var players, events []byte

	err := row.Scan(
		&record.ID,
		&record.Date,
		&record.Name,
		&record.TeamSize,
		&record.DurationSeconds,
		&record.ScoreUs,
		&record.ScoreThem,
		&players,
		&events,
		&record.Notes,
	)
	if err != nil {
		return nil, err
	}

	if err := json2.Unmarshal(players, &record.Players); err != nil {
		return nil, err
	}
	if err := json2.Unmarshal(events, &record.Events); err != nil {
		return nil, err
	}

	return &record, nil
}
