package output

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "modernc.org/sqlite" // driver: sqlite

	"github.com/okian/teambalancer/internal/domain/model"
)

const schemaSQLite = `
CREATE TABLE cohort (
  run_id TEXT PRIMARY KEY,
  count INTEGER NOT NULL,
  median_score REAL NOT NULL
);

CREATE TABLE players (
  name TEXT PRIMARY KEY,
  score REAL NOT NULL,
  basis TEXT NOT NULL
);

CREATE TABLE seasons (
  player TEXT NOT NULL REFERENCES players(name) ON DELETE CASCADE,
  seq INTEGER NOT NULL,
  tier TEXT NOT NULL,
  division INTEGER NOT NULL,
  points INTEGER NOT NULL,
  PRIMARY KEY (player, seq)
);

CREATE TABLE skipped (
  seq INTEGER PRIMARY KEY,
  player TEXT NOT NULL
);
`

// SQLiteCodec writes the cohort into a fresh SQLite database file.
type SQLiteCodec struct{}

func (SQLiteCodec) Extension() string { return "sqlite" }

func openSQLite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Write replaces any database left at path by an earlier run.
func (SQLiteCodec) Write(ctx context.Context, path string, c model.Cohort) (err error) {
	if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
		return rmErr
	}
	db, err := openSQLite(ctx, path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); err == nil {
			err = cerr
		}
	}()

	if _, err := db.ExecContext(ctx, schemaSQLite); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT INTO cohort (run_id, count, median_score) VALUES (?, ?, ?)`,
		c.RunID, c.Count, c.MedianScore); err != nil {
		return fmt.Errorf("insert cohort: %w", err)
	}
	for name, p := range c.Players {
		if _, err := tx.ExecContext(ctx, `INSERT INTO players (name, score, basis) VALUES (?, ?, ?)`,
			name, p.Score.Value, string(p.Score.Basis)); err != nil {
			return fmt.Errorf("insert player %s: %w", name, err)
		}
		for i, r := range p.History {
			if _, err := tx.ExecContext(ctx, `INSERT INTO seasons (player, seq, tier, division, points) VALUES (?, ?, ?, ?, ?)`,
				name, i, string(r.Tier), r.Division, r.Points); err != nil {
				return fmt.Errorf("insert season %d for %s: %w", i, name, err)
			}
		}
	}
	for i, name := range c.Skipped {
		if _, err := tx.ExecContext(ctx, `INSERT INTO skipped (seq, player) VALUES (?, ?)`, i, name); err != nil {
			return fmt.Errorf("insert skipped %s: %w", name, err)
		}
	}
	return tx.Commit()
}

func (SQLiteCodec) Read(ctx context.Context, path string) (_ model.Cohort, err error) {
	if _, err := os.Stat(path); err != nil {
		return model.Cohort{}, err
	}
	db, err := openSQLite(ctx, path)
	if err != nil {
		return model.Cohort{}, err
	}
	defer func() {
		if cerr := db.Close(); err == nil {
			err = cerr
		}
	}()

	c := model.Cohort{Players: make(map[string]model.Player)}
	row := db.QueryRowContext(ctx, `SELECT run_id, count, median_score FROM cohort`)
	if err := row.Scan(&c.RunID, &c.Count, &c.MedianScore); err != nil {
		return model.Cohort{}, fmt.Errorf("read cohort: %w", err)
	}

	rows, err := db.QueryContext(ctx, `SELECT name, score, basis FROM players`)
	if err != nil {
		return model.Cohort{}, err
	}
	for rows.Next() {
		var p model.Player
		var basis string
		if err := rows.Scan(&p.ID, &p.Score.Value, &basis); err != nil {
			_ = rows.Close()
			return model.Cohort{}, err
		}
		p.Score.Basis = model.Basis(basis)
		c.Players[p.ID] = p
	}
	if err := rows.Close(); err != nil {
		return model.Cohort{}, err
	}
	if err := rows.Err(); err != nil {
		return model.Cohort{}, err
	}

	rows, err = db.QueryContext(ctx, `SELECT player, tier, division, points FROM seasons ORDER BY player, seq`)
	if err != nil {
		return model.Cohort{}, err
	}
	for rows.Next() {
		var name, tier string
		var r model.RankRecord
		if err := rows.Scan(&name, &tier, &r.Division, &r.Points); err != nil {
			_ = rows.Close()
			return model.Cohort{}, err
		}
		r.Tier = model.Tier(tier)
		p := c.Players[name]
		p.History = append(p.History, r)
		p.Current = r
		c.Players[name] = p
	}
	if err := rows.Close(); err != nil {
		return model.Cohort{}, err
	}
	if err := rows.Err(); err != nil {
		return model.Cohort{}, err
	}

	rows, err = db.QueryContext(ctx, `SELECT player FROM skipped ORDER BY seq`)
	if err != nil {
		return model.Cohort{}, err
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return model.Cohort{}, err
		}
		c.Skipped = append(c.Skipped, name)
	}
	return c, rows.Err()
}
