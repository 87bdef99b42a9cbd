package store

import (
	"context"
	"database/sql"
	"errors"
	"iter"

	_ "github.com/mattn/go-sqlite3"

	wisherror "github.com/msto63/wishbrick/foundation/core/error"
	"github.com/msto63/wishbrick/internal/wishlist"
)

// SQLite keeps the session's sets in a private in-memory SQLite database.
// Nothing is written to disk; the data ends with the process.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens an empty in-memory database.
func NewSQLite() (*SQLite, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, dbError(err, "failed to open database")
	}
	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	s := &SQLite{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, dbError(err, "failed to initialize schema")
	}
	return s, nil
}

func (s *SQLite) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sets (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		set_number TEXT NOT NULL UNIQUE,
		set_name TEXT NOT NULL DEFAULT '',
		set_price TEXT NOT NULL DEFAULT '',
		set_age_group TEXT NOT NULL DEFAULT '',
		set_pieces TEXT NOT NULL DEFAULT '',
		set_description TEXT NOT NULL DEFAULT ''
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLite) Put(ctx context.Context, key string, rec wishlist.Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sets (set_number, set_name, set_price, set_age_group, set_pieces, set_description)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(set_number) DO UPDATE SET
			set_name = excluded.set_name,
			set_price = excluded.set_price,
			set_age_group = excluded.set_age_group,
			set_pieces = excluded.set_pieces,
			set_description = excluded.set_description`,
		key, rec.Name, rec.Price, rec.AgeGroup, rec.Pieces, rec.Description)
	if err != nil {
		return dbError(err, "failed to put set").WithDetail("key", key)
	}
	return nil
}

// Update runs get-merge-write in one transaction.
func (s *SQLite) Update(ctx context.Context, key string, partial wishlist.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return dbError(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	current, err := getRecord(ctx, tx, key)
	if errors.Is(err, sql.ErrNoRows) {
		return notFound("store.Update", key)
	}
	if err != nil {
		return dbError(err, "failed to read set").WithDetail("key", key)
	}

	merged := current.Merge(partial)
	_, err = tx.ExecContext(ctx, `
		UPDATE sets SET set_name = ?, set_price = ?, set_age_group = ?, set_pieces = ?, set_description = ?
		WHERE set_number = ?`,
		merged.Name, merged.Price, merged.AgeGroup, merged.Pieces, merged.Description, key)
	if err != nil {
		return dbError(err, "failed to update set").WithDetail("key", key)
	}
	if err := tx.Commit(); err != nil {
		return dbError(err, "failed to commit update")
	}
	return nil
}

func (s *SQLite) Delete(ctx context.Context, key string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sets WHERE set_number = ?`, key)
	if err != nil {
		return dbError(err, "failed to delete set").WithDetail("key", key)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound("store.Delete", key)
	}
	return nil
}

func (s *SQLite) Get(ctx context.Context, key string) (wishlist.Record, error) {
	rec, err := getRecord(ctx, s.db, key)
	if errors.Is(err, sql.ErrNoRows) {
		return wishlist.Record{}, notFound("store.Get", key)
	}
	if err != nil {
		return wishlist.Record{}, dbError(err, "failed to read set").WithDetail("key", key)
	}
	return rec, nil
}

// All streams rows ordered by insertion. The single connection is held
// until the loop ends, so the loop body must not call back into s.
func (s *SQLite) All(ctx context.Context) iter.Seq2[wishlist.Entry, error] {
	return func(yield func(wishlist.Entry, error) bool) {
		rows, err := s.db.QueryContext(ctx, `
			SELECT set_number, set_name, set_price, set_age_group, set_pieces, set_description
			FROM sets ORDER BY seq`)
		if err != nil {
			yield(wishlist.Entry{}, dbError(err, "failed to list sets"))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var e wishlist.Entry
			if err := rows.Scan(&e.Key, &e.Record.Name, &e.Record.Price, &e.Record.AgeGroup,
				&e.Record.Pieces, &e.Record.Description); err != nil {
				yield(wishlist.Entry{}, dbError(err, "failed to scan set"))
				return
			}
			if !yield(e, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(wishlist.Entry{}, dbError(err, "failed to list sets"))
		}
	}
}

func (s *SQLite) Len(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sets`).Scan(&n); err != nil {
		return 0, dbError(err, "failed to count sets")
	}
	return n, nil
}

func (s *SQLite) Snapshot(ctx context.Context) (wishlist.Collection, error) {
	return Collect(s.All(ctx))
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func getRecord(ctx context.Context, q queryRower, key string) (wishlist.Record, error) {
	var rec wishlist.Record
	err := q.QueryRowContext(ctx, `
		SELECT set_name, set_price, set_age_group, set_pieces, set_description
		FROM sets WHERE set_number = ?`, key).
		Scan(&rec.Name, &rec.Price, &rec.AgeGroup, &rec.Pieces, &rec.Description)
	return rec, err
}

func dbError(err error, msg string) *wisherror.Error {
	return wisherror.Wrap(err, msg).WithCode(wisherror.CodeDatabaseError)
}
