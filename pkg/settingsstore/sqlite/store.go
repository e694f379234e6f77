package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"codeberg.org/miketth/audiodeck/pkg/settingsstore/sqlite/migrations"
)

// Store keeps settings blobs in a sqlite database, one row per button
// context.
type Store struct {
	db *sql.DB
}

func NewStore(filename string, log *zap.SugaredLogger) (*Store, error) {
	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := migrations.Migrate(db, log); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Get(context string) (json.RawMessage, error) {
	var settings []byte
	err := s.db.QueryRow(
		`SELECT settings FROM button_settings WHERE context = ?`,
		context,
	).Scan(&settings)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("sqlite select: %w", err)
	}

	return settings, nil
}

func (s *Store) Set(context string, settings json.RawMessage) error {
	_, err := s.db.Exec(
		`INSERT INTO button_settings (context, settings) VALUES (?, ?)
		 ON CONFLICT (context) DO UPDATE SET settings = excluded.settings`,
		context, []byte(settings),
	)
	if err != nil {
		return fmt.Errorf("sqlite upsert: %w", err)
	}

	return nil
}
