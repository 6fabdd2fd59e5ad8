package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"time"

	"github.com/dasdy/gridfit/logging"
	"github.com/dasdy/gridfit/model"

	_ "github.com/mattn/go-sqlite3"
)

var logCtx = logging.PackageCtx("db")

// FavoritesKey is the settings key holding the favorites JSON array.
const FavoritesKey = "fm-ui-favorites"

type SQLiteStorage struct {
	db *sql.DB
}

func NewStorage(db *sql.DB) *SQLiteStorage {
	return &SQLiteStorage{db}
}

func InitDBStorage(db *sql.DB) error {
	statements := []string{
		`create table if not exists settings(key text primary key, value text not null);`,
		`create table if not exists visits(tab text not null, subscreen text not null, ts datetime not null);`,
		`create index if not exists visits_tsix on visits (ts ASC);`,
	}

	for _, sqlStmt := range statements {
		if _, err := db.Exec(sqlStmt); err != nil {
			slog.ErrorContext(logCtx, "Could not init storage", "statement", sqlStmt, "error", err)

			return fmt.Errorf("could not execute %q: %w", sqlStmt, err)
		}
	}

	return nil
}

func NewStorageFromPath(path string) (*SQLiteStorage, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}

	// every connection to :memory: is a separate database
	conn.SetMaxOpenConns(1)

	if err := InitDBStorage(conn); err != nil {
		conn.Close()

		return nil, err
	}

	return NewStorage(conn), nil
}

func ConnectDB(path string) (Storage, error) {
	return NewStorageFromPath(path)
}

func (s *SQLiteStorage) StoreVisit(screen model.ScreenID) error {
	_, err := s.db.Exec(`insert into visits(tab, subscreen, ts)
	    values(?, ?, datetime('now', 'subsec'))`,
		screen.Tab, screen.Subscreen)
	if err != nil {
		return fmt.Errorf("could not store visit to %s: %w", screen, err)
	}

	return nil
}

func (s *SQLiteStorage) StoreVisitAt(screen model.ScreenID, ts time.Time) error {
	_, err := s.db.Exec(`insert into visits(tab, subscreen, ts) values(?, ?, ?)`,
		screen.Tab, screen.Subscreen, ts.UTC())
	if err != nil {
		return fmt.Errorf("could not store visit to %s: %w", screen, err)
	}

	return nil
}

// AllVisits returns every visit ordered by time. Rows are read eagerly so the
// connection is free again by the time the caller iterates.
func (s *SQLiteStorage) AllVisits() (iter.Seq[model.Visit], error) {
	rows, err := s.db.Query(
		`select tab, subscreen, ts
        from visits
        order by ts, rowid`)
	if err != nil {
		return nil, fmt.Errorf("could not query visits: %w", err)
	}
	defer rows.Close()

	visits := make([]model.Visit, 0)

	for rows.Next() {
		var v model.Visit

		if err := rows.Scan(&v.Screen.Tab, &v.Screen.Subscreen, &v.Timestamp); err != nil {
			return nil, fmt.Errorf("could not scan visit: %w", err)
		}

		visits = append(visits, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not read visits: %w", err)
	}

	return slices.Values(visits), nil
}

// LoadFavorites reads the favorites list. A missing or corrupt value is
// treated as an empty list; entries that are not tab/subscreen are dropped.
func (s *SQLiteStorage) LoadFavorites() ([]model.ScreenID, error) {
	var raw string

	err := s.db.QueryRow(`select value from settings where key = ?`, FavoritesKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return []model.ScreenID{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("could not read favorites: %w", err)
	}

	var entries []string
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		slog.WarnContext(logCtx, "Corrupt favorites, starting empty", "key", FavoritesKey, "error", err)

		return []model.ScreenID{}, nil
	}

	result := make([]model.ScreenID, 0, len(entries))

	for _, entry := range entries {
		id, err := model.ParseScreenID(entry)
		if err != nil {
			slog.WarnContext(logCtx, "Dropping malformed favorite", "entry", entry, "error", err)

			continue
		}

		result = append(result, id)
	}

	return result, nil
}

func (s *SQLiteStorage) SaveFavorites(favorites []model.ScreenID) error {
	entries := make([]string, 0, len(favorites))
	for _, f := range favorites {
		entries = append(entries, f.String())
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("could not encode favorites: %w", err)
	}

	_, err = s.db.Exec(`insert into settings(key, value) values(?, ?)
	    on conflict(key) do update set value = excluded.value`,
		FavoritesKey, string(raw))
	if err != nil {
		return fmt.Errorf("could not store favorites: %w", err)
	}

	return nil
}

// Merge copies the visits of every input into output and stores the union of
// their favorites.
func Merge(inputs []*SQLiteStorage, output *SQLiteStorage) error {
	favorites := make([]model.ScreenID, 0)

	for i, in := range inputs {
		visits, err := in.AllVisits()
		if err != nil {
			return fmt.Errorf("could not read input %d: %w", i, err)
		}

		for v := range visits {
			if err := output.StoreVisitAt(v.Screen, v.Timestamp); err != nil {
				return err
			}
		}

		saved, err := in.LoadFavorites()
		if err != nil {
			return fmt.Errorf("could not read favorites of input %d: %w", i, err)
		}

		for _, id := range saved {
			if !slices.Contains(favorites, id) {
				favorites = append(favorites, id)
			}
		}
	}

	return output.SaveFavorites(favorites)
}

func (s *SQLiteStorage) Close() {
	if err := s.db.Close(); err != nil {
		slog.ErrorContext(logCtx, "Could not close storage", "error", err)
	}
}
