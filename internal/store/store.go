// Package store keeps named seed-set snapshots in a SQLite database so a
// diagram can be rendered again without fixing the random seed.
//
// Each snapshot is the packed seed buffer exactly as it is uploaded for
// rendering, together with its capacity and active count.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gogpu/voronoi"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no snapshot has the requested name.
var ErrNotFound = errors.New("store: snapshot not found")

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
    name       TEXT PRIMARY KEY,
    capacity   INTEGER NOT NULL,
    active     INTEGER NOT NULL,
    created_at INTEGER NOT NULL,  -- UnixNano
    packed     BLOB NOT NULL
);
`

// Info describes a stored snapshot without its seed data.
type Info struct {
	Name     string
	Capacity int
	Active   int
	Created  time.Time
}

// Store is a snapshot database. It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("store: create directory: %w", err)
	}

	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: connect: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}
	voronoi.Logger().Debug("store: opened", "path", path)
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores buf under name, replacing any snapshot with that name.
func (s *Store) Save(ctx context.Context, name string, buf *voronoi.PackedBuffer) error {
	if name == "" {
		return errors.New("store: empty snapshot name")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO snapshots (name, capacity, active, created_at, packed)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			capacity = excluded.capacity,
			active = excluded.active,
			created_at = excluded.created_at,
			packed = excluded.packed`,
		name, buf.Capacity(), buf.ActiveCount(), time.Now().UnixNano(), buf.Bytes())
	if err != nil {
		return fmt.Errorf("store: save %q: %w", name, err)
	}
	voronoi.Logger().Debug("store: saved", "name", name, "active", buf.ActiveCount())
	return nil
}

// Load returns the packed buffer stored under name.
func (s *Store) Load(ctx context.Context, name string) (*voronoi.PackedBuffer, error) {
	var (
		capacity, active int
		packed           []byte
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT capacity, active, packed FROM snapshots WHERE name = ?", name).
		Scan(&capacity, &active, &packed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("store: load %q: %w", name, err)
	}
	buf, err := voronoi.FromBytes(packed, capacity, active)
	if err != nil {
		return nil, fmt.Errorf("store: load %q: %w", name, err)
	}
	return buf, nil
}

// List returns all snapshots, newest first.
func (s *Store) List(ctx context.Context) ([]Info, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, capacity, active, created_at FROM snapshots ORDER BY created_at DESC, name")
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	defer rows.Close()

	var out []Info
	for rows.Next() {
		var (
			info Info
			ts   int64
		)
		if err := rows.Scan(&info.Name, &info.Capacity, &info.Active, &ts); err != nil {
			return nil, fmt.Errorf("store: list: %w", err)
		}
		info.Created = time.Unix(0, ts)
		out = append(out, info)
	}
	return out, rows.Err()
}

// Delete removes the snapshot stored under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM snapshots WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("store: delete %q: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return nil
}
