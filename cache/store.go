// Package cache memoizes solved rewrite-search paths in a SQLite
// database, so repeated CLI invocations with the same expression and
// cost model skip the search entirely (SPEC_FULL §3, "domain stack").
// The core package itself has no notion of this cache; it is ambient
// infrastructure cmd/simplify and cmd/simplify-server opt into.
package cache

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store handles SQLite-backed memoization of solved paths. Grounded on
// the pack's own sqlite-backed session store (pflow-xyz-go-pflow's
// examples/catacombs/storage.Store): a small schema, a migrate step run
// once at New, and plain database/sql queries — no ORM.
type Store struct {
	db *sql.DB
}

// Entry is one memoized search result.
type Entry struct {
	Key       string
	PathText  string
	Solved    bool
	TotalCost int
	CreatedAt time.Time
}

// New opens (creating if necessary) a SQLite database at path and
// ensures its schema exists.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)")
	if err != nil {
		return nil, fmt.Errorf("cache: open %s: %w", path, err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS solved_paths (
		key TEXT PRIMARY KEY,
		path_text TEXT NOT NULL,
		solved INTEGER NOT NULL,
		total_cost INTEGER NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Key builds the memoization key for an expression under a tag that
// fingerprints the search options (cmd/simplify and cmd/simplify-server
// pass a "cc<cost-ceiling>-sl<step-limit>" tag; cmd/simplify passes ""
// when both are unbounded). An empty tag yields the bare expression.
func Key(expressionText, costTag string) string {
	if costTag == "" {
		return expressionText
	}
	return expressionText + "\x1f" + costTag
}

// Get looks up a memoized entry by key. ok is false on a cache miss.
func (s *Store) Get(key string) (Entry, bool, error) {
	row := s.db.QueryRow(`SELECT path_text, solved, total_cost, created_at FROM solved_paths WHERE key = ?`, key)
	var e Entry
	var solved int
	if err := row.Scan(&e.PathText, &solved, &e.TotalCost, &e.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return Entry{}, false, nil
		}
		return Entry{}, false, fmt.Errorf("cache: get %q: %w", key, err)
	}
	e.Key = key
	e.Solved = solved != 0
	return e, true, nil
}

// Put stores (or overwrites) the memoized entry for key.
func (s *Store) Put(key, pathText string, solved bool, totalCost int) error {
	_, err := s.db.Exec(
		`INSERT INTO solved_paths (key, path_text, solved, total_cost) VALUES (?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET path_text = excluded.path_text, solved = excluded.solved, total_cost = excluded.total_cost`,
		key, pathText, boolToInt(solved), totalCost,
	)
	if err != nil {
		return fmt.Errorf("cache: put %q: %w", key, err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
