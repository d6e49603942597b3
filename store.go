package docsite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const snippetRadius = 40

// Store wraps a SQLite database holding the search index.
type Store struct {
	db         *sql.DB
	codeBlocks bool
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema. Code block text is indexed only
// when codeBlocks is set.
func NewStore(path string, codeBlocks bool) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets searches proceed while a reindex transaction is open.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db, codeBlocks: codeBlocks}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS pages (
    url TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    body TEXT NOT NULL,
    code TEXT NOT NULL DEFAULT '',
    position INTEGER NOT NULL
);
`)
	return err
}

// Index replaces the whole index with pages in a single transaction.
func (s *Store) Index(ctx context.Context, pages []Page) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM pages`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO pages (url, title, body, code, position) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, p := range pages {
		code := ""
		if s.codeBlocks {
			code = p.Code
		}
		if _, err := stmt.ExecContext(ctx, p.URL, p.Title, p.Text, code, i); err != nil {
			return fmt.Errorf("index %s: %w", p.URL, err)
		}
	}
	return tx.Commit()
}

// Count returns the number of indexed pages.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pages`).Scan(&n)
	return n, err
}

// Search returns pages whose title, text or (when enabled) code contains
// query, case-insensitively. Title matches come first, then navigation order.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]SearchHit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}
	pattern := "%" + escapeLike(query) + "%"
	rows, err := s.db.QueryContext(ctx, `
SELECT url, title, body, code FROM pages
WHERE title LIKE ?1 ESCAPE '\' OR body LIKE ?1 ESCAPE '\' OR code LIKE ?1 ESCAPE '\'
ORDER BY (title LIKE ?1 ESCAPE '\') DESC, position
LIMIT ?2`, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hits []SearchHit
	for rows.Next() {
		var url, title, body, code string
		if err := rows.Scan(&url, &title, &body, &code); err != nil {
			return nil, err
		}
		snippet, ok := snippetAround(body, query)
		if !ok {
			snippet, _ = snippetAround(code, query)
		}
		if snippet == "" {
			snippet, _ = snippetAround(body, "")
		}
		hits = append(hits, SearchHit{URL: url, Title: title, Snippet: snippet})
	}
	return hits, rows.Err()
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// snippetAround returns up to snippetRadius runes either side of the first
// case-insensitive occurrence of query. An empty query yields the text start.
func snippetAround(text, query string) (string, bool) {
	if text == "" {
		return "", false
	}
	runes := []rune(text)
	lower := []rune(strings.ToLower(text))
	q := []rune(strings.ToLower(query))

	at := indexRunes(lower, q)
	if at < 0 {
		if len(q) > 0 {
			return "", false
		}
		at = 0
	}
	start := max(at-snippetRadius, 0)
	end := min(at+len(q)+snippetRadius, len(runes))
	out := strings.TrimSpace(string(runes[start:end]))
	if start > 0 {
		out = "…" + out
	}
	if end < len(runes) {
		out += "…"
	}
	return strings.Join(strings.Fields(out), " "), true
}

func indexRunes(s, sub []rune) int {
	if len(sub) == 0 {
		return -1
	}
outer:
	for i := 0; i+len(sub) <= len(s); i++ {
		for j := range sub {
			if s[i+j] != sub[j] {
				continue outer
			}
		}
		return i
	}
	return -1
}
