// Package index persists parsed pages in a local SQLite database and
// offers recency and full-text queries over them.
package index

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/wwdctools/wwdc-parser/pkg/types"
)

const dbFile = "wwdc.db"

const defaultMaxResults = 20

// Store manages the page index SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Open opens or creates the index database at dir/wwdc.db, creating the
// schema if it does not exist.
func Open(cfg types.IndexConfig) (*Store, error) {
	if cfg.Dir == "" {
		cfg.Dir = DefaultDir()
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// DefaultDir returns the index location: ~/.local/share/wwdc-parser,
// falling back to .wwdc-parser in the working directory.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".wwdc-parser"
	}
	return filepath.Join(home, ".local", "share", "wwdc-parser")
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS pages (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			slug TEXT NOT NULL UNIQUE,
			url TEXT NOT NULL,
			content_type TEXT NOT NULL,
			title TEXT,
			output_path TEXT,
			hash TEXT,
			parsed_at TEXT,
			content TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_pages_parsed_at ON pages(parsed_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='pages_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE pages_fts USING fts5(title, content, content=pages, content_rowid=rowid)`,
			`CREATE TRIGGER pages_ai AFTER INSERT ON pages BEGIN
				INSERT INTO pages_fts(rowid, title, content) VALUES (new.rowid, new.title, new.content);
			END`,
			`CREATE TRIGGER pages_ad AFTER DELETE ON pages BEGIN
				INSERT INTO pages_fts(pages_fts, rowid, title, content) VALUES('delete', old.rowid, old.title, old.content);
			END`,
			`CREATE TRIGGER pages_au AFTER UPDATE ON pages BEGIN
				INSERT INTO pages_fts(pages_fts, rowid, title, content) VALUES('delete', old.rowid, old.title, old.content);
				INSERT INTO pages_fts(rowid, title, content) VALUES (new.rowid, new.title, new.content);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// Put upserts a page record together with its markdown content for
// full-text search.
func (s *Store) Put(ctx context.Context, page *types.Page, content string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO pages (slug, url, content_type, title, output_path, hash, parsed_at, content)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(slug) DO UPDATE SET
			url=excluded.url, content_type=excluded.content_type,
			title=excluded.title, output_path=excluded.output_path,
			hash=excluded.hash, parsed_at=excluded.parsed_at,
			content=excluded.content`,
		page.Slug, page.URL, string(page.ContentType), page.Title,
		page.OutputPath, page.Hash, page.ParsedAt.UTC().Format(time.RFC3339), content,
	)
	if err != nil {
		return fmt.Errorf("upserting page %s: %w", page.Slug, err)
	}
	return nil
}

// Recent returns the most recently parsed pages, newest first. A limit of
// 0 uses the configured maximum.
func (s *Store) Recent(ctx context.Context, limit int) ([]types.Page, error) {
	if limit <= 0 {
		limit = s.maxResults
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT slug, url, content_type, title, output_path, hash, parsed_at
		 FROM pages ORDER BY parsed_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying pages: %w", err)
	}
	defer rows.Close()
	return scanPages(rows)
}

// Search runs a full-text query over page titles and content, best
// matches first. A limit of 0 uses the configured maximum.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]types.Page, error) {
	if limit <= 0 {
		limit = s.maxResults
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT p.slug, p.url, p.content_type, p.title, p.output_path, p.hash, p.parsed_at
		 FROM pages_fts f JOIN pages p ON p.rowid = f.rowid
		 WHERE pages_fts MATCH ? ORDER BY f.rank LIMIT ?`,
		escapeQuery(query), limit)
	if err != nil {
		return nil, fmt.Errorf("searching pages: %w", err)
	}
	defer rows.Close()
	return scanPages(rows)
}

func scanPages(rows *sql.Rows) ([]types.Page, error) {
	var pages []types.Page
	for rows.Next() {
		var p types.Page
		var contentType, parsedAt string
		if err := rows.Scan(&p.Slug, &p.URL, &contentType, &p.Title,
			&p.OutputPath, &p.Hash, &parsedAt); err != nil {
			return nil, fmt.Errorf("scanning page: %w", err)
		}
		p.ContentType = types.ContentType(contentType)
		if t, err := time.Parse(time.RFC3339, parsedAt); err == nil {
			p.ParsedAt = t
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// escapeQuery quotes each term so FTS5 treats user input as plain words
// rather than query syntax.
func escapeQuery(query string) string {
	terms := strings.Fields(query)
	for i, t := range terms {
		terms[i] = `"` + strings.ReplaceAll(t, `"`, `""`) + `"`
	}
	return strings.Join(terms, " ")
}
