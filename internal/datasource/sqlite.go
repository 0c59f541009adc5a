package datasource

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/vanderheijden86/wordtree/pkg/debug"
	"github.com/vanderheijden86/wordtree/pkg/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS word_frequencies (
	source    TEXT NOT NULL,
	category  TEXT NOT NULL DEFAULT '',
	word      TEXT NOT NULL,
	frequency REAL NOT NULL,
	PRIMARY KEY (source, category, word)
);
CREATE TABLE IF NOT EXISTS word_trees (
	source   TEXT NOT NULL,
	category TEXT NOT NULL DEFAULT '',
	word     TEXT NOT NULL,
	payload  TEXT NOT NULL,
	PRIMARY KEY (source, category, word)
);
CREATE INDEX IF NOT EXISTS idx_word_trees_word ON word_trees(word);
`

// SQLiteSource reads datasets imported with ImportFile.
type SQLiteSource struct {
	db   *sql.DB
	path string
}

// NewSQLiteSource opens the database at path read-only.
func NewSQLiteSource(path string) (*SQLiteSource, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrFetchFailure, err)
	}
	dsn := fmt.Sprintf("file:%s?mode=ro&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}
	return &SQLiteSource{db: db, path: path}, nil
}

// Close closes the database.
func (s *SQLiteSource) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// filterClause renders f as a WHERE clause over source and category.
func filterClause(f model.FilterCriteria) (string, []any) {
	var conds []string
	var args []any
	var sources []string
	for _, src := range f.Sources {
		if src = strings.TrimSpace(src); src != "" {
			sources = append(sources, src)
		}
	}
	if len(sources) > 0 {
		marks := make([]string, len(sources))
		for i, src := range sources {
			marks[i] = "?"
			args = append(args, strings.ToLower(src))
		}
		conds = append(conds, "lower(source) IN ("+strings.Join(marks, ",")+")")
	}
	if c := strings.TrimSpace(f.Category); c != "" {
		conds = append(conds, "lower(category) = ?")
		args = append(args, strings.ToLower(c))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// FetchFrequencies implements Source.
func (s *SQLiteSource) FetchFrequencies(ctx context.Context, f model.FilterCriteria) ([]model.FrequencyEntry, error) {
	where, args := filterClause(f)
	query := `SELECT word, SUM(frequency), MIN(rowid) AS first FROM word_frequencies` +
		where + ` GROUP BY word ORDER BY first`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: query frequencies: %v", model.ErrFetchFailure, err)
	}
	defer rows.Close()

	var out []model.FrequencyEntry
	for rows.Next() {
		var e model.FrequencyEntry
		var first int64
		if err := rows.Scan(&e.Text, &e.Frequency, &first); err != nil {
			return nil, fmt.Errorf("%w: scan frequency: %v", model.ErrFetchFailure, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrFetchFailure, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w for filter %q", model.ErrNoDataAvailable, f.Key())
	}
	return out, nil
}

// FetchTree implements Source.
func (s *SQLiteSource) FetchTree(ctx context.Context, word string, f model.FilterCriteria) (*model.TreeNode, error) {
	where, args := filterClause(f)
	if where == "" {
		where = " WHERE word = ?"
	} else {
		where += " AND word = ?"
	}
	args = append(args, word)

	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM word_trees`+where+` ORDER BY rowid LIMIT 1`, args...).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no tree for %q", model.ErrNoDataAvailable, word)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: query tree: %v", model.ErrFetchFailure, err)
	}
	return DecodeTree([]byte(payload))
}

// ImportStats summarizes an import.
type ImportStats struct {
	Datasets    int
	Frequencies int
	Trees       int
}

// ImportFile loads the JSON document at jsonPath into the database at
// dbPath, creating it if needed. Rows with the same (source, category,
// word) are replaced.
func ImportFile(ctx context.Context, dbPath, jsonPath string) (ImportStats, error) {
	f, err := os.Open(jsonPath)
	if err != nil {
		return ImportStats{}, err
	}
	defer f.Close()
	doc, err := DecodeDocument(f)
	if err != nil {
		return ImportStats{}, err
	}
	return ImportDocument(ctx, dbPath, doc)
}

// ImportDocument writes doc into the database at dbPath.
func ImportDocument(ctx context.Context, dbPath string, doc *Document) (ImportStats, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", dbPath))
	if err != nil {
		return ImportStats{}, fmt.Errorf("cannot open database: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return ImportStats{}, fmt.Errorf("create schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return ImportStats{}, err
	}
	defer tx.Rollback() //nolint:errcheck

	freqStmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO word_frequencies (source, category, word, frequency) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return ImportStats{}, err
	}
	defer freqStmt.Close()
	treeStmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO word_trees (source, category, word, payload) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return ImportStats{}, err
	}
	defer treeStmt.Close()

	var stats ImportStats
	for _, ds := range doc.Datasets {
		stats.Datasets++
		for _, e := range ds.Frequencies {
			if _, err := freqStmt.ExecContext(ctx, ds.Source, ds.Category, e.Text, e.Frequency); err != nil {
				return stats, fmt.Errorf("insert frequency %q: %w", e.Text, err)
			}
			stats.Frequencies++
		}
		for word, payload := range ds.Trees {
			if _, err := treeStmt.ExecContext(ctx, ds.Source, ds.Category, word, string(payload)); err != nil {
				return stats, fmt.Errorf("insert tree %q: %w", word, err)
			}
			stats.Trees++
		}
	}
	if err := tx.Commit(); err != nil {
		return stats, fmt.Errorf("commit import: %w", err)
	}
	debug.Log("datasource: imported %d datasets (%d frequencies, %d trees) into %s",
		stats.Datasets, stats.Frequencies, stats.Trees, dbPath)
	return stats, nil
}

// Facets implements Faceter.
func (s *SQLiteSource) Facets(ctx context.Context) (Facets, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT source, category FROM word_frequencies GROUP BY source, category ORDER BY MIN(rowid)`)
	if err != nil {
		return Facets{}, fmt.Errorf("%w: query facets: %v", model.ErrFetchFailure, err)
	}
	defer rows.Close()

	var fc Facets
	for rows.Next() {
		var source, category string
		if err := rows.Scan(&source, &category); err != nil {
			return Facets{}, fmt.Errorf("%w: scan facets: %v", model.ErrFetchFailure, err)
		}
		fc.add(source, category)
	}
	return fc, rows.Err()
}
