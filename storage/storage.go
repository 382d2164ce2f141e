package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/signadot/bibstr/ir"
	"github.com/signadot/bibstr/macro"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS scopes (
	scope TEXT PRIMARY KEY,
	saved_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS macros (
	scope TEXT NOT NULL,
	key TEXT NOT NULL,
	name TEXT NOT NULL,
	bibtex TEXT NOT NULL,
	PRIMARY KEY (scope, key),
	FOREIGN KEY (scope) REFERENCES scopes(scope) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS nodes (
	scope TEXT NOT NULL,
	key TEXT NOT NULL,
	idx INTEGER NOT NULL,
	type TEXT NOT NULL,
	text TEXT NOT NULL,
	PRIMARY KEY (scope, key, idx),
	FOREIGN KEY (scope, key) REFERENCES macros(scope, key) ON DELETE CASCADE
);
`

// Storage is a sqlite database of macro tables.
type Storage struct {
	db  *sql.DB
	log *slog.Logger
}

// Open opens or creates the database at path. A nil logger means
// slog.Default().
func Open(path string, logger *slog.Logger) (*Storage, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	logger.Debug("opened macro storage", "path", path)
	return &Storage{db: db, log: logger}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

// Save replaces the table stored under scope with defs.
func (s *Storage) Save(ctx context.Context, scope string, defs map[string]*ir.Value) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM scopes WHERE scope = ?", scope); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO scopes (scope, saved_at) VALUES (?, ?)",
		scope, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}
	macroStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO macros (scope, key, name, bibtex) VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer macroStmt.Close()
	nodeStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO nodes (scope, key, idx, type, text) VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer nodeStmt.Close()

	for name, v := range defs {
		key := ir.NormalizeName(name)
		if _, err := macroStmt.ExecContext(ctx, scope, key, name, v.BibTeXString()); err != nil {
			return fmt.Errorf("save %s: %w", name, err)
		}
		for i, n := range v.Nodes() {
			typ, err := n.Type().MarshalText()
			if err != nil {
				return err
			}
			if _, err := nodeStmt.ExecContext(ctx, scope, key, i, string(typ), n.Text()); err != nil {
				return fmt.Errorf("save %s: %w", name, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.log.Info("saved macros", "scope", scope, "count", len(defs))
	return nil
}

// Load defines every macro stored under scope in r. Definitions which
// cannot be rebuilt are skipped and reported together.
func (s *Storage) Load(ctx context.Context, scope string, r *macro.Resolver) error {
	var savedAt string
	err := s.db.QueryRowContext(ctx, "SELECT saved_at FROM scopes WHERE scope = ?", scope).Scan(&savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w %q", ErrNoSuchScope, scope)
	}
	if err != nil {
		return err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT m.name, n.type, n.text
		FROM macros m JOIN nodes n ON n.scope = m.scope AND n.key = m.key
		WHERE m.scope = ?
		ORDER BY m.key, n.idx
	`, scope)
	if err != nil {
		return err
	}
	defer rows.Close()

	var (
		errs  []error
		name  string
		nodes []*ir.Node
		count int
	)
	flush := func() {
		if name == "" {
			return
		}
		v, err := ir.NewValue(nodes, r)
		if err == nil {
			err = r.SetMacro(name, v)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s: %w", ErrCorrupt, name, err))
			return
		}
		count++
	}
	for rows.Next() {
		var rowName, typText, text string
		if err := rows.Scan(&rowName, &typText, &text); err != nil {
			return err
		}
		if rowName != name {
			flush()
			name, nodes = rowName, nil
		}
		var typ ir.Type
		if err := typ.UnmarshalText([]byte(typText)); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s: %w", ErrCorrupt, rowName, err))
			continue
		}
		nodes = append(nodes, node(typ, text))
	}
	if err := rows.Err(); err != nil {
		return err
	}
	flush()
	s.log.Info("loaded macros", "scope", scope, "count", count, "saved", savedAt)
	return errors.Join(errs...)
}

func node(typ ir.Type, text string) *ir.Node {
	switch typ {
	case ir.NumberType:
		return ir.NumberNode(text)
	case ir.MacroType:
		if n, err := ir.MacroNode(text); err == nil {
			return n
		}
	}
	return ir.StringNode(text)
}

// Scopes returns the saved scope names in order.
func (s *Storage) Scopes(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT scope FROM scopes ORDER BY scope")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []string
	for rows.Next() {
		var scope string
		if err := rows.Scan(&scope); err != nil {
			return nil, err
		}
		res = append(res, scope)
	}
	return res, rows.Err()
}

// Delete removes the table stored under scope.
func (s *Storage) Delete(ctx context.Context, scope string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM scopes WHERE scope = ?", scope)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w %q", ErrNoSuchScope, scope)
	}
	return nil
}
