// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists converted artifacts and the identifier index used
// to answer download requests. Files live under <data-dir>/converted/ keyed
// by their generated identifier; a SQLite index maps identifiers to paths
// and display names. The index has process-lifetime semantics only: rows
// whose files have vanished resolve to ErrNotFound.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/doc-converter/pkg/types"
)

const (
	convertedDir = "converted"
	indexDir     = "index"
	dbFile       = "artifacts.db"
)

// ErrNotFound means the identifier is unknown or its file no longer exists.
var ErrNotFound = errors.New("artifact not found")

// Store manages the artifact directory and its SQLite index.
type Store struct {
	db      *sql.DB
	dataDir string
}

// New opens or creates the artifact store rooted at cfg.DataDir. It creates
// the converted/ and index/ directories and the schema as needed.
func New(cfg types.StoreConfig) (*Store, error) {
	// Artifact paths are recorded in the index, so resolve the root once
	// rather than depending on the process working directory later.
	dataDir, err := filepath.Abs(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("resolving data directory: %w", err)
	}

	for _, dir := range []string{convertedDir, indexDir} {
		if err := os.MkdirAll(filepath.Join(dataDir, dir), 0o755); err != nil {
			return nil, fmt.Errorf("creating %s directory: %w", dir, err)
		}
	}

	dbPath := filepath.Join(dataDir, indexDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening index database: %w", err)
	}

	s := &Store{db: db, dataDir: dataDir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS artifacts (
			id           TEXT PRIMARY KEY,
			display_name TEXT NOT NULL,
			direction    TEXT NOT NULL,
			path         TEXT NOT NULL,
			size         INTEGER NOT NULL,
			created_at   TEXT NOT NULL
		)`)
	return err
}

// Put moves the engine output at srcPath into the converted directory under
// a fresh identifier and records it in the index. Artifacts are write-once;
// concurrent Puts insert distinct rows and never touch existing ones.
func (s *Store) Put(ctx context.Context, srcPath, displayName string, direction types.Direction) (types.Artifact, error) {
	id := uuid.NewString()
	dest := filepath.Join(s.dataDir, convertedDir, id+direction.TargetExt())

	if err := moveFile(srcPath, dest); err != nil {
		return types.Artifact{}, fmt.Errorf("storing artifact: %w", err)
	}

	info, err := os.Stat(dest)
	if err != nil {
		return types.Artifact{}, fmt.Errorf("storing artifact: %w", err)
	}

	a := types.Artifact{
		ID:          id,
		Path:        dest,
		DisplayName: displayName,
		Direction:   direction,
		Size:        info.Size(),
		CreatedAt:   time.Now().UTC(),
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO artifacts (id, display_name, direction, path, size, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.DisplayName, string(a.Direction), a.Path, a.Size,
		a.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		os.Remove(dest)
		return types.Artifact{}, fmt.Errorf("indexing artifact: %w", err)
	}

	return a, nil
}

// Get looks up an artifact by identifier.
func (s *Store) Get(ctx context.Context, id string) (types.Artifact, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, display_name, direction, path, size, created_at
		 FROM artifacts WHERE id = ?`, id)

	a, err := scanArtifact(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Artifact{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return types.Artifact{}, fmt.Errorf("reading artifact %s: %w", id, err)
	}

	if _, err := os.Stat(a.Path); err != nil {
		return types.Artifact{}, fmt.Errorf("%w: %s (file removed)", ErrNotFound, id)
	}
	return a, nil
}

// List returns all artifacts whose files still exist, newest first.
func (s *Store) List(ctx context.Context) ([]types.Artifact, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, display_name, direction, path, size, created_at
		 FROM artifacts ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing artifacts: %w", err)
	}
	defer rows.Close()

	var artifacts []types.Artifact
	for rows.Next() {
		a, err := scanArtifact(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("listing artifacts: %w", err)
		}
		if _, err := os.Stat(a.Path); err != nil {
			continue
		}
		artifacts = append(artifacts, a)
	}
	return artifacts, rows.Err()
}

func scanArtifact(scan func(dest ...any) error) (types.Artifact, error) {
	var a types.Artifact
	var direction, createdAt string
	if err := scan(&a.ID, &a.DisplayName, &direction, &a.Path, &a.Size, &createdAt); err != nil {
		return types.Artifact{}, err
	}
	a.Direction = types.Direction(direction)
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		a.CreatedAt = t
	}
	return a, nil
}

// moveFile renames src to dest, falling back to copy-and-remove when the
// two paths are on different filesystems.
func moveFile(src, dest string) error {
	if err := os.Rename(src, dest); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dest)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dest)
		return err
	}
	return os.Remove(src)
}
