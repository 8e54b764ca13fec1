package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/chyinan/Kokoro-Engine-sub000/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/domain"
	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/ports/driven"
)

// DBFile is the database file name inside the data directory.
const DBFile = "kokoro.db"

// Store is a SQLite-based storage that provides access to
// the store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.kokoro/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".kokoro", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DBFile)

	// WAL mode with a busy timeout; the watcher and CLI may share the file.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// CharacterStore returns a CharacterStore interface backed by this store.
func (s *Store) CharacterStore() driven.CharacterStore {
	return &characterStore{store: s}
}

// SchemaVersion returns the highest applied migration version.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	row := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&version); err != nil {
		return 0, fmt.Errorf("getting schema version: %w", err)
	}
	return version, nil
}

// migrate runs all pending migrations, each in its own transaction.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	currentVersion, err := s.SchemaVersion(context.Background())
	if err != nil {
		return err
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_characters.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if err := s.apply(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) apply(version int, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(script); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// ==================== Character Store ====================

// characterStore implements driven.CharacterStore.
type characterStore struct {
	store *Store
}

var _ driven.CharacterStore = (*characterStore)(nil)

const characterColumns = `id, name, persona, user_nickname, source_format, source_file, created_at, updated_at`

// Save stores or updates a character. The original created_at is kept on update.
func (s *characterStore) Save(ctx context.Context, c *domain.Character) error {
	if c == nil || c.ID == "" {
		return domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	createdAt := c.CreatedAt.UTC()
	if c.CreatedAt.IsZero() {
		createdAt = now
	}
	updatedAt := c.UpdatedAt.UTC()
	if c.UpdatedAt.IsZero() {
		updatedAt = createdAt
	}
	format := c.Profile.SourceFormat
	if !format.IsValid() {
		format = domain.SourceFormatTavernV2
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO characters (`+characterColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			persona = excluded.persona,
			user_nickname = excluded.user_nickname,
			source_format = excluded.source_format,
			source_file = excluded.source_file,
			updated_at = excluded.updated_at
	`, c.ID, c.Profile.Name, c.Profile.Persona, c.Profile.UserNickname,
		string(format), c.SourceFile, createdAt, updatedAt)
	if err != nil {
		return fmt.Errorf("saving character: %w", err)
	}
	return nil
}

// Get retrieves a character by ID.
func (s *characterStore) Get(ctx context.Context, id string) (*domain.Character, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT `+characterColumns+` FROM characters WHERE id = ?`, id)

	c, err := scanCharacter(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning character: %w", err)
	}
	return c, nil
}

// List returns all characters, oldest first.
func (s *characterStore) List(ctx context.Context) ([]domain.Character, error) {
	rows, err := s.store.db.QueryContext(ctx,
		`SELECT `+characterColumns+` FROM characters ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("querying characters: %w", err)
	}
	defer rows.Close()

	characters := []domain.Character{}
	for rows.Next() {
		c, err := scanCharacter(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning character: %w", err)
		}
		characters = append(characters, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating characters: %w", err)
	}

	return characters, nil
}

// Delete removes a character.
func (s *characterStore) Delete(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM characters WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting character: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting character: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCharacter(row rowScanner) (*domain.Character, error) {
	var c domain.Character
	var format string
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(&c.ID, &c.Profile.Name, &c.Profile.Persona, &c.Profile.UserNickname,
		&format, &c.SourceFile, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	c.Profile.SourceFormat = domain.SourceFormat(format)
	if createdAt.Valid {
		c.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		c.UpdatedAt = updatedAt.Time
	}
	return &c, nil
}
