package thumbdisk

import (
	"bytes"
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is bumped when the schema changes; a mismatched cache is
// cleared and rebuilt rather than migrated.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database was created by an incompatible
// cutboard version.
var ErrSchemaMismatch = errors.New("thumbnail cache schema mismatch")

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Store persists thumbnails in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the thumbnail database at dbPath.
func Open(dbPath string) (*Store, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, errors.New("thumbnail cache path must not be empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("ensure cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to rebuild)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

// StoreThumb encodes the thumbnail as PNG and upserts it under the
// resource's identity.
func (s *Store) StoreThumb(ctx context.Context, resourcePath string, mtime time.Time, img image.Image) error {
	if img == nil {
		return errors.New("store thumb: nil image")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode thumb: %w", err)
	}
	bounds := img.Bounds()
	now := time.Now().Unix()

	return retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO thumbs (resource_path, mtime_unix, width, height, png, byte_size, created_at, accessed_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (resource_path, mtime_unix, width)
			DO UPDATE SET height = excluded.height, png = excluded.png,
			              byte_size = excluded.byte_size, accessed_at = excluded.accessed_at`,
			resourcePath, mtime.Unix(), bounds.Dx(), bounds.Dy(), buf.Bytes(), buf.Len(), now, now)
		return err
	})
}

// Load returns the cached thumbnail for the resource identity, or ok=false
// when absent. A hit refreshes the access time for pruning.
func (s *Store) Load(ctx context.Context, resourcePath string, mtime time.Time, width int) (image.Image, bool, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT png FROM thumbs
		WHERE resource_path = ? AND mtime_unix = ? AND width = ?`,
		resourcePath, mtime.Unix(), width).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load thumb: %w", err)
	}

	img, err := png.Decode(bytes.NewReader(blob))
	if err != nil {
		// A corrupt blob behaves like a miss; the caller regenerates it.
		return nil, false, nil
	}

	_ = retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx,
			"UPDATE thumbs SET accessed_at = ? WHERE resource_path = ? AND mtime_unix = ? AND width = ?",
			time.Now().Unix(), resourcePath, mtime.Unix(), width)
		return err
	})
	return img, true, nil
}

// TotalBytes returns the summed size of all cached thumbnails.
func (s *Store) TotalBytes(ctx context.Context) (int64, error) {
	var total sql.NullInt64
	if err := s.db.QueryRowContext(ctx, "SELECT SUM(byte_size) FROM thumbs").Scan(&total); err != nil {
		return 0, fmt.Errorf("sum thumb sizes: %w", err)
	}
	return total.Int64, nil
}

// Count returns the number of cached thumbnails.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM thumbs").Scan(&count); err != nil {
		return 0, fmt.Errorf("count thumbs: %w", err)
	}
	return count, nil
}

// Prune enforces the retention budget: entries older than maxAge go first,
// then least-recently-accessed entries until the cache fits maxBytes. It
// returns the number of removed entries.
func (s *Store) Prune(ctx context.Context, maxAge time.Duration, maxBytes int64) (int, error) {
	removed := 0

	if maxAge > 0 {
		cutoff := time.Now().Add(-maxAge).Unix()
		var res sql.Result
		err := retryOnBusy(ctx, func() error {
			var execErr error
			res, execErr = s.db.ExecContext(ctx, "DELETE FROM thumbs WHERE accessed_at < ?", cutoff)
			return execErr
		})
		if err != nil {
			return removed, fmt.Errorf("prune by age: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil {
			removed += int(n)
		}
	}

	if maxBytes <= 0 {
		return removed, nil
	}
	for {
		total, err := s.TotalBytes(ctx)
		if err != nil {
			return removed, err
		}
		if total <= maxBytes {
			return removed, nil
		}
		var res sql.Result
		err = retryOnBusy(ctx, func() error {
			var execErr error
			res, execErr = s.db.ExecContext(ctx, `
				DELETE FROM thumbs WHERE rowid IN (
					SELECT rowid FROM thumbs ORDER BY accessed_at ASC LIMIT 16
				)`)
			return execErr
		})
		if err != nil {
			return removed, fmt.Errorf("prune by size: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil || affected == 0 {
			return removed, nil
		}
		removed += int(affected)
	}
}
