package artifactcache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
	_ "modernc.org/sqlite"

	"lingoreel/internal/logging"
)

// IndexFileName is the SQLite index inside a cache directory.
const IndexFileName = "index.db"

// timeLayout is fixed-width so lexical order in SQLite matches time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// FetchFunc produces the bytes for a cache miss.
type FetchFunc func(ctx context.Context) ([]byte, error)

// Cache is a directory of namespaced artifacts plus its SQLite index.
type Cache struct {
	dir    string
	db     *sql.DB
	logger *slog.Logger
	group  singleflight.Group
	now    func() time.Time
}

// Option customizes a Cache.
type Option func(*Cache)

// WithClock overrides the time source used for index timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// Open creates dir if needed and opens (or initializes) its index.
func Open(dir string, logger *slog.Logger, opts ...Option) (*Cache, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("artifact cache: directory required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure cache directory: %w", err)
	}
	db, err := sql.Open("sqlite", filepath.Join(dir, IndexFileName))
	if err != nil {
		return nil, fmt.Errorf("open cache index: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	cache := &Cache{
		dir:    dir,
		db:     db,
		logger: logging.NewComponentLogger(logger, "artifactcache"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(cache)
	}
	if err := cache.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return cache, nil
}

// Close closes the index.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Dir returns the cache root directory.
func (c *Cache) Dir() string { return c.dir }

// IndexPath returns the index database path.
func (c *Cache) IndexPath() string { return filepath.Join(c.dir, IndexFileName) }

// Path returns where the artifact for (namespace, name) lives, whether or not it exists.
func (c *Cache) Path(namespace, name string) string {
	return filepath.Join(c.dir, namespace, name)
}

func validateKey(namespace, name string) error {
	for _, part := range []string{namespace, name} {
		if part == "" || part == "." || part == ".." || strings.ContainsAny(part, `/\`) {
			return fmt.Errorf("artifact cache: invalid key %q/%q", namespace, name)
		}
	}
	if strings.HasPrefix(name, ".") {
		return fmt.Errorf("artifact cache: hidden name %q not allowed", name)
	}
	return nil
}

func (c *Cache) timestamp() string {
	return c.now().UTC().Format(timeLayout)
}

// Lookup reports the path of a cached artifact. The file on disk is
// authoritative: a missing file is a miss even if the index has a row, and
// an unindexed file is adopted into the index.
func (c *Cache) Lookup(ctx context.Context, namespace, name string) (string, bool) {
	if validateKey(namespace, name) != nil {
		return "", false
	}
	path := c.Path(namespace, name)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() || info.Size() == 0 {
		if _, execErr := c.db.ExecContext(ctx, "DELETE FROM entries WHERE namespace = ? AND name = ?", namespace, name); execErr != nil {
			c.logger.Debug("cache index delete failed", logging.Error(execErr))
		}
		return "", false
	}
	ts := c.timestamp()
	res, err := c.db.ExecContext(ctx,
		"UPDATE entries SET last_used_at = ? WHERE namespace = ? AND name = ?",
		ts, namespace, name,
	)
	if err == nil {
		if n, _ := res.RowsAffected(); n == 0 {
			err = c.index(ctx, namespace, name, info.Size(), "")
		}
	}
	if err != nil {
		c.logger.Debug("cache index touch failed", logging.String("name", name), logging.Error(err))
	}
	return path, true
}

// Put stores data under (namespace, name) unless another writer got there
// first, and returns the path of the stored artifact. The first complete
// write wins; later writers discard their bytes.
func (c *Cache) Put(ctx context.Context, namespace, name string, data []byte, source string) (string, error) {
	if err := validateKey(namespace, name); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("artifact cache: refusing to store empty %s/%s", namespace, name)
	}
	dir := filepath.Join(c.dir, namespace)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("ensure namespace directory: %w", err)
	}
	final := filepath.Join(dir, name)

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	size := int64(len(data))
	if err := os.Link(tmpName, final); err != nil {
		switch {
		case errors.Is(err, fs.ErrExist):
			c.logger.Debug("cache write lost race", logging.String("name", name))
			if info, statErr := os.Stat(final); statErr == nil {
				size = info.Size()
			}
		default:
			// Filesystems without hard links fall back to rename, which may
			// replace a concurrent winner with identical content.
			if renameErr := os.Rename(tmpName, final); renameErr != nil {
				return "", fmt.Errorf("install cache file: %w", renameErr)
			}
		}
	}

	if err := c.index(ctx, namespace, name, size, source); err != nil {
		c.logger.Warn("cache index insert failed",
			logging.String("name", name),
			logging.Error(err),
			logging.String(logging.FieldEventType, "cache_index_failed"),
			logging.String(logging.FieldImpact, "entry will be re-indexed on next lookup"),
		)
	}
	return final, nil
}

func (c *Cache) index(ctx context.Context, namespace, name string, size int64, source string) error {
	ts := c.timestamp()
	_, err := c.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO entries (namespace, name, size, source, created_at, last_used_at)
        VALUES (?, ?, ?, ?, ?, ?)`,
		namespace, name, size, source, ts, ts,
	)
	return err
}

// GetOrCreate returns the cached artifact, calling fetch at most once per key
// across concurrent callers in this process on a miss. hit reports whether
// the artifact was already present.
func (c *Cache) GetOrCreate(ctx context.Context, namespace, name, source string, fetch FetchFunc) (path string, hit bool, err error) {
	if err := validateKey(namespace, name); err != nil {
		return "", false, err
	}
	if path, ok := c.Lookup(ctx, namespace, name); ok {
		return path, true, nil
	}
	type outcome struct {
		path    string
		created bool
	}
	v, err, _ := c.group.Do(namespace+"/"+name, func() (any, error) {
		if path, ok := c.Lookup(ctx, namespace, name); ok {
			return outcome{path: path}, nil
		}
		data, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		path, err := c.Put(ctx, namespace, name, data, source)
		if err != nil {
			return nil, err
		}
		return outcome{path: path, created: true}, nil
	})
	if err != nil {
		return "", false, err
	}
	out := v.(outcome)
	return out.path, !out.created, nil
}

// NamespaceStats summarizes one namespace of the index.
type NamespaceStats struct {
	Namespace string
	Entries   int
	Bytes     int64
	Oldest    time.Time
	LastUsed  time.Time
}

// Stats reports per-namespace entry counts and sizes, ordered by namespace.
func (c *Cache) Stats(ctx context.Context) ([]NamespaceStats, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT namespace, COUNT(1), COALESCE(SUM(size), 0), MIN(created_at), MAX(last_used_at)
        FROM entries GROUP BY namespace ORDER BY namespace`,
	)
	if err != nil {
		return nil, fmt.Errorf("query cache stats: %w", err)
	}
	defer rows.Close()

	var out []NamespaceStats
	for rows.Next() {
		var (
			st               NamespaceStats
			oldest, lastUsed string
		)
		if err := rows.Scan(&st.Namespace, &st.Entries, &st.Bytes, &oldest, &lastUsed); err != nil {
			return nil, fmt.Errorf("scan cache stats: %w", err)
		}
		st.Oldest, _ = time.Parse(timeLayout, oldest)
		st.LastUsed, _ = time.Parse(timeLayout, lastUsed)
		out = append(out, st)
	}
	return out, rows.Err()
}

// PruneResult reports what a prune or clear removed.
type PruneResult struct {
	Removed int
	Bytes   int64
}

// Prune deletes entries not used within olderThan. Callers should hold the
// exclusive directory lock.
func (c *Cache) Prune(ctx context.Context, olderThan time.Duration) (PruneResult, error) {
	var result PruneResult
	if olderThan <= 0 {
		return result, errors.New("artifact cache: prune age must be positive")
	}
	cutoff := c.now().Add(-olderThan).UTC().Format(timeLayout)
	rows, err := c.db.QueryContext(ctx,
		"SELECT namespace, name, size FROM entries WHERE last_used_at < ? ORDER BY last_used_at",
		cutoff,
	)
	if err != nil {
		return result, fmt.Errorf("query stale entries: %w", err)
	}
	type stale struct {
		namespace, name string
		size            int64
	}
	var victims []stale
	for rows.Next() {
		var s stale
		if err := rows.Scan(&s.namespace, &s.name, &s.size); err != nil {
			rows.Close()
			return result, fmt.Errorf("scan stale entry: %w", err)
		}
		victims = append(victims, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return result, err
	}

	for _, v := range victims {
		if err := os.Remove(c.Path(v.namespace, v.name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return result, fmt.Errorf("remove %s/%s: %w", v.namespace, v.name, err)
		}
		if _, err := c.db.ExecContext(ctx, "DELETE FROM entries WHERE namespace = ? AND name = ?", v.namespace, v.name); err != nil {
			return result, fmt.Errorf("delete index row: %w", err)
		}
		result.Removed++
		result.Bytes += v.size
	}
	c.logger.Info("cache pruned",
		logging.String("cache_dir", c.dir),
		logging.Int("removed", result.Removed),
		logging.Int64("freed_bytes", result.Bytes),
	)
	return result, nil
}

// Clear removes every artifact and index row. Callers should hold the
// exclusive directory lock.
func (c *Cache) Clear(ctx context.Context) (PruneResult, error) {
	var result PruneResult
	if err := c.db.QueryRowContext(ctx, "SELECT COUNT(1), COALESCE(SUM(size), 0) FROM entries").Scan(&result.Removed, &result.Bytes); err != nil {
		return result, fmt.Errorf("count entries: %w", err)
	}
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return result, fmt.Errorf("read cache directory: %w", err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if name == LockFileName || strings.HasPrefix(name, IndexFileName) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(c.dir, name)); err != nil {
			return result, fmt.Errorf("remove %s: %w", name, err)
		}
	}
	if _, err := c.db.ExecContext(ctx, "DELETE FROM entries"); err != nil {
		return result, fmt.Errorf("clear index: %w", err)
	}
	c.logger.Info("cache cleared",
		logging.String("cache_dir", c.dir),
		logging.Int("removed", result.Removed),
		logging.Int64("freed_bytes", result.Bytes),
	)
	return result, nil
}
