package snapshot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/Adithya-Monish-Kumar-K/searchindex/internal/indexer/index"
	apperrors "github.com/Adithya-Monish-Kumar-K/searchindex/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/searchindex/pkg/redis"
)

// Store persists named build artifacts. Get fails with an error wrapping
// ErrNotExist for unknown names.
type Store interface {
	Get(ctx context.Context, name string) ([]byte, error)
	Put(ctx context.Context, name string, data []byte) error
}

// Save dumps f in the given format and stores it under name.
func Save(ctx context.Context, st Store, name string, format Format, f *index.Frozen) error {
	var buf bytes.Buffer
	if err := format.Dump(&buf, f); err != nil {
		return fmt.Errorf("dumping %s snapshot: %w", format.Name(), err)
	}
	return st.Put(ctx, name, buf.Bytes())
}

// Fetch reads the artifact stored under name and loads it with format.
func Fetch(ctx context.Context, st Store, name string, format Format) (*index.Frozen, error) {
	data, err := st.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	return format.Load(bytes.NewReader(data))
}

// FileStore keeps artifacts as files in a directory. Writers hold an
// exclusive lock on <name>.lock and replace the file atomically; readers
// hold a shared lock.
type FileStore struct {
	dir    string
	logger *slog.Logger
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{
		dir:    dir,
		logger: slog.Default().With("component", "snapshot-store", "dir", dir),
	}
}

func (s *FileStore) Path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *FileStore) Get(ctx context.Context, name string) ([]byte, error) {
	path := s.Path(name)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", path, apperrors.ErrNotExist)
	}
	lock := flock.New(path + ".lock")
	if _, err := lock.TryRLockContext(ctx, 50*time.Millisecond); err != nil {
		return nil, fmt.Errorf("locking %s: %w: %w", path, apperrors.ErrSnapshotIO, err)
	}
	defer lock.Unlock()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", path, apperrors.ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w: %w", path, apperrors.ErrSnapshotIO, err)
	}
	return data, nil
}

// Put writes data to a .tmp file first and renames it into place on success.
func (s *FileStore) Put(ctx context.Context, name string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w: %w", apperrors.ErrSnapshotIO, err)
	}
	finalPath := s.Path(name)
	tmpPath := finalPath + ".tmp"

	lock := flock.New(finalPath + ".lock")
	if _, err := lock.TryLockContext(ctx, 50*time.Millisecond); err != nil {
		return fmt.Errorf("locking %s: %w: %w", finalPath, apperrors.ErrSnapshotIO, err)
	}
	defer lock.Unlock()

	if err := writeSynced(tmpPath, data); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w: %w", tmpPath, apperrors.ErrSnapshotIO, err)
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming %s: %w: %w", tmpPath, apperrors.ErrSnapshotIO, err)
	}
	s.logger.Debug("artifact written", "name", name, "bytes", len(data))
	return nil
}

func writeSynced(path string, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		return err
	}
	return f.Close()
}

// RedisStore keeps artifacts under prefixed Redis keys.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) Key(name string) string {
	return s.prefix + name
}

func (s *RedisStore) Get(ctx context.Context, name string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.Key(name))
	if errors.Is(err, redis.ErrNotFound) {
		return nil, fmt.Errorf("redis key %s: %w", s.Key(name), apperrors.ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("reading redis key %s: %w: %w", s.Key(name), apperrors.ErrSnapshotIO, err)
	}
	return data, nil
}

func (s *RedisStore) Put(ctx context.Context, name string, data []byte) error {
	if err := s.client.Set(ctx, s.Key(name), data, s.ttl); err != nil {
		return fmt.Errorf("writing redis key %s: %w: %w", s.Key(name), apperrors.ErrSnapshotIO, err)
	}
	return nil
}
