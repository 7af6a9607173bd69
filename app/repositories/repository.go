package repositories

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/dgraph-io/badger/v4"
)

// BadgerStore owns a Badger database and hands out the repositories built
// on top of it.
type BadgerStore struct {
	db     *badger.DB
	mutex  sync.RWMutex
	dbPath string
	posts  *BadgerPostRepository
	users  *BadgerUserRepository
}

// NewBadgerStore opens the database at path. An empty path opens an
// in-memory database, which is what tests use.
func NewBadgerStore(path string, logger *slog.Logger) (*BadgerStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	opts := badger.DefaultOptions(path).
		WithLogger(badgerLogger{logger: logger.With("component", "badger")}).
		WithNumVersionsToKeep(1)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger at %q: %w", path, err)
	}
	return &BadgerStore{
		db:     db,
		dbPath: path,
		posts:  NewBadgerPostRepository(db),
		users:  NewBadgerUserRepository(db),
	}, nil
}

func (s *BadgerStore) Posts() PostRepository { return s.posts }

func (s *BadgerStore) Users() UserRepository { return s.users }

// DB exposes the underlying handle for maintenance commands.
func (s *BadgerStore) DB() *badger.DB { return s.db }

func (s *BadgerStore) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.db.Close()
}

// Backup streams a full backup to w and returns the version it covers.
func (s *BadgerStore) Backup(w io.Writer) (uint64, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.db.Backup(w, 0)
}

// Restore loads a backup produced by Backup.
func (s *BadgerStore) Restore(r io.Reader) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.db.Load(r, 256)
}

// Clear drops every key.
func (s *BadgerStore) Clear() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.db.DropAll()
}

// badgerLogger routes Badger's printf-style logging into slog.
type badgerLogger struct {
	logger *slog.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
