package store

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// Record set names persisted by the store.
const (
	BooksSet        = "books"
	TransactionsSet = "borrowers"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Store persists each record set as one JSON file under a data directory.
// Every Save rewrites the whole set; writers must hold the set's lock via
// WithLock across their full read-modify-write cycle. Saves go through a
// temp file and rename so readers never observe a torn file.
type Store struct {
	dir string
	log *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(dir string, log *slog.Logger) *Store {
	return &Store{
		dir:   dir,
		log:   log,
		locks: make(map[string]*sync.Mutex),
	}
}

func (s *Store) setLock(set string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[set]
	if !ok {
		l = &sync.Mutex{}
		s.locks[set] = l
	}
	return l
}

// WithLock runs fn while holding the named set's mutation lock. Callers
// that mutate two sets nest WithLock calls, always locking books before
// transactions.
func (s *Store) WithLock(set string, fn func() error) error {
	l := s.setLock(set)
	l.Lock()
	defer l.Unlock()
	return fn()
}

func (s *Store) path(set string) string {
	return filepath.Join(s.dir, set+".json")
}

// Load reads the named set into v, which must be a pointer to a slice.
// A missing or unparsable file loads as the empty set; the parse failure
// is logged so corruption stays observable, but callers see empty data.
func (s *Store) Load(set string, v interface{}) error {
	data, err := os.ReadFile(s.path(set))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		s.log.Warn("record set unreadable, treating as empty", "set", set, "error", err)
		return nil
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.log.Warn("record set corrupt, treating as empty", "set", set, "error", err)
		return nil
	}
	return nil
}

// Save overwrites the named set with the full contents of v. The file is
// written next to its final location and renamed into place so a crash
// mid-write leaves the previous version intact.
func (s *Store) Save(set string, v interface{}) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return errors.Wrapf(err, "create data dir %s", s.dir)
	}

	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return errors.Wrapf(err, "encode record set %s", set)
	}

	tmp, err := os.CreateTemp(s.dir, set+"-*.tmp")
	if err != nil {
		return errors.Wrapf(err, "create temp file for %s", set)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrapf(err, "write record set %s", set)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "close record set %s", set)
	}
	if err := os.Rename(tmpName, s.path(set)); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "commit record set %s", set)
	}
	return nil
}
