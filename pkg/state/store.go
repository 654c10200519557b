// Package state persists which datasets the auto-folder watcher has already
// processed, so a dataset dropped twice is never submitted twice. The store
// can checkpoint itself to S3 and restore on a fresh host, which keeps the
// dedupe history across cluster node reassignments.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/image2radiomics/i2r/pkg/config"
)

const dirMode = 0o755

var (
	ErrNotFound = errors.New("not found")
	ErrExpired  = errors.New("expired")
)

// Record is one processed-dataset marker.
type Record struct {
	Signature   uint64 `json:"sig"`  // content signature at submission time
	ProcessedAt int64  `json:"ts"`   // unix seconds
	Pool        string `json:"pool"` // pool folder the dataset was copied into
}

// Store is a badger-backed processed-dataset store with optional TTL on
// markers and optional S3 checkpointing.
type Store struct {
	db       *badger.DB
	ttl      time.Duration
	basePath string
	name     string
	cfg      config.AppConfig
}

// NewStore opens (or restores) the store for one watcher instance.
func NewStore(name string, cfg *config.AppConfig) (*Store, error) {
	path := filepath.Join(cfg.State.Badger.Path, name)
	if err := os.MkdirAll(path, dirMode); err != nil {
		return nil, fmt.Errorf("failed to create state path: %w", err)
	}

	st := &Store{
		ttl:      cfg.State.TTL,
		basePath: path,
		name:     name,
		cfg:      *cfg,
	}

	// Restore a checkpoint only into an empty directory; a populated one is
	// already ahead of whatever was uploaded.
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read state path: %w", err)
	}
	if len(entries) == 0 {
		if restoreErr := st.RestoreCheckpointIfAvailable(); restoreErr != nil {
			return nil, fmt.Errorf("failed to restore checkpoint: %w", restoreErr)
		}
	} else {
		log.Printf("[State] Skipping checkpoint restore for %s: directory is not empty", name)
	}

	opts := badger.DefaultOptions(path).
		WithLoggingLevel(badger.ERROR)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	st.db = db
	return st, nil
}

// Put stores the marker for a dataset.
func (s *Store) Put(dataset string, rec Record) error {
	if rec.ProcessedAt == 0 {
		rec.ProcessedAt = time.Now().Unix()
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(dataset), data)
	})
}

// Get retrieves a marker, enforcing the retention TTL. Expired markers are
// deleted in the background and reported as ErrExpired.
func (s *Store) Get(dataset string) (Record, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(dataset))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			data = append([]byte(nil), v...)
			return nil
		})
	})
	if err != nil {
		return Record{}, err
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, err
	}

	if s.ttl > 0 && time.Since(time.Unix(rec.ProcessedAt, 0)) > s.ttl {
		go func() {
			if err := s.delete(dataset); err != nil {
				log.Printf("[State] Error deleting expired marker %s: %v", dataset, err)
			}
		}()
		return Record{}, ErrExpired
	}
	return rec, nil
}

// Seen reports whether dataset was already processed with this signature. A
// changed signature means new content under the same name, which should be
// processed again.
func (s *Store) Seen(dataset string, signature uint64) bool {
	rec, err := s.Get(dataset)
	if err != nil {
		return false
	}
	return rec.Signature == signature
}

// Count returns the number of stored markers.
func (s *Store) Count() (int, error) {
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

func (s *Store) delete(dataset string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(dataset))
	})
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
