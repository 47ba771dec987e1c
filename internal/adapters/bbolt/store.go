// Package bbolt implements the ports.RunStore interface using bbolt (embedded
// B+ tree). Each corpus gets its own top-level bucket holding the JSON-encoded
// per-document match map and run stats. Writes are transactional: a crash
// mid-write cannot corrupt previously committed data.
package bbolt

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/corey/vesselmatch/internal/ports"
)

// Bucket keys
var (
	keyDocuments = []byte("documents")
	keyStats     = []byte("stats")
)

// Store implements ports.RunStore backed by bbolt.
type Store struct {
	db *bolt.DB
}

// NewStore opens (or creates) a bbolt database at the given path.
func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun persists the full run record for a corpus.
func (s *Store) SaveRun(corpusID string, rec *ports.RunRecord) error {
	if rec == nil {
		return fmt.Errorf("nil run record")
	}
	docsJSON, err := json.Marshal(rec.Documents)
	if err != nil {
		return fmt.Errorf("marshal documents: %w", err)
	}
	statsJSON, err := json.Marshal(rec.Stats)
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(corpusID))
		if err != nil {
			return err
		}
		if err := b.Put(keyDocuments, docsJSON); err != nil {
			return err
		}
		return b.Put(keyStats, statsJSON)
	})
}

// LoadRun retrieves the run record for a corpus.
// Returns nil, nil if no record exists (fresh corpus).
func (s *Store) LoadRun(corpusID string) (*ports.RunRecord, error) {
	var docsJSON, statsJSON []byte

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(corpusID))
		if b == nil {
			return nil
		}
		// Copy bytes out of the transaction (bbolt slices are only valid within tx)
		if v := b.Get(keyDocuments); v != nil {
			docsJSON = append([]byte{}, v...)
		}
		if v := b.Get(keyStats); v != nil {
			statsJSON = append([]byte{}, v...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if docsJSON == nil && statsJSON == nil {
		return nil, nil
	}

	rec := &ports.RunRecord{Documents: make(map[string][]string)}
	if docsJSON != nil {
		if err := json.Unmarshal(docsJSON, &rec.Documents); err != nil {
			return nil, fmt.Errorf("unmarshal documents: %w", err)
		}
	}
	if statsJSON != nil {
		if err := json.Unmarshal(statsJSON, &rec.Stats); err != nil {
			return nil, fmt.Errorf("unmarshal stats: %w", err)
		}
	}
	return rec, nil
}

// DeleteRun removes all data for a corpus. Idempotent.
func (s *Store) DeleteRun(corpusID string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(corpusID)) == nil {
			return nil
		}
		return tx.DeleteBucket([]byte(corpusID))
	})
}
