package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

// formatVersion is bumped when the record layout changes. A database written
// with another version is emptied on open.
const formatVersion = "1"

// Bucket names
var (
	bucketFingerprints = []byte("fingerprints")
	bucketMeta         = []byte("meta")
)

var keyVersion = []byte("version")

// record is what gets written per key.
type record struct {
	Digest  []byte          `json:"digest"`
	Payload json.RawMessage `json:"payload"`
	SavedAt int64           `json:"saved_at"`
}

// FingerprintStore persists fingerprint cache entries in BoltDB, one database
// per Steam install root. Reads are promoted into memory.
type FingerprintStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string]record
}

// NewFingerprintStore opens the store for installRoot under baseCacheDir. An
// empty baseCacheDir gives a memory-only store.
func NewFingerprintStore(baseCacheDir, installRoot string) (*FingerprintStore, error) {
	if baseCacheDir == "" {
		// Memory-only mode (no persistence)
		return &FingerprintStore{cache: make(map[string]record)}, nil
	}

	dir := baseCacheDir
	if installRoot != "" {
		dir = filepath.Join(baseCacheDir, hashInstallRoot(installRoot))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "steamrun.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		meta, err := tx.CreateBucketIfNotExists(bucketMeta)
		if err != nil {
			return err
		}
		if v := meta.Get(keyVersion); v != nil && string(v) != formatVersion {
			if err := tx.DeleteBucket(bucketFingerprints); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
				return err
			}
		}
		if _, err := tx.CreateBucketIfNotExists(bucketFingerprints); err != nil {
			return err
		}
		return meta.Put(keyVersion, []byte(formatVersion))
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &FingerprintStore{db: db, cache: make(map[string]record)}, nil
}

// hashInstallRoot names the per-installation subdirectory. Case and trailing
// separators are ignored so C:\Steam and c:\steam\ share a database.
func hashInstallRoot(root string) string {
	normalized := strings.TrimRight(strings.ToLower(filepath.ToSlash(root)), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (s *FingerprintStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load returns the digest and payload stored under key.
func (s *FingerprintStore) Load(key string) ([]byte, []byte, bool) {
	// Check memory cache first
	s.mu.RLock()
	if rec, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return rec.Digest, rec.Payload, true
	}
	s.mu.RUnlock()

	if s.db == nil {
		return nil, nil, false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketFingerprints)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if data == nil {
		return nil, nil, false
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, nil, false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[key] = rec
	s.mu.Unlock()

	return rec.Digest, rec.Payload, true
}

// Save stores payload under key together with the digest it was computed from.
func (s *FingerprintStore) Save(key string, digest, payload []byte) error {
	rec := record{
		Digest:  append([]byte(nil), digest...),
		Payload: append(json.RawMessage(nil), payload...),
		SavedAt: time.Now().Unix(),
	}

	s.mu.Lock()
	s.cache[key] = rec
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketFingerprints).Put([]byte(key), data)
	})
}

// Delete removes one key.
func (s *FingerprintStore) Delete(key string) {
	s.mu.Lock()
	delete(s.cache, key)
	s.mu.Unlock()

	if s.db == nil {
		return
	}
	s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketFingerprints)
		if b != nil {
			b.Delete([]byte(key))
		}
		return nil
	})
}

// InvalidatePrefix removes every key starting with prefix, e.g. all entries of
// one cache ("appinfo:").
func (s *FingerprintStore) InvalidatePrefix(prefix string) {
	s.mu.Lock()
	for k := range s.cache {
		if strings.HasPrefix(k, prefix) {
			delete(s.cache, k)
		}
	}
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	// Delete from BoltDB using prefix scan
	s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketFingerprints)
		if b == nil {
			return nil
		}
		// Collect first; deleting under a live cursor skips keys
		var doomed [][]byte
		c := b.Cursor()
		prefixBytes := []byte(prefix)
		for k, _ := c.Seek(prefixBytes); k != nil && strings.HasPrefix(string(k), prefix); k, _ = c.Next() {
			doomed = append(doomed, slices.Clone(k))
		}
		for _, k := range doomed {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// InvalidateAll empties the store.
func (s *FingerprintStore) InvalidateAll() {
	s.mu.Lock()
	s.cache = make(map[string]record)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketFingerprints); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return err
		}
		_, err := tx.CreateBucket(bucketFingerprints)
		return err
	})
}

// Keys lists stored keys in order. Used by diagnostics.
func (s *FingerprintStore) Keys() []string {
	if s.db == nil {
		s.mu.RLock()
		defer s.mu.RUnlock()
		keys := make([]string, 0, len(s.cache))
		for k := range s.cache {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		return keys
	}

	var keys []string
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketFingerprints)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	return keys
}
