package snapshot

import (
	"fmt"
	"log"
	"regexp"
	"sync"

	"github.com/quasilyte/gdata/v2"
)

// DefaultObject is the gdata object snapshots are stored under.
const DefaultObject = "animators"

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// store is the implementation of the Store interface.
type store struct {
	manager *gdata.Manager
	object  string

	mu     sync.RWMutex
	memory map[string][]byte
}

// Store saves and loads snapshots by key.
//
// A Store built without a gdata manager runs in memory only: saves succeed and are visible to later
// loads on the same Store, but nothing is persisted.
type Store interface {
	// Save encodes and stores a snapshot.
	//
	// Parameters:
	//   - key: the snapshot key, letters, digits, '_' and '-' only
	//   - s: the snapshot
	//
	// Returns:
	//   - error: error if the key is invalid or encoding or writing fails
	Save(key string, s Snapshot) error

	// Load reads and decodes a snapshot.
	//
	// Parameters:
	//   - key: the snapshot key
	//
	// Returns:
	//   - Snapshot: the snapshot, zero if not found
	//   - bool: true if a snapshot was stored under key
	//   - error: error if the key is invalid or reading or decoding fails
	Load(key string) (Snapshot, bool, error)

	// Persistent reports whether the store writes through to gdata.
	//
	// Returns:
	//   - bool: false in memory-only mode
	Persistent() bool
}

var _ Store = &store{}

// NewStore creates a Store and applies the options.
//
// Parameters:
//   - options: variadic list of StoreBuilderOption functions to configure the Store
//
// Returns:
//   - Store: the new store
func NewStore(options ...StoreBuilderOption) Store {
	s := &store{
		object: DefaultObject,
		memory: make(map[string][]byte),
	}
	for _, opt := range options {
		opt(s)
	}
	if s.manager == nil {
		log.Printf("[SnapshotStore] no gdata manager, snapshots are kept in memory only")
	}
	return s
}

func (s *store) Persistent() bool {
	return s.manager != nil
}

func (s *store) Save(key string, snap Snapshot) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("invalid snapshot key %q", key)
	}

	data, err := snap.Marshal()
	if err != nil {
		return err
	}

	if s.manager == nil {
		s.mu.Lock()
		s.memory[key] = data
		s.mu.Unlock()
		return nil
	}

	if err := s.manager.SaveObjectProp(s.object, key, data); err != nil {
		return fmt.Errorf("failed to save snapshot %q: %w", key, err)
	}
	return nil
}

func (s *store) Load(key string) (Snapshot, bool, error) {
	if !keyPattern.MatchString(key) {
		return Snapshot{}, false, fmt.Errorf("invalid snapshot key %q", key)
	}

	var data []byte
	if s.manager == nil {
		s.mu.RLock()
		stored, ok := s.memory[key]
		s.mu.RUnlock()
		if !ok {
			return Snapshot{}, false, nil
		}
		data = stored
	} else {
		if !s.manager.ObjectPropExists(s.object, key) {
			return Snapshot{}, false, nil
		}
		loaded, err := s.manager.LoadObjectProp(s.object, key)
		if err != nil {
			return Snapshot{}, false, fmt.Errorf("failed to load snapshot %q: %w", key, err)
		}
		data = loaded
	}

	snap, err := Unmarshal(data)
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("snapshot %q: %w", key, err)
	}
	return snap, true, nil
}
