package records

import (
	"crypto/rand"
	"encoding/hex"
	"sync"

	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
)

// idBytes is the number of random bytes behind an id; ids are their hex encoding.
const idBytes = 10

// ErrNotFound marks every error returned for an id the store does not hold.
var ErrNotFound = errors.New("record not found")

// Store keeps records in memory. The zero value is not usable, use NewStore.
type Store struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		records: make(map[string]Record),
	}
}

func notFound(id string) error {
	return errors.Mark(errors.Newf("no message exists with id %s", id), ErrNotFound)
}

// IsNotFound reports whether err was caused by a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func newID() string {
	buf := make([]byte, idBytes)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the OS entropy source is broken.
		panic(errors.Wrap(err, "reading random id"))
	}
	return hex.EncodeToString(buf)
}

// Create stores a new record under a fresh random id and returns it.
func (s *Store) Create(input Input) Record {
	record := Record{
		Content: cloneString(input.Content),
		Author:  cloneString(input.Author),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		record.ID = newID()
		if _, taken := s.records[record.ID]; !taken {
			break
		}
	}
	s.records[record.ID] = record
	log.WithField("id", record.ID).Debug("Record created")
	return record.clone()
}

// Get returns the record stored under id.
func (s *Store) Get(id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[id]
	if !ok {
		return Record{}, notFound(id)
	}
	return record.clone(), nil
}

// Update replaces the whole payload of the record stored under id. Fields left
// nil in input are cleared, nothing is merged with the previous version.
func (s *Store) Update(id string, input Input) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return Record{}, notFound(id)
	}
	record := Record{
		ID:      id,
		Content: cloneString(input.Content),
		Author:  cloneString(input.Author),
	}
	s.records[id] = record
	log.WithField("id", id).Debug("Record replaced")
	return record.clone(), nil
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
