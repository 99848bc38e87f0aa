// Package jsonstore implements the storage adapter contracts on plain JSON
// array files, the format the legacy site kept its catalog in. Every
// mutation reads, modifies and rewrites the whole collection file.
package jsonstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/kochwerk/kochwerk/internal/store"
)

// Record constrains collection element pointers to types carrying an id.
type Record[T any] interface {
	*T
	GetID() uint64
	SetID(id uint64)
}

// Collection is one JSON-array file holding records of a single type.
// A collection-local mutex serializes the read-modify-write cycles of
// this process; concurrent writers from other processes are not handled.
type Collection[T any, PT Record[T]] struct {
	path string
	mu   sync.Mutex
}

// NewCollection creates a collection backed by the given file path. The
// file is created on first write.
func NewCollection[T any, PT Record[T]](path string) *Collection[T, PT] {
	return &Collection[T, PT]{path: path}
}

// load reads the collection file. A missing or corrupt file degrades to an
// empty collection; corruption is logged for operator visibility.
func (c *Collection[T, PT]) load() []T {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Error().Err(err).Str("path", c.path).Msg("can't read collection file")
		}

		return nil
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		log.Error().Err(err).Str("path", c.path).Msg("corrupt collection file, serving empty collection")
		return nil
	}

	return records
}

// save rewrites the whole collection file. Write failures are reported to
// the caller, never swallowed.
func (c *Collection[T, PT]) save(records []T) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode collection")
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o750); err != nil {
		return errors.Wrap(err, "failed to create data directory")
	}

	if err := os.WriteFile(c.path, data, 0o600); err != nil {
		return errors.Wrap(err, "failed to write collection file")
	}

	return nil
}

// nextID assigns max(existing)+1 so ids are never reused within a storage
// lifetime even after deletions, as long as the highest id is still live.
func nextID[T any, PT Record[T]](records []T) uint64 {
	var maxID uint64

	for i := range records {
		if id := PT(&records[i]).GetID(); id > maxID {
			maxID = id
		}
	}

	return maxID + 1
}

// All returns every record in file (insertion) order.
func (c *Collection[T, PT]) All() ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.load(), nil
}

// Find retrieves a record by its id.
func (c *Collection[T, PT]) Find(id uint64) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	records := c.load()
	for i := range records {
		if PT(&records[i]).GetID() == id {
			record := records[i]
			return &record, nil
		}
	}

	return nil, store.ErrNotFound
}

// Insert appends a record, assigning the next free id when none is set.
func (c *Collection[T, PT]) Insert(record PT) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records := c.load()

	if record.GetID() == 0 {
		record.SetID(nextID[T, PT](records))
	}

	records = append(records, *record)

	return c.save(records)
}

// ReplaceAll overwrites the whole collection. Mirror use: a successful
// remote read replaces the local copy wholesale.
func (c *Collection[T, PT]) ReplaceAll(records []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.save(records)
}

// Replace overwrites the record with the same id.
func (c *Collection[T, PT]) Replace(record PT) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records := c.load()
	for i := range records {
		if PT(&records[i]).GetID() == record.GetID() {
			records[i] = *record
			return c.save(records)
		}
	}

	return store.ErrNotFound
}

// Remove deletes the record with the given id.
func (c *Collection[T, PT]) Remove(id uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records := c.load()
	for i := range records {
		if PT(&records[i]).GetID() == id {
			records = append(records[:i], records[i+1:]...)
			return c.save(records)
		}
	}

	return store.ErrNotFound
}
