// Package store keeps block orders, orders and fills in partitions of a
// single ordered key-value database.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	dbm "github.com/tendermint/tm-db"
	"go.uber.org/zap"
)

const partitionDelimiter = "!"

// ErrNotFound is returned by Get for unknown keys.
var ErrNotFound = errors.New("key not found")

// Store partitions a tm-db database. Writes from every partition go through
// one mutex so index maintenance stays consistent with the indexed records.
type Store struct {
	db      dbm.DB
	logger  *zap.Logger
	metrics Metrics

	writeMu    sync.Mutex
	partitions map[string]*Partition
	indexes    map[string]*Index
}

func New(db dbm.DB, logger *zap.Logger, metrics Metrics) (*Store, error) {
	if db == nil {
		return nil, errors.New("store db is required")
	}
	if logger == nil {
		return nil, errors.New("store logger is required")
	}
	if metrics == nil {
		return nil, errors.New("store metrics is required")
	}
	return &Store{
		db:         db,
		logger:     logger,
		metrics:    metrics,
		partitions: make(map[string]*Partition),
		indexes:    make(map[string]*Index),
	}, nil
}

// Open creates a database of the given tm-db backend under dir.
func Open(name, backend, dir string) (dbm.DB, error) {
	db, err := dbm.NewDB(name, dbm.BackendType(backend), dir)
	if err != nil {
		return nil, fmt.Errorf("open %s db in %s: %w", backend, dir, err)
	}
	return db, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func partitionPrefix(name string) []byte {
	return []byte(partitionDelimiter + name + partitionDelimiter)
}

func (s *Store) checkName(name string) error {
	if name == "" {
		return errors.New("partition name is required")
	}
	if _, ok := s.partitions[name]; ok {
		return fmt.Errorf("partition %s already exists", name)
	}
	if _, ok := s.indexes[name]; ok {
		return fmt.Errorf("partition %s is already used by an index", name)
	}
	return nil
}

// Partition returns a named sub-store, creating it on first use.
func (s *Store) Partition(name string) (*Partition, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if p, ok := s.partitions[name]; ok {
		return p, nil
	}
	if err := s.checkName(name); err != nil {
		return nil, err
	}
	prefix := partitionPrefix(name)
	p := &Partition{
		store:  s,
		name:   name,
		prefix: prefix,
		db:     dbm.NewPrefixDB(s.db, prefix),
	}
	s.partitions[name] = p
	return p, nil
}

// Partition is a key space inside the store. Keys and values are strings
// and byte slices respectively; ordering is bytewise on the key.
type Partition struct {
	store   *Store
	name    string
	prefix  []byte
	db      dbm.DB
	indexes []*Index
}

func (p *Partition) Name() string { return p.name }

func (p *Partition) key(key string) []byte {
	return append(append([]byte(nil), p.prefix...), key...)
}

// Put writes value under key and updates every index of the partition in
// the same batch.
func (p *Partition) Put(ctx context.Context, key string, value []byte) (err error) {
	started := time.Now()
	defer func() {
		p.store.metrics.Observe("put", p.name, err, started)
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	if key == "" {
		return errors.New("key is required")
	}
	if value == nil {
		value = []byte{}
	}

	p.store.writeMu.Lock()
	defer p.store.writeMu.Unlock()

	batch := p.store.db.NewBatch()
	defer batch.Close()

	if len(p.indexes) > 0 {
		previous, err := p.db.Get([]byte(key))
		if err != nil {
			return fmt.Errorf("read %s/%s: %w", p.name, key, err)
		}
		for _, idx := range p.indexes {
			if err := idx.update(batch, key, previous, value); err != nil {
				return err
			}
		}
	}
	if err := batch.Set(p.key(key), value); err != nil {
		return fmt.Errorf("put %s/%s: %w", p.name, key, err)
	}
	if err := batch.WriteSync(); err != nil {
		return fmt.Errorf("write %s/%s: %w", p.name, key, err)
	}
	return nil
}

// Get returns the value stored under key or ErrNotFound.
func (p *Partition) Get(ctx context.Context, key string) (value []byte, err error) {
	started := time.Now()
	defer func() {
		if errors.Is(err, ErrNotFound) {
			p.store.metrics.Observe("get", p.name, nil, started)
			return
		}
		p.store.metrics.Observe("get", p.name, err, started)
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	value, err = p.db.Get([]byte(key))
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", p.name, key, err)
	}
	if value == nil {
		return nil, fmt.Errorf("%s/%s: %w", p.name, key, ErrNotFound)
	}
	return value, nil
}

// Range calls fn for every key starting with prefix in key order. Returning
// an error from fn stops the iteration and is returned. fn must not write to
// the store: memdb holds its read lock until the iterator is closed.
func (p *Partition) Range(ctx context.Context, prefix string, fn func(key string, value []byte) error) (err error) {
	started := time.Now()
	defer func() {
		p.store.metrics.Observe("range", p.name, err, started)
	}()

	var start, end []byte
	if prefix != "" {
		start = []byte(prefix)
		end = prefixEnd(start)
	}
	return iterate(ctx, p.db, start, end, fn)
}

// Each calls fn for every record of the partition.
func (p *Partition) Each(ctx context.Context, fn func(key string, value []byte) error) error {
	return p.Range(ctx, "", fn)
}

func iterate(ctx context.Context, db dbm.DB, start, end []byte, fn func(key string, value []byte) error) error {
	it, err := db.Iterator(start, end)
	if err != nil {
		return fmt.Errorf("open iterator: %w", err)
	}
	defer it.Close()

	for ; it.Valid(); it.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(string(it.Key()), append([]byte(nil), it.Value()...)); err != nil {
			return err
		}
	}
	if err := it.Error(); err != nil {
		return fmt.Errorf("iterate: %w", err)
	}
	return nil
}

// prefixEnd returns the smallest key greater than every key with prefix, or
// nil when no such key exists.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
