package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	dbm "github.com/tendermint/tm-db"
	"go.uber.org/zap"
)

const indexDelimiter = "\x00"

// IndexFunc derives the indexed value of a record. Records for which it
// reports false are left out of the index.
type IndexFunc func(key string, value []byte) (string, bool)

// Index maps a value derived from each record of a source partition back to
// the record's key. It is maintained on every Put to the source.
type Index struct {
	store  *Store
	name   string
	source *Partition
	derive IndexFunc
	db     dbm.DB
}

// Index registers a secondary index over source. Call Ensure before relying
// on it so records written by older versions are covered.
func (s *Store) Index(name string, source *Partition, derive IndexFunc) (*Index, error) {
	if source == nil || source.store != s {
		return nil, errors.New("index source must be a partition of this store")
	}
	if derive == nil {
		return nil, errors.New("index func is required")
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.checkName(name); err != nil {
		return nil, err
	}
	idx := &Index{
		store:  s,
		name:   name,
		source: source,
		derive: derive,
		db:     dbm.NewPrefixDB(s.db, partitionPrefix(name)),
	}
	s.indexes[name] = idx
	source.indexes = append(source.indexes, idx)
	return idx, nil
}

func (idx *Index) Name() string { return idx.name }

func (idx *Index) entry(value, sourceKey string) []byte {
	return []byte(string(partitionPrefix(idx.name)) + value + indexDelimiter + sourceKey)
}

func (idx *Index) update(batch dbm.Batch, key string, previous, value []byte) error {
	newValue, indexed := idx.derive(key, value)
	if previous != nil {
		if oldValue, ok := idx.derive(key, previous); ok && (!indexed || oldValue != newValue) {
			if err := batch.Delete(idx.entry(oldValue, key)); err != nil {
				return fmt.Errorf("unindex %s/%s: %w", idx.name, key, err)
			}
		}
	}
	if indexed {
		if err := batch.Set(idx.entry(newValue, key), []byte(key)); err != nil {
			return fmt.Errorf("index %s/%s: %w", idx.name, key, err)
		}
	}
	return nil
}

// Ensure drops every entry of the index and rebuilds it from the source.
func (idx *Index) Ensure(ctx context.Context) (err error) {
	started := time.Now()
	defer func() {
		idx.store.metrics.Observe("ensure_index", idx.name, err, started)
	}()

	idx.store.writeMu.Lock()
	defer idx.store.writeMu.Unlock()

	batch := idx.store.db.NewBatch()
	defer batch.Close()

	prefix := partitionPrefix(idx.name)
	var dropped, indexed int
	err = iterate(ctx, idx.db, nil, nil, func(key string, _ []byte) error {
		dropped++
		return batch.Delete(append(append([]byte(nil), prefix...), key...))
	})
	if err != nil {
		return fmt.Errorf("clear index %s: %w", idx.name, err)
	}
	err = iterate(ctx, idx.source.db, nil, nil, func(key string, value []byte) error {
		v, ok := idx.derive(key, value)
		if !ok {
			return nil
		}
		indexed++
		return batch.Set(idx.entry(v, key), []byte(key))
	})
	if err != nil {
		return fmt.Errorf("rebuild index %s: %w", idx.name, err)
	}
	if err := batch.WriteSync(); err != nil {
		return fmt.Errorf("write index %s: %w", idx.name, err)
	}

	idx.store.logger.Info("index rebuilt",
		zap.String("index", idx.name),
		zap.String("source", idx.source.name),
		zap.Int("dropped", dropped),
		zap.Int("indexed", indexed),
	)
	return nil
}

// Keys returns the source keys indexed under value.
func (idx *Index) Keys(ctx context.Context, value string) (keys []string, err error) {
	started := time.Now()
	defer func() {
		idx.store.metrics.Observe("lookup", idx.name, err, started)
	}()

	start := []byte(value + indexDelimiter)
	err = iterate(ctx, idx.db, start, prefixEnd(start), func(key string, sourceKey []byte) error {
		if !strings.HasPrefix(key, value+indexDelimiter) {
			return nil
		}
		keys = append(keys, string(sourceKey))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", idx.name, err)
	}
	return keys, nil
}

// Lookup returns the first source record indexed under value.
func (idx *Index) Lookup(ctx context.Context, value string) (string, []byte, error) {
	keys, err := idx.Keys(ctx, value)
	if err != nil {
		return "", nil, err
	}
	if len(keys) == 0 {
		return "", nil, fmt.Errorf("%s %q: %w", idx.name, value, ErrNotFound)
	}
	record, err := idx.source.Get(ctx, keys[0])
	if err != nil {
		return "", nil, err
	}
	return keys[0], record, nil
}
