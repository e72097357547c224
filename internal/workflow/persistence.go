package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

const (
	fieldState   = "state"
	fieldHistory = "history"
	fieldError   = "error"
)

// Field produces the value stored under its name in a record.
type Field func() any

// PersistenceConfig configures the Persistence plugin. Key must return the
// storage key of the host object; an empty key fails the transition.
type PersistenceConfig struct {
	Store  Store
	Key    func() string
	Fields map[string]Field
}

// Persistence writes {state, history, error, <fields>} on every entered
// state. Goto never persists because it bypasses hooks.
type Persistence struct {
	BasePlugin
	store  Store
	key    func() string
	fields map[string]Field
}

func NewPersistence(cfg PersistenceConfig) (*Persistence, error) {
	if cfg.Store == nil {
		return nil, errors.New("persistence store is required")
	}
	if cfg.Key == nil {
		return nil, errors.New("persistence key is required")
	}
	for name := range cfg.Fields {
		switch name {
		case fieldState, fieldHistory, fieldError:
			return nil, fmt.Errorf("persisted field %q is reserved", name)
		}
	}
	return &Persistence{store: cfg.Store, key: cfg.Key, fields: cfg.Fields}, nil
}

func (p *Persistence) Hooks() Hooks {
	return Hooks{
		EnterState: func(ctx context.Context, m *Machine, _ Lifecycle) error {
			return p.Persist(ctx, m)
		},
	}
}

// Persist writes the machine record under the host key.
func (p *Persistence) Persist(ctx context.Context, m *Machine) error {
	key := p.key()
	if key == "" {
		return errors.New("a key is required to save state")
	}

	data := make(map[string]any, len(p.fields)+3)
	data[fieldState] = m.State()
	data[fieldHistory] = m.History()
	if err := m.Err(); err != nil {
		data[fieldError] = err.Error()
	}
	for name, field := range p.fields {
		data[name] = field()
	}

	value, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal record %s: %w", key, err)
	}
	if err := p.store.Put(ctx, key, value); err != nil {
		return fmt.Errorf("persist record %s: %w", key, err)
	}
	return nil
}

// Record is a parsed machine record.
type Record struct {
	State   State
	History []State
	Error   string
	fields  map[string]json.RawMessage
}

// ParseRecord parses a value written by Persistence.
func ParseRecord(value []byte) (Record, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(value, &raw); err != nil {
		return Record{}, fmt.Errorf("parse record: %w", err)
	}

	var rec Record
	if err := decodeField(raw, fieldState, &rec.State); err != nil {
		return Record{}, err
	}
	if rec.State == "" {
		return Record{}, errors.New("parse record: state is missing")
	}
	if err := decodeField(raw, fieldHistory, &rec.History); err != nil {
		return Record{}, err
	}
	if err := decodeField(raw, fieldError, &rec.Error); err != nil {
		return Record{}, err
	}
	rec.fields = raw
	return rec, nil
}

// Has reports whether the record carries the named field.
func (r Record) Has(field string) bool {
	_, ok := r.fields[field]
	return ok
}

// Decode unmarshals the named field into v. Missing fields leave v untouched.
func (r Record) Decode(field string, v any) error {
	return decodeField(r.fields, field, v)
}

func decodeField(raw map[string]json.RawMessage, field string, v any) error {
	value, ok := raw[field]
	if !ok || string(value) == "null" {
		return nil
	}
	if err := json.Unmarshal(value, v); err != nil {
		return fmt.Errorf("decode record field %s: %w", field, err)
	}
	return nil
}
