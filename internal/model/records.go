package model

import (
	"encoding/json"
	"fmt"

	"github.com/goodnatureofminers/swapbroker/internal/workflow"
)

// Field names under which the state machines persist their domain objects.
const (
	OrderField = "order"
	FillField  = "fill"
	DatesField = "dates"
)

// OrderRecord is an order together with the state its machine last persisted.
type OrderRecord struct {
	Order *Order
	State workflow.State
	Error string
}

// FillRecord is a fill together with the state its machine last persisted.
type FillRecord struct {
	Fill  *Fill
	State workflow.State
	Error string
}

// ParseOrderRecord parses a stored order machine record.
func ParseOrderRecord(key string, value []byte) (OrderRecord, workflow.Record, error) {
	rec, err := workflow.ParseRecord(value)
	if err != nil {
		return OrderRecord{}, workflow.Record{}, fmt.Errorf("order %s: %w", key, err)
	}
	var raw json.RawMessage
	if err := rec.Decode(OrderField, &raw); err != nil {
		return OrderRecord{}, workflow.Record{}, fmt.Errorf("order %s: %w", key, err)
	}
	if raw == nil {
		return OrderRecord{}, workflow.Record{}, fmt.Errorf("order %s: record has no %s field", key, OrderField)
	}
	order, err := OrderFromObject(key, raw)
	if err != nil {
		return OrderRecord{}, workflow.Record{}, err
	}
	return OrderRecord{Order: order, State: rec.State, Error: rec.Error}, rec, nil
}

// ParseFillRecord parses a stored fill machine record.
func ParseFillRecord(key string, value []byte) (FillRecord, workflow.Record, error) {
	rec, err := workflow.ParseRecord(value)
	if err != nil {
		return FillRecord{}, workflow.Record{}, fmt.Errorf("fill %s: %w", key, err)
	}
	var raw json.RawMessage
	if err := rec.Decode(FillField, &raw); err != nil {
		return FillRecord{}, workflow.Record{}, fmt.Errorf("fill %s: %w", key, err)
	}
	if raw == nil {
		return FillRecord{}, workflow.Record{}, fmt.Errorf("fill %s: record has no %s field", key, FillField)
	}
	fill, err := FillFromObject(key, raw)
	if err != nil {
		return FillRecord{}, workflow.Record{}, err
	}
	return FillRecord{Fill: fill, State: rec.State, Error: rec.Error}, rec, nil
}
