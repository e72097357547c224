// Package model holds the broker's domain records: block orders and the
// maker orders and taker fills they are worked into.
package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Side is the direction of an order relative to the base currency.
type Side string

const (
	SideBid Side = "BID"
	SideAsk Side = "ASK"
)

// Inverse returns the opposite side of the book.
func (s Side) Inverse() Side {
	if s == SideBid {
		return SideAsk
	}
	return SideBid
}

func (s Side) Valid() bool {
	return s == SideBid || s == SideAsk
}

// ParseSide accepts BID or ASK in any case.
func ParseSide(s string) (Side, error) {
	side := Side(strings.ToUpper(s))
	if !side.Valid() {
		return "", fmt.Errorf("%w: %q is not a valid side", ErrInvalidParams, s)
	}
	return side, nil
}

// TimeInForce restricts how long a block order keeps working.
type TimeInForce string

// TimeInForceGTC is the only supported restriction: good til cancelled.
const TimeInForceGTC TimeInForce = "GTC"

func (t TimeInForce) Valid() bool {
	return t == TimeInForceGTC
}

type BlockOrderStatus string

const (
	BlockOrderStatusActive    BlockOrderStatus = "ACTIVE"
	BlockOrderStatusCancelled BlockOrderStatus = "CANCELLED"
	BlockOrderStatusCompleted BlockOrderStatus = "COMPLETED"
	BlockOrderStatusFailed    BlockOrderStatus = "FAILED"
)

func (s BlockOrderStatus) Valid() bool {
	switch s {
	case BlockOrderStatusActive, BlockOrderStatusCancelled, BlockOrderStatusCompleted, BlockOrderStatusFailed:
		return true
	}
	return false
}

const (
	keyDelimiter = ":"
	// UnassignedIDPrefix marks keys of records persisted before the relayer
	// assigned them an identifier.
	UnassignedIDPrefix = "NO_ASSIGNED_ID_"
)

// NewID generates a block order identifier.
func NewID() string {
	return uuid.NewString()
}

// NewPlaceholderID generates a local identifier for a record the relayer has
// not named yet.
func NewPlaceholderID() string {
	return UnassignedIDPrefix + uuid.NewString()
}

// ChildKey is the storage key of an order or fill owned by a block order.
func ChildKey(blockOrderID, id string) string {
	return blockOrderID + keyDelimiter + id
}

// ChildPrefix is the key prefix shared by every order or fill of a block order.
func ChildPrefix(blockOrderID string) string {
	return blockOrderID + keyDelimiter
}

func splitChildKey(key string) (blockOrderID, id string, err error) {
	blockOrderID, id, ok := strings.Cut(key, keyDelimiter)
	if !ok || blockOrderID == "" || id == "" {
		return "", "", fmt.Errorf("malformed key %q", key)
	}
	if strings.HasPrefix(id, UnassignedIDPrefix) {
		id = ""
	}
	return blockOrderID, id, nil
}

// BookOrder is a resting order as reported by the order book.
type BookOrder struct {
	OrderID       string
	BaseSymbol    string
	CounterSymbol string
	Side          Side
	BaseAmount    int64
	CounterAmount int64
}
