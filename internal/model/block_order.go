package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goodnatureofminers/swapbroker/pkg/safe"
	"github.com/shopspring/decimal"
)

const marketDelimiter = "/"

// BlockOrder is a user's trade intent, worked into child orders and fills.
// Amount and Price are in common units of the base and counter currencies.
type BlockOrder struct {
	ID          string
	MarketName  string
	Side        Side
	Amount      decimal.Decimal
	Price       *decimal.Decimal
	TimeInForce TimeInForce
	Timestamp   int64

	// Orders and Fills are populated on demand from storage.
	Orders []OrderRecord
	Fills  []FillRecord

	base    Currency
	counter Currency

	mu     sync.RWMutex
	status BlockOrderStatus
}

type BlockOrderParams struct {
	ID          string
	MarketName  string
	Side        Side
	Amount      decimal.Decimal
	Price       *decimal.Decimal
	TimeInForce TimeInForce
	Timestamp   int64
	Status      BlockOrderStatus
}

// ParseMarket splits a market name such as BTC/LTC into its symbols.
func ParseMarket(marketName string) (base, counter string, err error) {
	base, counter, ok := strings.Cut(marketName, marketDelimiter)
	if !ok || base == "" || counter == "" || strings.Contains(counter, marketDelimiter) {
		return "", "", fmt.Errorf("%w: %q is not a valid market name", ErrInvalidParams, marketName)
	}
	return base, counter, nil
}

func NewBlockOrder(p BlockOrderParams, currencies Currencies) (*BlockOrder, error) {
	if p.ID == "" {
		return nil, fmt.Errorf("%w: block order id is required", ErrInvalidParams)
	}
	baseSymbol, counterSymbol, err := ParseMarket(p.MarketName)
	if err != nil {
		return nil, err
	}
	base, err := currencies.Lookup(baseSymbol)
	if err != nil {
		return nil, err
	}
	counter, err := currencies.Lookup(counterSymbol)
	if err != nil {
		return nil, err
	}
	if !p.Side.Valid() {
		return nil, fmt.Errorf("%w: %s is not a valid side for a block order", ErrInvalidParams, p.Side)
	}
	if !p.TimeInForce.Valid() {
		return nil, fmt.Errorf("%w: only time in force %s is supported, got %q", ErrInvalidParams, TimeInForceGTC, p.TimeInForce)
	}
	if !p.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: a positive amount is required to create a block order", ErrInvalidParams)
	}
	if _, err := base.ToQuantums(p.Amount); err != nil {
		return nil, err
	}
	if p.Price != nil && !p.Price.IsPositive() {
		return nil, fmt.Errorf("%w: limit price must be positive", ErrInvalidParams)
	}
	status := p.Status
	if status == "" {
		status = BlockOrderStatusActive
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: block order status of %s is invalid", ErrInvalidParams, status)
	}

	bo := &BlockOrder{
		ID:          p.ID,
		MarketName:  p.MarketName,
		Side:        p.Side,
		Amount:      p.Amount,
		TimeInForce: p.TimeInForce,
		Timestamp:   p.Timestamp,
		base:        base,
		counter:     counter,
		status:      status,
	}
	if p.Price != nil {
		price := *p.Price
		bo.Price = &price
	}
	return bo, nil
}

type storedBlockOrder struct {
	MarketName  string           `json:"marketName"`
	Side        Side             `json:"side"`
	Amount      string           `json:"amount"`
	Price       *string          `json:"price"`
	TimeInForce TimeInForce      `json:"timeInForce"`
	Timestamp   string           `json:"timestamp"`
	Status      BlockOrderStatus `json:"status"`
}

// Value is the storage representation keyed by the block order id.
func (b *BlockOrder) Value() ([]byte, error) {
	s := storedBlockOrder{
		MarketName:  b.MarketName,
		Side:        b.Side,
		Amount:      b.Amount.String(),
		TimeInForce: b.TimeInForce,
		Timestamp:   strconv.FormatInt(b.Timestamp, 10),
		Status:      b.Status(),
	}
	if b.Price != nil {
		price := b.Price.String()
		s.Price = &price
	}
	return json.Marshal(s)
}

// BlockOrderFromStorage rebuilds a block order from its key and stored value.
func BlockOrderFromStorage(key string, value []byte, currencies Currencies) (*BlockOrder, error) {
	var s storedBlockOrder
	if err := json.Unmarshal(value, &s); err != nil {
		return nil, fmt.Errorf("decode block order %s: %w", key, err)
	}
	amount, err := decimal.NewFromString(s.Amount)
	if err != nil {
		return nil, fmt.Errorf("decode block order %s amount: %w", key, err)
	}
	var price *decimal.Decimal
	if s.Price != nil {
		p, err := decimal.NewFromString(*s.Price)
		if err != nil {
			return nil, fmt.Errorf("decode block order %s price: %w", key, err)
		}
		price = &p
	}
	var timestamp int64
	if s.Timestamp != "" {
		if timestamp, err = strconv.ParseInt(s.Timestamp, 10, 64); err != nil {
			return nil, fmt.Errorf("decode block order %s timestamp: %w", key, err)
		}
	}
	if s.Status == "" {
		return nil, fmt.Errorf("block order %s has no status", key)
	}
	return NewBlockOrder(BlockOrderParams{
		ID:          key,
		MarketName:  s.MarketName,
		Side:        s.Side,
		Amount:      amount,
		Price:       price,
		TimeInForce: s.TimeInForce,
		Timestamp:   timestamp,
		Status:      s.Status,
	}, currencies)
}

func (b *BlockOrder) Status() BlockOrderStatus {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.status
}

func (b *BlockOrder) IsActive() bool {
	return b.Status() == BlockOrderStatusActive
}

func (b *BlockOrder) Fail() error { return b.finish(BlockOrderStatusFailed) }

func (b *BlockOrder) Complete() error { return b.finish(BlockOrderStatusCompleted) }

func (b *BlockOrder) Cancel() error { return b.finish(BlockOrderStatusCancelled) }

func (b *BlockOrder) finish(status BlockOrderStatus) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.status != BlockOrderStatusActive {
		return fmt.Errorf("%w: cannot move block order %s from %s to %s", ErrBlockOrderNotActive, b.ID, b.status, status)
	}
	b.status = status
	return nil
}

func (b *BlockOrder) BaseSymbol() string { return b.base.Symbol }

func (b *BlockOrder) CounterSymbol() string { return b.counter.Symbol }

func (b *BlockOrder) BaseCurrency() Currency { return b.base }

func (b *BlockOrder) CounterCurrency() Currency { return b.counter }

func (b *BlockOrder) InverseSide() Side { return b.Side.Inverse() }

func (b *BlockOrder) IsMarketOrder() bool { return b.Price == nil }

// BaseAmount is the target amount in base quantums.
func (b *BlockOrder) BaseAmount() int64 {
	// validated in NewBlockOrder
	q, _ := b.base.ToQuantums(b.Amount)
	return q
}

// CounterAmount is the counter quantums implied by the limit price, or 0 for
// market orders.
func (b *BlockOrder) CounterAmount() int64 {
	if b.Price == nil {
		return 0
	}
	q, err := safe.RoundInt64(b.Amount.Mul(*b.Price).Mul(decimal.NewFromInt(b.counter.QuantumsPerCommon)))
	if err != nil {
		return 0
	}
	return q
}

// QuantumPrice is the limit price in counter quantums per base quantum.
func (b *BlockOrder) QuantumPrice() (decimal.Decimal, bool) {
	if b.Price == nil {
		return decimal.Zero, false
	}
	return b.Price.
		Mul(decimal.NewFromInt(b.counter.QuantumsPerCommon)).
		DivRound(decimal.NewFromInt(b.base.QuantumsPerCommon), priceDecimals), true
}

func (b *BlockOrder) InboundSymbol() string {
	if b.Side == SideBid {
		return b.BaseSymbol()
	}
	return b.CounterSymbol()
}

func (b *BlockOrder) OutboundSymbol() string {
	if b.Side == SideBid {
		return b.CounterSymbol()
	}
	return b.BaseSymbol()
}

func (b *BlockOrder) InboundAmount() int64 {
	if b.Side == SideBid {
		return b.BaseAmount()
	}
	return b.CounterAmount()
}

func (b *BlockOrder) OutboundAmount() int64 {
	if b.Side == SideBid {
		return b.CounterAmount()
	}
	return b.BaseAmount()
}

// ActiveOrders are the orders still able to move funds.
func (b *BlockOrder) ActiveOrders() []OrderRecord {
	var out []OrderRecord
	for _, r := range b.Orders {
		switch r.State {
		case OrderStateCreated, OrderStatePlaced, OrderStateExecuting:
			out = append(out, r)
		}
	}
	return out
}

// OpenOrders are the orders that can still be cancelled on the relayer.
func (b *BlockOrder) OpenOrders() []OrderRecord {
	var out []OrderRecord
	for _, r := range b.Orders {
		switch r.State {
		case OrderStateCreated, OrderStatePlaced:
			out = append(out, r)
		}
	}
	return out
}

// ActiveFills are the fills still able to move funds.
func (b *BlockOrder) ActiveFills() []FillRecord {
	var out []FillRecord
	for _, r := range b.Fills {
		switch r.State {
		case FillStateCreated, FillStateFilled:
			out = append(out, r)
		}
	}
	return out
}

// ActiveOutboundAmount is the outbound exposure of active children. An
// executing order only commits its fill amount.
func (b *BlockOrder) ActiveOutboundAmount() (int64, error) {
	var total int64
	for _, r := range b.ActiveOrders() {
		amount := r.Order.OutboundAmount()
		if r.State == OrderStateExecuting {
			var err error
			if amount, err = r.Order.OutboundFillAmount(); err != nil {
				return 0, fmt.Errorf("order %s: %w", r.Order.OrderID, err)
			}
		}
		total += amount
	}
	for _, r := range b.ActiveFills() {
		amount, err := r.Fill.OutboundAmount()
		if err != nil {
			return 0, fmt.Errorf("fill %s: %w", r.Fill.FillID, err)
		}
		total += amount
	}
	return total, nil
}

// ActiveInboundAmount mirrors ActiveOutboundAmount for the inbound leg.
func (b *BlockOrder) ActiveInboundAmount() (int64, error) {
	var total int64
	for _, r := range b.ActiveOrders() {
		amount := r.Order.InboundAmount()
		if r.State == OrderStateExecuting {
			var err error
			if amount, err = r.Order.InboundFillAmount(); err != nil {
				return 0, fmt.Errorf("order %s: %w", r.Order.OrderID, err)
			}
		}
		total += amount
	}
	for _, r := range b.ActiveFills() {
		amount, err := r.Fill.InboundAmount()
		if err != nil {
			return 0, fmt.Errorf("fill %s: %w", r.Fill.FillID, err)
		}
		total += amount
	}
	return total, nil
}

// FilledAmount sums the base amounts committed by fills in filled or
// executed and orders in executing or completed.
func (b *BlockOrder) FilledAmount() int64 {
	var total int64
	for _, r := range b.Fills {
		switch r.State {
		case FillStateFilled, FillStateExecuted:
			total += r.Fill.FillAmount
		}
	}
	for _, r := range b.Orders {
		switch r.State {
		case OrderStateExecuting, OrderStateCompleted:
			total += r.Order.FillAmount
		}
	}
	return total
}

func (b *BlockOrder) datetime() string {
	return time.Unix(0, b.Timestamp).UTC().Format(time.RFC3339Nano)
}
