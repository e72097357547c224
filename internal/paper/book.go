package paper

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/goodnatureofminers/swapbroker/internal/model"
	"github.com/goodnatureofminers/swapbroker/pkg/safe"
	"github.com/shopspring/decimal"
)

var (
	ErrNoLiquidity   = errors.New("no orders on the book")
	ErrOrderNotFound = errors.New("order is not on the book")
)

const bookPriceDecimals = 16

type bookEntry struct {
	order model.BookOrder
	seq   uint64
}

func (e bookEntry) price() decimal.Decimal {
	return decimal.NewFromInt(e.order.CounterAmount).DivRound(decimal.NewFromInt(e.order.BaseAmount), bookPriceDecimals)
}

// Book is the order book of one market. Prices are counter quantums per
// base quantum.
type Book struct {
	base    string
	counter string

	mu      sync.RWMutex
	seq     uint64
	entries map[string]*bookEntry
}

func NewBook(base, counter string) *Book {
	return &Book{base: base, counter: counter, entries: make(map[string]*bookEntry)}
}

func (b *Book) BaseSymbol() string { return b.base }

func (b *Book) CounterSymbol() string { return b.counter }

func (b *Book) MarketName() string { return b.base + "/" + b.counter }

// Add rests order on the book.
func (b *Book) Add(order model.BookOrder) error {
	switch {
	case order.OrderID == "":
		return fmt.Errorf("%w: book order id is required", model.ErrInvalidParams)
	case order.BaseSymbol != b.base || order.CounterSymbol != b.counter:
		return fmt.Errorf("%w: order %s is not on %s", model.ErrInvalidParams, order.OrderID, b.MarketName())
	case !order.Side.Valid():
		return fmt.Errorf("%w: %s is not a valid side", model.ErrInvalidParams, order.Side)
	case order.BaseAmount <= 0 || order.CounterAmount <= 0:
		return fmt.Errorf("%w: order %s amounts must be positive", model.ErrInvalidParams, order.OrderID)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.entries[order.OrderID]; ok {
		return fmt.Errorf("order %s is already on the book", order.OrderID)
	}
	b.seq++
	b.entries[order.OrderID] = &bookEntry{order: order, seq: b.seq}
	return nil
}

// Seed rests levels orders of size base quantums on each side, one percent
// apart around mid.
func (b *Book) Seed(mid decimal.Decimal, levels int, size int64) error {
	if !mid.IsPositive() || levels <= 0 || size <= 0 {
		return fmt.Errorf("%w: cannot seed %s with mid %s, %d levels of %d", model.ErrInvalidParams, b.MarketName(), mid, levels, size)
	}
	step := decimal.New(1, -2)
	for i := 1; i <= levels; i++ {
		offset := step.Mul(decimal.NewFromInt(int64(i)))
		for side, price := range map[model.Side]decimal.Decimal{
			model.SideAsk: mid.Mul(decimal.NewFromInt(1).Add(offset)),
			model.SideBid: mid.Mul(decimal.NewFromInt(1).Sub(offset)),
		} {
			counter, err := safe.RoundInt64(price.Mul(decimal.NewFromInt(size)))
			if err != nil {
				return err
			}
			if counter <= 0 {
				continue
			}
			if err := b.Add(model.BookOrder{
				OrderID:       model.NewID(),
				BaseSymbol:    b.base,
				CounterSymbol: b.counter,
				Side:          side,
				BaseAmount:    size,
				CounterAmount: counter,
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

// Get returns the remaining part of a resting order.
func (b *Book) Get(orderID string) (model.BookOrder, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	e, ok := b.entries[orderID]
	if !ok {
		return model.BookOrder{}, false
	}
	return e.order, true
}

// Remove takes an order off the book.
func (b *Book) Remove(orderID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.entries[orderID]
	delete(b.entries, orderID)
	return ok
}

// Take reduces a resting order by amount base quantums at its own price and
// returns the taken part. An order taken entirely leaves the book.
func (b *Book) Take(orderID string, amount int64) (model.BookOrder, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.entries[orderID]
	if !ok {
		return model.BookOrder{}, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	if amount <= 0 || amount > e.order.BaseAmount {
		return model.BookOrder{}, fmt.Errorf("%w: cannot take %d of %d", model.ErrInvalidParams, amount, e.order.BaseAmount)
	}
	counter, err := safe.RoundInt64(e.price().Mul(decimal.NewFromInt(amount)))
	if err != nil {
		return model.BookOrder{}, err
	}
	taken := e.order
	taken.BaseAmount = amount
	taken.CounterAmount = counter

	if amount == e.order.BaseAmount {
		delete(b.entries, orderID)
		return taken, nil
	}
	e.order.BaseAmount -= amount
	e.order.CounterAmount -= counter
	if e.order.CounterAmount <= 0 {
		delete(b.entries, orderID)
	}
	return taken, nil
}

// sorted returns the orders of side best first: lowest asks, highest bids,
// oldest first within a price.
func (b *Book) sorted(side model.Side) []bookEntry {
	b.mu.RLock()
	out := make([]bookEntry, 0, len(b.entries))
	for _, e := range b.entries {
		if e.order.Side == side {
			out = append(out, *e)
		}
	}
	b.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		pi, pj := out[i].price(), out[j].price()
		if !pi.Equal(pj) {
			if side == model.SideAsk {
				return pi.LessThan(pj)
			}
			return pi.GreaterThan(pj)
		}
		return out[i].seq < out[j].seq
	})
	return out
}

func (b *Book) GetBestOrders(ctx context.Context, side model.Side, depth int64, quantumPrice *decimal.Decimal) ([]model.BookOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var (
		out   []model.BookOrder
		total int64
	)
	for _, e := range b.sorted(side) {
		if total >= depth {
			break
		}
		if quantumPrice != nil {
			p := e.price()
			if side == model.SideAsk && p.GreaterThan(*quantumPrice) {
				break
			}
			if side == model.SideBid && p.LessThan(*quantumPrice) {
				break
			}
		}
		out = append(out, e.order)
		total += e.order.BaseAmount
	}
	return out, nil
}

// GetAveragePrice is the weighted price of taking depth from side, or of
// everything on side when the book is shallower.
func (b *Book) GetAveragePrice(ctx context.Context, side model.Side, depth int64) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, err
	}
	var (
		base    int64
		counter decimal.Decimal
	)
	for _, e := range b.sorted(side) {
		if base >= depth {
			break
		}
		amount := min(e.order.BaseAmount, depth-base)
		counter = counter.Add(e.price().Mul(decimal.NewFromInt(amount)))
		base += amount
	}
	if base == 0 {
		return decimal.Zero, fmt.Errorf("%w: %s %s", ErrNoLiquidity, b.MarketName(), side)
	}
	return counter.DivRound(decimal.NewFromInt(base), bookPriceDecimals), nil
}
