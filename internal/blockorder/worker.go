// Package blockorder works block orders into orders and fills on the relayer
// and keeps each block order's status in line with its children.
package blockorder

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/goodnatureofminers/swapbroker/internal/model"
	"github.com/goodnatureofminers/swapbroker/internal/store"
	"github.com/goodnatureofminers/swapbroker/internal/swap"
	"go.uber.org/zap"
)

// Storage layout of the worker.
const (
	PartitionBlockOrders = "blockOrders"
	PartitionOrders      = "orders"
	PartitionFills       = "fills"
	IndexOrdersByHash    = "ordersByHash"
	IndexOrdersByOrderID = "ordersByOrderId"
)

var (
	ErrUnknownMarket     = errors.New("unknown market")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInsufficientDepth = errors.New("insufficient depth")
)

const defaultWorkers = 4

// Config holds the collaborators of a Worker. Machines may be left nil, in
// which case swap state machines are built from Swap with their records
// stored in the worker's partitions.
type Config struct {
	Orderbooks    []Orderbook
	Store         *store.Store
	Relayer       PaymentChannelNetwork
	Maker         OrderCanceller
	Identity      Authorizer
	Engines       Engines
	Currencies    model.Currencies
	Machines      Machines
	Swap          swap.Deps
	Logger        *zap.Logger
	Metrics       Metrics
	Workers       int
	CancelBackoff func() backoff.BackOff
	Now           func() time.Time
}

// DefaultCancelBackoff retries relayer cancellations for up to ten seconds.
func DefaultCancelBackoff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.Multiplier = 1.5
	b.MaxElapsedTime = 10 * time.Second
	return b
}

// Worker owns the block order key space. It creates, supervises and
// recovers the order and fill state machines of every block order.
type Worker struct {
	orderbooks      map[string]Orderbook
	blockOrders     *store.Partition
	orders          *store.Partition
	fills           *store.Partition
	ordersByHash    *store.Index
	ordersByOrderID *store.Index

	relayer       PaymentChannelNetwork
	maker         OrderCanceller
	identity      Authorizer
	engines       Engines
	currencies    model.Currencies
	machines      Machines
	logger        *zap.Logger
	metrics       Metrics
	workers       int
	cancelBackoff func() backoff.BackOff
	now           func() time.Time

	// ctx bounds background work and watchers; Stop cancels it.
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	creating keyedMutex
	statuses keyedMutex
}

func New(cfg Config) (*Worker, error) {
	switch {
	case len(cfg.Orderbooks) == 0:
		return nil, errors.New("block order worker needs at least one orderbook")
	case cfg.Store == nil:
		return nil, errors.New("block order worker store is required")
	case cfg.Relayer == nil:
		return nil, errors.New("block order worker relayer is required")
	case cfg.Maker == nil:
		return nil, errors.New("block order worker maker service is required")
	case cfg.Identity == nil:
		return nil, errors.New("block order worker identity is required")
	case cfg.Engines == nil:
		return nil, errors.New("block order worker engines are required")
	case cfg.Logger == nil:
		return nil, errors.New("block order worker logger is required")
	case cfg.Metrics == nil:
		return nil, errors.New("block order worker metrics is required")
	}

	orderbooks := make(map[string]Orderbook, len(cfg.Orderbooks))
	for _, book := range cfg.Orderbooks {
		orderbooks[book.BaseSymbol()+"/"+book.CounterSymbol()] = book
	}

	w := &Worker{
		orderbooks:    orderbooks,
		relayer:       cfg.Relayer,
		maker:         cfg.Maker,
		identity:      cfg.Identity,
		engines:       cfg.Engines,
		currencies:    cfg.Currencies,
		machines:      cfg.Machines,
		logger:        cfg.Logger.Named("block_order_worker"),
		metrics:       cfg.Metrics,
		workers:       cfg.Workers,
		cancelBackoff: cfg.CancelBackoff,
		now:           cfg.Now,
	}
	if w.currencies == nil {
		w.currencies = model.DefaultCurrencies()
	}
	if w.workers <= 0 {
		w.workers = defaultWorkers
	}
	if w.cancelBackoff == nil {
		w.cancelBackoff = DefaultCancelBackoff
	}
	if w.now == nil {
		w.now = time.Now
	}

	var err error
	if w.blockOrders, err = cfg.Store.Partition(PartitionBlockOrders); err != nil {
		return nil, err
	}
	if w.orders, err = cfg.Store.Partition(PartitionOrders); err != nil {
		return nil, err
	}
	if w.fills, err = cfg.Store.Partition(PartitionFills); err != nil {
		return nil, err
	}
	if w.ordersByHash, err = cfg.Store.Index(IndexOrdersByHash, w.orders, orderIndex(func(o *model.Order) string { return o.SwapHash })); err != nil {
		return nil, err
	}
	if w.ordersByOrderID, err = cfg.Store.Index(IndexOrdersByOrderID, w.orders, orderIndex(func(o *model.Order) string { return o.OrderID })); err != nil {
		return nil, err
	}
	if w.machines == nil {
		w.machines = NewSwapMachines(cfg.Swap, w.orders, w.fills)
	}

	w.ctx, w.cancel = context.WithCancel(context.Background())
	return w, nil
}

func orderIndex(field func(*model.Order) string) store.IndexFunc {
	return func(key string, value []byte) (string, bool) {
		rec, _, err := model.ParseOrderRecord(key, value)
		if err != nil {
			return "", false
		}
		v := field(rec.Order)
		return v, v != ""
	}
}

// Initialize rebuilds the order indexes and resumes every order and fill
// that was interrupted in an indeterminate state.
func (w *Worker) Initialize(ctx context.Context) error {
	for _, idx := range []*store.Index{w.ordersByHash, w.ordersByOrderID} {
		if err := idx.Ensure(ctx); err != nil {
			return err
		}
	}
	return w.settleIndeterminateOrdersFills(ctx)
}

// Stop cancels background work and waits for every goroutine of the worker.
// Machines are left in their current state for the next Initialize.
func (w *Worker) Stop() {
	w.cancel()
	w.wg.Wait()
}

// Wait blocks until every goroutine of the worker has returned.
func (w *Worker) Wait() {
	w.wg.Wait()
}

func (w *Worker) goBackground(fn func(ctx context.Context)) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		fn(w.ctx)
	}()
}

// GetBlockOrder returns the block order with its orders and fills.
func (w *Worker) GetBlockOrder(ctx context.Context, blockOrderID string) (*model.BlockOrder, error) {
	bo, err := w.loadBlockOrder(ctx, blockOrderID)
	if err != nil {
		return nil, err
	}
	if err := w.populate(ctx, bo); err != nil {
		return nil, err
	}
	return bo, nil
}

// GetBlockOrders lists the block orders of a market without their children.
func (w *Worker) GetBlockOrders(ctx context.Context, marketName string) ([]*model.BlockOrder, error) {
	if _, ok := w.orderbooks[marketName]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMarket, marketName)
	}
	all, err := w.allBlockOrders(ctx)
	if err != nil {
		return nil, err
	}
	var out []*model.BlockOrder
	for _, bo := range all {
		if bo.MarketName == marketName {
			out = append(out, bo)
		}
	}
	return out, nil
}

// OrderForSwapHash finds the local order settling swapHash.
func (w *Worker) OrderForSwapHash(ctx context.Context, swapHash string) (model.OrderRecord, error) {
	key, value, err := w.ordersByHash.Lookup(ctx, swapHash)
	if err != nil {
		return model.OrderRecord{}, fmt.Errorf("order for swap hash %s: %w", swapHash, err)
	}
	rec, _, err := model.ParseOrderRecord(key, value)
	if err != nil {
		return model.OrderRecord{}, err
	}
	return rec, nil
}

func (w *Worker) loadBlockOrder(ctx context.Context, blockOrderID string) (*model.BlockOrder, error) {
	value, err := w.blockOrders.Get(ctx, blockOrderID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &model.BlockOrderNotFoundError{ID: blockOrderID, Err: err}
	}
	if err != nil {
		return nil, err
	}
	return model.BlockOrderFromStorage(blockOrderID, value, w.currencies)
}

func (w *Worker) saveBlockOrder(ctx context.Context, bo *model.BlockOrder) error {
	value, err := bo.Value()
	if err != nil {
		return fmt.Errorf("encode block order %s: %w", bo.ID, err)
	}
	if err := w.blockOrders.Put(ctx, bo.ID, value); err != nil {
		return fmt.Errorf("save block order %s: %w", bo.ID, err)
	}
	return nil
}

type rawRecord struct {
	key   string
	value []byte
}

func collect(ctx context.Context, p *store.Partition, prefix string) ([]rawRecord, error) {
	var out []rawRecord
	err := p.Range(ctx, prefix, func(key string, value []byte) error {
		out = append(out, rawRecord{key: key, value: value})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p.Name(), err)
	}
	return out, nil
}

func (w *Worker) allBlockOrders(ctx context.Context) ([]*model.BlockOrder, error) {
	records, err := collect(ctx, w.blockOrders, "")
	if err != nil {
		return nil, err
	}
	out := make([]*model.BlockOrder, 0, len(records))
	for _, r := range records {
		bo, err := model.BlockOrderFromStorage(r.key, r.value, w.currencies)
		if err != nil {
			return nil, err
		}
		out = append(out, bo)
	}
	return out, nil
}

// populate loads the stored orders and fills of bo.
func (w *Worker) populate(ctx context.Context, bo *model.BlockOrder) error {
	prefix := model.ChildPrefix(bo.ID)
	orders, err := collect(ctx, w.orders, prefix)
	if err != nil {
		return err
	}
	fills, err := collect(ctx, w.fills, prefix)
	if err != nil {
		return err
	}

	bo.Orders = make([]model.OrderRecord, 0, len(orders))
	for _, r := range orders {
		rec, _, err := model.ParseOrderRecord(r.key, r.value)
		if err != nil {
			return err
		}
		bo.Orders = append(bo.Orders, rec)
	}
	bo.Fills = make([]model.FillRecord, 0, len(fills))
	for _, r := range fills {
		rec, _, err := model.ParseFillRecord(r.key, r.value)
		if err != nil {
			return err
		}
		bo.Fills = append(bo.Fills, rec)
	}
	return nil
}
