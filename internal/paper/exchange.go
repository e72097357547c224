package paper

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/goodnatureofminers/swapbroker/internal/clock"
	"github.com/goodnatureofminers/swapbroker/internal/model"
	"github.com/goodnatureofminers/swapbroker/internal/relayer"
	"go.uber.org/zap"
)

// Fill error codes reported besides relayer.FillErrorOrderNotPlaced.
const (
	FillErrorOwnOrder      = "CANNOT_FILL_OWN_ORDER"
	FillErrorInvalidAmount = "INVALID_FILL_AMOUNT"
)

const (
	makerStatusCreated   = "created"
	makerStatusPlaced    = "placed"
	makerStatusFilled    = "filled"
	makerStatusExecuting = "executing"
	makerStatusCompleted = "completed"
	makerStatusCancelled = "cancelled"
)

type ExchangeConfig struct {
	Books  []*Book
	Swaps  *Swaps
	Logger *zap.Logger
	// FillDelay is how long simulated counterparties take to respond.
	FillDelay time.Duration
	// AutoFill makes a simulated taker fill every placed order in full.
	AutoFill bool
}

type makerOrder struct {
	req      relayer.CreateOrderRequest
	book     *Book
	status   string
	swapHash string
	stream   *stream[relayer.PlaceOrderEvent]
}

type takerFill struct {
	orderID  string
	swapHash string
	amount   int64
	filled   bool
}

// Exchange plays the relayer: it owns the books, accepts the broker's
// orders and fills, and simulates the counterparties of both.
type Exchange struct {
	books     map[string]*Book
	swaps     *Swaps
	logger    *zap.Logger
	fillDelay time.Duration
	autoFill  bool

	mu     sync.Mutex
	orders map[string]*makerOrder
	fills  map[string]*takerFill

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewExchange(cfg ExchangeConfig) (*Exchange, error) {
	switch {
	case len(cfg.Books) == 0:
		return nil, errors.New("paper exchange needs at least one book")
	case cfg.Swaps == nil:
		return nil, errors.New("paper exchange swaps are required")
	case cfg.Logger == nil:
		return nil, errors.New("paper exchange logger is required")
	}
	e := &Exchange{
		books:     make(map[string]*Book, len(cfg.Books)),
		swaps:     cfg.Swaps,
		logger:    cfg.Logger.Named("paper_exchange"),
		fillDelay: cfg.FillDelay,
		autoFill:  cfg.AutoFill,
		orders:    make(map[string]*makerOrder),
		fills:     make(map[string]*takerFill),
	}
	for _, b := range cfg.Books {
		e.books[b.MarketName()] = b
	}
	e.ctx, e.cancel = context.WithCancel(context.Background())
	return e, nil
}

// Client exposes the exchange as the broker's relayer.
func (e *Exchange) Client() relayer.Client {
	return relayer.Client{Maker: e, Taker: e, PaymentChannelNetwork: e}
}

// Close stops the simulated counterparties.
func (e *Exchange) Close() {
	e.cancel()
	e.wg.Wait()
}

func (e *Exchange) goBackground(fn func(ctx context.Context)) {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		fn(e.ctx)
	}()
}

func (e *Exchange) GetAddress(_ context.Context, symbol string) (string, error) {
	if symbol == "" {
		return "", errors.New("symbol is required")
	}
	return "paper:relayer:" + strings.ToLower(symbol), nil
}

func (e *Exchange) CreateOrder(_ context.Context, req relayer.CreateOrderRequest) (relayer.CreateOrderResponse, error) {
	book, ok := e.books[req.BaseSymbol+"/"+req.CounterSymbol]
	if !ok {
		return relayer.CreateOrderResponse{}, fmt.Errorf("no %s/%s market", req.BaseSymbol, req.CounterSymbol)
	}
	switch {
	case !req.Side.Valid():
		return relayer.CreateOrderResponse{}, fmt.Errorf("%w: %s is not a valid side", model.ErrInvalidParams, req.Side)
	case req.BaseAmount <= 0 || req.CounterAmount <= 0:
		return relayer.CreateOrderResponse{}, fmt.Errorf("%w: order amounts must be positive", model.ErrInvalidParams)
	case req.BaseAddress == "" || req.CounterAddress == "":
		return relayer.CreateOrderResponse{}, fmt.Errorf("%w: maker addresses are required", model.ErrInvalidParams)
	}

	id := model.NewID()
	e.mu.Lock()
	e.orders[id] = &makerOrder{req: req, book: book, status: makerStatusCreated}
	e.mu.Unlock()

	e.logger.Info("order created", zap.String("order_id", id), zap.String("side", string(req.Side)), zap.Int64("base_amount", req.BaseAmount))
	return relayer.CreateOrderResponse{OrderID: id, PaymentObligations: obligations(id)}, nil
}

func (e *Exchange) PlaceOrder(ctx context.Context, req relayer.PlaceOrderRequest) (relayer.PlaceOrderStream, error) {
	if err := relayer.VerifyAuthorization(req.Authorization, req.OrderID); err != nil {
		return nil, fmt.Errorf("place order %s: %w", req.OrderID, err)
	}
	if req.FeeRefundPaymentRequest == "" || req.DepositRefundPaymentRequest == "" {
		return nil, fmt.Errorf("place order %s: refund payment requests are required", req.OrderID)
	}

	e.mu.Lock()
	o, err := e.makerOrder(req.OrderID, makerStatusCreated)
	if err != nil {
		e.mu.Unlock()
		return nil, err
	}
	if err := o.book.Add(model.BookOrder{
		OrderID:       req.OrderID,
		BaseSymbol:    o.req.BaseSymbol,
		CounterSymbol: o.req.CounterSymbol,
		Side:          o.req.Side,
		BaseAmount:    o.req.BaseAmount,
		CounterAmount: o.req.CounterAmount,
	}); err != nil {
		e.mu.Unlock()
		return nil, err
	}
	o.status = makerStatusPlaced
	o.stream = newStream[relayer.PlaceOrderEvent](ctx)
	s := o.stream
	e.mu.Unlock()

	s.send(relayer.PlaceOrderEvent{OrderStatus: relayer.OrderStatusPlaced})
	e.logger.Info("order placed", zap.String("order_id", req.OrderID))

	if e.autoFill {
		e.goBackground(func(ctx context.Context) {
			if err := clock.SleepWithContext(ctx, e.fillDelay); err != nil {
				return
			}
			if err := e.Match(req.OrderID); err != nil {
				e.logger.Warn("simulated taker could not fill order", zap.String("order_id", req.OrderID), zap.Error(err))
			}
		})
	}
	return s, nil
}

// Match has a simulated taker fill a placed order of the broker in full.
func (e *Exchange) Match(orderID string) error {
	hash, err := e.swaps.New()
	if err != nil {
		return err
	}

	e.mu.Lock()
	o, err := e.makerOrder(orderID, makerStatusPlaced)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	o.book.Remove(orderID)
	o.status = makerStatusFilled
	o.swapHash = hash
	s := o.stream
	amount := o.req.BaseAmount
	e.mu.Unlock()

	s.send(relayer.PlaceOrderEvent{
		OrderStatus: relayer.OrderStatusFilled,
		Fill:        &relayer.OrderFill{SwapHash: hash, FillAmount: amount, TakerAddress: "paper:taker"},
	})
	s.end()
	e.logger.Info("order filled by simulated taker", zap.String("order_id", orderID), zap.Int64("fill_amount", amount))
	return nil
}

func (e *Exchange) ExecuteOrder(_ context.Context, req relayer.ExecuteOrderRequest) error {
	if err := relayer.VerifyAuthorization(req.Authorization, req.OrderID); err != nil {
		return fmt.Errorf("execute order %s: %w", req.OrderID, err)
	}
	e.mu.Lock()
	o, err := e.makerOrder(req.OrderID, makerStatusFilled)
	if err == nil {
		o.status = makerStatusExecuting
	}
	e.mu.Unlock()
	if err != nil {
		return err
	}
	// the simulated taker pays the maker's prepared swap
	return e.swaps.Settle(o.swapHash)
}

func (e *Exchange) CompleteOrder(_ context.Context, req relayer.CompleteOrderRequest) error {
	if err := relayer.VerifyAuthorization(req.Authorization, req.OrderID); err != nil {
		return fmt.Errorf("complete order %s: %w", req.OrderID, err)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	o, err := e.makerOrder(req.OrderID, makerStatusExecuting)
	if err != nil {
		return err
	}
	if !Matches(o.swapHash, req.SwapPreimage) {
		return fmt.Errorf("complete order %s: preimage does not match swap hash", req.OrderID)
	}
	o.status = makerStatusCompleted
	return nil
}

func (e *Exchange) CancelOrder(_ context.Context, req relayer.CancelOrderRequest) error {
	if err := relayer.VerifyAuthorization(req.Authorization, req.OrderID); err != nil {
		return fmt.Errorf("cancel order %s: %w", req.OrderID, err)
	}
	e.mu.Lock()
	o, ok := e.orders[req.OrderID]
	if !ok {
		e.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrOrderNotFound, req.OrderID)
	}
	switch o.status {
	case makerStatusCancelled:
		e.mu.Unlock()
		return nil
	case makerStatusCreated, makerStatusPlaced:
	default:
		e.mu.Unlock()
		return fmt.Errorf("order %s is %s and cannot be cancelled", req.OrderID, o.status)
	}
	o.book.Remove(req.OrderID)
	o.status = makerStatusCancelled
	s := o.stream
	e.mu.Unlock()

	if s != nil {
		s.send(relayer.PlaceOrderEvent{OrderStatus: relayer.OrderStatusCancelled})
		s.end()
	}
	e.logger.Info("order cancelled", zap.String("order_id", req.OrderID))
	return nil
}

func (e *Exchange) CreateFill(_ context.Context, req relayer.CreateFillRequest) (relayer.CreateFillResponse, error) {
	switch {
	case req.SwapHash == "":
		return relayer.CreateFillResponse{}, fmt.Errorf("%w: swap hash is required", model.ErrInvalidParams)
	case req.TakerBaseAddress == "" || req.TakerCounterAddress == "":
		return relayer.CreateFillResponse{}, fmt.Errorf("%w: taker addresses are required", model.ErrInvalidParams)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, own := e.orders[req.OrderID]; own {
		return relayer.CreateFillResponse{FillError: &relayer.FillError{
			Code:    FillErrorOwnOrder,
			Message: "orders of the broker cannot be filled by the broker",
		}}, nil
	}
	book := e.bookOf(req.OrderID)
	if book == nil {
		return relayer.CreateFillResponse{FillError: &relayer.FillError{
			Code:    relayer.FillErrorOrderNotPlaced,
			Message: fmt.Sprintf("order %s is not on the book", req.OrderID),
		}}, nil
	}
	if _, err := book.Take(req.OrderID, req.FillAmount); err != nil {
		return relayer.CreateFillResponse{FillError: &relayer.FillError{Code: FillErrorInvalidAmount, Message: err.Error()}}, nil
	}

	id := model.NewID()
	e.fills[id] = &takerFill{orderID: req.OrderID, swapHash: req.SwapHash, amount: req.FillAmount}
	e.logger.Info("fill created", zap.String("fill_id", id), zap.String("order_id", req.OrderID), zap.Int64("fill_amount", req.FillAmount))
	return relayer.CreateFillResponse{FillID: id, PaymentObligations: obligations(id)}, nil
}

func (e *Exchange) FillOrder(_ context.Context, req relayer.FillOrderRequest) (relayer.FillOrderResponse, error) {
	if err := relayer.VerifyAuthorization(req.Authorization, req.FillID); err != nil {
		return relayer.FillOrderResponse{}, fmt.Errorf("fill order %s: %w", req.FillID, err)
	}
	if req.FeeRefundPaymentRequest == "" || req.DepositRefundPaymentRequest == "" {
		return relayer.FillOrderResponse{}, fmt.Errorf("fill order %s: refund payment requests are required", req.FillID)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	f, ok := e.fills[req.FillID]
	if !ok {
		return relayer.FillOrderResponse{}, fmt.Errorf("unknown fill %s", req.FillID)
	}
	f.filled = true
	return relayer.FillOrderResponse{}, nil
}

// SubscribeExecute has the simulated maker of the filled order send its
// address after the fill delay.
func (e *Exchange) SubscribeExecute(ctx context.Context, req relayer.SubscribeExecuteRequest) (relayer.ExecuteStream, error) {
	if err := relayer.VerifyAuthorization(req.Authorization, req.FillID); err != nil {
		return nil, fmt.Errorf("subscribe execute %s: %w", req.FillID, err)
	}
	e.mu.Lock()
	f, ok := e.fills[req.FillID]
	filled := ok && f.filled
	e.mu.Unlock()
	if !filled {
		return nil, fmt.Errorf("fill %s has not been filled", req.FillID)
	}

	s := newStream[relayer.ExecuteEvent](ctx)
	e.goBackground(func(ctx context.Context) {
		defer s.end()
		if err := clock.SleepWithContext(ctx, e.fillDelay); err != nil {
			return
		}
		s.send(relayer.ExecuteEvent{MakerAddress: "paper:maker"})
	})
	return s, nil
}

// OrderStatus reports how far a broker order got on the exchange.
func (e *Exchange) OrderStatus(orderID string) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	o, ok := e.orders[orderID]
	if !ok {
		return "", false
	}
	return o.status, true
}

func (e *Exchange) makerOrder(orderID, status string) (*makerOrder, error) {
	o, ok := e.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	if o.status != status {
		return nil, fmt.Errorf("order %s is %s, not %s", orderID, o.status, status)
	}
	return o, nil
}

func (e *Exchange) bookOf(orderID string) *Book {
	for _, b := range e.books {
		if _, ok := b.Get(orderID); ok {
			return b
		}
	}
	return nil
}

func obligations(id string) model.PaymentObligations {
	return model.PaymentObligations{
		FeePaymentRequest:     "paper:fee:" + id,
		FeeRequired:           true,
		DepositPaymentRequest: "paper:deposit:" + id,
		DepositRequired:       true,
	}
}
