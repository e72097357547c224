package blockorder

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/swapbroker/internal/model"
	"github.com/goodnatureofminers/swapbroker/pkg/safe"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateParams describe a new block order. A nil Price makes it a market
// order; an empty TimeInForce means GTC.
type CreateParams struct {
	MarketName  string
	Side        model.Side
	Amount      decimal.Decimal
	Price       *decimal.Decimal
	TimeInForce model.TimeInForce
}

// CreateBlockOrder validates and stores a block order, then works it in the
// background. The returned id is durable; failures while working only show
// up in the block order's status.
func (w *Worker) CreateBlockOrder(ctx context.Context, params CreateParams) (id string, err error) {
	started := time.Now()
	defer func() {
		w.metrics.ObserveCreate(params.MarketName, string(params.Side), err, started)
	}()

	book, ok := w.orderbooks[params.MarketName]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownMarket, params.MarketName)
	}
	for _, symbol := range []string{book.BaseSymbol(), book.CounterSymbol()} {
		if _, err := w.engines.Get(symbol); err != nil {
			return "", fmt.Errorf("market %s: %w", params.MarketName, err)
		}
	}
	if params.TimeInForce == "" {
		params.TimeInForce = model.TimeInForceGTC
	}
	bo, err := model.NewBlockOrder(model.BlockOrderParams{
		ID:          model.NewID(),
		MarketName:  params.MarketName,
		Side:        params.Side,
		Amount:      params.Amount,
		Price:       params.Price,
		TimeInForce: params.TimeInForce,
		Timestamp:   w.now().UnixNano(),
	}, w.currencies)
	if err != nil {
		return "", err
	}

	// Creation on one market side is serialized until the first pass of
	// work has created the children the next funds check will count.
	unlock := w.creating.Lock(bo.MarketName + ":" + string(bo.Side))
	working := false
	defer func() {
		if !working {
			unlock()
		}
	}()

	if err := w.checkFundsAreSufficient(ctx, bo, book); err != nil {
		return "", err
	}
	if err := w.saveBlockOrder(ctx, bo); err != nil {
		return "", err
	}
	w.metrics.ObserveStatus(bo.MarketName, string(model.BlockOrderStatusActive))
	w.logger.Info("created block order",
		zap.String("block_order_id", bo.ID),
		zap.String("market", bo.MarketName),
		zap.String("side", string(bo.Side)),
		zap.String("amount", bo.Amount.String()),
		zap.Bool("market_order", bo.IsMarketOrder()),
	)

	working = true
	w.goBackground(func(ctx context.Context) {
		err := w.WorkBlockOrder(ctx, bo, bo.BaseAmount())
		unlock()
		if err != nil {
			w.failInBackground(ctx, bo.ID, err)
		}
	})
	return bo.ID, nil
}

// checkFundsAreSufficient verifies the payment channels can carry bo on top
// of every other active block order on the same market side.
func (w *Worker) checkFundsAreSufficient(ctx context.Context, bo *model.BlockOrder, book Orderbook) error {
	outbound, inbound, err := requiredAmounts(ctx, bo, book)
	if err != nil {
		return err
	}

	active, err := w.activeBlockOrders(ctx, bo.MarketName, bo.Side)
	if err != nil {
		return err
	}
	for _, other := range active {
		activeOutbound, err := other.ActiveOutboundAmount()
		if err != nil {
			return fmt.Errorf("block order %s: %w", other.ID, err)
		}
		activeInbound, err := other.ActiveInboundAmount()
		if err != nil {
			return fmt.Errorf("block order %s: %w", other.ID, err)
		}
		outbound += activeOutbound
		inbound += activeInbound
	}

	if err := w.checkBalance(ctx, bo.OutboundSymbol(), outbound, true); err != nil {
		return err
	}
	return w.checkBalance(ctx, bo.InboundSymbol(), inbound, false)
}

// requiredAmounts estimates what bo moves in each direction. Market orders
// are priced at the average of the book over their amount.
func requiredAmounts(ctx context.Context, bo *model.BlockOrder, book Orderbook) (outbound, inbound int64, err error) {
	base := bo.BaseAmount()
	counter := bo.CounterAmount()
	if bo.IsMarketOrder() {
		price, err := book.GetAveragePrice(ctx, bo.InverseSide(), base)
		if err != nil {
			return 0, 0, fmt.Errorf("estimate %s price: %w", bo.MarketName, err)
		}
		if counter, err = safe.RoundInt64(price.Mul(decimal.NewFromInt(base))); err != nil {
			return 0, 0, fmt.Errorf("estimate %s counter amount: %w", bo.MarketName, err)
		}
	}
	if bo.Side == model.SideBid {
		return counter, base, nil
	}
	return base, counter, nil
}

func (w *Worker) checkBalance(ctx context.Context, symbol string, amount int64, outbound bool) error {
	direction := "inbound"
	if outbound {
		direction = "outbound"
	}
	e, err := w.engines.Get(symbol)
	if err != nil {
		return err
	}
	address, err := w.relayer.GetAddress(ctx, symbol)
	if err != nil {
		return fmt.Errorf("get relayer %s address: %w", symbol, err)
	}
	ok, err := e.IsBalanceSufficient(ctx, address, amount, outbound)
	if err != nil {
		return fmt.Errorf("check %s %s balance: %w", direction, symbol, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s %s balance cannot cover %d", ErrInsufficientFunds, direction, symbol, amount)
	}
	return nil
}

func (w *Worker) activeBlockOrders(ctx context.Context, marketName string, side model.Side) ([]*model.BlockOrder, error) {
	all, err := w.allBlockOrders(ctx)
	if err != nil {
		return nil, err
	}
	var out []*model.BlockOrder
	for _, bo := range all {
		if !bo.IsActive() || bo.MarketName != marketName || bo.Side != side {
			continue
		}
		if err := w.populate(ctx, bo); err != nil {
			return nil, err
		}
		out = append(out, bo)
	}
	return out, nil
}
