package relayer

import (
	"context"
	"time"

	"go.uber.org/ratelimit"
)

// ObservedClient records metrics for every relayer call and paces unary
// calls with a rate limiter so recovery bursts do not flood the relayer.
type ObservedClient struct {
	client  Client
	metrics Metrics
	rl      ratelimit.Limiter
}

// NewObservedClient wraps client. rps <= 0 disables rate limiting.
func NewObservedClient(client Client, metrics Metrics, rps int) *ObservedClient {
	rl := ratelimit.NewUnlimited()
	if rps > 0 {
		rl = ratelimit.New(rps)
	}
	return &ObservedClient{client: client, metrics: metrics, rl: rl}
}

// Client returns the observed services.
func (r *ObservedClient) Client() Client {
	return Client{Maker: r, Taker: r, PaymentChannelNetwork: r}
}

func (r *ObservedClient) observe(operation string, started time.Time, err error) {
	r.metrics.Observe(operation, err, started)
}

func (r *ObservedClient) CreateOrder(ctx context.Context, req CreateOrderRequest) (res CreateOrderResponse, err error) {
	r.rl.Take()
	started := time.Now()
	defer func() { r.observe("create_order", started, err) }()
	return r.client.Maker.CreateOrder(ctx, req)
}

func (r *ObservedClient) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (stream PlaceOrderStream, err error) {
	r.rl.Take()
	started := time.Now()
	defer func() { r.observe("place_order", started, err) }()
	return r.client.Maker.PlaceOrder(ctx, req)
}

func (r *ObservedClient) ExecuteOrder(ctx context.Context, req ExecuteOrderRequest) (err error) {
	r.rl.Take()
	started := time.Now()
	defer func() { r.observe("execute_order", started, err) }()
	return r.client.Maker.ExecuteOrder(ctx, req)
}

func (r *ObservedClient) CompleteOrder(ctx context.Context, req CompleteOrderRequest) (err error) {
	r.rl.Take()
	started := time.Now()
	defer func() { r.observe("complete_order", started, err) }()
	return r.client.Maker.CompleteOrder(ctx, req)
}

func (r *ObservedClient) CancelOrder(ctx context.Context, req CancelOrderRequest) (err error) {
	r.rl.Take()
	started := time.Now()
	defer func() { r.observe("cancel_order", started, err) }()
	return r.client.Maker.CancelOrder(ctx, req)
}

func (r *ObservedClient) CreateFill(ctx context.Context, req CreateFillRequest) (res CreateFillResponse, err error) {
	r.rl.Take()
	started := time.Now()
	defer func() { r.observe("create_fill", started, err) }()
	return r.client.Taker.CreateFill(ctx, req)
}

func (r *ObservedClient) FillOrder(ctx context.Context, req FillOrderRequest) (res FillOrderResponse, err error) {
	r.rl.Take()
	started := time.Now()
	defer func() { r.observe("fill_order", started, err) }()
	return r.client.Taker.FillOrder(ctx, req)
}

func (r *ObservedClient) SubscribeExecute(ctx context.Context, req SubscribeExecuteRequest) (stream ExecuteStream, err error) {
	r.rl.Take()
	started := time.Now()
	defer func() { r.observe("subscribe_execute", started, err) }()
	return r.client.Taker.SubscribeExecute(ctx, req)
}

func (r *ObservedClient) GetAddress(ctx context.Context, symbol string) (address string, err error) {
	r.rl.Take()
	started := time.Now()
	defer func() { r.observe("get_address", started, err) }()
	return r.client.PaymentChannelNetwork.GetAddress(ctx, symbol)
}
