// Package relayer describes the remote order book authority the broker
// trades through, as maker and as taker.
package relayer

import (
	"github.com/goodnatureofminers/swapbroker/internal/model"
)

// FillErrorOrderNotPlaced is reported when the order being filled is no
// longer on the book. The fill can be retried against another order.
const FillErrorOrderNotPlaced = "ORDER_NOT_PLACED"

// FillError is a refusal of a fill by the relayer. Error returns the code so
// it survives being persisted as a plain string.
type FillError struct {
	Code    string
	Message string
}

func (e *FillError) Error() string {
	return e.Code
}

// OrderStatus is reported on the placement stream.
type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "PLACED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
	OrderStatusFilled    OrderStatus = "FILLED"
)

// Authorization proves a request was made by the holder of the broker's
// identity key.
type Authorization struct {
	PublicKey string
	Timestamp int64
	Nonce     string
	Signature string
}

type CreateOrderRequest struct {
	BaseSymbol     string
	CounterSymbol  string
	Side           model.Side
	BaseAmount     int64
	CounterAmount  int64
	BaseAddress    string
	CounterAddress string
}

type CreateOrderResponse struct {
	OrderID string
	model.PaymentObligations
}

type PlaceOrderRequest struct {
	OrderID                     string
	FeeRefundPaymentRequest     string
	DepositRefundPaymentRequest string
	Authorization               Authorization
}

// OrderFill describes the taker side of a fill of one of our orders.
type OrderFill struct {
	SwapHash     string
	FillAmount   int64
	TakerAddress string
}

// PlaceOrderEvent is one message of the placement stream. Fill is set when
// OrderStatus is FILLED.
type PlaceOrderEvent struct {
	OrderStatus OrderStatus
	Fill        *OrderFill
}

type ExecuteOrderRequest struct {
	OrderID       string
	Authorization Authorization
}

type CompleteOrderRequest struct {
	OrderID       string
	SwapPreimage  string
	Authorization Authorization
}

type CancelOrderRequest struct {
	OrderID       string
	Authorization Authorization
}

type CreateFillRequest struct {
	OrderID             string
	SwapHash            string
	FillAmount          int64
	TakerBaseAddress    string
	TakerCounterAddress string
}

type CreateFillResponse struct {
	FillID string
	model.PaymentObligations
	FillError *FillError
}

type FillOrderRequest struct {
	FillID                      string
	FeeRefundPaymentRequest     string
	DepositRefundPaymentRequest string
	Authorization               Authorization
}

type FillOrderResponse struct {
	FillError *FillError
}

type SubscribeExecuteRequest struct {
	FillID        string
	Authorization Authorization
}

// ExecuteEvent tells the taker where to send its leg of the swap.
type ExecuteEvent struct {
	MakerAddress string
}

// Client groups the relayer services used by the broker.
type Client struct {
	Maker                 MakerService
	Taker                 TakerService
	PaymentChannelNetwork PaymentChannelNetworkService
}
