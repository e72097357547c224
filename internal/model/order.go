package model

import (
	"encoding/json"
	"fmt"

	"github.com/goodnatureofminers/swapbroker/pkg/safe"
	"github.com/shopspring/decimal"
)

const priceDecimals = 16

// Order is a maker order placed on the relayer on behalf of a block order.
// Amounts are in quantums. The identifiers come from the storage key and are
// not part of the stored value.
type Order struct {
	BlockOrderID string `json:"-"`
	OrderID      string `json:"-"`

	BaseSymbol          string `json:"baseSymbol"`
	CounterSymbol       string `json:"counterSymbol"`
	Side                Side   `json:"side"`
	BaseAmount          int64  `json:"baseAmount,string"`
	CounterAmount       int64  `json:"counterAmount,string"`
	MakerBaseAddress    string `json:"makerBaseAddress,omitempty"`
	MakerCounterAddress string `json:"makerCounterAddress,omitempty"`

	FeePaymentRequest     string `json:"feePaymentRequest,omitempty"`
	FeeRequired           bool   `json:"feeRequired"`
	DepositPaymentRequest string `json:"depositPaymentRequest,omitempty"`
	DepositRequired       bool   `json:"depositRequired"`

	SwapHash     string `json:"swapHash,omitempty"`
	FillAmount   int64  `json:"fillAmount,string,omitempty"`
	TakerAddress string `json:"takerAddress,omitempty"`
	SwapPreimage string `json:"swapPreimage,omitempty"`
}

type OrderParams struct {
	Side          Side
	BaseSymbol    string
	CounterSymbol string
	BaseAmount    int64
	CounterAmount int64
}

// PaymentObligations are the fee and deposit invoices the relayer requires
// before an order or fill proceeds.
type PaymentObligations struct {
	FeePaymentRequest     string
	FeeRequired           bool
	DepositPaymentRequest string
	DepositRequired       bool
}

type OrderFilledParams struct {
	SwapHash     string
	FillAmount   int64
	TakerAddress string
}

func NewOrder(blockOrderID string, p OrderParams) (*Order, error) {
	if blockOrderID == "" {
		return nil, fmt.Errorf("%w: block order id is required", ErrInvalidParams)
	}
	if !p.Side.Valid() {
		return nil, fmt.Errorf("%w: %s is not a valid order side", ErrInvalidParams, p.Side)
	}
	if p.BaseAmount <= 0 || p.CounterAmount <= 0 {
		return nil, fmt.Errorf("%w: order amounts must be positive", ErrInvalidParams)
	}
	return &Order{
		BlockOrderID:  blockOrderID,
		BaseSymbol:    p.BaseSymbol,
		CounterSymbol: p.CounterSymbol,
		Side:          p.Side,
		BaseAmount:    p.BaseAmount,
		CounterAmount: p.CounterAmount,
	}, nil
}

// OrderFromObject rebuilds an order from its storage key and stored value.
func OrderFromObject(key string, value json.RawMessage) (*Order, error) {
	blockOrderID, orderID, err := splitChildKey(key)
	if err != nil {
		return nil, err
	}
	var o Order
	if err := json.Unmarshal(value, &o); err != nil {
		return nil, fmt.Errorf("decode order %s: %w", key, err)
	}
	o.BlockOrderID = blockOrderID
	o.OrderID = orderID
	return &o, nil
}

func (o *Order) SetCreatedParams(orderID string, p PaymentObligations) {
	o.OrderID = orderID
	o.FeePaymentRequest = p.FeePaymentRequest
	o.FeeRequired = p.FeeRequired
	o.DepositPaymentRequest = p.DepositPaymentRequest
	o.DepositRequired = p.DepositRequired
}

func (o *Order) SetFilledParams(p OrderFilledParams) {
	o.SwapHash = p.SwapHash
	o.FillAmount = p.FillAmount
	o.TakerAddress = p.TakerAddress
}

func (o *Order) SetSettledParams(swapPreimage string) {
	o.SwapPreimage = swapPreimage
}

// Key returns the storage key, or "" before the relayer assigned an id.
func (o *Order) Key() string {
	if o.OrderID == "" || o.BlockOrderID == "" {
		return ""
	}
	return ChildKey(o.BlockOrderID, o.OrderID)
}

func (o *Order) InboundSymbol() string {
	if o.Side == SideBid {
		return o.BaseSymbol
	}
	return o.CounterSymbol
}

func (o *Order) OutboundSymbol() string {
	if o.Side == SideBid {
		return o.CounterSymbol
	}
	return o.BaseSymbol
}

func (o *Order) InboundAmount() int64 {
	if o.Side == SideBid {
		return o.BaseAmount
	}
	return o.CounterAmount
}

func (o *Order) OutboundAmount() int64 {
	if o.Side == SideBid {
		return o.CounterAmount
	}
	return o.BaseAmount
}

// CounterFillAmount is the counter leg of the current fill at the order price.
func (o *Order) CounterFillAmount() (int64, error) {
	if o.FillAmount == 0 {
		return 0, fmt.Errorf("cannot calculate counter fill amount without a fill amount")
	}
	return counterFor(o.BaseAmount, o.CounterAmount, o.FillAmount)
}

func (o *Order) InboundFillAmount() (int64, error) {
	if o.FillAmount == 0 {
		return 0, fmt.Errorf("cannot calculate inbound fill amount without a fill amount")
	}
	if o.Side == SideBid {
		return o.FillAmount, nil
	}
	return o.CounterFillAmount()
}

func (o *Order) OutboundFillAmount() (int64, error) {
	if o.FillAmount == 0 {
		return 0, fmt.Errorf("cannot calculate outbound fill amount without a fill amount")
	}
	if o.Side == SideBid {
		return o.CounterFillAmount()
	}
	return o.FillAmount, nil
}

// QuantumPrice is counter quantums per base quantum.
func (o *Order) QuantumPrice() decimal.Decimal {
	return quantumPrice(o.BaseAmount, o.CounterAmount)
}

type PlaceParams struct {
	OrderID        string
	OutboundSymbol string
	PaymentObligations
}

func (o *Order) ParamsForPlace() (PlaceParams, error) {
	const op = "params for place"
	if o.FeeRequired && o.FeePaymentRequest == "" {
		return PlaceParams{}, missing(op, "feePaymentRequest")
	}
	if o.DepositRequired && o.DepositPaymentRequest == "" {
		return PlaceParams{}, missing(op, "depositPaymentRequest")
	}
	if o.OrderID == "" {
		return PlaceParams{}, missing(op, "orderId")
	}
	return PlaceParams{
		OrderID:        o.OrderID,
		OutboundSymbol: o.OutboundSymbol(),
		PaymentObligations: PaymentObligations{
			FeePaymentRequest:     o.FeePaymentRequest,
			FeeRequired:           o.FeeRequired,
			DepositPaymentRequest: o.DepositPaymentRequest,
			DepositRequired:       o.DepositRequired,
		},
	}, nil
}

type PrepareSwapParams struct {
	OrderID  string
	SwapHash string
	Symbol   string
	Amount   int64
}

func (o *Order) ParamsForPrepareSwap() (PrepareSwapParams, error) {
	const op = "params for prepare swap"
	if o.OrderID == "" {
		return PrepareSwapParams{}, missing(op, "orderId")
	}
	if o.SwapHash == "" {
		return PrepareSwapParams{}, missing(op, "swapHash")
	}
	amount, err := o.InboundFillAmount()
	if err != nil {
		return PrepareSwapParams{}, fmt.Errorf("%s: %w", op, err)
	}
	return PrepareSwapParams{OrderID: o.OrderID, SwapHash: o.SwapHash, Symbol: o.InboundSymbol(), Amount: amount}, nil
}

type GetPreimageParams struct {
	SwapHash string
	Symbol   string
}

func (o *Order) ParamsForGetPreimage() (GetPreimageParams, error) {
	if o.SwapHash == "" {
		return GetPreimageParams{}, missing("params for get preimage", "swapHash")
	}
	return GetPreimageParams{SwapHash: o.SwapHash, Symbol: o.InboundSymbol()}, nil
}

type CompleteParams struct {
	OrderID      string
	SwapPreimage string
}

func (o *Order) ParamsForComplete() (CompleteParams, error) {
	const op = "params for complete"
	if o.SwapPreimage == "" {
		return CompleteParams{}, missing(op, "swapPreimage")
	}
	if o.OrderID == "" {
		return CompleteParams{}, missing(op, "orderId")
	}
	return CompleteParams{OrderID: o.OrderID, SwapPreimage: o.SwapPreimage}, nil
}

func counterFor(baseAmount, counterAmount, fillAmount int64) (int64, error) {
	if baseAmount == 0 {
		return 0, fmt.Errorf("base amount is zero")
	}
	v := decimal.NewFromInt(counterAmount).Mul(decimal.NewFromInt(fillAmount)).Div(decimal.NewFromInt(baseAmount))
	return safe.RoundInt64(v)
}

func quantumPrice(baseAmount, counterAmount int64) decimal.Decimal {
	if baseAmount == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(counterAmount).DivRound(decimal.NewFromInt(baseAmount), priceDecimals)
}
