package model

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// FillOrder is the snapshot of the book order a fill takes.
type FillOrder struct {
	OrderID       string `json:"orderId"`
	BaseSymbol    string `json:"baseSymbol"`
	CounterSymbol string `json:"counterSymbol"`
	Side          Side   `json:"side"`
	BaseAmount    int64  `json:"baseAmount,string"`
	CounterAmount int64  `json:"counterAmount,string"`
}

// Fill is a taker acceptance of a book order on behalf of a block order.
type Fill struct {
	BlockOrderID string `json:"-"`
	FillID       string `json:"-"`

	Order               FillOrder `json:"order"`
	FillAmount          int64     `json:"fillAmount,string"`
	SwapHash            string    `json:"swapHash,omitempty"`
	TakerBaseAddress    string    `json:"takerBaseAddress,omitempty"`
	TakerCounterAddress string    `json:"takerCounterAddress,omitempty"`

	FeePaymentRequest     string `json:"feePaymentRequest,omitempty"`
	FeeRequired           bool   `json:"feeRequired"`
	DepositPaymentRequest string `json:"depositPaymentRequest,omitempty"`
	DepositRequired       bool   `json:"depositRequired"`

	MakerAddress string `json:"makerAddress,omitempty"`
}

func NewFill(blockOrderID string, order BookOrder, fillAmount int64) (*Fill, error) {
	if blockOrderID == "" {
		return nil, fmt.Errorf("%w: block order id is required", ErrInvalidParams)
	}
	if !order.Side.Valid() {
		return nil, fmt.Errorf("%w: %s is not a valid order side", ErrInvalidParams, order.Side)
	}
	if order.OrderID == "" {
		return nil, fmt.Errorf("%w: order id is required", ErrInvalidParams)
	}
	if order.BaseAmount <= 0 || order.CounterAmount <= 0 {
		return nil, fmt.Errorf("%w: order amounts must be positive", ErrInvalidParams)
	}
	if fillAmount <= 0 || fillAmount > order.BaseAmount {
		return nil, fmt.Errorf("%w: fill amount %d outside (0, %d]", ErrInvalidParams, fillAmount, order.BaseAmount)
	}
	return &Fill{
		BlockOrderID: blockOrderID,
		Order: FillOrder{
			OrderID:       order.OrderID,
			BaseSymbol:    order.BaseSymbol,
			CounterSymbol: order.CounterSymbol,
			Side:          order.Side,
			BaseAmount:    order.BaseAmount,
			CounterAmount: order.CounterAmount,
		},
		FillAmount: fillAmount,
	}, nil
}

// FillFromObject rebuilds a fill from its storage key and stored value.
func FillFromObject(key string, value json.RawMessage) (*Fill, error) {
	blockOrderID, fillID, err := splitChildKey(key)
	if err != nil {
		return nil, err
	}
	var f Fill
	if err := json.Unmarshal(value, &f); err != nil {
		return nil, fmt.Errorf("decode fill %s: %w", key, err)
	}
	f.BlockOrderID = blockOrderID
	f.FillID = fillID
	return &f, nil
}

func (f *Fill) SetSwapHash(swapHash string) {
	f.SwapHash = swapHash
}

func (f *Fill) SetCreatedParams(fillID string, p PaymentObligations) {
	f.FillID = fillID
	f.FeePaymentRequest = p.FeePaymentRequest
	f.FeeRequired = p.FeeRequired
	f.DepositPaymentRequest = p.DepositPaymentRequest
	f.DepositRequired = p.DepositRequired
}

func (f *Fill) SetExecuteParams(makerAddress string) {
	f.MakerAddress = makerAddress
}

// Key returns the storage key, or "" before the relayer assigned an id.
func (f *Fill) Key() string {
	if f.FillID == "" || f.BlockOrderID == "" {
		return ""
	}
	return ChildKey(f.BlockOrderID, f.FillID)
}

func (f *Fill) CounterFillAmount() (int64, error) {
	return counterFor(f.Order.BaseAmount, f.Order.CounterAmount, f.FillAmount)
}

// InboundSymbol is what the taker receives: the opposite of the maker.
func (f *Fill) InboundSymbol() string {
	if f.Order.Side == SideBid {
		return f.Order.CounterSymbol
	}
	return f.Order.BaseSymbol
}

func (f *Fill) OutboundSymbol() string {
	if f.Order.Side == SideBid {
		return f.Order.BaseSymbol
	}
	return f.Order.CounterSymbol
}

func (f *Fill) InboundAmount() (int64, error) {
	if f.Order.Side == SideBid {
		return f.CounterFillAmount()
	}
	return f.FillAmount, nil
}

func (f *Fill) OutboundAmount() (int64, error) {
	if f.Order.Side == SideBid {
		return f.FillAmount, nil
	}
	return f.CounterFillAmount()
}

func (f *Fill) QuantumPrice() decimal.Decimal {
	return quantumPrice(f.Order.BaseAmount, f.Order.CounterAmount)
}

type FillParams struct {
	FillID         string
	OutboundSymbol string
	PaymentObligations
}

func (f *Fill) ParamsForFill() (FillParams, error) {
	const op = "params for fill"
	if f.FeeRequired && f.FeePaymentRequest == "" {
		return FillParams{}, missing(op, "feePaymentRequest")
	}
	if f.DepositRequired && f.DepositPaymentRequest == "" {
		return FillParams{}, missing(op, "depositPaymentRequest")
	}
	if f.FillID == "" {
		return FillParams{}, missing(op, "fillId")
	}
	return FillParams{
		FillID:         f.FillID,
		OutboundSymbol: f.OutboundSymbol(),
		PaymentObligations: PaymentObligations{
			FeePaymentRequest:     f.FeePaymentRequest,
			FeeRequired:           f.FeeRequired,
			DepositPaymentRequest: f.DepositPaymentRequest,
			DepositRequired:       f.DepositRequired,
		},
	}, nil
}

type SwapParams struct {
	MakerAddress string
	SwapHash     string
	Symbol       string
	Amount       int64
}

func (f *Fill) ParamsForSwap() (SwapParams, error) {
	const op = "params for swap"
	if f.MakerAddress == "" {
		return SwapParams{}, missing(op, "makerAddress")
	}
	if f.SwapHash == "" {
		return SwapParams{}, missing(op, "swapHash")
	}
	amount, err := f.OutboundAmount()
	if err != nil {
		return SwapParams{}, fmt.Errorf("%s: %w", op, err)
	}
	return SwapParams{MakerAddress: f.MakerAddress, SwapHash: f.SwapHash, Symbol: f.OutboundSymbol(), Amount: amount}, nil
}
