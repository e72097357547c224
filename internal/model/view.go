package model

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const viewDecimals = 16

type OrderView struct {
	OrderID     string `json:"orderId"`
	Amount      string `json:"amount"`
	Price       string `json:"price"`
	OrderStatus string `json:"orderStatus"`
	Error       string `json:"error,omitempty"`
}

type FillView struct {
	OrderID    string `json:"orderId"`
	FillID     string `json:"fillId"`
	Amount     string `json:"amount"`
	Price      string `json:"price"`
	FillStatus string `json:"fillStatus"`
	Error      string `json:"error,omitempty"`
}

// BlockOrderSummary is the short form used when listing a market.
type BlockOrderSummary struct {
	BlockOrderID  string `json:"blockOrderId"`
	Market        string `json:"market"`
	Side          Side   `json:"side"`
	Amount        string `json:"amount"`
	LimitPrice    string `json:"limitPrice,omitempty"`
	IsMarketOrder bool   `json:"isMarketOrder,omitempty"`
	TimeInForce   string `json:"timeInForce"`
	Timestamp     string `json:"timestamp"`
	Datetime      string `json:"datetime"`
	Status        string `json:"status"`
}

// BlockOrderView is the full form including every child order and fill.
type BlockOrderView struct {
	BlockOrderSummary
	OpenOrders []OrderView `json:"openOrders"`
	Fills      []FillView  `json:"fills"`
}

func (b *BlockOrder) SerializeSummary() BlockOrderSummary {
	s := BlockOrderSummary{
		BlockOrderID: b.ID,
		Market:       b.MarketName,
		Side:         b.Side,
		Amount:       b.Amount.StringFixed(viewDecimals),
		TimeInForce:  string(b.TimeInForce),
		Timestamp:    strconv.FormatInt(b.Timestamp, 10),
		Datetime:     b.datetime(),
		Status:       string(b.Status()),
	}
	if b.Price != nil {
		s.LimitPrice = b.Price.StringFixed(viewDecimals)
	} else {
		s.IsMarketOrder = true
	}
	return s
}

// Serialize renders the block order with the orders and fills currently
// loaded onto it.
func (b *BlockOrder) Serialize() BlockOrderView {
	v := BlockOrderView{
		BlockOrderSummary: b.SerializeSummary(),
		OpenOrders:        make([]OrderView, 0, len(b.Orders)),
		Fills:             make([]FillView, 0, len(b.Fills)),
	}
	for _, r := range b.Orders {
		v.OpenOrders = append(v.OpenOrders, OrderView{
			OrderID:     r.Order.OrderID,
			Amount:      b.base.ToCommon(r.Order.BaseAmount).StringFixed(viewDecimals),
			Price:       b.commonPrice(r.Order.BaseAmount, r.Order.CounterAmount),
			OrderStatus: strings.ToUpper(string(r.State)),
			Error:       r.Error,
		})
	}
	for _, r := range b.Fills {
		v.Fills = append(v.Fills, FillView{
			OrderID:    r.Fill.Order.OrderID,
			FillID:     r.Fill.FillID,
			Amount:     b.base.ToCommon(r.Fill.FillAmount).StringFixed(viewDecimals),
			Price:      b.commonPrice(r.Fill.Order.BaseAmount, r.Fill.Order.CounterAmount),
			FillStatus: strings.ToUpper(string(r.State)),
			Error:      r.Error,
		})
	}
	return v
}

func (b *BlockOrder) commonPrice(baseAmount, counterAmount int64) string {
	if baseAmount == 0 {
		return decimal.Zero.StringFixed(viewDecimals)
	}
	return b.counter.ToCommon(counterAmount).
		DivRound(b.base.ToCommon(baseAmount), viewDecimals).
		StringFixed(viewDecimals)
}
