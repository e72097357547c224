package blockorder

import (
	"github.com/goodnatureofminers/swapbroker/internal/model"
	"github.com/goodnatureofminers/swapbroker/internal/swap"
)

// SwapMachines builds swap state machines persisting to the given stores.
type SwapMachines struct {
	orders swap.Deps
	fills  swap.Deps
}

func NewSwapMachines(deps swap.Deps, orders, fills swap.Store) *SwapMachines {
	m := &SwapMachines{orders: deps, fills: deps}
	m.orders.Store = orders
	m.fills.Store = fills
	return m
}

func (m *SwapMachines) NewOrder(order *model.Order) (OrderMachine, error) {
	osm, err := swap.NewOrderStateMachine(m.orders, order)
	if err != nil {
		return nil, err
	}
	return osm, nil
}

func (m *SwapMachines) NewFill(fill *model.Fill) (FillMachine, error) {
	fsm, err := swap.NewFillStateMachine(m.fills, fill)
	if err != nil {
		return nil, err
	}
	return fsm, nil
}

func (m *SwapMachines) OrderFromStore(key string, value []byte) (OrderMachine, error) {
	osm, err := swap.OrderFromStore(m.orders, key, value)
	if err != nil {
		return nil, err
	}
	return osm, nil
}

func (m *SwapMachines) FillFromStore(key string, value []byte) (FillMachine, error) {
	fsm, err := swap.FillFromStore(m.fills, key, value)
	if err != nil {
		return nil, err
	}
	return fsm, nil
}
