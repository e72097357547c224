package model

import "github.com/goodnatureofminers/swapbroker/internal/workflow"

// Order lifecycle states.
const (
	OrderStateNone      = workflow.StateNone
	OrderStateCreated   workflow.State = "created"
	OrderStatePlaced    workflow.State = "placed"
	OrderStateCancelled workflow.State = "cancelled"
	OrderStateExecuting workflow.State = "executing"
	OrderStateCompleted workflow.State = "completed"
	OrderStateRejected  = workflow.StateRejected
)

// Fill lifecycle states.
const (
	FillStateNone      = workflow.StateNone
	FillStateCreated   workflow.State = "created"
	FillStateFilled    workflow.State = "filled"
	FillStateExecuted  workflow.State = "executed"
	FillStateCancelled workflow.State = "cancelled"
	FillStateRejected  = workflow.StateRejected
)

// IsIndeterminateOrderState reports whether an order interrupted in state
// needs recovery on startup.
func IsIndeterminateOrderState(state workflow.State) bool {
	switch state {
	case OrderStateCreated, OrderStatePlaced, OrderStateExecuting:
		return true
	}
	return false
}

// IsIndeterminateFillState reports whether a fill interrupted in state needs
// recovery on startup.
func IsIndeterminateFillState(state workflow.State) bool {
	switch state {
	case FillStateCreated, FillStateFilled:
		return true
	}
	return false
}
