package model

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidParams       = errors.New("invalid params")
	ErrUnknownCurrency     = errors.New("unknown currency")
	ErrAmountTooPrecise    = errors.New("amount is too precise")
	ErrBlockOrderNotActive = errors.New("block order is not active")
	ErrBlockOrderNotFound  = errors.New("block order not found")
	ErrMissingParam        = errors.New("missing param")
)

// BlockOrderNotFoundError reports a lookup of an unknown block order id.
type BlockOrderNotFoundError struct {
	ID  string
	Err error
}

func (e *BlockOrderNotFoundError) Error() string {
	return fmt.Sprintf("block order %s not found", e.ID)
}

func (e *BlockOrderNotFoundError) Unwrap() error {
	return e.Err
}

func (e *BlockOrderNotFoundError) Is(target error) bool {
	return target == ErrBlockOrderNotFound
}

func missing(op, param string) error {
	return fmt.Errorf("%s: %w: %s", op, ErrMissingParam, param)
}
