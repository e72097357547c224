package transport

import (
	"context"

	"github.com/goodnatureofminers/swapbroker/internal/blockorder"
	"github.com/goodnatureofminers/swapbroker/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	BlockOrders interface {
		CreateBlockOrder(ctx context.Context, params blockorder.CreateParams) (string, error)
		GetBlockOrder(ctx context.Context, blockOrderID string) (*model.BlockOrder, error)
		GetBlockOrders(ctx context.Context, marketName string) ([]*model.BlockOrder, error)
		CancelBlockOrder(ctx context.Context, blockOrderID string) error
	}
)
