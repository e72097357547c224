package blockorder

import (
	"context"
	"sync/atomic"

	"github.com/goodnatureofminers/swapbroker/internal/model"
	"github.com/goodnatureofminers/swapbroker/pkg/workerpool"
	"go.uber.org/zap"
)

// settleIndeterminateOrdersFills resumes every order and fill stored in an
// indeterminate state. Watchers are attached before TriggerState so the
// event resolving the resumed transition cannot be missed.
func (w *Worker) settleIndeterminateOrdersFills(ctx context.Context) error {
	blockOrders, err := w.allBlockOrders(ctx)
	if err != nil {
		return err
	}

	var recovered atomic.Int64
	err = workerpool.Process(ctx, w.workers, blockOrders, func(ctx context.Context, bo *model.BlockOrder) error {
		n, err := w.settleBlockOrder(ctx, bo)
		recovered.Add(n)
		return err
	})
	w.metrics.ObserveRecovered(int(recovered.Load()))
	if err != nil {
		return err
	}
	w.logger.Info("settled indeterminate orders and fills",
		zap.Int("block_orders", len(blockOrders)),
		zap.Int64("resumed", recovered.Load()),
	)
	return nil
}

func (w *Worker) settleBlockOrder(ctx context.Context, bo *model.BlockOrder) (int64, error) {
	prefix := model.ChildPrefix(bo.ID)
	orders, err := collect(ctx, w.orders, prefix)
	if err != nil {
		return 0, err
	}
	fills, err := collect(ctx, w.fills, prefix)
	if err != nil {
		return 0, err
	}

	var resumed int64
	for _, r := range orders {
		rec, _, err := model.ParseOrderRecord(r.key, r.value)
		if err != nil {
			return resumed, err
		}
		if !model.IsIndeterminateOrderState(rec.State) {
			continue
		}
		osm, err := w.machines.OrderFromStore(r.key, r.value)
		if err != nil {
			return resumed, err
		}
		w.watchOrder(bo.ID, osm)
		w.logger.Info("resuming order", zap.String("key", r.key), zap.String("state", string(rec.State)))
		osm.TriggerState(w.ctx)
		resumed++
	}
	for _, r := range fills {
		rec, _, err := model.ParseFillRecord(r.key, r.value)
		if err != nil {
			return resumed, err
		}
		if !model.IsIndeterminateFillState(rec.State) {
			continue
		}
		fsm, err := w.machines.FillFromStore(r.key, r.value)
		if err != nil {
			return resumed, err
		}
		w.watchFill(bo.ID, fsm)
		w.logger.Info("resuming fill", zap.String("key", r.key), zap.String("state", string(rec.State)))
		fsm.TriggerState(w.ctx)
		resumed++
	}
	return resumed, nil
}
