package workflow

import (
	"context"

	"go.uber.org/zap"
)

// Rejection adds the universal reject transition and turns TryTo failures
// into rejections. A failure caused by a cancelled context leaves the
// machine where it is so startup recovery can pick it up.
type Rejection struct {
	BasePlugin
	logger *zap.Logger
}

func NewRejection(logger *zap.Logger) *Rejection {
	return &Rejection{logger: logger}
}

func (r *Rejection) Transitions() []Transition {
	return []Transition{{Name: TransitionReject, From: []State{Wildcard}, To: StateRejected}}
}

func (r *Rejection) Wrap(m *Machine, next Runner) Runner {
	return func(ctx context.Context, name string, action Action) error {
		err := next(ctx, name, action)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			r.logger.Warn("transition interrupted", zap.String("transition", name), zap.Error(err))
			return err
		}
		r.logger.Error("encountered error during transition, rejecting",
			zap.String("transition", name),
			zap.String("state", string(m.State())),
			zap.Error(err),
		)
		if rejectErr := m.Reject(ctx, err); rejectErr != nil {
			r.logger.Error("reject failed", zap.String("transition", name), zap.Error(rejectErr))
		}
		return err
	}
}
