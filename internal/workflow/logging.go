package workflow

import (
	"context"

	"go.uber.org/zap"
)

// Logging writes a structured log line for every lifecycle step.
type Logging struct {
	BasePlugin
	logger *zap.Logger
}

func NewLogging(logger *zap.Logger) *Logging {
	return &Logging{logger: logger}
}

func (l *Logging) Hooks() Hooks {
	return Hooks{
		BeforeTransition: func(_ context.Context, _ *Machine, lc Lifecycle) error {
			l.logger.Info("BEFORE", zap.String("transition", lc.Transition))
			return nil
		},
		LeaveState: func(_ context.Context, _ *Machine, lc Lifecycle) error {
			l.logger.Debug("LEAVE", zap.String("state", string(lc.From)))
			return nil
		},
		EnterState: func(_ context.Context, _ *Machine, lc Lifecycle) error {
			l.logger.Debug("ENTER", zap.String("state", string(lc.To)))
			return nil
		},
		AfterTransition: func(_ context.Context, _ *Machine, lc Lifecycle) {
			l.logger.Info("AFTER",
				zap.String("transition", lc.Transition),
				zap.String("from", string(lc.From)),
				zap.String("to", string(lc.To)),
			)
		},
	}
}
