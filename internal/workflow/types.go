package workflow

import (
	"context"
	"time"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Store receives serialized machine records.
	Store interface {
		Put(ctx context.Context, key string, value []byte) error
	}
	// TransitionMetrics observes the outcome of every transition attempt.
	TransitionMetrics interface {
		ObserveTransition(transition string, err error, started time.Time)
	}
	// Scheduler runs continuations outside of the transition that queued them.
	Scheduler interface {
		Schedule(fn func())
	}
)
