package test

import (
	"go.uber.org/fx"
)

// LifecycleRecorder collects appended hooks so tests can run them by hand.
type LifecycleRecorder struct {
	Hooks []fx.Hook
}

func (r *LifecycleRecorder) Append(h fx.Hook) {
	r.Hooks = append(r.Hooks, h)
}

// ShutdownerStub signals on Called when a shutdown is requested.
type ShutdownerStub struct {
	Called chan struct{}
}

func (s *ShutdownerStub) Shutdown(...fx.ShutdownOption) error {
	if s.Called != nil {
		select {
		case s.Called <- struct{}{}:
		default:
		}
	}
	return nil
}
