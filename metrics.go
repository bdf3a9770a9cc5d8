package volt

import "time"

// MetricsProvider allows integration with metrics systems like Prometheus, StatsD, etc.
// Implement this interface to receive callbacks on key store events.
type MetricsProvider interface {
	// OnStatusChange is called when the store transitions between statuses.
	OnStatusChange(from, to Status)

	// OnDispatchSuccess is called when a dispatch commits. Duration covers
	// the full pipeline including observer notification.
	OnDispatchSuccess(duration time.Duration)

	// OnDispatchFailure is called when a dispatch fails. Stage indicates
	// where: "exclusion", "invalid", "reducer", "pipeline" or "deferred".
	OnDispatchFailure(stage string, duration time.Duration)

	// OnActionReceived is called when a dispatch enters the pipeline.
	OnActionReceived()
}

// NoOpMetricsProvider is a no-op implementation of MetricsProvider.
// Use this as an embedded type to implement only the methods you need.
type NoOpMetricsProvider struct{}

func (NoOpMetricsProvider) OnStatusChange(_, _ Status)                 {}
func (NoOpMetricsProvider) OnDispatchSuccess(_ time.Duration)          {}
func (NoOpMetricsProvider) OnDispatchFailure(_ string, _ time.Duration) {}
func (NoOpMetricsProvider) OnActionReceived()                          {}
