package volt

import "github.com/zoobzio/capitan"

// Dispatch signals.
var (
	// DispatchReceived is emitted when a dispatch enters the pipeline.
	DispatchReceived = capitan.NewSignal(
		"volt.dispatch.received",
		"Action entered the dispatch pipeline",
	)

	// DispatchFailed is emitted when a dispatch fails at any stage.
	DispatchFailed = capitan.NewSignal(
		"volt.dispatch.failed",
		"Dispatch failed",
	)

	// StateReplaced is emitted when the commit step replaces the state,
	// before observers are notified.
	StateReplaced = capitan.NewSignal(
		"volt.state.replaced",
		"State replaced by committed transition",
	)

	// DeferredInvoked is emitted when a deferred unit of work is handed
	// control instead of being forwarded to the commit step.
	DeferredInvoked = capitan.NewSignal(
		"volt.deferred.invoked",
		"Deferred unit of work invoked",
	)
)

// Store lifecycle signals.
var (
	// StatusChanged is emitted when a Store transitions between statuses.
	StatusChanged = capitan.NewSignal(
		"volt.store.status.changed",
		"Store status transition",
	)

	// ObserverSubscribed is emitted when an observer is registered.
	ObserverSubscribed = capitan.NewSignal(
		"volt.observer.subscribed",
		"Observer registered",
	)

	// ObserverUnsubscribed is emitted when an observer is removed.
	ObserverUnsubscribed = capitan.NewSignal(
		"volt.observer.unsubscribed",
		"Observer removed",
	)
)

// Action source signals.
var (
	// FeedStarted is emitted when a Store begins draining a Source.
	FeedStarted = capitan.NewSignal(
		"volt.feed.started",
		"Source feed started",
	)

	// FeedStopped is emitted when a Source feed ends.
	FeedStopped = capitan.NewSignal(
		"volt.feed.stopped",
		"Source feed stopped",
	)

	// FeedDecodeFailed is emitted when raw source bytes cannot be decoded
	// into an Action.
	FeedDecodeFailed = capitan.NewSignal(
		"volt.feed.decode.failed",
		"Source emission could not be decoded",
	)
)
