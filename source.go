package volt

import (
	"context"
	"fmt"

	"github.com/zoobzio/capitan"
)

// Source observes an external origin of serialized actions and emits raw
// bytes on a channel. Implementations close the channel when the context
// is canceled or the origin is exhausted.
type Source interface {
	// Watch begins observing and returns a channel emitting raw encoded
	// actions as they arrive.
	Watch(ctx context.Context) (<-chan []byte, error)
}

// ChannelSource wraps an existing byte channel as a Source.
// Useful for testing and custom origins that already produce bytes.
type ChannelSource struct {
	ch   <-chan []byte
	sync bool
}

// NewChannelSource creates a ChannelSource that forwards values from the
// given channel through an internal goroutine.
func NewChannelSource(ch <-chan []byte) *ChannelSource {
	return &ChannelSource{ch: ch}
}

// NewSyncChannelSource creates a ChannelSource that returns the source
// channel directly without an intermediate goroutine, for deterministic
// tests.
func NewSyncChannelSource(ch <-chan []byte) *ChannelSource {
	return &ChannelSource{ch: ch, sync: true}
}

// Watch returns a channel that emits values from the wrapped channel.
func (c *ChannelSource) Watch(ctx context.Context) (<-chan []byte, error) {
	if c.sync {
		return c.ch, nil
	}

	out := make(chan []byte)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-c.ch:
				if !ok {
					return
				}
				select {
				case out <- v:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// Feed drains a Source, decoding each emission into an Action with the
// configured Codec and dispatching it. Feed blocks until the source
// channel closes (returns nil) or the context is canceled (returns the
// context error).
//
// Emissions that fail to decode are recorded like any dispatch failure,
// degrading the store status, and then skipped; dispatch failures are
// already recorded by Dispatch. Neither stops the feed.
func (s *Store[S]) Feed(ctx context.Context, src Source) error {
	ch, err := src.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to start source: %w", err)
	}

	capitan.Emit(ctx, FeedStarted)
	defer capitan.Emit(ctx, FeedStopped)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case raw, ok := <-ch:
			if !ok {
				return nil
			}

			var action Action
			if err := s.codec.Unmarshal(raw, &action); err != nil {
				decodeErr := fmt.Errorf("decode action (%s): %w", s.codec.ContentType(), err)
				e := decodeErr
				s.lastError.Store(&e)
				s.history.record(decodeErr)
				s.transition(ctx, StatusDegraded)
				capitan.Emit(ctx, FeedDecodeFailed, KeyError.Field(err.Error()))
				if s.metrics != nil {
					s.metrics.OnDispatchFailure("decode", 0)
				}
				continue
			}

			// Errors are recorded by Dispatch; the feed keeps going.
			_, _ = s.Dispatch(ctx, action)
		}
	}
}
