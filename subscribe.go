package volt

import (
	"context"
	"sync"

	"github.com/zoobzio/capitan"
)

// observer is one registered callback. Registration order is notification
// order, so the registry is an ordered slice rather than a map.
type observer struct {
	id uint64
	fn func()
}

// Subscribe registers an observer invoked after every committed
// transition, in subscription order. The returned handle removes exactly
// this registration and is idempotent; invoking it twice is a no-op.
//
// Subscribing or unsubscribing from inside an observer callback is safe:
// the in-flight notification pass iterates a snapshot taken when the
// transition committed, so registry changes take effect on the next
// dispatch.
//
// A nil observer returns a no-op handle.
func (s *Store[S]) Subscribe(fn func()) func() {
	if fn == nil {
		return func() {}
	}

	s.subMu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, observer{id: id, fn: fn})
	count := len(s.subs)
	s.subMu.Unlock()

	capitan.Emit(context.Background(), ObserverSubscribed, KeyObservers.Field(count))

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			for i, o := range s.subs {
				if o.id == id {
					s.subs = append(s.subs[:i], s.subs[i+1:]...)
					break
				}
			}
			count := len(s.subs)
			s.subMu.Unlock()

			capitan.Emit(context.Background(), ObserverUnsubscribed, KeyObservers.Field(count))
		})
	}
}

// Observers returns the number of currently registered observers.
func (s *Store[S]) Observers() int {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	return len(s.subs)
}

// snapshotObservers copies the registry for one notification pass.
func (s *Store[S]) snapshotObservers() []func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	if len(s.subs) == 0 {
		return nil
	}
	fns := make([]func(), len(s.subs))
	for i, o := range s.subs {
		fns[i] = o.fn
	}
	return fns
}
