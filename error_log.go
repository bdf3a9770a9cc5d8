package volt

import "sync"

// errorLog retains the most recent dispatch errors, oldest first.
// A nil errorLog is valid and drops everything.
type errorLog struct {
	mu   sync.Mutex
	max  int
	errs []error
}

// newErrorLog creates an error log holding up to max errors.
// Returns nil when max is not positive, disabling history.
func newErrorLog(max int) *errorLog {
	if max <= 0 {
		return nil
	}
	return &errorLog{max: max}
}

// record appends an error, evicting the oldest when full.
func (l *errorLog) record(err error) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	l.errs = append(l.errs, err)
	if len(l.errs) > l.max {
		l.errs = l.errs[len(l.errs)-l.max:]
	}
}

// reset drops all retained errors.
func (l *errorLog) reset() {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errs = nil
}

// recent returns the retained errors, oldest first.
func (l *errorLog) recent() []error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.errs) == 0 {
		return nil
	}
	out := make([]error, len(l.errs))
	copy(out, l.errs)
	return out
}
