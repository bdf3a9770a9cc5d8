package volt

// Status represents the health of a Store.
type Status int32

const (
	// StatusReady indicates the last dispatch committed successfully
	// (or no dispatch has happened yet).
	StatusReady Status = iota

	// StatusDegraded indicates the last dispatch failed. The previous
	// state remains current and the store continues accepting dispatches.
	StatusDegraded
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusDegraded:
		return "degraded"
	default:
		return "unknown"
	}
}
