package volt

import "github.com/zoobzio/capitan"

// Field keys for Store events.
var (
	// KeyKind is the discriminant of the dispatched action.
	KeyKind = capitan.NewStringKey("kind")

	// KeyError is the error message when an operation fails.
	KeyError = capitan.NewStringKey("error")

	// KeyOldStatus is the previous status before a transition.
	KeyOldStatus = capitan.NewStringKey("old_status")

	// KeyNewStatus is the new status after a transition.
	KeyNewStatus = capitan.NewStringKey("new_status")

	// KeyObservers is the observer count after a subscribe or unsubscribe.
	KeyObservers = capitan.NewIntKey("observers")
)
