package invoice

import "errors"

// ChargeCardError is a card charge failure carrying a user-safe message.
// Handlers map it to a 4xx instead of the generic internal failure.
type ChargeCardError struct {
	Message string
}

func (e *ChargeCardError) Error() string {
	return e.Message
}

// IsChargeCardError reports whether err is a card charge failure.
func IsChargeCardError(err error) bool {
	var cce *ChargeCardError
	return errors.As(err, &cce)
}

// ErrReconciliationConflict is returned when a conditional PAID update did
// not modify exactly one pending row: the reference is unknown, the row was
// already paid by a racing writer, or the notification is a duplicate.
var ErrReconciliationConflict = errors.New("payment reconciliation conflict")

// ErrInternal is the generic failure surfaced to callers when the real
// cause has been logged server-side.
var ErrInternal = errors.New("an error has occurred internally")
