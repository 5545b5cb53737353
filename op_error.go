package rxstate

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownField is returned when a [Partial] names a field the state
	// type does not have, or one that is unexported.
	ErrUnknownField = errors.New("rxstate: unknown field")

	// ErrFieldType is returned when a [Partial] value is not assignable to
	// the field it targets.
	ErrFieldType = errors.New("rxstate: field type mismatch")

	// ErrEventType is returned by an identity event when the raw event is
	// not of the published type.
	ErrEventType = errors.New("rxstate: event type mismatch")
)

// OpError attributes a failure to the operation and the named state or
// event it happened on. Update failures and mapper failures are returned
// as *OpError; the stream they belong to is left untouched.
type OpError struct {
	// Op is "update" or "handle".
	Op string
	// Name is the value given with [WithName], possibly empty.
	Name string
	Err  error
}

func (e *OpError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("rxstate: %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("rxstate: %s %q failed: %v", e.Op, e.Name, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// IsOpError reports whether err (or any error in its chain) is an [*OpError].
func IsOpError(err error) bool {
	if err == nil {
		return false
	}
	var oe *OpError
	return errors.As(err, &oe)
}

// OpOf returns the operation and name of the first [*OpError] in err's
// chain.
func OpOf(err error) (op, name string, ok bool) {
	var oe *OpError
	if err == nil || !errors.As(err, &oe) {
		return "", "", false
	}
	return oe.Op, oe.Name, true
}

// CauseOf returns the cause wrapped by the first [*OpError] in err's chain,
// or err itself when there is none.
func CauseOf(err error) error {
	if err == nil {
		return nil
	}
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Err
	}
	return err
}
