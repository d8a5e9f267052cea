package inference

import "errors"

var (
	// ErrTypeMismatch reports an Equals call against a value that is not
	// an *Atom. It marks a programming error in the caller, not a
	// recoverable runtime condition.
	ErrTypeMismatch = errors.New("type mismatch: not an atom")

	// ErrEmptySlotName reports a slot lookup with a missing name.
	ErrEmptySlotName = errors.New("slot name must not be empty")

	// ErrNoSuchSlot reports a slot-name lookup that found nothing, on the
	// accessors that escalate a miss to an error.
	ErrNoSuchSlot = errors.New("no slot named")
)
