package evidence

import "errors"

// Sentinel errors for the evidence core. Callers match them with errors.Is;
// wrapping sites attach the attempted path or name for user-facing messages.
var (
	// ErrAlreadyExists reports a case, seal, or test object collision with
	// existing on-disk or session state. Never silently overwritten.
	ErrAlreadyExists = errors.New("already exists")

	// ErrNotFound reports an operation referencing a case or seal path that
	// does not exist on disk.
	ErrNotFound = errors.New("not found")

	// ErrInvalidFormat reports a filename that cannot be decoded under the
	// strict four-token rules. The tolerant decode path never returns it.
	ErrInvalidFormat = errors.New("invalid filename format")

	// ErrExhaustedRange reports that the legacy count-based allocator has
	// used all 26 single-letter codes.
	ErrExhaustedRange = errors.New("object letter range exhausted")
)
