package boot

import "errors"

// Sentinel errors returned by Build. Callers match them
// with errors.Is; Build wraps them with call context.
var (
	// ErrPayloadTooLarge reports a payload whose length
	// does not fit the 32-bit size field.
	ErrPayloadTooLarge = errors.New(
		"boot: payload too large for size field",
	)

	// ErrDigestSize reports a computed digest that is not
	// the expected SHA-256 length.
	ErrDigestSize = errors.New(
		"boot: unexpected digest length",
	)
)
