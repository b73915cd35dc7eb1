package ccff

// DuplicatePolicy selects how Decode reconstructs a file whose headers carry
// the same name more than once. The format does not forbid duplicates; the
// in-memory model cannot represent them.
type DuplicatePolicy int

const (
	// KeepLast keeps the last occurrence's section at the first
	// occurrence's position, matching what repeated AddSection calls
	// would produce. This is the default.
	KeepLast DuplicatePolicy = iota
	// KeepFirst ignores every occurrence after the first.
	KeepFirst
	// RejectDuplicates fails the decode with ErrDuplicateName.
	RejectDuplicates
)

type readConfig struct {
	limits        Limits
	duplicates    DuplicatePolicy
	strictOffsets bool
}

// ReadOption customizes Decode.
type ReadOption func(*readConfig)

// WithReadLimits sets custom decode limits. Zero-valued fields keep their
// defaults.
func WithReadLimits(l Limits) ReadOption {
	return func(c *readConfig) { c.limits = l }
}

// WithDuplicatePolicy sets how duplicate section names are reconstructed.
func WithDuplicatePolicy(p DuplicatePolicy) ReadOption {
	return func(c *readConfig) { c.duplicates = p }
}

// WithStrictOffsets rejects any file whose data regions are not the exact
// contiguous, in-order layout the encoder produces. The format itself
// permits overlapping or reordered regions and the default decode accepts
// them; strict mode is for readers that want to reject anything an honest
// encoder could not have written.
func WithStrictOffsets() ReadOption {
	return func(c *readConfig) { c.strictOffsets = true }
}
