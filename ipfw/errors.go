package ipfw

import "errors"

// Error categories returned by the channel and the validators. Returned errors
// wrap one of these together with the underlying OS error, so both can be
// matched with errors.Is.
var (
	ErrSocketCreation     = errors.New("ipfw socket creation failed")
	ErrNotInitialized     = errors.New("ipfw socket not initialized")
	ErrKernelRejected     = errors.New("kernel rejected rule")
	ErrKernelQuery        = errors.New("kernel ruleset query failed")
	ErrAllocation         = errors.New("ruleset buffer allocation failed")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrInvalidProtocol    = errors.New("invalid protocol")
	ErrUnhandledOperation = errors.New("unhandled option")
)
