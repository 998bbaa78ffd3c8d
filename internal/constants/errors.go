package constants

import "errors"

// Configuration errors.
var (
	ErrNotLoggedIn      = errors.New("not logged in, use 'qiwi login' first")
	ErrPhoneRequired    = errors.New("user ID (phone number) is required")
	ErrTokenRequired    = errors.New("token is required")
	ErrUnknownOutput    = errors.New("unknown output format")
	ErrConfigDirMissing = errors.New("could not determine config directory")
)

// Transfer flag errors.
var (
	ErrAmountRequired      = errors.New("--amount is required")
	ErrRecipientRequired   = errors.New("--to is required")
	ErrConflictingCarrier  = errors.New("--carrier and --currency cannot be combined")
	ErrNATSSubjectRequired = errors.New("--nats-subject is required with --publish-nats")
)
