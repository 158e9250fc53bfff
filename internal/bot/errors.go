package bot

import (
	"errors"
	"fmt"
)

// Error kinds shared by every module. Module-specific kinds wrap or sit beside these;
// the Reporter is the only place that turns any of them into user-facing text.
var (
	// ErrInvalidArguments is returned when command input is missing or malformed.
	ErrInvalidArguments = errors.New("invalid arguments")

	// ErrUnknown is returned for unexpected or unclassified failures.
	ErrUnknown = errors.New("unknown error")

	// ErrGuildOnly is returned when a guild-only command is used in a direct message.
	ErrGuildOnly = fmt.Errorf("%w: this command can only be used in a server", ErrInvalidArguments)
)

// InvalidArguments returns an ErrInvalidArguments carrying a detail message.
func InvalidArguments(detail string) error {
	return fmt.Errorf("%w: %s", ErrInvalidArguments, detail)
}

// Kinded is implemented by errors that know their own kind name.
type Kinded interface {
	Kind() string
}

// KindError is a sentinel error with a stable kind name used in logs.
type KindError struct {
	kind    string
	message string
}

// NewKindError creates a sentinel error of the given kind.
func NewKindError(kind, message string) *KindError {
	return &KindError{kind: kind, message: message}
}

func (e *KindError) Error() string { return e.message }

// Kind returns the kind name.
func (e *KindError) Kind() string { return e.kind }

// ErrorKind classifies err for logging. Errors that are not one of the known kinds
// are reported as "wrapped".
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}

	var kinded Kinded
	if errors.As(err, &kinded) {
		return kinded.Kind()
	}

	switch {
	case errors.Is(err, ErrInvalidArguments):
		return "invalid_arguments"
	case errors.Is(err, ErrUnknown):
		return "unknown"
	default:
		return "wrapped"
	}
}
