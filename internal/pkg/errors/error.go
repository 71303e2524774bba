package xerrors

import (
	"errors"
	"fmt"
	"strings"
)

// Common reusable application errors
var (
	ErrNotFound             = errors.New("resource not found")
	ErrUnauthorized         = errors.New("unauthorized access")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidInput         = errors.New("invalid input")
	ErrConflict             = errors.New("conflict: resource already exists")
	ErrInternal             = errors.New("internal server error")
	ErrSubmissionInFlight   = errors.New("submission already in progress")
	ErrInvalidStatus        = errors.New("invalid listing status")
	ErrRowBusy              = errors.New("operation already in flight for this listing")
	ErrConfirmationRequired = errors.New("explicit confirmation required")
)

// Kind buckets failures the way the client reacts to them: validation
// errors stay on the form, network errors get a retry affordance, backend
// errors are shown verbatim, everything else is logged and shown
// generically.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNetwork
	KindBackend
)

var networkMarkers = []string{
	"fetch", "network", "connection refused", "connection reset",
	"no such host", "timeout", "broken pipe",
}

// IsNetwork reports whether err looks like a transport failure. The check
// is a message-content heuristic: the backend collaborator does not
// expose a typed transport error.
func IsNetwork(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range networkMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// Classify maps an error onto the recovery path it should take.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrInvalidInput):
		return KindValidation
	case IsNetwork(err):
		return KindNetwork
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrForbidden),
		errors.Is(err, ErrUnauthorized), errors.Is(err, ErrConflict):
		return KindBackend
	default:
		return KindUnknown
	}
}

// Wrap adds context to an error (similar to fmt.Errorf("%w")).
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is allows checking whether an error is a specific sentinel error.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// MessageOrDefault returns err.Error() or a fallback message if err is nil.
func MessageOrDefault(err error, fallback string) string {
	if err != nil {
		return err.Error()
	}
	return fallback
}
