// internal/pkg/guard/types.go
package guard

import "context"

// Flag names kept verbatim from the client-side session storage so that
// dashboards and logs stay comparable across both sides.
const (
	FlagSubmitting           = "isSubmittingListing"
	FlagSubmissionInProgress = "submissionInProgress"
	FlagProcessingPayment    = "isProcessingPayment"
	FlagReloaded             = "reloaded"
	FlagLastReload           = "lastReload"
)

// Op names a guarded critical operation.
type Op string

const (
	OpListingSubmission Op = "listing_submission"
	OpPayment           Op = "payment"
)

// FlagStore holds the session-scoped guard flags as string key/values.
// Implementations must treat a missing key as the empty string.
// SetIfAbsent is a single atomic check-and-set: it writes only when the
// key is unset and reports whether this call won it.
type FlagStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	SetIfAbsent(ctx context.Context, key, value string) (bool, error)
	Del(ctx context.Context, keys ...string) error
}

// flags owned by each operation; all of them are set on entry and cleared
// on every exit path.
func opFlags(op Op) []string {
	switch op {
	case OpPayment:
		return []string{FlagProcessingPayment}
	default:
		return []string{FlagSubmitting, FlagSubmissionInProgress}
	}
}

// criticalFlags are the flags that suppress a reload while true.
var criticalFlags = []string{
	FlagSubmitting,
	FlagSubmissionInProgress,
	FlagProcessingPayment,
}
