package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for the recoverable, non-retryable failure classes.
var (
	ErrNotFound      = errors.New("video not found")
	ErrUnknownHost   = errors.New("unknown or inactive host")
	ErrInvalidRating = errors.New("relevance rating out of range")
	ErrInvalidInput  = errors.New("invalid input")
)

// DuplicateContentError reports that a submission resolves to content the
// system already tracks. ExistingURL lets the operator disambiguate; no
// silent merge is ever performed.
type DuplicateContentError struct {
	CanonicalCode string
	ExistingURL   string
}

func (e *DuplicateContentError) Error() string {
	if e.CanonicalCode != "" {
		return fmt.Sprintf("duplicate content %s (already submitted as %s)", e.CanonicalCode, e.ExistingURL)
	}
	return fmt.Sprintf("duplicate URL (already submitted as %s)", e.ExistingURL)
}

// IllegalTransitionError reports a sub-state edge that is not in the graph.
// Both the attempted and the actual state are carried for diagnosis: these
// usually surface a workflow race or a stale UI.
type IllegalTransitionError struct {
	HostID int64
	From   *HostStatus
	To     HostStatus
}

func (e *IllegalTransitionError) Error() string {
	from := "unset"
	if e.From != nil {
		from = string(*e.From)
	}
	return fmt.Sprintf("host %d: illegal transition %s -> %s", e.HostID, from, e.To)
}

// FieldCollisionError reports that a requested field binding is already
// claimed by another host or reserved by the video schema.
type FieldCollisionError struct {
	Field string
}

func (e *FieldCollisionError) Error() string {
	return fmt.Sprintf("field binding %q collides with an existing or reserved field", e.Field)
}

// ProvisioningError wraps a failure in one of the host provisioning steps.
// It is the only error class callers may retry: every step is idempotent and
// the host stays inactive until all steps succeed. HostID is the id this run
// was provisioning (0 when allocation itself failed); a retry must submit it
// back so the steps converge on the same host instead of allocating a fresh
// id that collides with the partially provisioned row's bindings.
type ProvisioningError struct {
	HostID int64
	Step   string
	Err    error
}

func (e *ProvisioningError) Error() string {
	return fmt.Sprintf("host provisioning failed at step %q: %v", e.Step, e.Err)
}

func (e *ProvisioningError) Unwrap() error { return e.Err }
