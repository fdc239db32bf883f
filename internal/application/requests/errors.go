package requests

import "errors"

var (
	ErrListingNotFound = errors.New("Listing not found")
	ErrRequestNotFound = errors.New("Request not found")

	// ErrUnknownStatus: the target status is not one of the enumerated values.
	ErrUnknownStatus = errors.New("Unknown request status")

	// ErrIllegalTransition: the target status is a known value but the workflow
	// does not allow moving there from the request's current status.
	ErrIllegalTransition = errors.New("Illegal status transition")
)
