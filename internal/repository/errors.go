// Package repository defines the raw-SQL data access layer and the
// sentinel errors shared across its repositories. The sentinels let the
// service and handler layers distinguish failure classes without string
// matching: conflicts map to HTTP 409, forbidden to 403 and the not-found
// family to 404. Storage connectivity errors pass through untyped and are
// the only class callers may retry.
package repository

import "errors"

// ErrDateConflict is returned when a ledger claim or block cannot proceed
// because at least one date in the batch is already occupied. The claim
// path surfaces it atomically: either every date was inserted or none
// were. Callers should offer alternative dates, never retry blindly.
var ErrDateConflict = errors.New("date range no longer available")

// ErrForbidden is returned when the caller attempts an operation on a
// resource owned by someone else, such as cancelling another guest's
// reservation.
var ErrForbidden = errors.New("forbidden")

// ErrPropertyNotFound is returned when no property matches the given
// identifier within the caller's tenant.
var ErrPropertyNotFound = errors.New("property not found")

// ErrReservationNotFound is returned when no reservation matches the
// given reference within the caller's tenant.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrRatePlanNotFound is returned when no rate plan matches the given
// identifier within the caller's tenant.
var ErrRatePlanNotFound = errors.New("rate plan not found")

// ErrAddOnNotFound is returned when a requested add-on does not exist or
// is inactive.
var ErrAddOnNotFound = errors.New("add-on not found")
