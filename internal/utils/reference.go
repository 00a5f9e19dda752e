package utils

import (
    "strings"

    "github.com/google/uuid"
)

// NewReservationReference returns a short human-readable booking code of
// the form "RSV-1A2B3C4D". The tail is the first eight hex characters of a
// random UUID, upper-cased; uniqueness is still enforced by the database's
// unique key on the reference column, which callers must treat as the
// authority.
func NewReservationReference() string {
    id := uuid.New()
    tail := strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))[:8]
    return "RSV-" + tail
}
