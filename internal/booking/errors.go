package booking

// ValidationError reports malformed or out-of-policy input: bad date
// order, a check-in in the past, a stay outside the property's length
// policy, a party over capacity. It is always surfaced to the caller and
// never retried.
type ValidationError struct {
    Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(msg string) error { return &ValidationError{Msg: msg} }

// AuthorizationError reports that the acting party is not permitted to
// perform the requested transition, e.g. a guest cancelling a stranger's
// reservation or marking a no-show.
type AuthorizationError struct {
    Msg string
}

func (e *AuthorizationError) Error() string { return e.Msg }

// TransitionError reports a status change the state machine forbids, such
// as confirming an already checked-out reservation. Handlers map it to a
// conflict response.
type TransitionError struct {
    From string
    To   string
}

func (e *TransitionError) Error() string {
    return "invalid transition from " + e.From + " to " + e.To
}
