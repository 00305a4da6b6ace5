package paymaster

import "errors"

// ErrExternalCall marks a failed beneficiary transfer, user transfer, or
// vault call. The surrounding operation rolls back fully; no partial credit
// survives.
var ErrExternalCall = errors.New("external call failed")
