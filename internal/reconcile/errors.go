package reconcile

import "errors"

var ErrAmountMismatch = errors.New("amount_mismatch")
