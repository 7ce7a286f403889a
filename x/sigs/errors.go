package sigs

import "github.com/iov-one/weave-market/errors"

// ErrInvalidSequence is returned when a signature sequence does not match
// the one expected for the signer.
var ErrInvalidSequence = errors.Register(120, "invalid sequence number")
