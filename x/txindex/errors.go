package txindex

import "github.com/iov-one/weave-market/errors"

// ErrIndexFull is returned when an index already holds MaxTransactionIDs
// entries.
var ErrIndexFull = errors.Register(400, "index full")
