package orm

import (
	"github.com/iov-one/weave-market/errors"
)

// Orm reserves 100~109 error codes

// ErrInvalidBucket is returned when a bucket is declared with a name that
// cannot be used as a key prefix.
var ErrInvalidBucket = errors.Register(100, "invalid bucket")
