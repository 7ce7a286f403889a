package weave

import (
	"context"
	"regexp"
	"time"

	"github.com/iov-one/weave-market/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Context is the standard context. The helpers below give it the block
// values.
type Context = context.Context

type ctxKey int

const (
	heightKey ctxKey = iota + 1
	chainIDKey
	loggerKey
	blockTimeKey
)

var (
	// DefaultLogger is returned by GetLogger when the context has none.
	DefaultLogger = log.NewNopLogger()

	// IsValidChainID reports whether s can be used as a chain id.
	IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString
)

// WithHeight panics if the height is already set.
func WithHeight(ctx Context, height int64) Context {
	if _, ok := GetHeight(ctx); ok {
		panic("block height already set")
	}
	return context.WithValue(ctx, heightKey, height)
}

// GetHeight returns false when no height was set.
func GetHeight(ctx Context) (int64, bool) {
	h, ok := ctx.Value(heightKey).(int64)
	return h, ok
}

// WithChainID panics if a chain id is already set or if chainID is not
// valid.
func WithChainID(ctx Context, chainID string) Context {
	if _, ok := ctx.Value(chainIDKey).(string); ok {
		panic("chain id already set")
	}
	if !IsValidChainID(chainID) {
		panic("invalid chain id: " + chainID)
	}
	return context.WithValue(ctx, chainIDKey, chainID)
}

// GetChainID panics when no chain id is set. Every transaction is processed
// after the genesis, so a missing chain id is a programming error.
func GetChainID(ctx Context) string {
	id, ok := ctx.Value(chainIDKey).(string)
	if !ok {
		panic("chain id not set")
	}
	return id
}

// WithBlockTime stores t in UTC.
func WithBlockTime(ctx Context, t time.Time) Context {
	return context.WithValue(ctx, blockTimeKey, t.UTC())
}

// BlockTime returns the time declared by the block header. A missing or
// zero time is an error.
func BlockTime(ctx Context) (time.Time, error) {
	t, ok := ctx.Value(blockTimeKey).(time.Time)
	switch {
	case !ok:
		return t, errors.Wrap(errors.ErrHuman, "no block time in context")
	case t.IsZero():
		return t, errors.Wrap(errors.ErrHuman, "zero block time in context")
	}
	return t, nil
}

func BlockUnixTime(ctx Context) (UnixTime, error) {
	t, err := BlockTime(ctx)
	if err != nil {
		return 0, err
	}
	return AsUnixTime(t), nil
}

// IsExpired reports whether t is at or before the block time. It panics
// without a block time, processing must not go on with a broken context.
func IsExpired(ctx Context, t UnixTime) bool {
	now, err := BlockUnixTime(ctx)
	if err != nil {
		panic(err)
	}
	return t <= now
}

func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// WithLogInfo attaches keyvals to every later log line of ctx.
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	return WithLogger(ctx, GetLogger(ctx).With(keyvals...))
}

func GetLogger(ctx Context) log.Logger {
	if l, ok := ctx.Value(loggerKey).(log.Logger); ok {
		return l
	}
	return DefaultLogger
}
