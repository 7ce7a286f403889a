package utils

import (
	"time"

	weave "github.com/iov-one/weave-market"
)

// Logging writes one line per processed transaction with its path and the
// time it took. Failures are logged as errors, delivered transactions as
// info and checked ones as debug.
type Logging struct{}

var _ weave.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	l := logLine{ctx: ctx, tx: tx, start: start, err: err, debug: true}
	if res != nil {
		l.msg = res.Log
	}
	l.write()
	return res, err
}

func (Logging) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	l := logLine{ctx: ctx, tx: tx, start: start, err: err}
	if res != nil {
		l.msg = res.Log
	}
	l.write()
	return res, err
}

type logLine struct {
	ctx   weave.Context
	tx    weave.Tx
	start time.Time
	msg   string
	err   error
	debug bool
}

// write emits the line even when msg is empty, the path and the duration
// are worth it.
func (l logLine) write() {
	logger := weave.GetLogger(l.ctx).With(
		"path", weave.GetPath(l.tx),
		"duration", time.Since(l.start)/time.Microsecond,
	)
	switch {
	case l.err != nil:
		logger.Error(l.msg, "err", l.err)
	case l.debug:
		logger.Debug(l.msg)
	default:
		logger.Info(l.msg)
	}
}
