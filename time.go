package weave

import (
	"encoding/json"
	"time"

	"github.com/iov-one/weave-market/errors"
)

// UnixTime is a moment as seconds since the epoch. Models store it as an
// int64 field.
type UnixTime int64

// AsUnixTime truncates t to the second.
func AsUnixTime(t time.Time) UnixTime {
	return UnixTime(t.Unix())
}

func (t UnixTime) Time() time.Time {
	return time.Unix(int64(t), 0)
}

// AddSeconds moves t by the given number of seconds, failing with
// ErrOverflow when the result does not fit in an int64.
func (t UnixTime) AddSeconds(seconds int64) (UnixTime, error) {
	sum := t + UnixTime(seconds)
	if (seconds > 0) != (sum > t) && seconds != 0 {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d + %d seconds", t, seconds)
	}
	return sum, nil
}

func (t UnixTime) Validate() error {
	if t < 0 {
		return errors.Wrap(errors.ErrState, "negative value")
	}
	return nil
}

func (t UnixTime) String() string {
	return t.Time().UTC().String()
}

// UnmarshalJSON accepts either a number of seconds or an RFC 3339 string.
// Genesis files are easier to write with the latter.
func (t *UnixTime) UnmarshalJSON(raw []byte) error {
	var seconds int64
	if err := json.Unmarshal(raw, &seconds); err != nil {
		var stamp time.Time
		if err := json.Unmarshal(raw, &stamp); err != nil {
			return errors.Wrap(errors.ErrInput, "invalid time format")
		}
		seconds = stamp.Unix()
	}
	if seconds < 0 {
		return errors.Wrap(errors.ErrInput, "time before epoch")
	}
	*t = UnixTime(seconds)
	return nil
}
