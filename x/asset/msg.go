package asset

import (
	weave "github.com/iov-one/weave-market"
	"github.com/iov-one/weave-market/errors"
)

const (
	pathIssueMsg    = "asset/issue"
	pathTransferMsg = "asset/transfer"
)

var _ weave.Msg = (*IssueMsg)(nil)
var _ weave.Msg = (*TransferMsg)(nil)

func (IssueMsg) Path() string {
	return pathIssueMsg
}

func (m *IssueMsg) Validate() error {
	if !IsValidID(m.ID) {
		return errors.Wrapf(errors.ErrInput, "asset id %q", m.ID)
	}
	if err := m.Holder.Validate(); err != nil {
		return errors.Wrap(err, "holder")
	}
	if len(m.URI) > maxURILength {
		return errors.Wrap(errors.ErrInput, "uri too long")
	}
	return nil
}

func (TransferMsg) Path() string {
	return pathTransferMsg
}

func (m *TransferMsg) Validate() error {
	if !IsValidID(m.ID) {
		return errors.Wrapf(errors.ErrInput, "asset id %q", m.ID)
	}
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	return nil
}

func (m *IssueMsg) Asset() []byte    { return m.ID }
func (m *TransferMsg) Asset() []byte { return m.ID }
