package txindex

import (
	weave "github.com/iov-one/weave-market"
)

const (
	pathCreateIndexMsg    = "txindex/create"
	pathAddTransactionMsg = "txindex/add"
)

var _ weave.Msg = (*CreateIndexMsg)(nil)
var _ weave.Msg = (*AddTransactionMsg)(nil)

func (CreateIndexMsg) Path() string {
	return pathCreateIndexMsg
}

func (m *CreateIndexMsg) Validate() error {
	return validateRef(m.IndexType, m.Key)
}

func (AddTransactionMsg) Path() string {
	return pathAddTransactionMsg
}

func (m *AddTransactionMsg) Validate() error {
	if err := validateRef(m.IndexType, m.Key); err != nil {
		return err
	}
	return validateTransactionID(m.TransactionID)
}
