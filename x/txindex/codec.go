package txindex

import (
	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/weave-market"
)

// Index is a bounded, append only list of transaction identifiers.
type Index struct {
	Marketplace    weave.Address `protobuf:"bytes,1,opt,name=marketplace,proto3"`
	IndexType      string        `protobuf:"bytes,2,opt,name=index_type,proto3"`
	Key            []byte        `protobuf:"bytes,3,opt,name=key,proto3"`
	TransactionIDs [][]byte      `protobuf:"bytes,4,rep,name=transaction_ids,proto3"`
}

type wireIndex Index

func (m *wireIndex) Reset()         { *m = wireIndex{} }
func (m *wireIndex) String() string { return proto.CompactTextString(m) }
func (*wireIndex) ProtoMessage()    {}

func (i *Index) Marshal() ([]byte, error) { return proto.Marshal((*wireIndex)(i)) }

func (i *Index) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*wireIndex)(i)) }

// CreateIndexMsg allocates an empty index.
type CreateIndexMsg struct {
	IndexType string `protobuf:"bytes,1,opt,name=index_type,proto3"`
	Key       []byte `protobuf:"bytes,2,opt,name=key,proto3"`
}

type wireCreateIndexMsg CreateIndexMsg

func (m *wireCreateIndexMsg) Reset()         { *m = wireCreateIndexMsg{} }
func (m *wireCreateIndexMsg) String() string { return proto.CompactTextString(m) }
func (*wireCreateIndexMsg) ProtoMessage()    {}

func (m *CreateIndexMsg) Marshal() ([]byte, error) { return proto.Marshal((*wireCreateIndexMsg)(m)) }

func (m *CreateIndexMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*wireCreateIndexMsg)(m))
}

// AddTransactionMsg appends a transaction identifier to an index.
type AddTransactionMsg struct {
	IndexType     string `protobuf:"bytes,1,opt,name=index_type,proto3"`
	Key           []byte `protobuf:"bytes,2,opt,name=key,proto3"`
	TransactionID []byte `protobuf:"bytes,3,opt,name=transaction_id,proto3"`
}

type wireAddTransactionMsg AddTransactionMsg

func (m *wireAddTransactionMsg) Reset()         { *m = wireAddTransactionMsg{} }
func (m *wireAddTransactionMsg) String() string { return proto.CompactTextString(m) }
func (*wireAddTransactionMsg) ProtoMessage()    {}

func (m *AddTransactionMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*wireAddTransactionMsg)(m))
}

func (m *AddTransactionMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*wireAddTransactionMsg)(m))
}
