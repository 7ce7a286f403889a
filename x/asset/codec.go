package asset

import (
	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/weave-market"
)

// Asset is a unique, non fungible item with a supply of exactly one.
type Asset struct {
	ID     []byte        `protobuf:"bytes,1,opt,name=id,proto3"`
	Issuer weave.Address `protobuf:"bytes,2,opt,name=issuer,proto3"`
	Holder weave.Address `protobuf:"bytes,3,opt,name=holder,proto3"`
	URI    string        `protobuf:"bytes,4,opt,name=uri,proto3"`
}

// wireAsset is an Asset without the Marshal method, so that gogo/protobuf
// encodes it from the struct tags.
type wireAsset Asset

func (m *wireAsset) Reset()         { *m = wireAsset{} }
func (m *wireAsset) String() string { return proto.CompactTextString(m) }
func (*wireAsset) ProtoMessage()    {}

func (a *Asset) Marshal() ([]byte, error) { return proto.Marshal((*wireAsset)(a)) }

func (a *Asset) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*wireAsset)(a)) }

// IssueMsg creates a new asset. The signer becomes the issuer.
type IssueMsg struct {
	ID     []byte        `protobuf:"bytes,1,opt,name=id,proto3"`
	Holder weave.Address `protobuf:"bytes,2,opt,name=holder,proto3"`
	URI    string        `protobuf:"bytes,3,opt,name=uri,proto3"`
}

type wireIssueMsg IssueMsg

func (m *wireIssueMsg) Reset()         { *m = wireIssueMsg{} }
func (m *wireIssueMsg) String() string { return proto.CompactTextString(m) }
func (*wireIssueMsg) ProtoMessage()    {}

func (m *IssueMsg) Marshal() ([]byte, error) { return proto.Marshal((*wireIssueMsg)(m)) }

func (m *IssueMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*wireIssueMsg)(m)) }

// TransferMsg moves an asset to a new holder.
type TransferMsg struct {
	ID          []byte        `protobuf:"bytes,1,opt,name=id,proto3"`
	Destination weave.Address `protobuf:"bytes,2,opt,name=destination,proto3"`
}

type wireTransferMsg TransferMsg

func (m *wireTransferMsg) Reset()         { *m = wireTransferMsg{} }
func (m *wireTransferMsg) String() string { return proto.CompactTextString(m) }
func (*wireTransferMsg) ProtoMessage()    {}

func (m *TransferMsg) Marshal() ([]byte, error) { return proto.Marshal((*wireTransferMsg)(m)) }

func (m *TransferMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*wireTransferMsg)(m))
}
