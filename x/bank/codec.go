package bank

import (
	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/weave-market"
)

// Wallet holds the native token balance of a single address.
type Wallet struct {
	Amount uint64 `protobuf:"varint,1,opt,name=amount,proto3"`
}

// wireWallet is the proto.Message form of a Wallet. Having no Marshal
// method, it is encoded by gogo/protobuf from the struct tags.
type wireWallet Wallet

func (m *wireWallet) Reset()         { *m = wireWallet{} }
func (m *wireWallet) String() string { return proto.CompactTextString(m) }
func (*wireWallet) ProtoMessage()    {}

func (w *Wallet) Marshal() ([]byte, error) { return proto.Marshal((*wireWallet)(w)) }

func (w *Wallet) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*wireWallet)(w)) }

// SendMsg moves an amount from the source to the destination wallet.
type SendMsg struct {
	Source      weave.Address `protobuf:"bytes,1,opt,name=source,proto3"`
	Destination weave.Address `protobuf:"bytes,2,opt,name=destination,proto3"`
	Amount      uint64        `protobuf:"varint,3,opt,name=amount,proto3"`
	Memo        string        `protobuf:"bytes,4,opt,name=memo,proto3"`
}

type wireSendMsg SendMsg

func (m *wireSendMsg) Reset()         { *m = wireSendMsg{} }
func (m *wireSendMsg) String() string { return proto.CompactTextString(m) }
func (*wireSendMsg) ProtoMessage()    {}

func (m *SendMsg) Marshal() ([]byte, error) { return proto.Marshal((*wireSendMsg)(m)) }

func (m *SendMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*wireSendMsg)(m)) }
