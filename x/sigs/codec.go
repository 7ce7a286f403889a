package sigs

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/weave-market/crypto"
)

// StdSignature represents the signature, the identity of the signer
// (the Pubkey), and a sequence number to prevent replay attacks.
type StdSignature struct {
	Sequence  int64             `protobuf:"varint,1,opt,name=sequence,proto3"`
	Pubkey    *crypto.PublicKey `protobuf:"bytes,2,opt,name=pubkey,proto3"`
	Signature *crypto.Signature `protobuf:"bytes,3,opt,name=signature,proto3"`
}

type wireStdSignature StdSignature

func (m *wireStdSignature) Reset()         { *m = wireStdSignature{} }
func (m *wireStdSignature) String() string { return proto.CompactTextString(m) }
func (*wireStdSignature) ProtoMessage()    {}

func (s *StdSignature) Marshal() ([]byte, error) { return proto.Marshal((*wireStdSignature)(s)) }

func (s *StdSignature) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*wireStdSignature)(s))
}

// UserData is the state kept for every signer.
type UserData struct {
	Sequence int64             `protobuf:"varint,1,opt,name=sequence,proto3"`
	Pubkey   *crypto.PublicKey `protobuf:"bytes,2,opt,name=pubkey,proto3"`
}

type wireUserData UserData

func (m *wireUserData) Reset()         { *m = wireUserData{} }
func (m *wireUserData) String() string { return proto.CompactTextString(m) }
func (*wireUserData) ProtoMessage()    {}

func (u *UserData) Marshal() ([]byte, error) { return proto.Marshal((*wireUserData)(u)) }

func (u *UserData) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*wireUserData)(u)) }
