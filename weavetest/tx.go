package weavetest

import (
	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/weave-market"
)

// Tx is a weave.Tx carrying a single message. When Err is set it is
// returned instead of the message.
//
// A serialized Tx keeps the route path of the message next to its payload,
// so a decoded Tx always holds a *Msg.
type Tx struct {
	Msg weave.Msg
	Err error
}

var _ weave.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (weave.Msg, error) {
	return tx.Msg, tx.Err
}

func (tx *Tx) Marshal() ([]byte, error) {
	var w wireTx
	if tx.Msg != nil {
		payload, err := tx.Msg.Marshal()
		if err != nil {
			return nil, err
		}
		w = wireTx{Path: tx.Msg.Path(), Payload: payload}
	}
	return proto.Marshal(&w)
}

func (tx *Tx) Unmarshal(raw []byte) error {
	var w wireTx
	if err := proto.Unmarshal(raw, &w); err != nil {
		return err
	}
	tx.Msg = &Msg{RoutePath: w.Path, Serialized: w.Payload}
	return nil
}

type wireTx struct {
	Path    string `protobuf:"bytes,1,opt,name=path,proto3"`
	Payload []byte `protobuf:"bytes,2,opt,name=payload,proto3"`
}

func (m *wireTx) Reset()         { *m = wireTx{} }
func (m *wireTx) String() string { return proto.CompactTextString(m) }
func (*wireTx) ProtoMessage()    {}

// Msg is a weave.Msg routed by RoutePath. Err, when set, fails validation
// and serialization.
type Msg struct {
	RoutePath  string
	Serialized []byte
	Err        error
}

var _ weave.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}

func (m *Msg) Unmarshal(b []byte) error {
	m.Serialized = b
	return m.Err
}

func (m *Msg) Marshal() ([]byte, error) {
	return m.Serialized, m.Err
}
