package app

import (
	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/weave-market"
	"github.com/iov-one/weave-market/errors"
	"github.com/iov-one/weave-market/x/asset"
	"github.com/iov-one/weave-market/x/bank"
	"github.com/iov-one/weave-market/x/market"
	"github.com/iov-one/weave-market/x/sigs"
	"github.com/iov-one/weave-market/x/txindex"
)

// Tx contains the message and the signatures authorizing it.
type Tx struct {
	Signatures []*sigs.StdSignature
	// Msg is one of the messages declared in the Tx sum of codec.proto.
	Msg weave.Msg
}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (weave.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

// make sure tx fulfills all interfaces
var _ weave.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// GetMsg returns the single message carried by the transaction.
func (tx *Tx) GetMsg() (weave.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "transaction has no message")
	}
	return tx.Msg, nil
}

// GetSignatures returns all signatures attached to the transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign...
func (tx *Tx) GetSignBytes() ([]byte, error) {
	// the sign bytes come from the message only, not previous signatures
	signatures := tx.Signatures
	tx.Signatures = nil

	bz, err := tx.Marshal()

	tx.Signatures = signatures
	return bz, err
}

func (tx *Tx) Marshal() ([]byte, error) {
	w := wireTx{Signatures: tx.Signatures}
	if tx.Msg != nil {
		if err := w.set(tx.Msg); err != nil {
			return nil, err
		}
	}
	return proto.Marshal(&w)
}

func (tx *Tx) Unmarshal(raw []byte) error {
	*tx = Tx{}
	var w wireTx
	if err := proto.Unmarshal(raw, &w); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	msgs := w.msgs()
	if len(msgs) > 1 {
		return errors.Wrapf(errors.ErrMsg, "%d messages", len(msgs))
	}
	tx.Signatures = w.Signatures
	if len(msgs) == 1 {
		tx.Msg = msgs[0]
	}
	return nil
}

// wireTx is the serialized form of a Tx. The sum of codec.proto is laid
// out as one optional field per message, which is the same encoding as a
// oneof. At most one of them may be set.
type wireTx struct {
	Signatures []*sigs.StdSignature `protobuf:"bytes,1,rep,name=signatures,proto3"`

	SendMsg           *bank.SendMsg              `protobuf:"bytes,51,opt,name=send_msg,proto3"`
	IssueAssetMsg     *asset.IssueMsg            `protobuf:"bytes,52,opt,name=issue_asset_msg,proto3"`
	TransferAssetMsg  *asset.TransferMsg         `protobuf:"bytes,53,opt,name=transfer_asset_msg,proto3"`
	InitializeMsg     *market.InitializeMsg      `protobuf:"bytes,61,opt,name=initialize_msg,proto3"`
	PauseMsg          *market.PauseMsg           `protobuf:"bytes,62,opt,name=pause_msg,proto3"`
	UnpauseMsg        *market.UnpauseMsg         `protobuf:"bytes,63,opt,name=unpause_msg,proto3"`
	CloseMsg          *market.CloseMsg           `protobuf:"bytes,64,opt,name=close_msg,proto3"`
	UpdateFeeMsg      *market.UpdateFeeMsg       `protobuf:"bytes,65,opt,name=update_fee_msg,proto3"`
	ListMsg           *market.ListMsg            `protobuf:"bytes,66,opt,name=list_msg,proto3"`
	UpdateListingMsg  *market.UpdateListingMsg   `protobuf:"bytes,67,opt,name=update_listing_msg,proto3"`
	DelistMsg         *market.DelistMsg          `protobuf:"bytes,68,opt,name=delist_msg,proto3"`
	BuyMsg            *market.BuyMsg             `protobuf:"bytes,69,opt,name=buy_msg,proto3"`
	CreateIndexMsg    *txindex.CreateIndexMsg    `protobuf:"bytes,71,opt,name=create_index_msg,proto3"`
	AddTransactionMsg *txindex.AddTransactionMsg `protobuf:"bytes,72,opt,name=add_transaction_msg,proto3"`
}

func (m *wireTx) Reset()         { *m = wireTx{} }
func (m *wireTx) String() string { return proto.CompactTextString(m) }
func (*wireTx) ProtoMessage()    {}

// set places msg in its sum field. Make sure to cover all messages defined
// in codec.proto.
func (m *wireTx) set(msg weave.Msg) error {
	switch msg := msg.(type) {
	case *bank.SendMsg:
		m.SendMsg = msg
	case *asset.IssueMsg:
		m.IssueAssetMsg = msg
	case *asset.TransferMsg:
		m.TransferAssetMsg = msg
	case *market.InitializeMsg:
		m.InitializeMsg = msg
	case *market.PauseMsg:
		m.PauseMsg = msg
	case *market.UnpauseMsg:
		m.UnpauseMsg = msg
	case *market.CloseMsg:
		m.CloseMsg = msg
	case *market.UpdateFeeMsg:
		m.UpdateFeeMsg = msg
	case *market.ListMsg:
		m.ListMsg = msg
	case *market.UpdateListingMsg:
		m.UpdateListingMsg = msg
	case *market.DelistMsg:
		m.DelistMsg = msg
	case *market.BuyMsg:
		m.BuyMsg = msg
	case *txindex.CreateIndexMsg:
		m.CreateIndexMsg = msg
	case *txindex.AddTransactionMsg:
		m.AddTransactionMsg = msg
	default:
		return errors.Wrapf(errors.ErrType, "unsupported message %T", msg)
	}
	return nil
}

// msgs returns every message found in the sum fields.
func (m *wireTx) msgs() []weave.Msg {
	var found []weave.Msg
	add := func(set bool, msg weave.Msg) {
		if set {
			found = append(found, msg)
		}
	}
	add(m.SendMsg != nil, m.SendMsg)
	add(m.IssueAssetMsg != nil, m.IssueAssetMsg)
	add(m.TransferAssetMsg != nil, m.TransferAssetMsg)
	add(m.InitializeMsg != nil, m.InitializeMsg)
	add(m.PauseMsg != nil, m.PauseMsg)
	add(m.UnpauseMsg != nil, m.UnpauseMsg)
	add(m.CloseMsg != nil, m.CloseMsg)
	add(m.UpdateFeeMsg != nil, m.UpdateFeeMsg)
	add(m.ListMsg != nil, m.ListMsg)
	add(m.UpdateListingMsg != nil, m.UpdateListingMsg)
	add(m.DelistMsg != nil, m.DelistMsg)
	add(m.BuyMsg != nil, m.BuyMsg)
	add(m.CreateIndexMsg != nil, m.CreateIndexMsg)
	add(m.AddTransactionMsg != nil, m.AddTransactionMsg)
	return found
}
