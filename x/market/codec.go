package market

import (
	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/weave-market"
)

// The schemas are declared in codec.proto. Every type below serializes
// through an unexported twin declaring the proto.Message methods. The twin
// has no Marshal method of its own, so gogo/protobuf encodes it from the
// struct tags instead of calling back into the model.

// Config is the marketplace configuration singleton.
type Config struct {
	Authority      weave.Address    `protobuf:"bytes,1,opt,name=authority,proto3" json:"authority"`
	Treasury       weave.Address    `protobuf:"bytes,2,opt,name=treasury,proto3" json:"treasury"`
	FeeBps         uint32           `protobuf:"varint,3,opt,name=fee_bps,proto3" json:"fee_bps"`
	Paused         bool             `protobuf:"varint,4,opt,name=paused,proto3" json:"paused"`
	Policy         SettlementPolicy `protobuf:"varint,5,opt,name=policy,proto3" json:"policy"`
	ListingDeposit uint64           `protobuf:"varint,6,opt,name=listing_deposit,proto3" json:"listing_deposit"`
}

type wireConfig Config

func (m *wireConfig) Reset()         { *m = wireConfig{} }
func (m *wireConfig) String() string { return proto.CompactTextString(m) }
func (*wireConfig) ProtoMessage()    {}

func (c *Config) Marshal() ([]byte, error) { return proto.Marshal((*wireConfig)(c)) }

func (c *Config) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*wireConfig)(c)) }

// Listing is an offer to sell one asset held in a vault.
type Listing struct {
	AssetID   []byte         `protobuf:"bytes,1,opt,name=asset_id,proto3" json:"asset_id"`
	Seller    weave.Address  `protobuf:"bytes,2,opt,name=seller,proto3" json:"seller"`
	Price     uint64         `protobuf:"varint,3,opt,name=price,proto3" json:"price"`
	Owner     weave.Address  `protobuf:"bytes,4,opt,name=owner,proto3" json:"owner"`
	Escrow    weave.Address  `protobuf:"bytes,5,opt,name=escrow,proto3" json:"escrow"`
	CreatedAt weave.UnixTime `protobuf:"varint,6,opt,name=created_at,proto3" json:"created_at"`
	ExpiresAt weave.UnixTime `protobuf:"varint,7,opt,name=expires_at,proto3" json:"expires_at"`
	Active    bool           `protobuf:"varint,8,opt,name=active,proto3" json:"active"`
	Deposit   uint64         `protobuf:"varint,9,opt,name=deposit,proto3" json:"deposit"`
}

type wireListing Listing

func (m *wireListing) Reset()         { *m = wireListing{} }
func (m *wireListing) String() string { return proto.CompactTextString(m) }
func (*wireListing) ProtoMessage()    {}

func (l *Listing) Marshal() ([]byte, error) { return proto.Marshal((*wireListing)(l)) }

func (l *Listing) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*wireListing)(l)) }

// Vault records the custody of a listed asset.
type Vault struct {
	AssetID []byte        `protobuf:"bytes,1,opt,name=asset_id,proto3" json:"asset_id"`
	Address weave.Address `protobuf:"bytes,2,opt,name=address,proto3" json:"address"`
	Deposit uint64        `protobuf:"varint,3,opt,name=deposit,proto3" json:"deposit"`
}

type wireVault Vault

func (m *wireVault) Reset()         { *m = wireVault{} }
func (m *wireVault) String() string { return proto.CompactTextString(m) }
func (*wireVault) ProtoMessage()    {}

func (v *Vault) Marshal() ([]byte, error) { return proto.Marshal((*wireVault)(v)) }

func (v *Vault) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*wireVault)(v)) }

// Sale is the receipt of a completed purchase.
type Sale struct {
	AssetID []byte           `protobuf:"bytes,1,opt,name=asset_id,proto3" json:"asset_id"`
	Seller  weave.Address    `protobuf:"bytes,2,opt,name=seller,proto3" json:"seller"`
	Buyer   weave.Address    `protobuf:"bytes,3,opt,name=buyer,proto3" json:"buyer"`
	Creator weave.Address    `protobuf:"bytes,4,opt,name=creator,proto3" json:"creator"`
	Price   uint64           `protobuf:"varint,5,opt,name=price,proto3" json:"price"`
	Fee     uint64           `protobuf:"varint,6,opt,name=fee,proto3" json:"fee"`
	Royalty uint64           `protobuf:"varint,7,opt,name=royalty,proto3" json:"royalty"`
	Total   uint64           `protobuf:"varint,8,opt,name=total,proto3" json:"total"`
	SoldAt  weave.UnixTime   `protobuf:"varint,9,opt,name=sold_at,proto3" json:"sold_at"`
	Policy  SettlementPolicy `protobuf:"varint,10,opt,name=policy,proto3" json:"policy"`
}

type wireSale Sale

func (m *wireSale) Reset()         { *m = wireSale{} }
func (m *wireSale) String() string { return proto.CompactTextString(m) }
func (*wireSale) ProtoMessage()    {}

func (s *Sale) Marshal() ([]byte, error) { return proto.Marshal((*wireSale)(s)) }

func (s *Sale) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*wireSale)(s)) }

// InitializeMsg creates the marketplace. The signer becomes its authority.
type InitializeMsg struct {
	Treasury       weave.Address    `protobuf:"bytes,1,opt,name=treasury,proto3"`
	FeeBps         uint32           `protobuf:"varint,2,opt,name=fee_bps,proto3"`
	Policy         SettlementPolicy `protobuf:"varint,3,opt,name=policy,proto3"`
	ListingDeposit uint64           `protobuf:"varint,4,opt,name=listing_deposit,proto3"`
}

type wireInitializeMsg InitializeMsg

func (m *wireInitializeMsg) Reset()         { *m = wireInitializeMsg{} }
func (m *wireInitializeMsg) String() string { return proto.CompactTextString(m) }
func (*wireInitializeMsg) ProtoMessage()    {}

func (m *InitializeMsg) Marshal() ([]byte, error) { return proto.Marshal((*wireInitializeMsg)(m)) }

func (m *InitializeMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*wireInitializeMsg)(m))
}

// PauseMsg stops new listings and purchases.
type PauseMsg struct{}

type wirePauseMsg PauseMsg

func (m *wirePauseMsg) Reset()         { *m = wirePauseMsg{} }
func (m *wirePauseMsg) String() string { return proto.CompactTextString(m) }
func (*wirePauseMsg) ProtoMessage()    {}

func (m *PauseMsg) Marshal() ([]byte, error) { return proto.Marshal((*wirePauseMsg)(m)) }

func (m *PauseMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*wirePauseMsg)(m)) }

// UnpauseMsg resumes a paused marketplace.
type UnpauseMsg struct{}

type wireUnpauseMsg UnpauseMsg

func (m *wireUnpauseMsg) Reset()         { *m = wireUnpauseMsg{} }
func (m *wireUnpauseMsg) String() string { return proto.CompactTextString(m) }
func (*wireUnpauseMsg) ProtoMessage()    {}

func (m *UnpauseMsg) Marshal() ([]byte, error) { return proto.Marshal((*wireUnpauseMsg)(m)) }

func (m *UnpauseMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*wireUnpauseMsg)(m)) }

// CloseMsg destroys the marketplace configuration.
type CloseMsg struct{}

type wireCloseMsg CloseMsg

func (m *wireCloseMsg) Reset()         { *m = wireCloseMsg{} }
func (m *wireCloseMsg) String() string { return proto.CompactTextString(m) }
func (*wireCloseMsg) ProtoMessage()    {}

func (m *CloseMsg) Marshal() ([]byte, error) { return proto.Marshal((*wireCloseMsg)(m)) }

func (m *CloseMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*wireCloseMsg)(m)) }

// UpdateFeeMsg changes the marketplace fee rate.
type UpdateFeeMsg struct {
	FeeBps uint32 `protobuf:"varint,1,opt,name=fee_bps,proto3"`
}

type wireUpdateFeeMsg UpdateFeeMsg

func (m *wireUpdateFeeMsg) Reset()         { *m = wireUpdateFeeMsg{} }
func (m *wireUpdateFeeMsg) String() string { return proto.CompactTextString(m) }
func (*wireUpdateFeeMsg) ProtoMessage()    {}

func (m *UpdateFeeMsg) Marshal() ([]byte, error) { return proto.Marshal((*wireUpdateFeeMsg)(m)) }

func (m *UpdateFeeMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*wireUpdateFeeMsg)(m))
}

// ListMsg offers an asset held by the signer for sale.
type ListMsg struct {
	AssetID  []byte `protobuf:"bytes,1,opt,name=asset_id,proto3"`
	Price    uint64 `protobuf:"varint,2,opt,name=price,proto3"`
	Duration int64  `protobuf:"varint,3,opt,name=duration,proto3"`
}

type wireListMsg ListMsg

func (m *wireListMsg) Reset()         { *m = wireListMsg{} }
func (m *wireListMsg) String() string { return proto.CompactTextString(m) }
func (*wireListMsg) ProtoMessage()    {}

func (m *ListMsg) Marshal() ([]byte, error) { return proto.Marshal((*wireListMsg)(m)) }

func (m *ListMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*wireListMsg)(m)) }

// UpdateListingMsg changes the price and the lifetime of a listing.
type UpdateListingMsg struct {
	AssetID  []byte `protobuf:"bytes,1,opt,name=asset_id,proto3"`
	Price    uint64 `protobuf:"varint,2,opt,name=price,proto3"`
	Duration int64  `protobuf:"varint,3,opt,name=duration,proto3"`
}

type wireUpdateListingMsg UpdateListingMsg

func (m *wireUpdateListingMsg) Reset()         { *m = wireUpdateListingMsg{} }
func (m *wireUpdateListingMsg) String() string { return proto.CompactTextString(m) }
func (*wireUpdateListingMsg) ProtoMessage()    {}

func (m *UpdateListingMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*wireUpdateListingMsg)(m))
}

func (m *UpdateListingMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*wireUpdateListingMsg)(m))
}

// DelistMsg withdraws a listing and returns the asset to the seller.
type DelistMsg struct {
	AssetID []byte `protobuf:"bytes,1,opt,name=asset_id,proto3"`
}

type wireDelistMsg DelistMsg

func (m *wireDelistMsg) Reset()         { *m = wireDelistMsg{} }
func (m *wireDelistMsg) String() string { return proto.CompactTextString(m) }
func (*wireDelistMsg) ProtoMessage()    {}

func (m *DelistMsg) Marshal() ([]byte, error) { return proto.Marshal((*wireDelistMsg)(m)) }

func (m *DelistMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*wireDelistMsg)(m)) }

// BuyMsg purchases a listed asset.
type BuyMsg struct {
	AssetID    []byte `protobuf:"bytes,1,opt,name=asset_id,proto3"`
	RoyaltyBps uint32 `protobuf:"varint,2,opt,name=royalty_bps,proto3"`
}

type wireBuyMsg BuyMsg

func (m *wireBuyMsg) Reset()         { *m = wireBuyMsg{} }
func (m *wireBuyMsg) String() string { return proto.CompactTextString(m) }
func (*wireBuyMsg) ProtoMessage()    {}

func (m *BuyMsg) Marshal() ([]byte, error) { return proto.Marshal((*wireBuyMsg)(m)) }

func (m *BuyMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*wireBuyMsg)(m)) }
