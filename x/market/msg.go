package market

import (
	weave "github.com/iov-one/weave-market"
	"github.com/iov-one/weave-market/errors"
	"github.com/iov-one/weave-market/x/asset"
)

const (
	pathInitializeMsg    = "market/initialize"
	pathPauseMsg         = "market/pause"
	pathUnpauseMsg       = "market/unpause"
	pathCloseMsg         = "market/close"
	pathUpdateFeeMsg     = "market/update_fee"
	pathListMsg          = "market/list"
	pathUpdateListingMsg = "market/update_listing"
	pathDelistMsg        = "market/delist"
	pathBuyMsg           = "market/buy"
)

var (
	_ weave.Msg = (*InitializeMsg)(nil)
	_ weave.Msg = (*PauseMsg)(nil)
	_ weave.Msg = (*UnpauseMsg)(nil)
	_ weave.Msg = (*CloseMsg)(nil)
	_ weave.Msg = (*UpdateFeeMsg)(nil)
	_ weave.Msg = (*ListMsg)(nil)
	_ weave.Msg = (*UpdateListingMsg)(nil)
	_ weave.Msg = (*DelistMsg)(nil)
	_ weave.Msg = (*BuyMsg)(nil)
)

func (InitializeMsg) Path() string {
	return pathInitializeMsg
}

func (m *InitializeMsg) Validate() error {
	if err := m.Treasury.Validate(); err != nil {
		return errors.Wrap(err, "treasury")
	}
	if m.FeeBps > MaxBasisPoints {
		return errors.Wrapf(ErrInvalidFeePercentage, "%d basis points", m.FeeBps)
	}
	return m.Policy.Validate()
}

func (PauseMsg) Path() string {
	return pathPauseMsg
}

func (*PauseMsg) Validate() error {
	return nil
}

func (UnpauseMsg) Path() string {
	return pathUnpauseMsg
}

func (*UnpauseMsg) Validate() error {
	return nil
}

func (CloseMsg) Path() string {
	return pathCloseMsg
}

func (*CloseMsg) Validate() error {
	return nil
}

func (UpdateFeeMsg) Path() string {
	return pathUpdateFeeMsg
}

func (m *UpdateFeeMsg) Validate() error {
	if m.FeeBps > MaxBasisPoints {
		return errors.Wrapf(ErrInvalidFeePercentage, "%d basis points", m.FeeBps)
	}
	return nil
}

func (ListMsg) Path() string {
	return pathListMsg
}

func (m *ListMsg) Validate() error {
	return validateOffer(m.AssetID, m.Price, m.Duration)
}

func (UpdateListingMsg) Path() string {
	return pathUpdateListingMsg
}

func (m *UpdateListingMsg) Validate() error {
	return validateOffer(m.AssetID, m.Price, m.Duration)
}

func (DelistMsg) Path() string {
	return pathDelistMsg
}

func (m *DelistMsg) Validate() error {
	if !asset.IsValidID(m.AssetID) {
		return errors.Wrapf(errors.ErrInput, "asset id %q", m.AssetID)
	}
	return nil
}

func (BuyMsg) Path() string {
	return pathBuyMsg
}

func (m *BuyMsg) Validate() error {
	if !asset.IsValidID(m.AssetID) {
		return errors.Wrapf(errors.ErrInput, "asset id %q", m.AssetID)
	}
	if m.RoyaltyBps > MaxBasisPoints {
		return errors.Wrapf(ErrInvalidFeePercentage, "royalty %d basis points", m.RoyaltyBps)
	}
	return nil
}

// Asset returns the asset a listing message is about. The action tagger
// indexes it.
func (m *ListMsg) Asset() []byte          { return m.AssetID }
func (m *UpdateListingMsg) Asset() []byte { return m.AssetID }
func (m *DelistMsg) Asset() []byte        { return m.AssetID }
func (m *BuyMsg) Asset() []byte           { return m.AssetID }

func validateOffer(assetID []byte, price uint64, duration int64) error {
	if !asset.IsValidID(assetID) {
		return errors.Wrapf(errors.ErrInput, "asset id %q", assetID)
	}
	if price == 0 {
		return errors.Wrap(ErrInvalidPrice, "zero price")
	}
	if duration <= 0 {
		return errors.Wrapf(ErrInvalidDuration, "%d seconds", duration)
	}
	return nil
}
