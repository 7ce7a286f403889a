package market

import (
	weave "github.com/iov-one/weave-market"
	"github.com/iov-one/weave-market/errors"
	"github.com/iov-one/weave-market/gconf"
	"github.com/iov-one/weave-market/orm"
	"github.com/iov-one/weave-market/x"
	"github.com/iov-one/weave-market/x/asset"
	"github.com/iov-one/weave-market/x/bank"
	"github.com/iov-one/weave-market/x/utils"
)

const (
	initializeCost    int64 = 500
	configCost        int64 = 100
	listCost          int64 = 300
	updateListingCost int64 = 100
	delistCost        int64 = 200
	buyCost           int64 = 500
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r weave.Registry, auth x.Authenticator, bankCtrl bank.Controller, assets asset.Controller) {
	m := &market{
		auth:     auth,
		bank:     bankCtrl,
		assets:   assets,
		listings: NewListingBucket(),
		vaults:   NewVaultBucket(),
		sales:    NewSaleBucket(),
	}
	r.Handle(&InitializeMsg{}, &InitializeHandler{m})
	r.Handle(&PauseMsg{}, &PauseHandler{market: m, pause: true})
	r.Handle(&UnpauseMsg{}, &PauseHandler{market: m, pause: false})
	r.Handle(&CloseMsg{}, &CloseHandler{m})
	r.Handle(&UpdateFeeMsg{}, &UpdateFeeHandler{m})
	r.Handle(&ListMsg{}, &ListHandler{m})
	r.Handle(&UpdateListingMsg{}, &UpdateListingHandler{m})
	r.Handle(&DelistMsg{}, &DelistHandler{m})
	r.Handle(&BuyMsg{}, &BuyHandler{m})
}

// market holds what all handlers of this extension operate on.
type market struct {
	auth     x.Authenticator
	bank     bank.Controller
	assets   asset.Controller
	listings orm.ModelBucket
	vaults   orm.ModelBucket
	sales    *SaleBucket
}

// authorize loads the configuration and ensures the authority signed the
// transaction.
func (m *market) authorize(ctx weave.Context, db weave.ReadOnlyKVStore) (*Config, error) {
	conf, err := LoadConfig(db)
	if err != nil {
		return nil, err
	}
	if !m.auth.HasAddress(ctx, conf.Authority) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "authority signature missing")
	}
	return conf, nil
}

// activeListing returns the listing of given asset. A missing listing is
// reported as not active, the same as a closed one.
func (m *market) activeListing(db weave.ReadOnlyKVStore, assetID []byte) (*Listing, error) {
	var l Listing
	switch err := m.listings.One(db, assetID, &l); {
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrListingNotActive, "no listing for %q", assetID)
	case err != nil:
		return nil, err
	}
	if !l.Active {
		return nil, errors.Wrapf(ErrListingNotActive, "listing for %q", assetID)
	}
	return &l, nil
}

// sellerListing returns the active listing of given asset if it was
// created by one of the signers.
func (m *market) sellerListing(ctx weave.Context, db weave.ReadOnlyKVStore, assetID []byte) (*Listing, error) {
	l, err := m.activeListing(db, assetID)
	if err != nil {
		return nil, err
	}
	if !m.auth.HasAddress(ctx, l.Seller) {
		return nil, errors.Wrap(ErrInvalidSeller, "seller signature missing")
	}
	return l, nil
}

// escrow returns the vault of a listing after checking that it is the one
// the listing refers to and that it holds exactly the listed asset.
func (m *market) escrow(db weave.ReadOnlyKVStore, l *Listing) (*Vault, error) {
	var v Vault
	switch err := m.vaults.One(db, l.AssetID, &v); {
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrap(ErrInvalidEscrowAccount, "no vault for listing")
	case err != nil:
		return nil, err
	}
	if !v.Address.Equals(l.Escrow) {
		return nil, errors.Wrap(ErrInvalidEscrowAccount, "vault does not match listing")
	}
	n, err := m.assets.BalanceOf(db, l.AssetID, v.Address)
	if err != nil {
		return nil, err
	}
	if n != 1 {
		return nil, errors.Wrapf(ErrInvalidEscrowAccount, "vault holds %d units", n)
	}
	return &v, nil
}

// closeListing refunds the vault deposit to the seller and removes both the
// vault and the listing. The asset must already have left the vault.
func (m *market) closeListing(db weave.KVStore, l *Listing, v *Vault) error {
	if v.Deposit > 0 {
		if err := m.bank.MoveCoins(db, v.Address, l.Seller, v.Deposit); err != nil {
			return errors.Wrap(err, "refund deposit")
		}
	}
	if err := m.vaults.Delete(db, l.AssetID); err != nil {
		return errors.Wrap(err, "delete vault")
	}
	if err := m.listings.Delete(db, l.AssetID); err != nil {
		return errors.Wrap(err, "delete listing")
	}
	return nil
}

// InitializeHandler creates the marketplace configuration.
type InitializeHandler struct {
	*market
}

var _ weave.Handler = (*InitializeHandler)(nil)

func (h *InitializeHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: initializeCost}, nil
}

func (h *InitializeHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, authority, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	conf := &Config{
		Authority:      authority,
		Treasury:       msg.Treasury,
		FeeBps:         msg.FeeBps,
		Policy:         msg.Policy,
		ListingDeposit: msg.ListingDeposit,
	}
	if err := gconf.Save(db, ConfigPkg, conf); err != nil {
		return nil, errors.Wrap(err, "save config")
	}
	weave.GetLogger(ctx).Info("marketplace initialized",
		"authority", authority, "fee_bps", conf.FeeBps, "policy", conf.Policy.String())
	return &weave.DeliverResult{Data: MarketplaceAddress()}, nil
}

func (h *InitializeHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*InitializeMsg, weave.Address, error) {
	var msg InitializeMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer, err := x.RequireSigner(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	switch ok, err := gconf.Exists(db, ConfigPkg); {
	case err != nil:
		return nil, nil, errors.Wrap(errors.ErrDatabase, err.Error())
	case ok:
		return nil, nil, errors.Wrap(errors.ErrDuplicate, "marketplace already initialized")
	}
	return &msg, signer, nil
}

// PauseHandler sets or clears the paused flag. Only the authority can use
// it.
type PauseHandler struct {
	*market
	pause bool
}

var _ weave.Handler = (*PauseHandler)(nil)

func (h *PauseHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: configCost}, nil
}

func (h *PauseHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	conf, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	conf.Paused = h.pause
	if err := gconf.Save(db, ConfigPkg, conf); err != nil {
		return nil, errors.Wrap(err, "save config")
	}
	weave.GetLogger(ctx).Info("marketplace pause changed", "paused", h.pause)
	return &weave.DeliverResult{}, nil
}

func (h *PauseHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*Config, error) {
	var msg weave.Msg = &UnpauseMsg{}
	if h.pause {
		msg = &PauseMsg{}
	}
	if err := weave.LoadMsg(tx, msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return h.authorize(ctx, db)
}

// CloseHandler destroys the marketplace configuration. It refuses to do so
// while any listing exists.
type CloseHandler struct {
	*market
}

var _ weave.Handler = (*CloseHandler)(nil)

func (h *CloseHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: configCost}, nil
}

func (h *CloseHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	if err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	if err := gconf.Delete(db, ConfigPkg); err != nil {
		return nil, errors.Wrap(err, "delete config")
	}
	weave.GetLogger(ctx).Info("marketplace closed")
	return &weave.DeliverResult{}, nil
}

func (h *CloseHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) error {
	var msg CloseMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return errors.Wrap(err, "load msg")
	}
	if _, err := h.authorize(ctx, db); err != nil {
		return err
	}
	empty, err := h.listings.IsEmpty(db)
	if err != nil {
		return err
	}
	if !empty {
		return errors.Wrap(errors.ErrState, "marketplace has listings")
	}
	return nil
}

// UpdateFeeHandler changes the fee rate. Only the authority can use it.
type UpdateFeeHandler struct {
	*market
}

var _ weave.Handler = (*UpdateFeeHandler)(nil)

func (h *UpdateFeeHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: configCost}, nil
}

func (h *UpdateFeeHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, conf, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	old := conf.FeeBps
	conf.FeeBps = msg.FeeBps
	if err := gconf.Save(db, ConfigPkg, conf); err != nil {
		return nil, errors.Wrap(err, "save config")
	}
	weave.GetLogger(ctx).Info("marketplace fee updated", "old_bps", old, "new_bps", conf.FeeBps)
	return &weave.DeliverResult{}, nil
}

func (h *UpdateFeeHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*UpdateFeeMsg, *Config, error) {
	var msg UpdateFeeMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	conf, err := h.authorize(ctx, db)
	if err != nil {
		return nil, nil, err
	}
	return &msg, conf, nil
}

// ListHandler moves an asset from its holder into a vault and opens a
// listing for it.
type ListHandler struct {
	*market
}

var _ weave.Handler = (*ListHandler)(nil)

func (h *ListHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: listCost}, nil
}

func (h *ListHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, conf, holder, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := weave.BlockUnixTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "block time")
	}
	expires, err := now.AddSeconds(msg.Duration)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidDuration, err.Error())
	}

	seller := holder.Address()
	vault := &Vault{
		AssetID: msg.AssetID,
		Address: VaultAddress(msg.AssetID),
		Deposit: conf.ListingDeposit,
	}
	listing := &Listing{
		AssetID:   msg.AssetID,
		Seller:    seller,
		Price:     msg.Price,
		Owner:     seller,
		Escrow:    vault.Address,
		CreatedAt: now,
		ExpiresAt: expires,
		Active:    true,
		Deposit:   conf.ListingDeposit,
	}
	err = utils.WithSavepoint(db, func(db weave.KVStore) error {
		if err := h.assets.Transfer(db, holder, msg.AssetID, vault.Address); err != nil {
			return errors.Wrap(err, "lock asset")
		}
		if vault.Deposit > 0 {
			if err := h.bank.MoveCoins(db, seller, vault.Address, vault.Deposit); err != nil {
				return errors.Wrap(err, "lock deposit")
			}
		}
		if err := h.vaults.Put(db, msg.AssetID, vault); err != nil {
			return errors.Wrap(err, "save vault")
		}
		return h.listings.Put(db, msg.AssetID, listing)
	})
	if err != nil {
		return nil, err
	}

	listingsCounter.WithLabelValues("listed").Inc()
	weave.GetLogger(ctx).Info("asset listed",
		"asset", string(msg.AssetID), "seller", seller, "price", bank.FormatAmount(msg.Price), "expires", expires)
	return &weave.DeliverResult{Data: vault.Address}, nil
}

// validate returns the signer condition holding the asset.
func (h *ListHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*ListMsg, *Config, weave.Condition, error) {
	var msg ListMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	conf, err := LoadConfig(db)
	if err != nil {
		return nil, nil, nil, err
	}
	if conf.Paused {
		return nil, nil, nil, errors.Wrap(ErrMarketplacePaused, "cannot list")
	}

	switch err := h.listings.Has(db, msg.AssetID); {
	case err == nil:
		return nil, nil, nil, errors.Wrapf(errors.ErrDuplicate, "asset %q already listed", msg.AssetID)
	case !errors.ErrNotFound.Is(err):
		return nil, nil, nil, err
	}

	holder, err := h.holderSigner(ctx, db, msg.AssetID)
	if err != nil {
		return nil, nil, nil, err
	}
	if conf.ListingDeposit > 0 {
		if err := requireBalance(db, h.bank, holder.Address(), conf.ListingDeposit); err != nil {
			return nil, nil, nil, errors.Wrap(err, "listing deposit")
		}
	}
	return &msg, conf, holder, nil
}

// holderSigner returns the signer condition whose address holds exactly
// one unit of the asset.
func (h *ListHandler) holderSigner(ctx weave.Context, db weave.ReadOnlyKVStore, assetID []byte) (weave.Condition, error) {
	for _, c := range h.auth.GetConditions(ctx) {
		n, err := h.assets.BalanceOf(db, assetID, c.Address())
		if err != nil {
			return nil, err
		}
		if n == 1 {
			return c, nil
		}
	}
	return nil, errors.Wrapf(ErrInvalidOwner, "signer does not hold %q", assetID)
}

// UpdateListingHandler changes the price and the expiration of a listing.
// It is allowed while the marketplace is paused and on expired listings.
type UpdateListingHandler struct {
	*market
}

var _ weave.Handler = (*UpdateListingHandler)(nil)

func (h *UpdateListingHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: updateListingCost}, nil
}

func (h *UpdateListingHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, listing, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := weave.BlockUnixTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "block time")
	}
	expires, err := now.AddSeconds(msg.Duration)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidDuration, err.Error())
	}
	listing.Price = msg.Price
	listing.ExpiresAt = expires
	if err := h.listings.Put(db, msg.AssetID, listing); err != nil {
		return nil, errors.Wrap(err, "save listing")
	}
	listingsCounter.WithLabelValues("updated").Inc()
	weave.GetLogger(ctx).Info("listing updated",
		"asset", string(msg.AssetID), "price", bank.FormatAmount(msg.Price), "expires", expires)
	return &weave.DeliverResult{}, nil
}

func (h *UpdateListingHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*UpdateListingMsg, *Listing, error) {
	var msg UpdateListingMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	listing, err := h.sellerListing(ctx, db, msg.AssetID)
	if err != nil {
		return nil, nil, err
	}
	return &msg, listing, nil
}

// DelistHandler closes a listing and returns the asset to its seller. It is
// allowed while the marketplace is paused and on expired listings.
type DelistHandler struct {
	*market
}

var _ weave.Handler = (*DelistHandler)(nil)

func (h *DelistHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: delistCost}, nil
}

func (h *DelistHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	listing, vault, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	err = utils.WithSavepoint(db, func(db weave.KVStore) error {
		if err := h.assets.Transfer(db, VaultCondition(listing.AssetID), listing.AssetID, listing.Owner); err != nil {
			return errors.Wrap(err, "release asset")
		}
		return h.closeListing(db, listing, vault)
	})
	if err != nil {
		return nil, err
	}
	listingsCounter.WithLabelValues("delisted").Inc()
	weave.GetLogger(ctx).Info("asset delisted", "asset", string(listing.AssetID), "seller", listing.Seller)
	return &weave.DeliverResult{}, nil
}

func (h *DelistHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*Listing, *Vault, error) {
	var msg DelistMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	listing, err := h.sellerListing(ctx, db, msg.AssetID)
	if err != nil {
		return nil, nil, err
	}
	vault, err := h.escrow(db, listing)
	if err != nil {
		return nil, nil, err
	}
	return listing, vault, nil
}

// BuyHandler settles the purchase of a listed asset.
type BuyHandler struct {
	*market
}

var _ weave.Handler = (*BuyHandler)(nil)

// purchase is a validated buy request.
type purchase struct {
	conf       *Config
	listing    *Listing
	vault      *Vault
	buyer      weave.Address
	creator    weave.Address
	settlement *Settlement
}

func (h *BuyHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: buyCost}, nil
}

func (h *BuyHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	p, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := weave.BlockUnixTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "block time")
	}
	id := p.listing.AssetID

	var saleID []byte
	err = utils.WithSavepoint(db, func(db weave.KVStore) error {
		if err := p.settlement.Pay(db, h.bank, p.buyer, p.listing.Seller, p.conf.Treasury, p.creator); err != nil {
			return err
		}
		if err := h.assets.Transfer(db, VaultCondition(id), id, p.buyer); err != nil {
			return errors.Wrap(err, "release asset")
		}
		if err := h.closeListing(db, p.listing, p.vault); err != nil {
			return err
		}
		var err error
		saleID, err = h.sales.Create(db, &Sale{
			AssetID: id,
			Seller:  p.listing.Seller,
			Buyer:   p.buyer,
			Creator: p.creator,
			Price:   p.settlement.Price,
			Fee:     p.settlement.Fee,
			Royalty: p.settlement.Royalty,
			Total:   p.settlement.TotalDue,
			SoldAt:  now,
			Policy:  p.settlement.Policy,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	observeSale(p.settlement)
	keyvals := append([]interface{}{"asset", string(id), "buyer", p.buyer, "seller", p.listing.Seller},
		p.settlement.Breakdown()...)
	weave.GetLogger(ctx).Info("asset sold", keyvals...)
	return &weave.DeliverResult{Data: saleID}, nil
}

func (h *BuyHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*purchase, error) {
	var msg BuyMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	conf, err := LoadConfig(db)
	if err != nil {
		return nil, err
	}
	if conf.Paused {
		return nil, errors.Wrap(ErrMarketplacePaused, "cannot buy")
	}
	listing, err := h.activeListing(db, msg.AssetID)
	if err != nil {
		return nil, err
	}
	buyer, err := x.RequireSigner(ctx, h.auth)
	if err != nil {
		return nil, err
	}
	if buyer.Equals(listing.Seller) {
		return nil, errors.Wrap(ErrCannotBuyOwnNFT, "buyer is the seller")
	}
	if weave.IsExpired(ctx, listing.ExpiresAt) {
		return nil, errors.Wrapf(ErrListingExpired, "expired at %s", listing.ExpiresAt)
	}
	vault, err := h.escrow(db, listing)
	if err != nil {
		return nil, err
	}
	a, err := h.assets.Get(db, msg.AssetID)
	if err != nil {
		return nil, err
	}
	s, err := ComputeSettlement(conf.Policy, listing.Price, conf.FeeBps, msg.RoyaltyBps)
	if err != nil {
		return nil, err
	}
	if err := requireBalance(db, h.bank, buyer, s.TotalDue); err != nil {
		return nil, errors.Wrap(err, "buyer")
	}
	return &purchase{
		conf:       conf,
		listing:    listing,
		vault:      vault,
		buyer:      buyer,
		creator:    a.Issuer,
		settlement: s,
	}, nil
}
