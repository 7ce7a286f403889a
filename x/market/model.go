package market

import (
	"encoding/json"

	weave "github.com/iov-one/weave-market"
	"github.com/iov-one/weave-market/errors"
	"github.com/iov-one/weave-market/gconf"
	"github.com/iov-one/weave-market/orm"
	"github.com/iov-one/weave-market/x/asset"
)

const (
	// ConfigPkg is the name the marketplace configuration is stored
	// under by gconf.
	ConfigPkg = "market"

	ListingBucketName = "listing"
	VaultBucketName   = "vault"
	SaleBucketName    = "sale"

	// MaxBasisPoints is 100%.
	MaxBasisPoints = 10000
)

// SettlementPolicy decides who pays the marketplace fee on a sale.
type SettlementPolicy uint32

const (
	SellerPaysFee SettlementPolicy = iota
	BuyerPaysFeeAndRoyalty
)

var policyNames = map[SettlementPolicy]string{
	SellerPaysFee:          "seller_pays_fee",
	BuyerPaysFeeAndRoyalty: "buyer_pays_fee_and_royalty",
}

func (p SettlementPolicy) String() string {
	if n, ok := policyNames[p]; ok {
		return n
	}
	return "unknown"
}

func (p SettlementPolicy) Validate() error {
	if _, ok := policyNames[p]; !ok {
		return errors.Wrapf(errors.ErrInput, "settlement policy %d", p)
	}
	return nil
}

func (p SettlementPolicy) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *SettlementPolicy) UnmarshalJSON(raw []byte) error {
	var name string
	if err := json.Unmarshal(raw, &name); err != nil {
		return errors.Wrap(errors.ErrInput, "settlement policy must be a string")
	}
	policy, err := ParsePolicy(name)
	if err != nil {
		return err
	}
	*p = policy
	return nil
}

// ParsePolicy returns the policy with given name.
func ParsePolicy(name string) (SettlementPolicy, error) {
	for v, n := range policyNames {
		if n == name {
			return v, nil
		}
	}
	return 0, errors.Wrapf(errors.ErrInput, "unknown settlement policy %q", name)
}

// MarketplaceAddress identifies the marketplace instance. Indexes and
// other records referring to the marketplace use it.
func MarketplaceAddress() weave.Address {
	return weave.NewCondition("market", "config", []byte("marketplace")).Address()
}

// VaultCondition is the condition controlling the vault of a listing. Only
// this extension acts on its behalf.
func VaultCondition(assetID []byte) weave.Condition {
	return weave.NewCondition("market", "listing", assetID)
}

// VaultAddress returns the address holding the asset while it is listed.
func VaultAddress(assetID []byte) weave.Address {
	return VaultCondition(assetID).Address()
}

var _ gconf.Configuration = (*Config)(nil)

func (c *Config) Validate() error {
	if err := c.Authority.Validate(); err != nil {
		return errors.Wrap(err, "authority")
	}
	if err := c.Treasury.Validate(); err != nil {
		return errors.Wrap(err, "treasury")
	}
	if c.FeeBps > MaxBasisPoints {
		return errors.Wrapf(ErrInvalidFeePercentage, "%d basis points", c.FeeBps)
	}
	return c.Policy.Validate()
}

// LoadConfig returns the marketplace configuration or ErrNotFound if the
// marketplace was not initialized.
func LoadConfig(db weave.ReadOnlyKVStore) (*Config, error) {
	var c Config
	if err := gconf.Load(db, ConfigPkg, &c); err != nil {
		return nil, errors.Wrap(err, "marketplace")
	}
	return &c, nil
}

var _ orm.Model = (*Listing)(nil)

func (l *Listing) Validate() error {
	if !asset.IsValidID(l.AssetID) {
		return errors.Wrapf(errors.ErrInput, "asset id %q", l.AssetID)
	}
	if err := l.Seller.Validate(); err != nil {
		return errors.Wrap(err, "seller")
	}
	if err := l.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := l.Escrow.Validate(); err != nil {
		return errors.Wrap(err, "escrow")
	}
	if l.Price == 0 {
		return errors.Wrap(ErrInvalidPrice, "zero price")
	}
	if err := l.CreatedAt.Validate(); err != nil {
		return errors.Wrap(err, "created at")
	}
	if l.ExpiresAt <= l.CreatedAt {
		return errors.Wrap(ErrInvalidDuration, "expires before creation")
	}
	return nil
}

var _ orm.Model = (*Vault)(nil)

func (v *Vault) Validate() error {
	if !asset.IsValidID(v.AssetID) {
		return errors.Wrapf(errors.ErrInput, "asset id %q", v.AssetID)
	}
	if !v.Address.Equals(VaultAddress(v.AssetID)) {
		return errors.Wrap(ErrInvalidEscrowAccount, "address not derived from the asset")
	}
	return nil
}

var _ orm.Model = (*Sale)(nil)

func (s *Sale) Validate() error {
	if !asset.IsValidID(s.AssetID) {
		return errors.Wrapf(errors.ErrInput, "asset id %q", s.AssetID)
	}
	if err := s.Seller.Validate(); err != nil {
		return errors.Wrap(err, "seller")
	}
	if err := s.Buyer.Validate(); err != nil {
		return errors.Wrap(err, "buyer")
	}
	if s.Price == 0 {
		return errors.Wrap(ErrInvalidPrice, "zero price")
	}
	return s.Policy.Validate()
}

// NewListingBucket returns a bucket storing listings under the asset ID.
func NewListingBucket() orm.ModelBucket {
	return orm.NewModelBucket(ListingBucketName, &Listing{})
}

// NewVaultBucket returns a bucket storing vaults under the asset ID.
func NewVaultBucket() orm.ModelBucket {
	return orm.NewModelBucket(VaultBucketName, &Vault{})
}

// SaleBucket stores sale receipts under a sequence generated key.
type SaleBucket struct {
	orm.ModelBucket
	seq orm.Sequence
}

// NewSaleBucket returns a bucket storing sale receipts.
func NewSaleBucket() *SaleBucket {
	return &SaleBucket{
		ModelBucket: orm.NewModelBucket(SaleBucketName, &Sale{}),
		seq:         orm.NewSequence(SaleBucketName, "id"),
	}
}

// Create saves the sale under the next sequence value and returns its key.
func (b *SaleBucket) Create(db weave.KVStore, s *Sale) ([]byte, error) {
	key, err := b.seq.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "sale sequence")
	}
	if err := b.Put(db, key, s); err != nil {
		return nil, err
	}
	return key, nil
}
