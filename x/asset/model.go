package asset

import (
	"regexp"

	"github.com/iov-one/weave-market/errors"
	"github.com/iov-one/weave-market/orm"
)

// BucketName is where the assets are stored.
const BucketName = "asset"

const maxURILength = 256

// IsValidID checks the format of an asset identifier.
var IsValidID = regexp.MustCompile(`^[a-zA-Z0-9_.\-]{3,64}$`).Match

var _ orm.Model = (*Asset)(nil)

func (a *Asset) Validate() error {
	if !IsValidID(a.ID) {
		return errors.Wrapf(errors.ErrInput, "asset id %q", a.ID)
	}
	if err := a.Issuer.Validate(); err != nil {
		return errors.Wrap(err, "issuer")
	}
	if err := a.Holder.Validate(); err != nil {
		return errors.Wrap(err, "holder")
	}
	if len(a.URI) > maxURILength {
		return errors.Wrap(errors.ErrInput, "uri too long")
	}
	return nil
}

// NewBucket returns a bucket storing assets under their ID.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Asset{})
}
