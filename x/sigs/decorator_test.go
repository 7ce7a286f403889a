package sigs

import (
	"context"
	"testing"

	weave "github.com/iov-one/weave-market"
	"github.com/iov-one/weave-market/crypto"
	"github.com/iov-one/weave-market/errors"
	"github.com/iov-one/weave-market/store"
	. "github.com/smartystreets/goconvey/convey"
)

// runner calls either Check or Deliver of a decorator.
type runner func(weave.Decorator, weave.Context, weave.KVStore, weave.Tx, weave.Handler) error

func runCheck(d weave.Decorator, ctx weave.Context, db weave.KVStore, tx weave.Tx, h weave.Handler) error {
	_, err := d.Check(ctx, db, tx, h)
	return err
}

func runDeliver(d weave.Decorator, ctx weave.Context, db weave.KVStore, tx weave.Tx, h weave.Handler) error {
	_, err := d.Deliver(ctx, db, tx, h)
	return err
}

func TestDecorator(t *testing.T) {
	const chainID = "market-sigs"
	ctx := weave.WithChainID(context.Background(), chainID)
	seller := crypto.GenPrivKeyEd25519()
	sellerCond := []weave.Condition{seller.PublicKey().Condition()}

	for name, run := range map[string]runner{"check": runCheck, "deliver": runDeliver} {
		Convey("Given a "+name+" through the signature decorator", t, func() {
			db := store.MemStore()
			rec := &signerRecorder{}
			tx := newSignedTx("market/list art-1")
			first, err := SignTx(seller, tx, chainID, 0)
			So(err, ShouldBeNil)
			second, err := SignTx(seller, tx, chainID, 1)
			So(err, ShouldBeNil)

			Convey("an unsigned transaction is unauthorized", func() {
				err := run(NewDecorator(), ctx, db, tx, rec)
				So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)
			})

			Convey("an unsigned transaction passes when allowed", func() {
				err := run(NewDecorator().AllowMissingSigs(), ctx, db, tx, rec)
				So(err, ShouldBeNil)
				So(rec.seen, ShouldBeEmpty)
			})

			Convey("a signed transaction exposes its signer", func() {
				tx.Signatures = []*StdSignature{first}
				So(run(NewDecorator(), ctx, db, tx, rec), ShouldBeNil)
				So(rec.seen, ShouldResemble, sellerCond)
				So(Authenticate{}.HasAddress(withSigners(ctx, rec.seen), seller.PublicKey().Address()), ShouldBeTrue)

				Convey("and cannot be replayed", func() {
					err := run(NewDecorator(), ctx, db, tx, rec)
					So(ErrInvalidSequence.Is(err), ShouldBeTrue)
				})

				Convey("and the next nonce is accepted", func() {
					tx.Signatures = []*StdSignature{second}
					So(run(NewDecorator(), ctx, db, tx, rec), ShouldBeNil)
					So(rec.seen, ShouldResemble, sellerCond)
				})
			})

			Convey("a signature for another chain is rejected", func() {
				other, err := SignTx(seller, tx, "other-chain", 0)
				So(err, ShouldBeNil)
				tx.Signatures = []*StdSignature{other}
				err = run(NewDecorator(), ctx, db, tx, rec)
				So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)
			})
		})
	}
}

func TestDecoratorGasPayment(t *testing.T) {
	const chainID = "market-gas"
	ctx := weave.WithChainID(context.Background(), chainID)
	buyer, creator := crypto.GenPrivKeyEd25519(), crypto.GenPrivKeyEd25519()

	Convey("Check charges every verified signature", t, func() {
		tx := newSignedTx("market/buy art-1")
		for _, k := range []*crypto.PrivateKey{buyer, creator} {
			sig, err := SignTx(k, tx, chainID, 0)
			So(err, ShouldBeNil)
			tx.Signatures = append(tx.Signatures, sig)
		}
		res, err := NewDecorator().Check(ctx, store.MemStore(), tx, &signerRecorder{})
		So(err, ShouldBeNil)
		So(res.GasPayment, ShouldEqual, int64(2*signatureVerifyCost))
	})
}
