package crypto

import (
	"bytes"
	"testing"

	"github.com/iov-one/weave-market/errors"
	"github.com/iov-one/weave-market/weavetest/assert"
)

func TestEd25519Signing(t *testing.T) {
	private := GenPrivKeyEd25519()
	public := private.PublicKey()

	msg := []byte("foobar")
	msg2 := []byte("dingbooms")

	sig, err := private.Sign(msg)
	assert.Nil(t, err)
	sig2, err := private.Sign(msg2)
	assert.Nil(t, err)

	if !public.Verify(msg, sig) {
		t.Fatal("cannot verify a message signed with this public key")
	}
	if !public.Verify(msg2, sig2) {
		t.Fatal("cannot verify a message signed with this public key")
	}
	if public.Verify(msg, sig2) {
		t.Fatal("verified message signature of the wrong message")
	}
	if public.Verify(msg, &Signature{}) {
		t.Fatal("verified an empty signature of a message")
	}
	if public.Verify(msg, nil) {
		t.Fatal("verified a nil signature of a message")
	}
}

func TestEd25519PrivateKeySign(t *testing.T) {
	pk := &PrivateKey{Ed25519: make([]byte, 64)}
	sig, err := pk.Sign([]byte("foo bar"))
	assert.Nil(t, err)
	want := []byte("\273\363\352\214\365\004\271\371|}\272G\316\316K\005\337Bm\340\322\007W\224-9\272\371\226\375DB\325\325\373#e\321^\030\367]\370\334\372\017\223`\036\236Ue\211\244\220\002\004\026K\227\306i\002\017")
	if !bytes.Equal(want, sig.Ed25519) {
		t.Fatalf("invalid signature: %X", sig.Ed25519)
	}

	_, err = (&PrivateKey{}).Sign([]byte("foo"))
	assert.IsErr(t, errors.ErrInput, err)
}

func TestEd25519Condition(t *testing.T) {
	pub := GenPrivKeyEd25519().PublicKey()
	pub2 := GenPrivKeyEd25519().PublicKey()

	assert.Nil(t, pub.Condition().Validate())
	assert.Nil(t, pub.Validate())
	if bytes.Equal(pub.Condition(), pub2.Condition()) {
		t.Fatal("two different keys have the same condition")
	}
	if pub.Address().Equals(pub2.Address()) {
		t.Fatal("two different keys have the same address")
	}

	var empty PublicKey
	assert.Equal(t, 0, len(empty.Condition()))
	assert.IsErr(t, errors.ErrEmpty, empty.Validate())
	assert.IsErr(t, errors.ErrInput, (&PublicKey{Ed25519: []byte("short")}).Validate())
}

func TestDeterministicKeys(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 32)
	a := PrivKeyEd25519FromSeed(seed)
	b := PrivKeyEd25519FromSeed(seed)
	assert.Equal(t, a.PublicKey(), b.PublicKey())
}

func TestKeySerialization(t *testing.T) {
	priv := GenPrivKeyEd25519()
	raw, err := priv.Marshal()
	assert.Nil(t, err)
	var loaded PrivateKey
	assert.Nil(t, loaded.Unmarshal(raw))
	assert.Equal(t, priv, &loaded)

	pub := priv.PublicKey()
	raw, err = pub.Marshal()
	assert.Nil(t, err)
	var loadedPub PublicKey
	assert.Nil(t, loadedPub.Unmarshal(raw))
	assert.Equal(t, pub, &loadedPub)
}
