package sigs

import (
	"testing"

	"github.com/iov-one/weave-market/crypto"
	"github.com/iov-one/weave-market/errors"
	"github.com/iov-one/weave-market/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignBytes(t *testing.T) {
	const chainID = "market-sign"
	payload := []byte("market/buy art-1")

	ref, err := BuildSignBytes(payload, chainID, 17)
	require.NoError(t, err)
	assert.Len(t, ref, 64)

	fromTx, err := BuildSignBytesTx(newSignedTx(string(payload)), chainID, 17)
	require.NoError(t, err)
	assert.Equal(t, ref, fromTx)

	cases := map[string]struct {
		payload []byte
		chainID string
		seq     int64
		wantErr *errors.Error
	}{
		"other payload":    {payload: []byte("market/buy art-2"), chainID: chainID, seq: 17},
		"other chain":      {payload: payload, chainID: chainID + "2", seq: 17},
		"other sequence":   {payload: payload, chainID: chainID, seq: 18},
		"negative seq":     {payload: payload, chainID: chainID, seq: -1, wantErr: ErrInvalidSequence},
		"invalid chain id": {payload: payload, chainID: "bad", seq: 1, wantErr: errors.ErrInput},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := BuildSignBytes(tc.payload, tc.chainID, tc.seq)
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %v, got %v", tc.wantErr, err)
			}
			if tc.wantErr == nil {
				assert.NotEqual(t, ref, got)
			}
		})
	}
}

func TestVerifySignature(t *testing.T) {
	kv := store.MemStore()
	priv := crypto.GenPrivKeyEd25519()
	pub := priv.PublicKey()

	chainID := "market-verify"
	bz := []byte("market/delist art-1")
	tx := newSignedTx(string(bz))

	sig0, err := SignTx(priv, tx, chainID, 0)
	require.NoError(t, err)
	sig1, err := SignTx(priv, tx, chainID, 1)
	require.NoError(t, err)
	sig2, err := SignTx(priv, tx, chainID, 2)
	require.NoError(t, err)

	// ed25519 signatures are deterministic
	sig2a, err := SignTx(priv, tx, chainID, 2)
	require.NoError(t, err)
	assert.Equal(t, sig2, sig2a)

	// the first one must have sequence zero
	_, err = VerifySignature(kv, sig1, bz, chainID)
	assert.True(t, ErrInvalidSequence.Is(err))

	_, err = VerifySignature(kv, new(StdSignature), bz, chainID)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	// wrong message
	_, err = VerifySignature(kv, sig0, []byte("other"), chainID)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	// wrong chain
	_, err = VerifySignature(kv, sig0, bz, "other-chain")
	assert.True(t, errors.ErrUnauthorized.Is(err))

	cond, err := VerifySignature(kv, sig0, bz, chainID)
	require.NoError(t, err)
	assert.Equal(t, pub.Condition(), cond)

	nonce, err := NextNonce(kv, pub.Address())
	require.NoError(t, err)
	assert.Equal(t, int64(1), nonce)

	// replay is rejected
	_, err = VerifySignature(kv, sig0, bz, chainID)
	assert.True(t, ErrInvalidSequence.Is(err))

	_, err = VerifySignature(kv, sig1, bz, chainID)
	require.NoError(t, err)
	_, err = VerifySignature(kv, sig2, bz, chainID)
	require.NoError(t, err)

	nonce, err = NextNonce(kv, pub.Address())
	require.NoError(t, err)
	assert.Equal(t, int64(3), nonce)
}

func TestVerifyTxSignatures(t *testing.T) {
	kv := store.MemStore()
	chainID := "market-tx-sigs"
	priv, priv2 := crypto.GenPrivKeyEd25519(), crypto.GenPrivKeyEd25519()

	tx := newSignedTx("market/close")
	sig, err := SignTx(priv, tx, chainID, 0)
	require.NoError(t, err)
	sig2, err := SignTx(priv2, tx, chainID, 0)
	require.NoError(t, err)

	signers, err := VerifyTxSignatures(kv, tx, chainID)
	require.NoError(t, err)
	assert.Empty(t, signers)

	tx.Signatures = []*StdSignature{sig, sig2}
	signers, err = VerifyTxSignatures(kv, tx, chainID)
	require.NoError(t, err)
	require.Len(t, signers, 2)
	assert.Equal(t, priv.PublicKey().Condition(), signers[0])
	assert.Equal(t, priv2.PublicKey().Condition(), signers[1])

	_, err = VerifyTxSignatures(kv, tx, chainID)
	assert.True(t, ErrInvalidSequence.Is(err))
}

func TestUserData(t *testing.T) {
	pub := crypto.GenPrivKeyEd25519().PublicKey()

	u := &UserData{Pubkey: pub}
	require.NoError(t, u.Validate())
	require.NoError(t, u.CheckAndIncrementSequence(0))
	assert.Equal(t, int64(1), u.Sequence)
	assert.True(t, ErrInvalidSequence.Is(u.CheckAndIncrementSequence(0)))

	u.Sequence = (1 << 53) - 1
	assert.True(t, errors.ErrOverflow.Is(u.CheckAndIncrementSequence(u.Sequence)))

	assert.True(t, ErrInvalidSequence.Is((&UserData{Sequence: -1}).Validate()))
	assert.True(t, ErrInvalidSequence.Is((&UserData{Sequence: 2}).Validate()))

	raw, err := u.Marshal()
	require.NoError(t, err)
	var loaded UserData
	require.NoError(t, loaded.Unmarshal(raw))
	assert.Equal(t, *u, loaded)
}

func TestStdSignatureSerialization(t *testing.T) {
	priv := crypto.PrivKeyEd25519FromSeed(make([]byte, 32))
	sig, err := SignTx(priv, newSignedTx("x"), "serial-chain", 5)
	require.NoError(t, err)

	raw, err := sig.Marshal()
	require.NoError(t, err)
	var got StdSignature
	require.NoError(t, got.Unmarshal(raw))
	assert.Equal(t, sig, &got)
	assert.NoError(t, got.Validate())
}
