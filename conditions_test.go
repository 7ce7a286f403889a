package weave_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/btcsuite/btcutil/bech32"
	weave "github.com/iov-one/weave-market"
	"github.com/iov-one/weave-market/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressPrinting(t *testing.T) {
	addr := weave.Address([]byte("ABCD123456LHB"))
	assert.NotEqual(t, fmt.Sprintf("%X", addr), addr.String())
	assert.Equal(t, "(nil)", weave.Address(nil).String())

	cond := weave.NewCondition("market", "listing", []byte("ABCD123456LHB"))
	assert.Equal(t, "market/listing/414243443132333435364C4842", cond.String())
}

func TestConditionDerivation(t *testing.T) {
	a := weave.NewCondition("market", "listing", []byte("asset-1"))
	b := weave.NewCondition("market", "listing", []byte("asset-1"))
	c := weave.NewCondition("market", "listing", []byte("asset-2"))

	require.NoError(t, a.Validate())
	assert.True(t, a.Address().Equals(b.Address()), "derivation must be deterministic")
	assert.False(t, a.Address().Equals(c.Address()))
	assert.Len(t, a.Address(), weave.AddressLength)

	ext, typ, data, err := a.Parse()
	require.NoError(t, err)
	assert.Equal(t, "market", ext)
	assert.Equal(t, "listing", typ)
	assert.Equal(t, []byte("asset-1"), data)

	assert.Error(t, weave.Condition("no-slashes").Validate())
}

func TestAddressUnmarshalJSON(t *testing.T) {
	addr := weave.NewCondition("sigs", "ed25519", []byte("pubkey")).Address()
	bech, err := addr.Bech32()
	require.NoError(t, err)
	bits, err := bech32.ConvertBits(addr, 8, 5, true)
	require.NoError(t, err)
	foreign, err := bech32.Encode("iov", bits)
	require.NoError(t, err)

	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr weave.Address
	}{
		"default decoding": {
			json:     fmt.Sprintf(`"%s"`, addr),
			wantAddr: addr,
		},
		"hex decoding": {
			json:     fmt.Sprintf(`"hex:%s"`, addr),
			wantAddr: addr,
		},
		"cond decoding": {
			json:     `"cond:foo/bar/636f6e646974696f6e64617461"`,
			wantAddr: weave.NewCondition("foo", "bar", []byte("conditiondata")).Address(),
		},
		"bech32 decoding": {
			json:     fmt.Sprintf(`"bech32:%s"`, bech),
			wantAddr: addr,
		},
		"bech32 of another chain": {
			json:    fmt.Sprintf(`"bech32:%s"`, foreign),
			wantErr: errors.ErrInput,
		},
		"invalid condition format": {
			json:    `"cond:foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInput,
		},
		"invalid hex length": {
			json:    `"6865782d61646472"`,
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			json:    `"base64:AAAA"`,
			wantErr: errors.ErrInput,
		},
		"empty address": {
			json:     `""`,
			wantAddr: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a weave.Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil {
				assert.Equal(t, tc.wantAddr, a)
			}
		})
	}
}

func TestAddressJSONRoundTrip(t *testing.T) {
	addr := weave.NewCondition("market", "vault", []byte{0, 1, 2}).Address()
	raw, err := json.Marshal(addr)
	require.NoError(t, err)

	var got weave.Address
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, addr, got)
}
