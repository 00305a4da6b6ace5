package helpers

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAddressValid(t *testing.T) {
	tests := []struct {
		name    string
		address string
		want    bool
	}{
		{name: "valid lowercase", address: "0x5b38da6a701c568545dcfcb03fcb875f56beddc4", want: true},
		{name: "valid checksummed", address: "0x5B38Da6a701c568545dCfcB03FcB875f56beddC4", want: true},
		{name: "missing prefix", address: "5b38da6a701c568545dcfcb03fcb875f56beddc400", want: false},
		{name: "too short", address: "0x5b38da6a", want: false},
		{name: "too long", address: "0x5b38da6a701c568545dcfcb03fcb875f56beddc4ff", want: false},
		{name: "non-hex character", address: "0x5b38da6a701c568545dcfcb03fcb875f56beddzz", want: false},
		{name: "empty", address: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAddressValid(tt.address))
		})
	}
}

func TestIsPrivateKeyValid(t *testing.T) {
	valid := "0x" + "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	assert.True(t, IsPrivateKeyValid(valid))
	assert.False(t, IsPrivateKeyValid(valid[2:]))
	assert.False(t, IsPrivateKeyValid("0x1234"))
	assert.False(t, IsPrivateKeyValid(""))
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *big.Int
		ok    bool
	}{
		{name: "simple", input: "10000", want: big.NewInt(10000), ok: true},
		{name: "zero", input: "0", want: big.NewInt(0), ok: true},
		{name: "whitespace trimmed", input: " 42 ", want: big.NewInt(42), ok: true},
		{name: "larger than uint64", input: "115792089237316195423570985008687907853269984665640564039457584007913129639935", ok: true},
		{name: "negative", input: "-1", ok: false},
		{name: "empty", input: "", ok: false},
		{name: "hex rejected", input: "0x2710", ok: false},
		{name: "decimal point rejected", input: "10.5", ok: false},
		{name: "garbage", input: "ten thousand", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseAmount(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok && tt.want != nil {
				require.NotNil(t, got)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
