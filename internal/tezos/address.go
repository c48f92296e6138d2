package tezos

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

const (
	addressPrefixLen   = 3
	addressPayloadLen  = 20
	addressChecksumLen = 4
)

var implicitPrefixes = map[string][]byte{
	"tz1": {6, 161, 159},
	"tz2": {6, 161, 161},
	"tz3": {6, 161, 164},
	"tz4": {6, 161, 166},
}

// ValidateAddress checks that address is a base58check encoded implicit account.
func ValidateAddress(address string) error {
	if len(address) < 3 {
		return fmt.Errorf("address %q too short", address)
	}
	prefix, ok := implicitPrefixes[address[:3]]
	if !ok {
		return fmt.Errorf("address %q is not an implicit account (tz1/tz2/tz3/tz4)", address)
	}
	decoded := base58.Decode(address)
	if len(decoded) != addressPrefixLen+addressPayloadLen+addressChecksumLen {
		return fmt.Errorf("address %q has invalid length", address)
	}
	if !bytes.Equal(decoded[:addressPrefixLen], prefix) {
		return fmt.Errorf("address %q has invalid prefix bytes", address)
	}
	body := decoded[:len(decoded)-addressChecksumLen]
	sum := chainhash.DoubleHashB(body)
	if !bytes.Equal(sum[:addressChecksumLen], decoded[len(decoded)-addressChecksumLen:]) {
		return fmt.Errorf("address %q has invalid checksum", address)
	}
	return nil
}
