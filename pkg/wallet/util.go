package wallet

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Zero overwrites b with zeroes. Callers use it to wipe seeds and private
// keys once they are not needed anymore
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// DecodeHex decodes a hex string in any case, with optional 0x prefix
func DecodeHex(s string) ([]byte, error) {
	b, err := hex.DecodeString(strip0x(strings.TrimSpace(s)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}
	return b, nil
}

// EncodeHex returns the lower case hex of b, without prefix
func EncodeHex(b []byte) string {
	return hex.EncodeToString(b)
}

func strip0x(s string) string {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return s[2:]
	}
	return s
}
