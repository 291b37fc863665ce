package wallet

import (
	"crypto/rand"
	"fmt"
	"io"
)

// entropyBitsToWords maps every allowed entropy size (in bits) to the number
// of words of the resulting mnemonic
var entropyBitsToWords = map[int]int{
	128: 12,
	160: 15,
	192: 18,
	224: 21,
	256: 24,
}

// NewEntropy returns bitLength/8 bytes read from the operating system secure
// random source. bitLength must be one of 128, 160, 192, 224 or 256
func NewEntropy(bitLength int) ([]byte, error) {
	return NewEntropyFromReader(rand.Reader, bitLength)
}

// NewEntropyFromReader is like NewEntropy but reads from r, that must be a
// cryptographically secure source
func NewEntropyFromReader(r io.Reader, bitLength int) ([]byte, error) {
	if err := validateEntropyBits(bitLength); err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrEntropyUnavailable
	}

	entropy := make([]byte, bitLength/8)
	if _, err := io.ReadFull(r, entropy); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEntropyUnavailable, err)
	}
	return entropy, nil
}

func validateEntropyBits(bitLength int) error {
	if _, ok := entropyBitsToWords[bitLength]; !ok {
		return ErrInvalidEntropySize
	}
	return nil
}

func validateEntropy(entropy []byte) error {
	return validateEntropyBits(len(entropy) * 8)
}
