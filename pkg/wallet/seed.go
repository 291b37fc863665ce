package wallet

import (
	"crypto/sha512"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/text/unicode/norm"
)

const (
	// SeedSize is the length in bytes of a seed stretched from a mnemonic
	SeedSize = 64

	seedIterations = 2048
	seedSaltPrefix = "mnemonic"
)

// NewSeed stretches the mnemonic and the optional passphrase into a 64-byte
// seed with PBKDF2-HMAC-SHA512. The mnemonic is not validated, use
// NewSeedWithErrorChecking for that
func NewSeed(mnemonic, passphrase string) []byte {
	password := []byte(NormalizeMnemonic(mnemonic))
	salt := []byte(seedSaltPrefix + norm.NFKD.String(passphrase))
	return pbkdf2.Key(password, salt, seedIterations, SeedSize, sha512.New)
}

// NewSeedWithErrorChecking is like NewSeed but returns an error if the
// mnemonic is not valid
func NewSeedWithErrorChecking(mnemonic, passphrase string) ([]byte, error) {
	if _, err := ValidateMnemonic(mnemonic); err != nil {
		return nil, err
	}
	return NewSeed(mnemonic, passphrase), nil
}
