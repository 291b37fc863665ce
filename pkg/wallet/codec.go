package wallet

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

const (
	// serializedKeyLen is the length of a serialized extended key without
	// checksum: version(4) || depth(1) || fingerprint(4) || index(4) ||
	// chain code(32) || key data(33)
	serializedKeyLen = 4 + 1 + 4 + 4 + keyLen + pubKeyLen
	checksumLen      = 4
)

// knownNetworks are the networks whose version bytes NewKeyFromString
// recognizes. Networks sharing the same version bytes resolve to the first
// of the list
var knownNetworks = []*chaincfg.Params{
	&chaincfg.MainNetParams,
	&chaincfg.TestNet3Params,
	&chaincfg.RegressionNetParams,
	&chaincfg.SimNetParams,
	&chaincfg.SigNetParams,
}

func lookupVersion(version [4]byte) (*chaincfg.Params, bool, bool) {
	for _, net := range knownNetworks {
		switch version {
		case net.HDPrivateKeyID:
			return net, true, true
		case net.HDPublicKeyID:
			return net, false, true
		}
	}
	return nil, false, false
}

// Version returns the 4 version bytes of the serialized key
func (k *ExtendedKey) Version() [4]byte {
	var version [4]byte
	copy(version[:], k.key.Version())
	return version
}

// Network returns the network params the key version bytes belong to
func (k *ExtendedKey) Network() *chaincfg.Params {
	return k.net
}

// IsForNet returns whether the key version bytes are those of net
func (k *ExtendedKey) IsForNet(net *chaincfg.Params) bool {
	return bytes.Equal(k.net.HDPrivateKeyID[:], net.HDPrivateKeyID[:]) &&
		bytes.Equal(k.net.HDPublicKeyID[:], net.HDPublicKeyID[:])
}

// Serialize returns the 78-byte BIP32 serialization of k, without checksum
func (k *ExtendedKey) Serialize() []byte {
	decoded := base58.Decode(k.key.String())
	return decoded[:serializedKeyLen]
}

// String returns the extended key as a base58 string with a 4-byte
// double-SHA256 checksum
func (k *ExtendedKey) String() string {
	return k.key.String()
}

// NewKeyFromString parses a base58 extended key, either private or
// public, of one of the known networks
func NewKeyFromString(key string) (*ExtendedKey, error) {
	decoded := base58.Decode(key)
	if len(decoded) != serializedKeyLen+checksumLen {
		return nil, fmt.Errorf(
			"%w: decoded key must be %d bytes long, got %d",
			ErrInvalidEncoding, serializedKeyLen+checksumLen, len(decoded),
		)
	}

	payload := decoded[:serializedKeyLen]
	checksum := decoded[serializedKeyLen:]
	if !bytes.Equal(chainhash.DoubleHashB(payload)[:checksumLen], checksum) {
		return nil, fmt.Errorf("%w: bad checksum", ErrInvalidEncoding)
	}

	var version [4]byte
	copy(version[:], payload[:4])
	net, isPrivate, ok := lookupVersion(version)
	if !ok {
		return nil, fmt.Errorf(
			"%w: unknown version bytes %x", ErrInvalidEncoding, version,
		)
	}

	// hdkeychain tells private from public keys by the key data prefix, the
	// version bytes must agree with it
	keyData := payload[45:]
	if isPrivate != (keyData[0] == 0x00) {
		if isPrivate {
			return nil, fmt.Errorf(
				"%w: private key data must be prefixed by 0x00", ErrInvalidEncoding,
			)
		}
		return nil, fmt.Errorf(
			"%w: public key data must not be prefixed by 0x00", ErrInvalidEncoding,
		)
	}

	extendedKey, err := hdkeychain.NewKeyFromString(key)
	if err != nil {
		if isPrivate && errors.Is(err, hdkeychain.ErrUnusableSeed) {
			err = ErrInvalidPrivateKey
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}

	if extendedKey.Depth() == 0 &&
		(extendedKey.ParentFingerprint() != 0 || extendedKey.ChildIndex() != 0) {
		return nil, fmt.Errorf(
			"%w: master key must have zero parent fingerprint and index",
			ErrInvalidEncoding,
		)
	}

	return newExtendedKey(net, extendedKey)
}

// Neuter returns the public version of k, that can derive normal children
// only. Neutering a public key returns ErrAlreadyPublic
func (k *ExtendedKey) Neuter() (*ExtendedKey, error) {
	if !k.IsPrivate() {
		return nil, ErrAlreadyPublic
	}
	pub, err := k.key.Neuter()
	if err != nil {
		return nil, keychainError(err)
	}
	return newExtendedKey(k.net, pub)
}
