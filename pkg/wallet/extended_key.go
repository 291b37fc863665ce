package wallet

// References:
//   [BIP32]: BIP0032 - Hierarchical Deterministic Wallets
//   https://github.com/bitcoin/bips/blob/master/bip-0032.mediawiki

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
)

const (
	// MinSeedBytes is the minimum number of bytes allowed for a seed to
	// a master node
	MinSeedBytes = hdkeychain.MinSeedBytes
	// MaxSeedBytes is the maximum number of bytes allowed for a seed to
	// a master node
	MaxSeedBytes = hdkeychain.MaxSeedBytes

	// keyLen is the length of both chain codes and private scalars
	keyLen = 32
	// pubKeyLen is the length of a compressed public key
	pubKeyLen = 33
)

// ExtendedKey is a node of a BIP32 tree: a private or public key bundled
// with the chain code needed to derive its children. Values are never
// modified once created, every derivation returns a new ExtendedKey
type ExtendedKey struct {
	net    *chaincfg.Params
	key    *hdkeychain.ExtendedKey
	pubKey []byte
}

func newExtendedKey(
	net *chaincfg.Params, key *hdkeychain.ExtendedKey,
) (*ExtendedKey, error) {
	pubKey, err := key.ECPubKey()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return &ExtendedKey{
		net:    networkOrDefault(net),
		key:    key,
		pubKey: pubKey.SerializeCompressed(),
	}, nil
}

func networkOrDefault(net *chaincfg.Params) *chaincfg.Params {
	if net == nil {
		return &chaincfg.MainNetParams
	}
	return net
}

// keychainError translates the errors of hdkeychain to the ones of this
// package
func keychainError(err error) error {
	switch {
	case errors.Is(err, hdkeychain.ErrInvalidChild):
		return ErrInvalidChildKey
	case errors.Is(err, hdkeychain.ErrDeriveBeyondMaxDepth):
		return ErrDepthExceeded
	case errors.Is(err, hdkeychain.ErrDeriveHardFromPublic):
		return ErrDeriveHardFromPublic
	case errors.Is(err, hdkeychain.ErrNotPrivExtKey):
		return ErrNotPrivateKey
	case errors.Is(err, hdkeychain.ErrUnusableSeed):
		return ErrInvalidMasterKey
	case errors.Is(err, hdkeychain.ErrInvalidSeedLen):
		return ErrInvalidSeedLength
	default:
		return err
	}
}

// NewMaster creates the root node of a BIP32 tree for the given seed. The
// network is only used for the version bytes of the serialized key and
// defaults to mainnet
func NewMaster(seed []byte, net *chaincfg.Params) (*ExtendedKey, error) {
	if len(seed) < MinSeedBytes || len(seed) > MaxSeedBytes {
		return nil, ErrInvalidSeedLength
	}

	net = networkOrDefault(net)
	master, err := hdkeychain.NewMaster(seed, net)
	if err != nil {
		return nil, keychainError(err)
	}
	return newExtendedKey(net, master)
}

// Derive returns the child at the given index. When hardened is true the
// index must be below HardenedKeyStart and the hardened bit is set on it
func (k *ExtendedKey) Derive(index uint32, hardened bool) (*ExtendedKey, error) {
	if hardened {
		if IsHardened(index) {
			return nil, fmt.Errorf(
				"%w: index %d must be in range [0, %d] for hardened derivation",
				ErrInvalidParameter, index, MaxIndex,
			)
		}
		index = Hardened(index)
	}
	return k.Child(index)
}

// Child returns the child at index i. Values of i >= HardenedKeyStart
// signify hardened derivation, that is only possible from private keys.
//
// ErrInvalidChildKey is returned for the (very unlikely) indices that do not
// lead to a valid key, the caller is expected to move on to the next index
func (k *ExtendedKey) Child(i uint32) (*ExtendedKey, error) {
	child, err := k.key.Derive(i)
	if err != nil {
		return nil, keychainError(err)
	}
	return newExtendedKey(k.net, child)
}

// DerivePath derives every index of path starting from k. The first failing
// segment aborts the derivation, its error is returned wrapped
func (k *ExtendedKey) DerivePath(path DerivationPath) (*ExtendedKey, error) {
	key := k
	for i, index := range path {
		child, err := key.Child(index)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to derive segment %d of path %s: %w", i, path, err,
			)
		}
		key = child
	}
	return key, nil
}

// DeriveNextValid returns the first valid child starting from index, along
// with the index it was found at. The search never crosses the boundary
// between normal and hardened indices
func (k *ExtendedKey) DeriveNextValid(index uint32) (*ExtendedKey, uint32, error) {
	hardened := IsHardened(index)
	for {
		child, err := k.Child(index)
		if err == nil {
			return child, index, nil
		}
		if !errors.Is(err, ErrInvalidChildKey) {
			return nil, 0, err
		}

		next := index + 1
		if IsHardened(next) != hardened {
			return nil, 0, fmt.Errorf(
				"%w: no valid index left after %d", ErrInvalidChildKey, index,
			)
		}
		index = next
	}
}

// IsPrivate returns whether k carries a private key
func (k *ExtendedKey) IsPrivate() bool {
	return k.key.IsPrivate()
}

// Depth returns the number of derivations from the master node
func (k *ExtendedKey) Depth() uint8 {
	return k.key.Depth()
}

// ChildIndex returns the index k has been derived at, with the hardened bit
// if any. The master node has index 0
func (k *ExtendedKey) ChildIndex() uint32 {
	return k.key.ChildIndex()
}

// ParentFingerprint returns the first 4 bytes of the HASH160 of the parent
// public key, zero for the master node
func (k *ExtendedKey) ParentFingerprint() uint32 {
	return k.key.ParentFingerprint()
}

// Fingerprint returns the fingerprint children of k carry as parent
// fingerprint
func (k *ExtendedKey) Fingerprint() uint32 {
	return binary.BigEndian.Uint32(btcutil.Hash160(k.pubKey)[:4])
}

// ChainCode returns a copy of the chain code
func (k *ExtendedKey) ChainCode() []byte {
	return k.key.ChainCode()
}

// PublicKeyBytes returns a copy of the compressed public key
func (k *ExtendedKey) PublicKeyBytes() []byte {
	return append([]byte{}, k.pubKey...)
}

// PrivateKeyBytes returns a copy of the 32-byte private scalar
func (k *ExtendedKey) PrivateKeyBytes() ([]byte, error) {
	privKey, err := k.ECPrivKey()
	if err != nil {
		return nil, err
	}
	return privKey.Serialize(), nil
}

// ECPrivKey returns the private key as a btcec.PrivateKey
func (k *ExtendedKey) ECPrivKey() (*btcec.PrivateKey, error) {
	if !k.key.IsPrivate() {
		return nil, ErrNotPrivateKey
	}
	privKey, err := k.key.ECPrivKey()
	if err != nil {
		return nil, keychainError(err)
	}
	return privKey, nil
}

// ECPubKey returns the public key as a btcec.PublicKey
func (k *ExtendedKey) ECPubKey() (*btcec.PublicKey, error) {
	return btcec.ParsePubKey(k.pubKey)
}

// Address returns the address of the public key of k
func (k *ExtendedKey) Address() (Address, error) {
	return AddressFromPublicKey(k.pubKey)
}
