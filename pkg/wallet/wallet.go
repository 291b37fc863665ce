package wallet

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg"
)

var (
	// ErrInvalidParameter ...
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrInvalidEntropySize ...
	ErrInvalidEntropySize = fmt.Errorf(
		"%w: entropy size must be a multiple of 32 in the range [128,256]",
		ErrInvalidParameter,
	)
	// ErrEntropyUnavailable is returned when the secure random source can not
	// provide the requested amount of bytes
	ErrEntropyUnavailable = errors.New("secure entropy source unavailable")

	// ErrInvalidMnemonic is the parent of every mnemonic validation error
	ErrInvalidMnemonic = errors.New("mnemonic is invalid")
	// ErrInvalidWordCount ...
	ErrInvalidWordCount = fmt.Errorf(
		"%w: word count must be one of 12, 15, 18, 21 or 24", ErrInvalidMnemonic,
	)
	// ErrUnknownWord ...
	ErrUnknownWord = fmt.Errorf("%w: word not found in wordlist", ErrInvalidMnemonic)
	// ErrChecksumMismatch ...
	ErrChecksumMismatch = fmt.Errorf("%w: checksum mismatch", ErrInvalidMnemonic)
	// ErrNullMnemonic ...
	ErrNullMnemonic = errors.New("mnemonic must not be null")
	// ErrInvalidWordlist ...
	ErrInvalidWordlist = errors.New("wordlist must contain exactly 2048 unique words")

	// ErrInvalidSeedLength ...
	ErrInvalidSeedLength = fmt.Errorf(
		"%w: seed length must be between %d and %d bytes",
		ErrInvalidParameter, MinSeedBytes, MaxSeedBytes,
	)
	// ErrInvalidMasterKey is returned in the astronomically unlikely case the
	// seed hashes to a scalar outside [1, n-1]
	ErrInvalidMasterKey = errors.New("seed produced an invalid master key")
	// ErrInvalidChildKey is returned when the child at the requested index is
	// not a valid key. The caller should move on to the next index
	ErrInvalidChildKey = errors.New("the extended key at this index is invalid")
	// ErrDepthExceeded ...
	ErrDepthExceeded = errors.New("cannot derive a key with more than 255 indices in its path")
	// ErrDeriveHardFromPublic ...
	ErrDeriveHardFromPublic = errors.New("cannot derive a hardened key from a public key")
	// ErrNotPrivateKey ...
	ErrNotPrivateKey = errors.New("private key material is not available for a public extended key")
	// ErrAlreadyPublic is returned when neutering an already public extended key
	ErrAlreadyPublic = errors.New("extended key is already public")
	// ErrInvalidEncoding ...
	ErrInvalidEncoding = errors.New("invalid extended key encoding")

	// ErrNullDerivationPath ...
	ErrNullDerivationPath = errors.New("derivation path must not be null")
	// ErrInvalidPathSyntax ...
	ErrInvalidPathSyntax = fmt.Errorf(
		"%w: path must be in the form m/purpose'/coin'/account'/change/index",
		ErrInvalidParameter,
	)

	// ErrInvalidPrivateKey ...
	ErrInvalidPrivateKey = errors.New("private key must be a 32 byte scalar in range [1, n-1]")
	// ErrInvalidPublicKey ...
	ErrInvalidPublicKey = errors.New("public key must be a valid 33 or 65 byte secp256k1 point")
	// ErrInvalidAddress ...
	ErrInvalidAddress = errors.New("address must be 20 bytes in hex format")
	// ErrAddressChecksumMismatch ...
	ErrAddressChecksumMismatch = fmt.Errorf("%w: checksum casing mismatch", ErrInvalidAddress)
	// ErrInvalidHex ...
	ErrInvalidHex = errors.New("value must be in hex format")
)

// Wallet data structure allows to create a new wallet from entropy/mnemonic,
// derive extended keys, key pairs and addresses from its master key
type Wallet struct {
	mnemonic  []string
	seed      []byte
	masterKey *ExtendedKey
}

// NewWalletOpts is the struct given to the NewWallet method
type NewWalletOpts struct {
	EntropySize int
	Passphrase  string
	Network     *chaincfg.Params
}

func (o NewWalletOpts) validate() error {
	if o.EntropySize == 0 {
		return nil
	}
	if _, ok := entropyBitsToWords[o.EntropySize]; !ok {
		return ErrInvalidEntropySize
	}
	return nil
}

// NewWallet creates a new wallet from fresh entropy
func NewWallet(opts NewWalletOpts) (*Wallet, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	mnemonic, err := NewMnemonic(NewMnemonicOpts{EntropySize: opts.EntropySize})
	if err != nil {
		return nil, err
	}

	return newWallet(mnemonic, opts.Passphrase, opts.Network)
}

// NewWalletFromMnemonicOpts is the struct given to the NewWalletFromMnemonic method
type NewWalletFromMnemonicOpts struct {
	Mnemonic   []string
	Passphrase string
	Network    *chaincfg.Params
}

func (o NewWalletFromMnemonicOpts) validate() error {
	if len(o.Mnemonic) <= 0 {
		return ErrNullMnemonic
	}
	if _, err := ValidateMnemonic(JoinMnemonic(o.Mnemonic)); err != nil {
		return err
	}
	return nil
}

// NewWalletFromMnemonic restores a wallet from the provided mnemonic and
// optional passphrase
func NewWalletFromMnemonic(opts NewWalletFromMnemonicOpts) (*Wallet, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	mnemonic := SplitMnemonic(JoinMnemonic(opts.Mnemonic))
	return newWallet(mnemonic, opts.Passphrase, opts.Network)
}

func newWallet(
	mnemonic []string, passphrase string, net *chaincfg.Params,
) (*Wallet, error) {
	seed := NewSeed(JoinMnemonic(mnemonic), passphrase)
	masterKey, err := NewMaster(seed, net)
	if err != nil {
		return nil, err
	}

	return &Wallet{
		mnemonic:  mnemonic,
		seed:      seed,
		masterKey: masterKey,
	}, nil
}

func (w *Wallet) validate() error {
	if len(w.mnemonic) <= 0 {
		return ErrNullMnemonic
	}
	if w.masterKey == nil {
		return ErrInvalidMasterKey
	}
	return nil
}

// Mnemonic is getter for the wallet mnemonic
func (w *Wallet) Mnemonic() ([]string, error) {
	if err := w.validate(); err != nil {
		return nil, err
	}
	return append([]string{}, w.mnemonic...), nil
}

// Seed is getter for the 64-byte seed stretched from mnemonic and passphrase
func (w *Wallet) Seed() ([]byte, error) {
	if err := w.validate(); err != nil {
		return nil, err
	}
	return append([]byte{}, w.seed...), nil
}

// MasterKey is getter for the root extended private key
func (w *Wallet) MasterKey() (*ExtendedKey, error) {
	if err := w.validate(); err != nil {
		return nil, err
	}
	return w.masterKey, nil
}

// ExtendedKeyOpts is the struct given to
// ExtendedPrivateKey and ExtendedPublicKey methods. An empty path means the
// master key
type ExtendedKeyOpts struct {
	DerivationPath string
}

func (o ExtendedKeyOpts) path() (DerivationPath, error) {
	if o.DerivationPath == "" {
		return DerivationPath{}, nil
	}
	return ParseDerivationPath(o.DerivationPath)
}

// ExtendedPrivateKey returns the extended private key in base58 format
// for the provided derivation path
func (w *Wallet) ExtendedPrivateKey(opts ExtendedKeyOpts) (string, error) {
	key, err := w.extendedKey(opts)
	if err != nil {
		return "", err
	}
	return key.String(), nil
}

// ExtendedPublicKey returns the extended public key in base58 format
// for the provided derivation path
func (w *Wallet) ExtendedPublicKey(opts ExtendedKeyOpts) (string, error) {
	key, err := w.extendedKey(opts)
	if err != nil {
		return "", err
	}
	xpub, err := key.Neuter()
	if err != nil {
		return "", err
	}
	return xpub.String(), nil
}

func (w *Wallet) extendedKey(opts ExtendedKeyOpts) (*ExtendedKey, error) {
	path, err := opts.path()
	if err != nil {
		return nil, err
	}
	if err := w.validate(); err != nil {
		return nil, err
	}
	return w.masterKey.DerivePath(path)
}

// DeriveSigningKeyPairOpts is the struct given to DeriveSigningKeyPair method
type DeriveSigningKeyPairOpts struct {
	DerivationPath string
}

func (o DeriveSigningKeyPairOpts) validate() error {
	_, err := ParseDerivationPath(o.DerivationPath)
	return err
}

// DeriveSigningKeyPair derives the key pair of the provided derivation path
func (w *Wallet) DeriveSigningKeyPair(opts DeriveSigningKeyPairOpts) (
	*btcec.PrivateKey,
	*btcec.PublicKey,
	error,
) {
	if err := opts.validate(); err != nil {
		return nil, nil, err
	}
	key, err := w.extendedKey(ExtendedKeyOpts(opts))
	if err != nil {
		return nil, nil, err
	}

	privateKey, err := key.ECPrivKey()
	if err != nil {
		return nil, nil, err
	}
	publicKey, err := key.ECPubKey()
	if err != nil {
		return nil, nil, err
	}

	return privateKey, publicKey, nil
}

// DeriveAddressOpts is the struct given to DeriveAddress method
type DeriveAddressOpts struct {
	DerivationPath string
}

func (o DeriveAddressOpts) validate() error {
	if o.DerivationPath == "" {
		return ErrNullDerivationPath
	}
	_, err := ParseDerivationPath(o.DerivationPath)
	return err
}

// DeriveAddress derives the key at the provided path and returns its
// address
func (w *Wallet) DeriveAddress(opts DeriveAddressOpts) (Address, error) {
	if err := opts.validate(); err != nil {
		return Address{}, err
	}
	key, err := w.extendedKey(ExtendedKeyOpts(opts))
	if err != nil {
		return Address{}, err
	}
	return key.Address()
}
