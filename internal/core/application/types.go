package application

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/tdex-network/tdex-hdkit/pkg/wallet"
)

// MaxAddressCount is the max number of addresses derived by a single
// DeriveAddresses call
const MaxAddressCount = 1000

// MnemonicInfo contains a mnemonic along with the intermediate values it is
// built from
type MnemonicInfo struct {
	Mnemonic     []string `json:"mnemonic"`
	EntropyHex   string   `json:"entropy"`
	EntropyBits  int      `json:"entropy_bits"`
	ChecksumBits string   `json:"checksum_bits"`
	WordIndices  []uint16 `json:"word_indices"`
}

// DeriveRequest identifies the key to derive. Exactly one of Mnemonic and
// SeedHex must be given
type DeriveRequest struct {
	Mnemonic       string
	Passphrase     string
	SeedHex        string
	DerivationPath string
}

func (r DeriveRequest) validate() error {
	if err := validateKeyMaterial(r.Mnemonic, r.SeedHex, ""); err != nil {
		return err
	}
	if _, err := wallet.ParseDerivationPath(r.DerivationPath); err != nil {
		return err
	}
	return nil
}

// DerivationResult contains every artifact of the derivation pipeline from
// the seed down to the address of the derived key
type DerivationResult struct {
	SeedHex                  string `json:"seed"`
	DerivationPath           string `json:"derivation_path"`
	MasterExtendedKey        string `json:"master_xprv"`
	PublicExtendedKey        string `json:"master_xpub"`
	DerivedExtendedKey       string `json:"derived_xprv"`
	DerivedPublicExtendedKey string `json:"derived_xpub"`
	PrivateKeyHex            string `json:"private_key"`
	PublicKeyCompressedHex   string `json:"public_key_compressed"`
	PublicKeyUncompressedHex string `json:"public_key_uncompressed"`
	Address                  string `json:"address"`
}

// DeriveAddressesRequest identifies a range of sibling keys. Key material is
// one of Mnemonic (with optional Passphrase), SeedHex or ExtendedKey.
// AccountPath is absolute for mnemonic and seed, defaulting to
// m/44'/60'/0'/0, and relative to ExtendedKey otherwise, where empty means
// its direct children
type DeriveAddressesRequest struct {
	Mnemonic    string
	Passphrase  string
	SeedHex     string
	ExtendedKey string
	AccountPath string
	Start       uint32
	Count       int
	Hardened    bool
}

func (r DeriveAddressesRequest) validate() error {
	if err := validateKeyMaterial(r.Mnemonic, r.SeedHex, r.ExtendedKey); err != nil {
		return err
	}
	if err := validation.ValidateStruct(
		&r,
		validation.Field(&r.Count, validation.Required, validation.Min(1), validation.Max(MaxAddressCount)),
		validation.Field(&r.Start, validation.Max(uint32(wallet.MaxIndex))),
	); err != nil {
		return fmt.Errorf("%w: %s", wallet.ErrInvalidParameter, err)
	}
	if uint64(r.Start)+uint64(r.Count) > uint64(wallet.MaxIndex)+1 {
		return ErrIndexRangeOverflow
	}
	if r.AccountPath != "" {
		if _, err := r.parseAccountPath(); err != nil {
			return err
		}
	}
	return nil
}

func (r DeriveAddressesRequest) parseAccountPath() (wallet.DerivationPath, error) {
	if r.ExtendedKey != "" {
		return wallet.ParseRelativeDerivationPath(r.AccountPath)
	}
	return wallet.ParseDerivationPath(r.AccountPath)
}

func (r DeriveAddressesRequest) accountPath() wallet.DerivationPath {
	if r.AccountPath == "" {
		if r.ExtendedKey != "" {
			return wallet.DerivationPath{}
		}
		return wallet.DefaultAccountPath
	}
	path, _ := r.parseAccountPath()
	return path
}

// AddressEntry is a derived key of an AddressList
type AddressEntry struct {
	Index        uint32 `json:"index"`
	Path         string `json:"path"`
	Address      string `json:"address"`
	PublicKeyHex string `json:"public_key"`
}

// AddressList contains the addresses derived below an account key, in index
// order. Indices that do not lead to a valid key are listed in Skipped
type AddressList struct {
	AccountPath              string         `json:"account_path"`
	AccountPublicExtendedKey string         `json:"account_xpub"`
	Addresses                []AddressEntry `json:"addresses"`
	Skipped                  []uint32       `json:"skipped,omitempty"`
}

// ExtendedKeyInfo contains the decoded fields of a serialized extended key
type ExtendedKeyInfo struct {
	Network           string `json:"network"`
	IsPrivate         bool   `json:"is_private"`
	Depth             uint8  `json:"depth"`
	ParentFingerprint string `json:"parent_fingerprint"`
	Fingerprint       string `json:"fingerprint"`
	ChildIndex        string `json:"child_index"`
	ChainCodeHex      string `json:"chain_code"`
	PrivateKeyHex     string `json:"private_key,omitempty"`
	PublicKeyHex      string `json:"public_key"`
	PublicExtendedKey string `json:"xpub"`
	Address           string `json:"address"`
}

// AddressInfo is the result of an address validation
type AddressInfo struct {
	Input         string `json:"input"`
	Address       string `json:"address"`
	IsChecksummed bool   `json:"is_checksummed"`
}

func validateKeyMaterial(values ...string) error {
	count := 0
	for _, v := range values {
		if v != "" {
			count++
		}
	}
	switch {
	case count == 0:
		return ErrMissingKeyMaterial
	case count > 1:
		return ErrAmbiguousKeyMaterial
	default:
		return nil
	}
}
