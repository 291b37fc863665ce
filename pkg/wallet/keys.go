package wallet

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"golang.org/x/crypto/sha3"
)

const (
	// AddressLength is the length in bytes of an address
	AddressLength = 20

	uncompressedPubKeyLen = 65
)

// PublicKey holds both the SEC encodings of a secp256k1 point
type PublicKey struct {
	// Compressed is 0x02/0x03 (parity of Y) || X
	Compressed []byte
	// Uncompressed is 0x04 || X || Y
	Uncompressed []byte
}

// PublicKeyFromPrivate multiplies the curve generator by the given 32-byte
// big endian scalar
func PublicKeyFromPrivate(scalar []byte) (*PublicKey, error) {
	if len(scalar) != keyLen {
		return nil, ErrInvalidPrivateKey
	}
	var keyNum btcec.ModNScalar
	if overflow := keyNum.SetByteSlice(scalar); overflow || keyNum.IsZero() {
		return nil, ErrInvalidPrivateKey
	}

	_, pubKey := btcec.PrivKeyFromBytes(scalar)
	return &PublicKey{
		Compressed:   pubKey.SerializeCompressed(),
		Uncompressed: pubKey.SerializeUncompressed(),
	}, nil
}

// Address is the 20-byte Keccak-256 reduction of a public key
type Address [AddressLength]byte

// AddressFromPublicKey hashes the 64 bytes following the 0x04 prefix of the
// uncompressed public key with Keccak-256 and keeps the last 20 bytes.
// Compressed keys are accepted too and decompressed first
func AddressFromPublicKey(pubKey []byte) (Address, error) {
	switch {
	case len(pubKey) == pubKeyLen:
	case len(pubKey) == uncompressedPubKeyLen && pubKey[0] == 0x04:
	default:
		return Address{}, ErrInvalidPublicKey
	}

	key, err := btcec.ParsePubKey(pubKey)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}

	uncompressed := key.SerializeUncompressed()
	hash := keccak256(uncompressed[1:])

	var addr Address
	copy(addr[:], hash[len(hash)-AddressLength:])
	return addr, nil
}

// Bytes returns a copy of the address bytes
func (a Address) Bytes() []byte {
	return append([]byte{}, a[:]...)
}

// Hex returns the 0x prefixed address with the checksum casing: every hex
// letter is upper case if the corresponding nibble of the Keccak-256 of the
// lower case hex address is >= 8
func (a Address) Hex() string {
	return string(a.checksumHex())
}

// String implements fmt.Stringer
func (a Address) String() string {
	return a.Hex()
}

func (a Address) checksumHex() []byte {
	var buf [len(a)*2 + 2]byte
	copy(buf[:2], "0x")
	hex.Encode(buf[2:], a[:])

	hash := keccak256(buf[2:])
	for i := 2; i < len(buf); i++ {
		if buf[i] < 'a' {
			continue
		}
		nibble := hash[(i-2)/2]
		if i%2 == 0 {
			nibble >>= 4
		} else {
			nibble &= 0x0f
		}
		if nibble >= 8 {
			buf[i] -= 'a' - 'A'
		}
	}
	return buf[:]
}

// ToChecksumHex returns the checksum cased hex form of a 20-byte address
func ToChecksumHex(addr []byte) (string, error) {
	if len(addr) != AddressLength {
		return "", ErrInvalidAddress
	}
	var a Address
	copy(a[:], addr)
	return a.Hex(), nil
}

// ParseAddress parses a 40 hex chars address, with optional 0x prefix.
// Addresses in mixed case must carry a valid checksum casing, all lower or
// all upper case ones are accepted as they are
func ParseAddress(s string) (Address, error) {
	a, err := decodeAddress(s)
	if err != nil {
		return Address{}, err
	}

	h := strip0x(s)
	if strings.ToLower(h) == h || strings.ToUpper(h) == h {
		return a, nil
	}
	if a.Hex()[2:] != h {
		return Address{}, ErrAddressChecksumMismatch
	}
	return a, nil
}

// ValidateChecksumAddress returns an error unless s is exactly the checksum
// cased form of the address it encodes
func ValidateChecksumAddress(s string) error {
	a, err := decodeAddress(s)
	if err != nil {
		return err
	}
	if a.Hex()[2:] != strip0x(s) {
		return ErrAddressChecksumMismatch
	}
	return nil
}

// ChecksumAddress (re)applies the checksum casing to an address string,
// whatever its current casing is
func ChecksumAddress(s string) (string, error) {
	a, err := decodeAddress(s)
	if err != nil {
		return "", err
	}
	return a.Hex(), nil
}

func decodeAddress(s string) (Address, error) {
	h := strip0x(s)
	if len(h) != AddressLength*2 {
		return Address{}, ErrInvalidAddress
	}
	b, err := hex.DecodeString(h)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	var a Address
	copy(a[:], b)
	return a, nil
}

func keccak256(data []byte) []byte {
	hasher := sha3.NewLegacyKeccak256()
	_, _ = hasher.Write(data)
	return hasher.Sum(nil)
}
