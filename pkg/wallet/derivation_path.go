package wallet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

// DerivationPath is the internal representation of a hierarchical
// deterministic wallet path. Every element is a child index, with bit 31 set
// for hardened ones
type DerivationPath []uint32

const (
	// HardenedKeyStart is the index of the first hardened child
	HardenedKeyStart = hdkeychain.HardenedKeyStart
	// MaxIndex is the max value of a (non hardened) path segment
	MaxIndex = HardenedKeyStart - 1
)

var (
	// DefaultDerivationPath m/44'/60'/0'/0/0
	DefaultDerivationPath = DerivationPath{
		HardenedKeyStart + 44,
		HardenedKeyStart + 60,
		HardenedKeyStart + 0,
		0,
		0,
	}
	// DefaultAccountPath m/44'/60'/0'/0 is the parent of the default
	// receiving addresses
	DefaultAccountPath = DefaultDerivationPath[:4:4]
)

// Hardened returns the hardened version of index i
func Hardened(i uint32) uint32 {
	return i | HardenedKeyStart
}

// IsHardened returns whether the index i is hardened
func IsHardened(i uint32) bool {
	return i >= HardenedKeyStart
}

// ParseDerivationPath converts an absolute derivation path string to the
// internal binary representation. The path must be "m" optionally followed by
// "/"-separated segments, each a decimal index in range [0, 2^31-1] with an
// optional "'" marking it hardened. No whitespace is allowed
func ParseDerivationPath(strPath string) (DerivationPath, error) {
	if strPath == "" {
		return nil, ErrNullDerivationPath
	}

	elems := strings.Split(strPath, "/")
	if elems[0] != "m" {
		return nil, fmt.Errorf(
			"%w: absolute path must start with 'm'", ErrInvalidPathSyntax,
		)
	}
	return parsePathSegments(elems[1:])
}

// ParseRelativeDerivationPath converts a derivation path string that is
// applied below an already derived key, like "0/1'", to the internal binary
// representation. Segments follow the rules of ParseDerivationPath, the
// leading "m" is not allowed
func ParseRelativeDerivationPath(strPath string) (DerivationPath, error) {
	if strPath == "" {
		return nil, ErrNullDerivationPath
	}

	elems := strings.Split(strPath, "/")
	if elems[0] == "m" {
		return nil, fmt.Errorf(
			"%w: relative path must not start with 'm'", ErrInvalidPathSyntax,
		)
	}
	return parsePathSegments(elems)
}

func parsePathSegments(elems []string) (DerivationPath, error) {
	if containsEmptyString(elems) {
		return nil, fmt.Errorf(
			"%w: path must not start or end with a '/' and must not contain "+
				"empty segments", ErrInvalidPathSyntax,
		)
	}

	path := make(DerivationPath, 0, len(elems))
	for _, elem := range elems {
		value, err := parsePathSegment(elem)
		if err != nil {
			return nil, err
		}
		path = append(path, value)
	}

	return path, nil
}

func parsePathSegment(elem string) (uint32, error) {
	var value uint32
	index := elem
	if strings.HasSuffix(index, "'") {
		value = HardenedKeyStart
		index = strings.TrimSuffix(index, "'")
	}

	if !isDecimal(index) {
		return 0, fmt.Errorf("%w: invalid elem '%s' in path", ErrInvalidPathSyntax, elem)
	}
	i, err := strconv.ParseUint(index, 10, 31)
	if err != nil {
		return 0, fmt.Errorf(
			"%w: elem %s must be in range [0, %d]", ErrInvalidPathSyntax, elem, MaxIndex,
		)
	}

	return value + uint32(i), nil
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// String converts a binary derivation path to its canonical representation
func (path DerivationPath) String() string {
	result := "m"
	for _, component := range path {
		var hardened bool
		if IsHardened(component) {
			component -= HardenedKeyStart
			hardened = true
		}
		result = fmt.Sprintf("%s/%d", result, component)
		if hardened {
			result += "'"
		}
	}
	return result
}

// Append returns a new path made of path followed by the given indices
func (path DerivationPath) Append(indices ...uint32) DerivationPath {
	child := make(DerivationPath, 0, len(path)+len(indices))
	child = append(child, path...)
	return append(child, indices...)
}

func containsEmptyString(composedPath []string) bool {
	for _, s := range composedPath {
		if s == "" {
			return true
		}
	}
	return false
}
