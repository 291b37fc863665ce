package wallet

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

const (
	// bitsPerWord is the width of every index packed into a mnemonic
	bitsPerWord  = 11
	maxWordIndex = 1<<bitsPerWord - 1
)

// ChecksumBits is the checksum embedded in a mnemonic, one element per bit
// (each either 0 or 1), most significant bit first
type ChecksumBits []uint8

// String returns the bits as a string of 0s and 1s
func (c ChecksumBits) String() string {
	var b strings.Builder
	for _, bit := range c {
		if bit == 0 {
			b.WriteByte('0')
		} else {
			b.WriteByte('1')
		}
	}
	return b.String()
}

// Equal reports whether c and other hold the same bits
func (c ChecksumBits) Equal(other ChecksumBits) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if c[i] != other[i] {
			return false
		}
	}
	return true
}

// ComputeChecksum returns the first len(entropy)*8/32 bits of the SHA-256
// digest of entropy
func ComputeChecksum(entropy []byte) (ChecksumBits, error) {
	if err := validateEntropy(entropy); err != nil {
		return nil, err
	}
	return computeChecksum(entropy), nil
}

func computeChecksum(entropy []byte) ChecksumBits {
	hash := sha256.Sum256(entropy)
	n := len(entropy) * 8 / 32
	checksum := make(ChecksumBits, n)
	for i := 0; i < n; i++ {
		checksum[i] = bitAt(hash[:], i)
	}
	return checksum
}

// VerifyChecksum recomputes the checksum of entropy and compares it bit for
// bit with the claimed one
func VerifyChecksum(entropy []byte, claimed ChecksumBits) bool {
	if validateEntropy(entropy) != nil {
		return false
	}
	return computeChecksum(entropy).Equal(claimed)
}

// PackIndices concatenates entropy and checksum bits and slices them into
// 11-bit word indices
func PackIndices(entropy []byte, checksum ChecksumBits) ([]uint16, error) {
	if err := validateEntropy(entropy); err != nil {
		return nil, err
	}
	if len(checksum) != len(entropy)*8/32 {
		return nil, fmt.Errorf(
			"%w: checksum must be %d bits long, got %d",
			ErrInvalidParameter, len(entropy)*8/32, len(checksum),
		)
	}
	for i, bit := range checksum {
		if bit > 1 {
			return nil, fmt.Errorf(
				"%w: checksum bit %d must be 0 or 1, got %d",
				ErrInvalidParameter, i, bit,
			)
		}
	}

	entropyBits := len(entropy) * 8
	totalBits := entropyBits + len(checksum)
	indices := make([]uint16, totalBits/bitsPerWord)
	for i := 0; i < totalBits; i++ {
		var bit uint8
		if i < entropyBits {
			bit = bitAt(entropy, i)
		} else {
			bit = checksum[i-entropyBits]
		}
		word := i / bitsPerWord
		indices[word] = indices[word]<<1 | uint16(bit)
	}
	return indices, nil
}

// UnpackIndices is the inverse of PackIndices
func UnpackIndices(indices []uint16) ([]byte, ChecksumBits, error) {
	entropyBits, ok := wordsToEntropyBits[len(indices)]
	if !ok {
		return nil, nil, ErrInvalidWordCount
	}

	entropy := make([]byte, entropyBits/8)
	checksum := make(ChecksumBits, 0, entropyBits/32)
	for w, index := range indices {
		if index > maxWordIndex {
			return nil, nil, fmt.Errorf(
				"%w: index %d at position %d exceeds %d",
				ErrInvalidParameter, index, w, maxWordIndex,
			)
		}
		for j := bitsPerWord - 1; j >= 0; j-- {
			bit := uint8(index>>uint(j)) & 1
			pos := w*bitsPerWord + (bitsPerWord - 1 - j)
			if pos < entropyBits {
				entropy[pos/8] |= bit << uint(7-pos%8)
			} else {
				checksum = append(checksum, bit)
			}
		}
	}
	return entropy, checksum, nil
}

func bitAt(data []byte, i int) uint8 {
	return (data[i/8] >> uint(7-i%8)) & 1
}
