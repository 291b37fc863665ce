package wallet

import (
	"fmt"
	"io"
)

// wordsToEntropyBits maps every allowed mnemonic length to its entropy size
// in bits. The checksum is always entropy/32 bits long
var wordsToEntropyBits = map[int]int{
	12: 128,
	15: 160,
	18: 192,
	21: 224,
	24: 256,
}

// DefaultEntropySize is the entropy size used when none is given
const DefaultEntropySize = 128

// NewMnemonicOpts is the struct given to NewMnemonic method
type NewMnemonicOpts struct {
	EntropySize int
	// Rand overrides the secure random source, mainly for tests
	Rand io.Reader
}

func (o NewMnemonicOpts) validate() error {
	if o.EntropySize > 0 {
		if o.EntropySize < 128 || o.EntropySize > 256 || o.EntropySize%32 != 0 {
			return ErrInvalidEntropySize
		}
	}
	if o.EntropySize < 0 {
		return ErrInvalidEntropySize
	}
	return nil
}

// NewMnemonic returns a new mnemonic as a list of words
func NewMnemonic(opts NewMnemonicOpts) ([]string, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.EntropySize == 0 {
		opts.EntropySize = DefaultEntropySize
	}

	var (
		entropy []byte
		err     error
	)
	if opts.Rand != nil {
		entropy, err = NewEntropyFromReader(opts.Rand, opts.EntropySize)
	} else {
		entropy, err = NewEntropy(opts.EntropySize)
	}
	if err != nil {
		return nil, err
	}
	defer Zero(entropy)

	return MnemonicFromEntropy(entropy)
}

// MnemonicFromEntropy encodes entropy and its checksum as a list of words of
// the English vocabulary
func MnemonicFromEntropy(entropy []byte) ([]string, error) {
	checksum, err := ComputeChecksum(entropy)
	if err != nil {
		return nil, err
	}
	indices, err := PackIndices(entropy, checksum)
	if err != nil {
		return nil, err
	}
	return English.IndicesToWords(indices)
}

// ValidateMnemonic decodes the mnemonic and verifies its embedded checksum.
// It returns the entropy the mnemonic encodes
func ValidateMnemonic(mnemonic string) ([]byte, error) {
	return English.ValidateMnemonic(mnemonic)
}

// ValidateMnemonic is like the package level ValidateMnemonic but uses w as
// vocabulary
func (w *Wordlist) ValidateMnemonic(mnemonic string) ([]byte, error) {
	words := SplitMnemonic(mnemonic)
	if _, ok := wordsToEntropyBits[len(words)]; !ok {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidWordCount, len(words))
	}

	indices, err := w.WordsToIndices(words)
	if err != nil {
		return nil, err
	}
	entropy, checksum, err := UnpackIndices(indices)
	if err != nil {
		return nil, err
	}
	if !VerifyChecksum(entropy, checksum) {
		return nil, ErrChecksumMismatch
	}
	return entropy, nil
}

// IsMnemonicValid returns whether the mnemonic is made of known words and
// carries a valid checksum
func IsMnemonicValid(mnemonic string) bool {
	_, err := ValidateMnemonic(mnemonic)
	return err == nil
}

// MnemonicEntropyBits returns the entropy size in bits encoded by a mnemonic
// of the given word count
func MnemonicEntropyBits(wordCount int) (int, error) {
	bits, ok := wordsToEntropyBits[wordCount]
	if !ok {
		return 0, ErrInvalidWordCount
	}
	return bits, nil
}

// ChecksumBitsLen returns the checksum size in bits embedded in a mnemonic of
// the given word count
func ChecksumBitsLen(wordCount int) (int, error) {
	bits, err := MnemonicEntropyBits(wordCount)
	if err != nil {
		return 0, err
	}
	return bits / 32, nil
}
