package wallet

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vulpemventures/go-bip39"
	"pgregory.net/rapid"
)

var mnemonicFixtures = []struct {
	entropy  []byte
	mnemonic string
}{
	{
		make([]byte, 16),
		"abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about",
	},
	{
		bytes.Repeat([]byte{0x7f}, 16),
		"legal winner thank year wave sausage worth useful legal winner thank yellow",
	},
	{
		bytes.Repeat([]byte{0x80}, 16),
		"letter advice cage absurd amount doctor acoustic avoid letter advice cage above",
	},
	{
		bytes.Repeat([]byte{0xff}, 16),
		"zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo wrong",
	},
	{
		make([]byte, 32),
		"abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon " +
			"abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon art",
	},
}

func TestMnemonicFromEntropy(t *testing.T) {
	for _, tt := range mnemonicFixtures {
		mnemonic, err := MnemonicFromEntropy(tt.entropy)
		require.NoError(t, err)
		assert.Equal(t, tt.mnemonic, strings.Join(mnemonic, " "))

		entropy, err := ValidateMnemonic(tt.mnemonic)
		require.NoError(t, err)
		assert.Equal(t, tt.entropy, entropy)
	}
}

func TestNewMnemonic(t *testing.T) {
	tests := []struct {
		entropySize int
		words       int
	}{
		{0, 12},
		{128, 12},
		{160, 15},
		{192, 18},
		{224, 21},
		{256, 24},
	}

	for _, tt := range tests {
		mnemonic, err := NewMnemonic(NewMnemonicOpts{EntropySize: tt.entropySize})
		require.NoError(t, err)
		assert.Len(t, mnemonic, tt.words)
		assert.True(t, IsMnemonicValid(strings.Join(mnemonic, " ")))
	}
}

func TestNewMnemonicWithRand(t *testing.T) {
	mnemonic, err := NewMnemonic(NewMnemonicOpts{
		Rand: bytes.NewReader(bytes.Repeat([]byte{0x7f}, 16)),
	})
	require.NoError(t, err)
	assert.Equal(t, mnemonicFixtures[1].mnemonic, strings.Join(mnemonic, " "))
}

func TestFailingNewMnemonic(t *testing.T) {
	tests := []struct {
		opts NewMnemonicOpts
		err  error
	}{
		{NewMnemonicOpts{EntropySize: -1}, ErrInvalidEntropySize},
		{NewMnemonicOpts{EntropySize: 127}, ErrInvalidEntropySize},
		{NewMnemonicOpts{EntropySize: 130}, ErrInvalidEntropySize},
		{NewMnemonicOpts{EntropySize: 257}, ErrInvalidEntropySize},
		{NewMnemonicOpts{EntropySize: 288}, ErrInvalidEntropySize},
		{NewMnemonicOpts{Rand: bytes.NewReader(nil)}, ErrEntropyUnavailable},
		{NewMnemonicOpts{Rand: failingReader{}}, ErrEntropyUnavailable},
	}

	for _, tt := range tests {
		mnemonic, err := NewMnemonic(tt.opts)
		assert.ErrorIs(t, err, tt.err)
		assert.Nil(t, mnemonic)
	}
}

func TestFailingValidateMnemonic(t *testing.T) {
	tests := []struct {
		name     string
		mnemonic string
		err      error
	}{
		{"empty", "", ErrInvalidWordCount},
		{"11 words", "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about", ErrInvalidWordCount},
		{"13 words", "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about", ErrInvalidWordCount},
		{"unknown word", "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abouts", ErrUnknownWord},
		{"bad checksum", "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon", ErrChecksumMismatch},
		{"all ones bad checksum", "zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo", ErrChecksumMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entropy, err := ValidateMnemonic(tt.mnemonic)
			assert.ErrorIs(t, err, tt.err)
			assert.ErrorIs(t, err, ErrInvalidMnemonic)
			assert.Nil(t, entropy)
			assert.False(t, IsMnemonicValid(tt.mnemonic))
		})
	}
}

func TestUnknownWordPosition(t *testing.T) {
	_, err := ValidateMnemonic("abandon abandon abandon bitcoin abandon abandon abandon abandon abandon abandon abandon about")
	require.ErrorIs(t, err, ErrUnknownWord)
	assert.Contains(t, err.Error(), `"bitcoin" at position 3`)
}

func TestValidateMnemonicNormalization(t *testing.T) {
	mnemonic := "  ABANDON abandon\tabandon abandon abandon abandon abandon abandon\n" +
		"abandon   abandon abandon About  "
	entropy, err := ValidateMnemonic(mnemonic)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 16), entropy)
}

func TestMnemonicEntropyBits(t *testing.T) {
	for words, bits := range wordsToEntropyBits {
		got, err := MnemonicEntropyBits(words)
		require.NoError(t, err)
		assert.Equal(t, bits, got)

		checksumBits, err := ChecksumBitsLen(words)
		require.NoError(t, err)
		assert.Equal(t, bits/32, checksumBits)
		// ENT + CS is always 11 bits per word
		assert.Equal(t, words*bitsPerWord, bits+checksumBits)
	}

	for _, words := range []int{0, 1, 11, 13, 25} {
		_, err := MnemonicEntropyBits(words)
		assert.ErrorIs(t, err, ErrInvalidWordCount)
		_, err = ChecksumBitsLen(words)
		assert.ErrorIs(t, err, ErrInvalidWordCount)
	}
}

func TestMnemonicMatchesBip39(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		bits := rapid.SampledFrom(entropySizes).Draw(t, "bits")
		entropy := rapid.SliceOfN(rapid.Byte(), bits/8, bits/8).Draw(t, "entropy")

		mnemonic, err := MnemonicFromEntropy(entropy)
		require.NoError(t, err)
		expected, err := bip39.NewMnemonic(entropy)
		require.NoError(t, err)
		require.Equal(t, expected, strings.Join(mnemonic, " "))

		decoded, err := ValidateMnemonic(expected)
		require.NoError(t, err)
		require.Equal(t, entropy, decoded)
	})
}

func TestSingleWordChangeIsDetected(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		entropy := rapid.SliceOfN(rapid.Byte(), 16, 16).Draw(t, "entropy")
		mnemonic, err := MnemonicFromEntropy(entropy)
		require.NoError(t, err)

		position := rapid.IntRange(0, len(mnemonic)-1).Draw(t, "position")
		index := rapid.Uint16Range(0, maxWordIndex).Draw(t, "index")
		word, _ := English.Word(index)
		if word == mnemonic[position] {
			t.Skip("same word")
		}
		mnemonic[position] = word

		// The corrupted mnemonic is either rejected or decodes to different
		// entropy, never silently to the original one
		decoded, err := ValidateMnemonic(strings.Join(mnemonic, " "))
		if err != nil {
			require.ErrorIs(t, err, ErrChecksumMismatch)
			return
		}
		require.NotEqual(t, entropy, decoded)
		require.True(t, bip39.IsMnemonicValid(strings.Join(mnemonic, " ")))
	})
}
