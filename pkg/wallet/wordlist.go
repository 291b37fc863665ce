package wallet

import (
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39/wordlists"
	"golang.org/x/text/unicode/norm"
)

// WordlistSize is the number of words of every BIP39 vocabulary
const WordlistSize = 1 << bitsPerWord

// English is the BIP39 english vocabulary. It is built once when the package
// is loaded and never modified afterwards
var English = mustNewWordlist(wordlists.English)

// Wordlist is an immutable, ordered vocabulary of 2048 words with the reverse
// word->index lookup
type Wordlist struct {
	words []string
	index map[string]uint16
}

// NewWordlist copies words into a new Wordlist. The list must contain exactly
// 2048 unique words
func NewWordlist(words []string) (*Wordlist, error) {
	if len(words) != WordlistSize {
		return nil, ErrInvalidWordlist
	}

	w := &Wordlist{
		words: make([]string, WordlistSize),
		index: make(map[string]uint16, WordlistSize),
	}
	for i, word := range words {
		word = norm.NFKD.String(strings.TrimSpace(word))
		if _, ok := w.index[word]; ok || word == "" {
			return nil, ErrInvalidWordlist
		}
		w.words[i] = word
		w.index[word] = uint16(i)
	}
	return w, nil
}

func mustNewWordlist(words []string) *Wordlist {
	w, err := NewWordlist(words)
	if err != nil {
		panic(err)
	}
	return w
}

// Word returns the word at the given index
func (w *Wordlist) Word(index uint16) (string, bool) {
	if int(index) >= len(w.words) {
		return "", false
	}
	return w.words[index], true
}

// Index returns the position of word in the vocabulary
func (w *Wordlist) Index(word string) (uint16, bool) {
	i, ok := w.index[word]
	return i, ok
}

// IndicesToWords maps every 11-bit index to its word
func (w *Wordlist) IndicesToWords(indices []uint16) ([]string, error) {
	words := make([]string, 0, len(indices))
	for i, index := range indices {
		word, ok := w.Word(index)
		if !ok {
			return nil, fmt.Errorf(
				"%w: index %d at position %d exceeds %d",
				ErrInvalidParameter, index, i, maxWordIndex,
			)
		}
		words = append(words, word)
	}
	return words, nil
}

// WordsToIndices maps every word to its index. Words are normalized before
// the lookup
func (w *Wordlist) WordsToIndices(words []string) ([]uint16, error) {
	normalized := SplitMnemonic(JoinMnemonic(words))
	indices := make([]uint16, 0, len(normalized))
	for i, word := range normalized {
		index, ok := w.Index(word)
		if !ok {
			return nil, fmt.Errorf("%w: %q at position %d", ErrUnknownWord, word, i)
		}
		indices = append(indices, index)
	}
	return indices, nil
}

// IndicesToWords maps indices to words of the English vocabulary
func IndicesToWords(indices []uint16) ([]string, error) {
	return English.IndicesToWords(indices)
}

// WordsToIndices maps words of the English vocabulary to their indices
func WordsToIndices(words []string) ([]uint16, error) {
	return English.WordsToIndices(words)
}

// NormalizeMnemonic returns the canonical form of a mnemonic: NFKD unicode
// normalization, lower case, words separated by a single space
func NormalizeMnemonic(mnemonic string) string {
	lower := strings.ToLower(norm.NFKD.String(mnemonic))
	return strings.Join(strings.Fields(lower), " ")
}

// JoinMnemonic returns the canonical string form of a list of words
func JoinMnemonic(words []string) string {
	return NormalizeMnemonic(strings.Join(words, " "))
}

// SplitMnemonic splits a mnemonic in its normalized words
func SplitMnemonic(mnemonic string) []string {
	normalized := NormalizeMnemonic(mnemonic)
	if normalized == "" {
		return nil
	}
	return strings.Split(normalized, " ")
}
