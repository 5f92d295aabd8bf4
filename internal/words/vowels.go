// internal/words/vowels.go
//
// Vowel-reveal protocol helpers. The player sees the hidden word with its
// vowels blanked out and types vowels that fill the blanks left to right.

package words

import (
	"errors"
	"strings"
)

// Blank is the placeholder shown for a hidden vowel.
const Blank = '_'

// ErrVowelCount is returned by Fill when the number of guessed vowels does not
// match the number of blanks.
var ErrVowelCount = errors.New("wrong number of vowels")

// ErrNotVowel is returned by Fill when a guessed letter is not a vowel.
var ErrNotVowel = errors.New("not a vowel")

// IsVowel reports whether r is one of a, e, i, o, u (either case).
func IsVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
		return true
	}
	return false
}

// VowelCount returns how many vowels word contains.
func VowelCount(word string) int {
	n := 0
	for _, r := range word {
		if IsVowel(r) {
			n++
		}
	}
	return n
}

// Mask lowercases word and replaces each vowel with Blank.
func Mask(word string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(word) {
		if IsVowel(r) {
			b.WriteRune(Blank)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Fill writes vowels into the vowel positions of word in order and returns the
// reconstructed guess. Surrounding whitespace in vowels is ignored.
func Fill(word, vowels string) (string, error) {
	guess := []rune(strings.ToLower(strings.TrimSpace(vowels)))
	for _, r := range guess {
		if !IsVowel(r) {
			return "", ErrNotVowel
		}
	}
	letters := []rune(strings.ToLower(word))
	if len(guess) != VowelCount(word) {
		return "", ErrVowelCount
	}
	next := 0
	for i, r := range letters {
		if IsVowel(r) {
			letters[i] = guess[next]
			next++
		}
	}
	return string(letters), nil
}
