// Package kana classifies Japanese runes by script and converts between
// the two kana syllabaries. All functions are pure and total.
package kana

import "golang.org/x/text/width"

// Class identifies the script class of a rune.
type Class int

const (
	ClassOther Class = iota
	ClassKanji
	ClassKana
)

func (c Class) String() string {
	switch c {
	case ClassKanji:
		return "kanji"
	case ClassKana:
		return "kana"
	default:
		return "other"
	}
}

// IsKanji reports whether r is a CJK ideograph. Covers the unified
// ideograph blocks, extensions A-E and both compatibility blocks.
func IsKanji(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) || // CJK Unified Ideographs
		(r >= 0x3400 && r <= 0x4DBF) || // Extension A
		(r >= 0x20000 && r <= 0x2A6DF) || // Extension B
		(r >= 0x2A700 && r <= 0x2B73F) || // Extension C
		(r >= 0x2B740 && r <= 0x2B81F) || // Extension D
		(r >= 0x2B820 && r <= 0x2CEAF) || // Extension E
		(r >= 0xF900 && r <= 0xFAFF) || // Compatibility Ideographs
		(r >= 0x2F800 && r <= 0x2FA1F) // Compatibility Ideographs Supplement
}

// IsHiragana reports whether r is in the hiragana block.
func IsHiragana(r rune) bool {
	return r >= 0x3040 && r <= 0x309F
}

// IsKatakana reports whether r is in the katakana block.
func IsKatakana(r rune) bool {
	return r >= 0x30A0 && r <= 0x30FF
}

// IsKana reports whether r is hiragana or katakana.
func IsKana(r rune) bool {
	return IsHiragana(r) || IsKatakana(r)
}

// Classify maps a rune to its script class. Anything that is neither a
// kanji nor a kana (Latin, digits, punctuation, whitespace) is ClassOther.
func Classify(r rune) Class {
	switch {
	case IsKanji(r):
		return ClassKanji
	case IsKana(r):
		return ClassKana
	default:
		return ClassOther
	}
}

// ToHiragana converts katakana to hiragana character by character. The two
// blocks are parallel, offset by 0x60. Everything outside the katakana
// block passes through unchanged, so the function is idempotent.
func ToHiragana(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		if IsKatakana(r) {
			runes[i] = r - 0x60
		}
	}
	return string(runes)
}

// FoldWidth maps half-width katakana (and other width variants) to their
// canonical full-width forms. Tokenizer dictionaries and the lexicon only
// know the full-width forms.
func FoldWidth(s string) string {
	return width.Fold.String(s)
}
