package furigana

import (
	"strings"

	"github.com/andyroo2000/convo-lab/kana"
)

// Align distributes reading across the kanji runs of surface and returns
// the surface with each kanji run followed by its reading share in
// brackets. Kana and other runs appear verbatim. The reading may be given
// in either syllabary; it is folded to hiragana first.
//
// compound marks a jukujikun reading that belongs to the whole word and
// cannot be split per kanji; it only matters for a surface that is a
// single kanji run, which is then bracketed as one unit. A single kanji
// run is bracketed whole in any case, since without interleaved kana
// there is no anchor to split the reading on.
//
// Align is total: for an empty surface or reading it returns the surface
// unchanged, and a reading that disagrees with the surface degrades to a
// best-effort annotation rather than an error. Stripping the brackets
// from the result always recovers the surface exactly.
func Align(surface, reading string, compound bool) string {
	if surface == "" || reading == "" {
		return surface
	}

	read := []rune(kana.ToHiragana(reading))
	runs := Segment(surface)

	hasKanji := false
	for _, run := range runs {
		if run.Class == kana.ClassKanji {
			hasKanji = true
			break
		}
	}
	// All kana or symbols: nothing to attribute a reading to.
	if !hasKanji {
		return surface
	}

	// Jukujikun: the whole word carries one indivisible reading.
	if compound && len(runs) == 1 && runs[0].Class == kana.ClassKanji {
		return surface + "[" + string(read) + "]"
	}

	// A lone kanji run without interleaved kana has no anchor to split
	// its reading on, so it is bracketed whole even without the flag.
	if len(runs) == 1 {
		return surface + "[" + string(read) + "]"
	}

	// Kanji interleaved with kana. Walk the runs left to right with a
	// cursor into the reading. Okurigana in the surface reappears
	// literally in the reading, so the kana run following a kanji run
	// anchors where that kanji run's reading ends.
	var b strings.Builder
	pos := 0
	for i, run := range runs {
		switch run.Class {
		case kana.ClassKanji:
			end := len(read)
			if i+1 < len(runs) && runs[i+1].Class == kana.ClassKana {
				anchor := []rune(kana.ToHiragana(runs[i+1].Text))
				if p := indexRunes(read, anchor, pos); p >= 0 {
					end = p
				}
			}
			b.WriteString(run.Text)
			b.WriteByte('[')
			b.WriteString(string(read[pos:end]))
			b.WriteByte(']')
			pos = end
		case kana.ClassKana:
			b.WriteString(run.Text)
			// Consume the matching stretch of the reading. On a
			// mismatch the cursor stays put and later runs work
			// with whatever reading remains.
			norm := []rune(kana.ToHiragana(run.Text))
			if hasRunesAt(read, norm, pos) {
				pos += len(norm)
			}
		default:
			b.WriteString(run.Text)
		}
	}
	return b.String()
}

// Strip removes every bracketed annotation from s, recovering the plain
// surface form. Unbalanced closing brackets pass through.
func Strip(s string) string {
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '[':
			depth++
		case r == ']' && depth > 0:
			depth--
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// indexRunes returns the first index at or after from where sub occurs in
// s, or -1.
func indexRunes(s, sub []rune, from int) int {
	for i := from; i+len(sub) <= len(s); i++ {
		if hasRunesAt(s, sub, i) {
			return i
		}
	}
	return -1
}

// hasRunesAt reports whether s has sub starting at index at.
func hasRunesAt(s, sub []rune, at int) bool {
	if at < 0 || at+len(sub) > len(s) {
		return false
	}
	for i, r := range sub {
		if s[at+i] != r {
			return false
		}
	}
	return true
}
