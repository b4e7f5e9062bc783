// Package lexicon holds whole-word reading overrides for words whose
// conventional reading is not compositional (jukujikun such as 果物 or
// 大人). The table is compiled into the binary; lookups are keyed on the
// width-folded, hiragana-normalized surface so callers may pass any
// script or width variant.
package lexicon

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	_ "embed"

	"github.com/andyroo2000/convo-lab/kana"
)

//go:embed jukujikun.txt
var jukujikunData string

// Entry is one surface form with its conventional whole-word reading.
type Entry struct {
	Surface string
	Reading string
}

// Lexicon is an immutable surface → reading index.
type Lexicon struct {
	entries map[string]Entry
}

// Load builds the lexicon from the embedded jukujikun table. The table
// ships inside the binary, so a malformed entry is a programming error
// and Load panics rather than returning it.
func Load() *Lexicon {
	lex, err := Parse(strings.NewReader(jukujikunData))
	if err != nil {
		panic(fmt.Sprintf("lexicon: embedded table: %v", err))
	}
	return lex
}

// Parse reads a tab-separated surface/reading table. Blank lines and
// lines starting with # are skipped. Readings are normalized to hiragana.
func Parse(r io.Reader) (*Lexicon, error) {
	entries := make(map[string]Entry)
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Split(text, "\t")
		if len(fields) != 2 || fields[0] == "" || fields[1] == "" {
			return nil, fmt.Errorf("lexicon: line %d: want surface<TAB>reading, got %q", line, text)
		}
		e := Entry{
			Surface: fields[0],
			Reading: kana.ToHiragana(fields[1]),
		}
		entries[normalizeKey(fields[0])] = e
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("lexicon: read: %w", err)
	}
	return &Lexicon{entries: entries}, nil
}

// Lookup returns the entry for surface, if any. The surface is matched
// irrespective of width and syllabary variants.
func (l *Lexicon) Lookup(surface string) (Entry, bool) {
	e, ok := l.entries[normalizeKey(surface)]
	return e, ok
}

// Len returns the number of entries.
func (l *Lexicon) Len() int {
	return len(l.entries)
}

func normalizeKey(s string) string {
	return kana.ToHiragana(kana.FoldWidth(s))
}
