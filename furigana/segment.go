// Package furigana aligns a Japanese surface form with its kana reading
// and renders bracket-style furigana such as 食[た]べる. The alignment is
// a pure string computation: it never fails, at worst it degrades to the
// unannotated surface.
package furigana

import "github.com/andyroo2000/convo-lab/kana"

// Run is a maximal contiguous substring of a single script class.
type Run struct {
	Text  string
	Class kana.Class
}

// Segment splits s into maximal same-class runs. Concatenating the run
// texts in order reproduces s exactly; no run is empty and no two
// adjacent runs share a class. An empty input yields no runs.
func Segment(s string) []Run {
	if s == "" {
		return nil
	}
	var runs []Run
	var cur []rune
	var curClass kana.Class
	for i, r := range []rune(s) {
		c := kana.Classify(r)
		if i == 0 {
			cur = []rune{r}
			curClass = c
			continue
		}
		if c == curClass {
			cur = append(cur, r)
			continue
		}
		runs = append(runs, Run{Text: string(cur), Class: curClass})
		cur = []rune{r}
		curClass = c
	}
	return append(runs, Run{Text: string(cur), Class: curClass})
}
