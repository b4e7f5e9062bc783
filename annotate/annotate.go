// Package annotate runs the per-sentence furigana pipeline: tokenize the
// text, pick a reading for each token, consult the jukujikun lexicon and
// hand each (surface, reading) pair to the aligner. It is the only place
// that decides the compound-reading flag.
package annotate

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/andyroo2000/convo-lab/furigana"
	"github.com/andyroo2000/convo-lab/kana"
	"github.com/andyroo2000/convo-lab/lexicon"
	"github.com/andyroo2000/convo-lab/tokenize"
)

// Result is the annotated form of one input text. Kanji echoes the input,
// Kana is the plain hiragana reading, Furigana carries the bracket
// annotations.
type Result struct {
	ID       string `json:"id,omitempty"`
	Kanji    string `json:"kanji"`
	Kana     string `json:"kana"`
	Furigana string `json:"furigana"`
}

// Annotator annotates Japanese text. The tokenizer is optional: an
// Annotator built without one still answers, echoing text unannotated,
// so callers can run degraded instead of refusing to start.
type Annotator struct {
	tok *tokenize.Tokenizer
	lex *lexicon.Lexicon
	log *zap.Logger
}

// New builds an Annotator. tok may be nil (degraded mode); lex and log
// must not be.
func New(tok *tokenize.Tokenizer, lex *lexicon.Lexicon, log *zap.Logger) *Annotator {
	return &Annotator{tok: tok, lex: lex, log: log}
}

// Ready reports whether a tokenizer is available. When false, Annotate
// passes text through untouched.
func (a *Annotator) Ready() bool {
	return a.tok != nil
}

// Annotate produces the kanji/kana/furigana triple for text. Per-token
// problems (missing readings, readings that disagree with the surface)
// degrade to the plain surface for that token; Annotate only fails when
// ctx does.
func (a *Annotator) Annotate(ctx context.Context, text string) (Result, error) {
	res := Result{ID: uuid.NewString(), Kanji: text}
	if !a.Ready() {
		res.Kana = text
		res.Furigana = text
		return res, nil
	}

	tokens, err := a.tok.Tokenize(ctx, text)
	if err != nil {
		return Result{}, fmt.Errorf("annotate: %w", err)
	}
	tokens = tokenize.MergeVerbAuxiliaries(tokens)

	var furi, plain []byte
	for _, tok := range tokens {
		reading := tok.Reading
		if reading == "" {
			reading = tok.Pronunciation
		}
		reading = kana.ToHiragana(kana.FoldWidth(reading))

		compound := false
		if e, ok := a.lex.Lookup(tok.Text); ok {
			reading = e.Reading
			compound = true
		}

		if reading == "" {
			// Out-of-vocabulary surface. Emit it untouched; it only
			// contributes to the plain reading if it is already kana.
			a.log.Debug("token without reading", zap.String("surface", tok.Text))
			furi = append(furi, tok.Text...)
			if !containsKanji(tok.Text) {
				plain = append(plain, kana.ToHiragana(tok.Text)...)
			}
			continue
		}

		furi = append(furi, furigana.Align(tok.Text, reading, compound)...)
		plain = append(plain, reading...)
	}

	res.Kana = string(plain)
	res.Furigana = string(furi)
	return res, nil
}

func containsKanji(s string) bool {
	for _, r := range s {
		if kana.IsKanji(r) {
			return true
		}
	}
	return false
}
