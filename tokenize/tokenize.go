// Package tokenize wraps the kagome morphological tokenizer behind a
// small token model carrying just what reading annotation needs. The
// tokenizer is an explicit value handed to its consumers; construction
// either succeeds or returns an error, there is no package-global
// fallback state.
package tokenize

import (
	"context"
	"fmt"
	"strings"

	"github.com/ikawaha/kagome-dict/dict"
	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome-dict/uni"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Supported system dictionaries.
const (
	DictIPA = "ipa"
	DictUni = "uni"
)

// Token is one morpheme of the input with its dictionary annotations.
// Reading and Pronunciation come from the system dictionary in katakana;
// either may be empty for out-of-vocabulary surfaces.
type Token struct {
	Text          string   `json:"text"`
	Lemma         string   `json:"lemma,omitempty"`
	POS           string   `json:"pos,omitempty"`
	Start         int      `json:"start"`
	End           int      `json:"end"`
	Reading       string   `json:"reading,omitempty"`
	Pronunciation string   `json:"pronunciation,omitempty"`
	Conjugation   []string `json:"conjugation,omitempty"`
	Auxiliaries   []Token  `json:"auxiliaries,omitempty"`
}

// Tokenizer tokenizes Japanese text with a fixed system dictionary.
// Safe for concurrent use.
type Tokenizer struct {
	kg *tokenizer.Tokenizer
}

// New builds a Tokenizer for the named dictionary (DictIPA or DictUni;
// empty means DictIPA).
func New(name string) (*Tokenizer, error) {
	var d *dict.Dict
	switch name {
	case "", DictIPA:
		d = ipa.Dict()
	case DictUni:
		d = uni.Dict()
	default:
		return nil, fmt.Errorf("tokenize: unknown dictionary %q", name)
	}
	kg, err := tokenizer.New(d, tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("tokenize: init kagome: %w", err)
	}
	return &Tokenizer{kg: kg}, nil
}

// Tokenize splits text into tokens in normal mode. Empty text yields no
// tokens.
func (t *Tokenizer) Tokenize(ctx context.Context, text string) ([]Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, nil
	}
	ktoks := t.kg.Tokenize(text)
	out := make([]Token, 0, len(ktoks))
	for _, kt := range ktoks {
		out = append(out, convert(kt))
	}
	return out, nil
}

func convert(kt tokenizer.Token) Token {
	lemma, _ := kt.BaseForm()
	if lemma == "" {
		lemma = kt.Surface
	}
	reading, _ := kt.Reading()
	pron, _ := kt.Pronunciation()
	return Token{
		Text:          kt.Surface,
		Lemma:         lemma,
		POS:           strings.Join(kt.POS(), ","),
		Start:         kt.Start,
		End:           kt.End,
		Reading:       reading,
		Pronunciation: pron,
	}
}

// auxiliary POS prefixes that attach to a preceding verb stem.
var auxiliaryPOS = []string{"助動詞", "動詞,非自立", "動詞,接尾"}

func isAuxiliary(tok Token) bool {
	for _, p := range auxiliaryPOS {
		if strings.HasPrefix(tok.POS, p) {
			return true
		}
	}
	return false
}

// MergeVerbAuxiliaries merges each verb with the auxiliary tokens that
// follow it, so a conjugated form like 食べました is annotated as one
// unit instead of stem plus fragments. Surfaces, readings and
// pronunciations concatenate; the auxiliary lemmas are recorded as the
// conjugation chain.
func MergeVerbAuxiliaries(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for i := 0; i < len(tokens); {
		tok := tokens[i]
		if !strings.HasPrefix(tok.POS, "動詞") {
			out = append(out, tok)
			i++
			continue
		}
		j := i + 1
		for j < len(tokens) && isAuxiliary(tokens[j]) {
			j++
		}
		if j == i+1 {
			out = append(out, tok)
			i++
			continue
		}
		merged := tok
		for _, aux := range tokens[i+1 : j] {
			merged.Text += aux.Text
			merged.Reading += aux.Reading
			merged.Pronunciation += aux.Pronunciation
			merged.Conjugation = append(merged.Conjugation, aux.Lemma)
			merged.Auxiliaries = append(merged.Auxiliaries, aux)
		}
		merged.End = tokens[j-1].End
		out = append(out, merged)
		i = j
	}
	return out
}
