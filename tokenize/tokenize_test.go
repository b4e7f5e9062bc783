package tokenize

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnknownDict(t *testing.T) {
	_, err := New("edict")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "edict")
}

func TestTokenize(t *testing.T) {
	tok, err := New(DictIPA)
	require.NoError(t, err)

	const text = "すもももももももものうち"
	tokens, err := tok.Tokenize(context.Background(), text)
	require.NoError(t, err)
	require.NotEmpty(t, tokens)

	var sb strings.Builder
	for _, tk := range tokens {
		assert.Greater(t, tk.End, tk.Start)
		sb.WriteString(tk.Text)
	}
	assert.Equal(t, text, sb.String())
}

func TestTokenizeEmpty(t *testing.T) {
	tok, err := New("")
	require.NoError(t, err)
	tokens, err := tok.Tokenize(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestTokenizeCancelled(t *testing.T) {
	tok, err := New(DictIPA)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = tok.Tokenize(ctx, "天気")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMergeVerbAuxiliaries(t *testing.T) {
	tokens := []Token{
		{Text: "食べ", Lemma: "食べる", POS: "動詞,自立,*,*", Start: 0, End: 2, Reading: "タベ"},
		{Text: "まし", Lemma: "ます", POS: "助動詞,*,*,*", Start: 2, End: 4, Reading: "マシ"},
		{Text: "た", Lemma: "た", POS: "助動詞,*,*,*", Start: 4, End: 5, Reading: "タ"},
		{Text: "。", Lemma: "。", POS: "記号,句点,*,*", Start: 5, End: 6, Reading: "。"},
	}

	merged := MergeVerbAuxiliaries(tokens)
	require.Len(t, merged, 2)

	verb := merged[0]
	assert.Equal(t, "食べました", verb.Text)
	assert.Equal(t, "タベマシタ", verb.Reading)
	assert.Equal(t, 0, verb.Start)
	assert.Equal(t, 5, verb.End)
	assert.Equal(t, []string{"ます", "た"}, verb.Conjugation)
	require.Len(t, verb.Auxiliaries, 2)

	assert.Equal(t, "。", merged[1].Text)
}

func TestMergeVerbAuxiliariesNoAux(t *testing.T) {
	tokens := []Token{
		{Text: "走る", POS: "動詞,自立,*,*"},
		{Text: "犬", POS: "名詞,一般,*,*"},
	}
	merged := MergeVerbAuxiliaries(tokens)
	require.Len(t, merged, 2)
	assert.Equal(t, "走る", merged[0].Text)
	assert.Empty(t, merged[0].Conjugation)
}

func TestMergeVerbAuxiliariesEmpty(t *testing.T) {
	assert.Empty(t, MergeVerbAuxiliaries(nil))
}
