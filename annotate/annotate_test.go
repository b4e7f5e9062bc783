package annotate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/andyroo2000/convo-lab/furigana"
	"github.com/andyroo2000/convo-lab/lexicon"
	"github.com/andyroo2000/convo-lab/tokenize"
)

func newTestAnnotator(t *testing.T) *Annotator {
	t.Helper()
	tok, err := tokenize.New(tokenize.DictIPA)
	require.NoError(t, err)
	return New(tok, lexicon.Load(), zap.NewNop())
}

func TestAnnotate(t *testing.T) {
	ann := newTestAnnotator(t)

	tests := []struct {
		name         string
		text         string
		wantFurigana string
		wantKana     string
	}{
		{"copula sentence", "天気です", "天気[てんき]です", "てんきです"},
		{"merged conjugation", "食べました", "食[た]べました", "たべました"},
		{"jukujikun from lexicon", "果物", "果物[くだもの]", "くだもの"},
		{"all kana passes through", "こんにちは", "こんにちは", "こんにちは"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ann.Annotate(context.Background(), tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.text, res.Kanji)
			assert.Equal(t, tt.wantFurigana, res.Furigana)
			assert.Equal(t, tt.wantKana, res.Kana)
			assert.NotEmpty(t, res.ID)
		})
	}
}

// Whatever the tokenizer produces, the furigana must strip back to the
// input text.
func TestAnnotateRoundTrip(t *testing.T) {
	ann := newTestAnnotator(t)

	texts := []string{
		"今日は良い天気です",
		"買い物に行きました",
		"入見内川の水位が高まっている",
		"ABC123と漢字",
	}
	for _, text := range texts {
		res, err := ann.Annotate(context.Background(), text)
		require.NoError(t, err)
		assert.Equal(t, text, furigana.Strip(res.Furigana), "text %q", text)
	}
}

func TestAnnotateEmpty(t *testing.T) {
	ann := newTestAnnotator(t)
	res, err := ann.Annotate(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, res.Kanji)
	assert.Empty(t, res.Furigana)
}

func TestAnnotateCancelled(t *testing.T) {
	ann := newTestAnnotator(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ann.Annotate(ctx, "天気")
	assert.ErrorIs(t, err, context.Canceled)
}

// Without a tokenizer the annotator still answers, echoing the text.
func TestAnnotateDegraded(t *testing.T) {
	ann := New(nil, lexicon.Load(), zap.NewNop())
	assert.False(t, ann.Ready())

	res, err := ann.Annotate(context.Background(), "今日は良い天気です")
	require.NoError(t, err)
	assert.Equal(t, "今日は良い天気です", res.Kanji)
	assert.Equal(t, "今日は良い天気です", res.Furigana)
	assert.Equal(t, "今日は良い天気です", res.Kana)
}
