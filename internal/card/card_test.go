package card

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SkipsHeaderAndBlankLines(t *testing.T) {
	t.Parallel()

	text := `word1,word2,word3,word4,word5
apple,banana,cherry,grape,melon

dog,cat,horse,sheep,goat
`
	cards := Parse(text)
	require.Len(t, cards, 2)
	assert.Equal(t, Card{"apple", "banana", "cherry", "grape", "melon"}, cards[0])
	assert.Equal(t, Card{"dog", "cat", "horse", "sheep", "goat"}, cards[1])
}

func TestParse_DropsShortRowsAndTruncatesLongOnes(t *testing.T) {
	t.Parallel()

	text := `h1,h2,h3,h4,h5
only,four,words,here
one,two,three,four,five,six,seven`

	cards := Parse(text)
	require.Len(t, cards, 1)
	assert.Equal(t, Card{"one", "two", "three", "four", "five"}, cards[0])
}

func TestParse_QuotedFields(t *testing.T) {
	t.Parallel()

	text := `h1,h2,h3,h4,h5
"rock, paper","new york",plain,"a,b,c",last`

	cards := Parse(text)
	require.Len(t, cards, 1)
	assert.Equal(t, Card{"rock, paper", "new york", "plain", "a,b,c", "last"}, cards[0])
}

func TestParse_QuoteTogglesMidField(t *testing.T) {
	t.Parallel()

	// No escaped-quote handling: quotes simply toggle capture.
	text := `h1,h2,h3,h4,h5
ab"cd"ef,w2,w3,w4,w5`

	cards := Parse(text)
	require.Len(t, cards, 1)
	assert.Equal(t, "abcdef", cards[0][0])
}

func TestParse_TrimsWhitespace(t *testing.T) {
	t.Parallel()

	text := `h1,h2,h3,h4,h5
 a , b ,c , d ,  e  `

	cards := Parse(text)
	require.Len(t, cards, 1)
	assert.Equal(t, Card{"a", "b", "c", "d", "e"}, cards[0])
}

func TestLoad(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "cards.csv")
	content := "h1,h2,h3,h4,h5\na,b,c,d,e\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cards, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, cards, 1)

	_, err = Load(filepath.Join(tmpDir, "missing.csv"))
	assert.Error(t, err)
}
