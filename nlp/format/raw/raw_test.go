package raw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nlp "arcstd/nlp/types"
)

const TEST_RAW = "the\ncat\nsat\n\nhello\n\n\nlast\nline"

func TestRead(t *testing.T) {
	sents, err := Read(strings.NewReader(TEST_RAW), 0)
	require.NoError(t, err)
	require.Len(t, sents, 4)
	assert.Equal(t, nlp.Sentence{"the", "cat", "sat"}, sents[0])
	assert.Equal(t, nlp.Sentence{"hello"}, sents[1])
	assert.Empty(t, sents[2], "consecutive empty lines delimit an empty sentence")
	assert.Equal(t, nlp.Sentence{"last", "line"}, sents[3])
}

func TestReadLimit(t *testing.T) {
	sents, err := Read(strings.NewReader(TEST_RAW), 2)
	require.NoError(t, err)
	assert.Len(t, sents, 2)
}

func TestWriteRoundTrip(t *testing.T) {
	sents := []nlp.Sentence{{"a", "b"}, {"c"}}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sents))
	assert.Equal(t, "a\nb\n\nc\n\n", buf.String())

	read, err := Read(&buf, 0)
	require.NoError(t, err)
	assert.Equal(t, sents, read)
}
