package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-tones/tones/sequence"
)

func TestParsePackedWords(t *testing.T) {
	words, err := parsePackedWords("440,200, 0x8000")
	require.NoError(t, err)
	assert.Equal(t, []uint16{440, 200, sequence.WordEnd}, words)

	_, err = parsePackedWords("440,70000")
	assert.ErrorContains(t, err, "packed word 2")

	_, err = parsePackedWords("abc")
	assert.Error(t, err)
}
