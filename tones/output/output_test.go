package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_None(t *testing.T) {
	out, err := New(KindNone, &bytes.Buffer{}, 44100)
	require.NoError(t, err)

	null, ok := out.(*Null)
	require.True(t, ok)

	require.NoError(t, null.Start())
	assert.True(t, null.IsStarted())
	null.Stop()
	assert.False(t, null.IsStarted())
	null.Close()
}

func TestNew_Unknown(t *testing.T) {
	_, err := New("speaker", &bytes.Buffer{}, 44100)
	assert.ErrorContains(t, err, "unknown audio output")
}
