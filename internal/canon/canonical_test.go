package canon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshal_SortsKeys(t *testing.T) {
	got, err := Marshal(map[string]any{"b": 1, "a": "x", "c": []any{true, int64(2)}})
	require.NoError(t, err)
	assert.Equal(t, `{"a":"x","b":1,"c":[true,2]}`, string(got))
}

func TestMarshal_UTF16KeyOrder(t *testing.T) {
	// U+1F600 encodes as the surrogate 0xD83D, which sorts before U+FF61.
	// UTF-8 byte order is the reverse.
	got, err := Marshal(map[string]any{"\uff61": 1, "\U0001F600": 2})
	require.NoError(t, err)
	assert.Equal(t, "{\"\U0001F600\":2,\"\uff61\":1}", string(got))
}

func TestMarshal_NoHTMLEscaping(t *testing.T) {
	got, err := Marshal("<a&b>")
	require.NoError(t, err)
	assert.Equal(t, `"<a&b>"`, string(got))
}

func TestMarshal_EscapesControlCharacters(t *testing.T) {
	got, err := Marshal("a\"b\\c\nd\x01")
	require.NoError(t, err)
	assert.Equal(t, `"a\"b\\c\nd\u0001"`, string(got))
}

func TestMarshal_LineSeparatorNotEscaped(t *testing.T) {
	got, err := Marshal("a\u2028b")
	require.NoError(t, err)
	assert.Equal(t, "\"a\u2028b\"", string(got))
}

func TestMarshal_NFC(t *testing.T) {
	got, err := Marshal("e\u0301")
	require.NoError(t, err)
	assert.Equal(t, "\"\u00e9\"", string(got))
}

func TestMarshal_Rejects(t *testing.T) {
	_, err := Marshal(1.5)
	assert.Error(t, err)

	_, err = Marshal(nil)
	assert.Error(t, err)

	_, err = Marshal(map[string]any{"x": []any{struct{}{}}})
	assert.ErrorContains(t, err, `object["x"]: array[0]`)
}

func TestFloat_ShortestRoundTrip(t *testing.T) {
	assert.Equal(t, "0.1", Float(0.1))
	assert.Equal(t, "125", Float(125))
	assert.Equal(t, "-3.5e-07", Float(-3.5e-7))
}
