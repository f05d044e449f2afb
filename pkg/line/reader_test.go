package line

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "status\r", "status"},
		{"backspace", "statuz\bs\r", "status"},
		{"delete", "pump onn\x7f\r", "pump on"},
		{"backspace at start", "\b\b\x7fpump\r", "pump"},
		{"backspace empties line", "ab\b\b\b\b\r", ""},
		{"ignores control bytes", "ti\x01me\n 1\t2\r", "time 12"},
		{"ignores high bytes", "le\xffvel\r", "level"},
		{"empty", "\r", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(strings.NewReader(tt.input), 0)
			got, err := r.ReadLine()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadLine_Consecutive(t *testing.T) {
	r := NewReader(strings.NewReader("status\rlevel 40\r"), 0)

	first, err := r.ReadLine()
	require.NoError(t, err)
	second, err := r.ReadLine()
	require.NoError(t, err)

	assert.Equal(t, "status", first)
	assert.Equal(t, "level 40", second)
}

func TestReadLine_TruncatesAtCapacity(t *testing.T) {
	input := strings.Repeat("x", MaxChars) + "yz\r"
	r := NewReader(strings.NewReader(input), 0)

	got, err := r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("x", MaxChars), got)

	// The rest of the input starts the next line.
	rest, err := r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "yz", rest)
}

func TestReadLine_FullLineWithoutTerminator(t *testing.T) {
	r := NewReader(strings.NewReader("abcd"), 4)

	got, err := r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "abcd", got)
}

func TestReadLine_SourceError(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte("sta")), 0)

	_, err := r.ReadLine()
	require.Error(t, err)
	assert.ErrorIs(t, err, io.EOF)
}

func TestNewReader_Capacity(t *testing.T) {
	assert.Equal(t, MaxChars, NewReader(strings.NewReader(""), 0).Capacity())
	assert.Equal(t, 16, NewReader(strings.NewReader(""), 16).Capacity())
}
