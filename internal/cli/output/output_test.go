package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		mode Mode
		want Mode
	}{
		// A buffer is never a terminal.
		{ModeAuto, ModeMarkdown},
		{"", ModeMarkdown},
		{ModeText, ModeText},
		{ModeJSON, ModeJSON},
		{ModeMarkdown, ModeMarkdown},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			r := NewRenderer(&bytes.Buffer{}, &bytes.Buffer{}, tt.mode)
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestRendererWrites(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRenderer(&out, &errOut, ModeText)

	r.Println("hello")
	r.Printf("%d items\n", 3)
	require.NoError(t, r.JSON(map[string]int{"a": 1}))
	r.Success("done")
	r.Warning("careful")

	assert.Equal(t, "hello\n3 items\n{\n  \"a\": 1\n}\n", out.String())
	// Styles render without escapes on a non-terminal writer.
	assert.Equal(t, "✓ done\n! careful\n", errOut.String())
}
