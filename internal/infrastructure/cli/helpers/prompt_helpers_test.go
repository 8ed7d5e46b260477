package helpers

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromptForYesNo(t *testing.T) {
	tests := []struct {
		name  string
		input string
		def   bool
		want  bool
	}{
		{name: "yes", input: "y\n", want: true},
		{name: "full yes", input: "YES\n", want: true},
		{name: "no", input: "n\n", def: true, want: false},
		{name: "empty uses default", input: "\n", def: true, want: true},
		{name: "eof uses default", input: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got := PromptForYesNo(&out, strings.NewReader(tt.input), "Overwrite?", tt.def)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Overwrite?")
		})
	}
}
