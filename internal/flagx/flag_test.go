package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-d", "melodica.db", "-x", "other"},
			allowedFlags: []string{"-d", "--database"},
			want:         []string{"-d", "melodica.db"},
		},
		{
			name:         "long flag with equals",
			args:         []string{"--database=alt.db", "-x", "other"},
			allowedFlags: []string{"-d", "--database"},
			want:         []string{"--database=alt.db"},
		},
		{
			name:         "both forms present, order preserved",
			args:         []string{"--database=first.db", "-d", "second.db", "-x", "1"},
			allowedFlags: []string{"-d", "--database"},
			want:         []string{"--database=first.db", "-d", "second.db"},
		},
		{
			name:         "unknown flags and positionals dropped",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-d"},
			want:         []string{},
		},
		{
			name:         "flag without value at end is kept as-is",
			args:         []string{"-d"},
			allowedFlags: []string{"-d"},
			want:         []string{"-d"},
		},
		{
			name:         "flag followed by another flag takes no value",
			args:         []string{"-d", "-l"},
			allowedFlags: []string{"-d"},
			want:         []string{"-d"},
		},
		{
			name:         "multiple allowed flags kept",
			args:         []string{"-l", "debug", "-d", "melodica.db", "--other", "x"},
			allowedFlags: []string{"-d", "-l"},
			want:         []string{"-l", "debug", "-d", "melodica.db"},
		},
		{
			name:         "empty args",
			args:         []string{},
			allowedFlags: []string{"-d"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowedFlags)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"short flag", []string{"app", "-c", "conf.json"}, "conf.json"},
		{"long flag", []string{"app", "-config", "other.json"}, "other.json"},
		{"equals form", []string{"app", "-config=eq.json"}, "eq.json"},
		{"absent", []string{"app", "-d", "melodica.db"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			assert.Equal(t, tt.want, JsonConfigFlags())
		})
	}
}
