package flagx

import (
	"os"
	"reflect"
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
			args:         []string{"-u", "http://localhost:8000", "-x", "1"},
			allowedFlags: []string{"-u", "--base-url"},
			want:         []string{"-u", "http://localhost:8000"},
		},
		{
			name:         "long flag with equals",
			args:         []string{"--base-url=http://api.example.com", "-x", "1"},
			allowedFlags: []string{"-u", "--base-url"},
			want:         []string{"--base-url=http://api.example.com"},
		},
		{
			name:         "unknown flags dropped",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-u"},
			want:         []string{},
		},
		{
			name:         "dash token after allowed flag is not a value",
			args:         []string{"-u", "-t"},
			allowedFlags: []string{"-u", "-t"},
			want:         []string{"-u", "-t"},
		},
		{
			name:         "multiple allowed flags keep order",
			args:         []string{"-t", "20s", "-u", "http://localhost", "--other", "x"},
			allowedFlags: []string{"-u", "-t"},
			want:         []string{"-t", "20s", "-u", "http://localhost"},
		},
		{
			name:         "empty args",
			args:         []string{},
			allowedFlags: []string{"-u"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowedFlags)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("FilterArgs() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("short -c with value", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", "/path/short.json"}
		assert.Equal(t, "/path/short.json", JsonConfigFlags())
	})

	t.Run("long -config with value", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", "/path/long.json"}
		assert.Equal(t, "/path/long.json", JsonConfigFlags())
	})

	t.Run("unknown flags are ignored", func(t *testing.T) {
		os.Args = []string{"testbin", "-x", "1", "-y", "2"}
		assert.Empty(t, JsonConfigFlags())
	})

	t.Run("multiple flags, last wins", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", "/path/1.json", "-config", "/path/2.json"}
		assert.Equal(t, "/path/2.json", JsonConfigFlags())
	})
}
