package config

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	t.Setenv("DEBTIFY_TEST_DIR", "/var/data")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "plain", input: "/tmp/x.db", want: "/tmp/x.db"},
		{name: "env var", input: "$DEBTIFY_TEST_DIR/x.db", want: "/var/data/x.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.input))
		})
	}
}

func TestExpandPathTilde(t *testing.T) {
	got := ExpandPath("~/ledger.db")
	require.NotEqual(t, "~/ledger.db", got)
	assert.True(t, filepath.IsAbs(got))
}

func TestDatabasePathPrecedence(t *testing.T) {
	t.Cleanup(func() { viper.Reset() })

	t.Setenv("DEBTIFY_DB", "/env/debtify.db")
	assert.Equal(t, "/env/debtify.db", DatabasePath())

	viper.Set("database.path", "/configured/debtify.db")
	assert.Equal(t, "/configured/debtify.db", DatabasePath())
}

func TestDatabasePathDefault(t *testing.T) {
	t.Cleanup(func() { viper.Reset() })
	viper.Reset()
	t.Setenv("DEBTIFY_DB", "")

	got := DatabasePath()
	assert.Contains(t, got, "debtify.db")
}
