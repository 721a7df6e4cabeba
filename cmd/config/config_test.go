package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-yesterday/pkg/dailynotes"
)

func TestFindVault(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".obsidian"), 0755))
	nested := filepath.Join(root, "daily", "2024")
	require.NoError(t, os.MkdirAll(nested, 0755))

	found, ok := FindVault(nested)
	require.True(t, ok)
	assert.Equal(t, root, found)

	_, ok = FindVault(t.TempDir())
	assert.False(t, ok)
}

func TestRuntimeProvider(t *testing.T) {
	viper.Reset()
	t.Cleanup(func() {
		viper.Reset()
		VaultOverride = ""
	})

	VaultOverride = t.TempDir()
	rt := NewRuntime(logrus.New())

	viper.Set("provider", "vault")
	p, err := rt.Provider()
	require.NoError(t, err)
	assert.IsType(t, &dailynotes.VaultProvider{}, p)

	viper.Set("provider", "elsewhere")
	_, err = rt.Provider()
	assert.Error(t, err)
}

func TestRuntimeVaultMissing(t *testing.T) {
	viper.Reset()
	t.Cleanup(func() {
		viper.Reset()
		VaultOverride = ""
	})

	VaultOverride = filepath.Join(t.TempDir(), "missing")
	_, err := NewRuntime(logrus.New()).Vault()
	assert.Error(t, err)
}
