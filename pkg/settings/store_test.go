package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-yesterday/pkg/models"
)

func TestOpenMissingFileUsesDefaults(t *testing.T) {
	store, err := Open(PathForVault(t.TempDir()))
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSettings, store.Settings())
}

func TestOpenPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"folder": "daily", "dateFormat": "DD-MM-YYYY"}`), 0644))

	store, err := Open(path)
	require.NoError(t, err)

	s := store.Settings()
	assert.Equal(t, "daily", s.Folder)
	assert.Equal(t, "DD-MM-YYYY", s.DateFormat)
	assert.Equal(t, "", s.Template)
	assert.True(t, s.AutoCreateYesterday)
}

func TestOpenInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"folder": `), 0644))

	_, err := Open(path)
	assert.Error(t, err)
}

func TestUpdatePersists(t *testing.T) {
	root := t.TempDir()
	path := PathForVault(root)

	store, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, store.Update("autoCreateYesterday", "false"))
	require.NoError(t, store.Update("FOLDER", "journal/daily"))
	require.NoError(t, store.Update("template", "templates/daily"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var onDisk map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &onDisk))
	assert.Equal(t, false, onDisk["autoCreateYesterday"])
	assert.Equal(t, "journal/daily", onDisk["folder"])
	assert.Equal(t, "templates/daily", onDisk["template"])

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, store.Settings(), reopened.Settings())
	assert.False(t, reopened.Settings().AutoCreateYesterday)
}

func TestUpdateRejectsBadInput(t *testing.T) {
	store, err := Open(PathForVault(t.TempDir()))
	require.NoError(t, err)

	err = store.Update("colour", "blue")
	assert.Error(t, err)

	err = store.Update("autoCreateYesterday", "sometimes")
	assert.Error(t, err)
	assert.True(t, store.Settings().AutoCreateYesterday, "failed update must not change settings")

	_, statErr := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(statErr), "failed update must not persist")
}
