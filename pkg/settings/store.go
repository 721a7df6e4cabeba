// Package settings persists the yesterday note settings inside the vault,
// next to the data of the host's other plugins.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/mattsolo1/grove-yesterday/pkg/models"
)

// PluginID names the plugin data folder under .obsidian/plugins.
const PluginID = "yesterday-note"

// PathForVault returns where settings live for the vault at root.
func PathForVault(root string) string {
	return filepath.Join(root, ".obsidian", "plugins", PluginID, "data.json")
}

// Store owns the settings for the lifetime of the process. Every change made
// through Update is written back immediately.
type Store struct {
	path     string
	settings models.Settings
}

// Open loads the settings at path. A missing file yields the defaults.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the settings file location.
func (s *Store) Path() string {
	return s.path
}

// Settings returns a copy of the current settings.
func (s *Store) Settings() models.Settings {
	return s.settings
}

// Load (re)reads the settings file, filling missing keys from the defaults.
func (s *Store) Load() error {
	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("json")
	v.SetDefault("dateFormat", models.DefaultSettings.DateFormat)
	v.SetDefault("folder", models.DefaultSettings.Folder)
	v.SetDefault("template", models.DefaultSettings.Template)
	v.SetDefault("autoCreateYesterday", models.DefaultSettings.AutoCreateYesterday)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read settings %s: %w", s.path, err)
		}
	}

	var loaded models.Settings
	if err := v.Unmarshal(&loaded); err != nil {
		return fmt.Errorf("decode settings: %w", err)
	}
	s.settings = loaded
	return nil
}

// Save writes the settings file, creating the plugin folder when needed.
func (s *Store) Save() error {
	data, err := json.MarshalIndent(s.settings, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace settings: %w", err)
	}
	return nil
}

// Update sets a single field and persists the result. Values are decoded
// loosely, so "false" or "0" work for autoCreateYesterday.
func (s *Store) Update(field string, value interface{}) error {
	key, ok := canonicalField(field)
	if !ok {
		return fmt.Errorf("unknown setting %q (valid: %s)", field, strings.Join(models.SettingsFields, ", "))
	}

	next := s.settings
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &next,
	})
	if err != nil {
		return fmt.Errorf("create decoder: %w", err)
	}
	if err := decoder.Decode(map[string]interface{}{key: value}); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}

	s.settings = next
	return s.Save()
}

func canonicalField(field string) (string, bool) {
	for _, f := range models.SettingsFields {
		if strings.EqualFold(f, field) {
			return f, true
		}
	}
	return "", false
}
