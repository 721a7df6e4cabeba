// Package dailynotes reads the daily note conventions (format, folder and
// template) that the host application keeps independently of this tool.
package dailynotes

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	coreconfig "github.com/mattsolo1/grove-core/config"
)

// PluginID is the host's identifier for its daily notes core plugin.
const PluginID = "daily-notes"

// Options are the daily note settings as the host stores them.
type Options struct {
	Format   string `json:"format" yaml:"format"`
	Folder   string `json:"folder" yaml:"folder"`
	Template string `json:"template" yaml:"template"`
}

// Provider exposes the host's daily note configuration.
type Provider interface {
	Enabled() (bool, error)
	Options() (Options, error)
}

// VaultProvider reads the daily notes configuration from a vault's
// .obsidian folder.
type VaultProvider struct {
	configDir string
}

// NewVaultProvider returns a provider for the vault rooted at root.
func NewVaultProvider(root string) *VaultProvider {
	return &VaultProvider{configDir: filepath.Join(root, ".obsidian")}
}

// Enabled reports whether the daily notes plugin is switched on. The host
// stores enabled core plugins either as a list of ids or as an id->bool map.
// A vault without core-plugins.json runs with the host defaults, which
// include daily notes.
func (p *VaultProvider) Enabled() (bool, error) {
	data, err := os.ReadFile(filepath.Join(p.configDir, "core-plugins.json"))
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("read core plugins: %w", err)
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		for _, id := range list {
			if id == PluginID {
				return true, nil
			}
		}
		return false, nil
	}

	var states map[string]bool
	if err := json.Unmarshal(data, &states); err != nil {
		return false, fmt.Errorf("parse core plugins: %w", err)
	}
	return states[PluginID], nil
}

// Options returns the contents of daily-notes.json; a missing file means
// the plugin was never configured and every option is empty.
func (p *VaultProvider) Options() (Options, error) {
	var opts Options
	data, err := os.ReadFile(filepath.Join(p.configDir, "daily-notes.json"))
	if errors.Is(err, fs.ErrNotExist) {
		return opts, nil
	}
	if err != nil {
		return opts, fmt.Errorf("read daily notes options: %w", err)
	}
	if err := json.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("parse daily notes options: %w", err)
	}
	return opts, nil
}

// GroveConfig is the daily_notes section of grove.yml.
type GroveConfig struct {
	Enabled  *bool  `yaml:"enabled"`
	Format   string `yaml:"format"`
	Folder   string `yaml:"folder"`
	Template string `yaml:"template"`
}

// GroveProvider sources the daily notes configuration from the daily_notes
// extension of the grove configuration instead of the vault.
type GroveProvider struct {
	cfg GroveConfig
}

// NewGroveProvider reads the daily_notes extension out of cfg. A nil config
// or a missing section yields a disabled provider.
func NewGroveProvider(cfg *coreconfig.Config) (*GroveProvider, error) {
	disabled := false
	p := &GroveProvider{cfg: GroveConfig{Enabled: &disabled}}
	if cfg == nil || cfg.Extensions == nil {
		return p, nil
	}
	if _, ok := cfg.Extensions["daily_notes"]; !ok {
		return p, nil
	}

	var section GroveConfig
	if err := cfg.UnmarshalExtension("daily_notes", &section); err != nil {
		return nil, fmt.Errorf("decode daily_notes config: %w", err)
	}
	p.cfg = section
	return p, nil
}

// Enabled defaults to true once a daily_notes section exists.
func (p *GroveProvider) Enabled() (bool, error) {
	return p.cfg.Enabled == nil || *p.cfg.Enabled, nil
}

func (p *GroveProvider) Options() (Options, error) {
	return Options{
		Format:   p.cfg.Format,
		Folder:   p.cfg.Folder,
		Template: p.cfg.Template,
	}, nil
}

// Static is a fixed provider, used when the daily notes settings are passed
// in directly.
type Static struct {
	On   bool
	Opts Options
}

func (s Static) Enabled() (bool, error)    { return s.On, nil }
func (s Static) Options() (Options, error) { return s.Opts, nil }
