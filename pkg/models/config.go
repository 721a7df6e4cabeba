package models

// Settings holds the user-editable options of the yesterday note command.
// An empty DateFormat, Folder or Template means "not set locally".
type Settings struct {
	DateFormat          string `json:"dateFormat" mapstructure:"dateFormat" yaml:"dateFormat"`
	Folder              string `json:"folder" mapstructure:"folder" yaml:"folder"`
	Template            string `json:"template" mapstructure:"template" yaml:"template"`
	AutoCreateYesterday bool   `json:"autoCreateYesterday" mapstructure:"autoCreateYesterday" yaml:"autoCreateYesterday"`
}

// DefaultSettings are used on first run and for any field missing on disk.
var DefaultSettings = Settings{
	AutoCreateYesterday: true,
}

// SettingsFields lists the settings keys that can be updated, in display order.
var SettingsFields = []string{"dateFormat", "folder", "template", "autoCreateYesterday"}

// ResolvedConfig is the effective configuration for a single invocation,
// merged from Settings and the daily notes provider.
type ResolvedConfig struct {
	Format   string `json:"format"`
	Folder   string `json:"folder"`   // "" is the vault root
	Template string `json:"template"` // "" means no template
}
