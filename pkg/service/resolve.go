package service

import (
	"fmt"

	"github.com/mattsolo1/grove-yesterday/pkg/dailynotes"
	"github.com/mattsolo1/grove-yesterday/pkg/dateformat"
	"github.com/mattsolo1/grove-yesterday/pkg/models"
)

// resolveInput gives sources access to the local settings and a lazily
// loaded view of the provider, so the provider is read at most once.
type resolveInput struct {
	settings models.Settings
	provider dailynotes.Provider

	loaded  bool
	enabled bool
	opts    dailynotes.Options
	err     error
}

func (in *resolveInput) providerState() (bool, dailynotes.Options, error) {
	if !in.loaded {
		in.loaded = true
		if in.provider == nil {
			return false, in.opts, nil
		}
		in.enabled, in.err = in.provider.Enabled()
		if in.err == nil && in.enabled {
			in.opts, in.err = in.provider.Options()
		}
	}
	return in.enabled, in.opts, in.err
}

// source yields a value for one field, or ok=false to defer to the next one.
type source func(in *resolveInput) (value string, ok bool, err error)

// Sources per field, highest priority first.
var (
	formatSources = []source{
		localValue(func(s models.Settings) string { return s.DateFormat }),
		requiredProviderValue(func(o dailynotes.Options) string { return o.Format }),
		constant(dateformat.DefaultFormat),
	}
	folderSources = []source{
		localValue(func(s models.Settings) string { return s.Folder }),
		providerValue(func(o dailynotes.Options) string { return o.Folder }),
	}
	templateSources = []source{
		localValue(func(s models.Settings) string { return s.Template }),
	}
)

// Resolve merges the local settings with the daily notes provider.
func Resolve(settings models.Settings, provider dailynotes.Provider) (models.ResolvedConfig, error) {
	in := &resolveInput{settings: settings, provider: provider}

	format, err := firstOf(formatSources, in)
	if err != nil {
		return models.ResolvedConfig{}, fmt.Errorf("resolve date format: %w", err)
	}
	folder, err := firstOf(folderSources, in)
	if err != nil {
		return models.ResolvedConfig{}, fmt.Errorf("resolve folder: %w", err)
	}
	tmpl, err := firstOf(templateSources, in)
	if err != nil {
		return models.ResolvedConfig{}, fmt.Errorf("resolve template: %w", err)
	}

	if format == "" {
		format = dateformat.DefaultFormat
	}
	return models.ResolvedConfig{Format: format, Folder: folder, Template: tmpl}, nil
}

func firstOf(sources []source, in *resolveInput) (string, error) {
	for _, src := range sources {
		v, ok, err := src(in)
		if err != nil {
			return "", err
		}
		if ok {
			return v, nil
		}
	}
	return "", nil
}

func localValue(get func(models.Settings) string) source {
	return func(in *resolveInput) (string, bool, error) {
		v := get(in.settings)
		return v, v != "", nil
	}
}

// providerValue skips a disabled provider.
func providerValue(get func(dailynotes.Options) string) source {
	return func(in *resolveInput) (string, bool, error) {
		enabled, opts, err := in.providerState()
		if err != nil || !enabled {
			return "", false, err
		}
		v := get(opts)
		return v, v != "", nil
	}
}

// requiredProviderValue fails with ErrProviderDisabled on a disabled provider.
func requiredProviderValue(get func(dailynotes.Options) string) source {
	return func(in *resolveInput) (string, bool, error) {
		enabled, opts, err := in.providerState()
		if err != nil {
			return "", false, err
		}
		if !enabled {
			return "", false, ErrProviderDisabled
		}
		v := get(opts)
		return v, v != "", nil
	}
}

func constant(v string) source {
	return func(*resolveInput) (string, bool, error) {
		return v, true, nil
	}
}
