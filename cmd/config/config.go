package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	coreconfig "github.com/mattsolo1/grove-core/config"
	"github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mattsolo1/grove-yesterday/pkg/dailynotes"
	"github.com/mattsolo1/grove-yesterday/pkg/history"
	"github.com/mattsolo1/grove-yesterday/pkg/pane"
	"github.com/mattsolo1/grove-yesterday/pkg/service"
	"github.com/mattsolo1/grove-yesterday/pkg/settings"
	"github.com/mattsolo1/grove-yesterday/pkg/vault"
)

var (
	cfgFile       string
	VaultOverride string
)

// Provider backends selectable with the provider key.
const (
	ProviderVault = "vault"
	ProviderGrove = "grove"
)

// InitConfig loads the host config. The config file comes from the
// --config flag of cmd, whichever command defined it.
func InitConfig(cmd *cobra.Command) {
	path := cfgFile
	if f := cmd.Flags().Lookup("config"); f != nil {
		path = f.Value.String()
	}

	if path != "" {
		viper.SetConfigFile(expand(path))
	} else {
		home, err := homedir.Dir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".config", "yesterday")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("YESTERDAY")

	home, _ := homedir.Dir()
	viper.SetDefault("vault", "")
	viper.SetDefault("data_dir", filepath.Join(home, ".local", "share", "yesterday"))
	viper.SetDefault("editor", os.Getenv("EDITOR"))
	viper.SetDefault("open_with", pane.ModeEditor)
	viper.SetDefault("reuse_pane", true)
	viper.SetDefault("provider", ProviderVault)
	viper.SetDefault("history", true)
	viper.SetDefault("debug", false)

	// A missing config file is the normal case.
	_ = viper.ReadInConfig()
}

// AddGlobalFlags adds --config and --vault/-V unless cmd already has them.
// The standard grove root command brings its own --config.
func AddGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	if flags.Lookup("config") == nil {
		flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/yesterday/config.yaml)")
	}
	if flags.Lookup("vault") == nil {
		shorthand := "V"
		if flags.ShorthandLookup(shorthand) != nil {
			shorthand = ""
		}
		flags.StringVarP(&VaultOverride, "vault", shorthand, "", "Vault directory (default: $YESTERDAY_VAULT or the nearest parent with .obsidian)")
	}
}

// NewLogger builds the diagnostics logger. Output goes to stderr, quiet
// unless YESTERDAY_DEBUG is set.
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)
	if viper.GetBool("debug") {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// Runtime builds the collaborators of a command on first use, so that
// commands such as version never touch the vault.
type Runtime struct {
	Logger *logrus.Logger
	Out    io.Writer

	store    *vault.DiskStore
	settings *settings.Store
	history  *history.Store
	svc      *service.Service
}

func NewRuntime(logger *logrus.Logger) *Runtime {
	return &Runtime{Logger: logger, Out: os.Stdout}
}

// Vault opens the vault selected by --vault, the vault key, or discovery
// from the working directory.
func (r *Runtime) Vault() (*vault.DiskStore, error) {
	if r.store != nil {
		return r.store, nil
	}

	root := VaultOverride
	if root == "" {
		root = viper.GetString("vault")
	}
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		found, ok := FindVault(wd)
		if !ok {
			return nil, fmt.Errorf("no vault found from %s; pass --vault or set YESTERDAY_VAULT", wd)
		}
		root = found
	}

	store, err := vault.Open(expand(root))
	if err != nil {
		return nil, err
	}
	r.store = store
	return store, nil
}

// Settings opens the plugin settings of the vault.
func (r *Runtime) Settings() (*settings.Store, error) {
	if r.settings != nil {
		return r.settings, nil
	}
	store, err := r.Vault()
	if err != nil {
		return nil, err
	}
	s, err := settings.Open(settings.PathForVault(store.Root()))
	if err != nil {
		return nil, err
	}
	r.settings = s
	return s, nil
}

// History opens the invocation history database under data_dir.
func (r *Runtime) History() (*history.Store, error) {
	if r.history != nil {
		return r.history, nil
	}
	dbPath := filepath.Join(expand(viper.GetString("data_dir")), "history.db")
	h, err := history.Open(dbPath)
	if err != nil {
		return nil, err
	}
	r.history = h
	return h, nil
}

// Provider returns the daily notes provider named by the provider key.
func (r *Runtime) Provider() (dailynotes.Provider, error) {
	switch name := strings.ToLower(viper.GetString("provider")); name {
	case "", ProviderVault:
		store, err := r.Vault()
		if err != nil {
			return nil, err
		}
		return dailynotes.NewVaultProvider(store.Root()), nil
	case ProviderGrove:
		cfg, err := coreconfig.LoadDefault()
		if err != nil {
			// Non-fatal, the provider reports itself disabled.
			r.Logger.Debugf("could not load grove config: %v", err)
			cfg = &coreconfig.Config{}
		}
		return dailynotes.NewGroveProvider(cfg)
	default:
		return nil, fmt.Errorf("unknown provider %q (want %s or %s)", name, ProviderVault, ProviderGrove)
	}
}

// Service wires the yesterday note service.
func (r *Runtime) Service() (*service.Service, error) {
	if r.svc != nil {
		return r.svc, nil
	}

	store, err := r.Vault()
	if err != nil {
		return nil, err
	}
	s, err := r.Settings()
	if err != nil {
		return nil, err
	}
	provider, err := r.Provider()
	if err != nil {
		return nil, err
	}
	panes, err := pane.NewManager(pane.Options{
		Mode:      viper.GetString("open_with"),
		Editor:    viper.GetString("editor"),
		VaultName: store.Name(),
		Out:       r.Out,
	})
	if err != nil {
		return nil, err
	}

	options := []service.Option{service.WithLogger(r.Logger)}
	if viper.GetBool("history") {
		h, err := r.History()
		if err != nil {
			// Opening the note does not depend on history.
			r.Logger.WithError(err).Warn("history disabled")
		} else {
			options = append(options, service.WithHistory(h))
		}
	}

	svc, err := service.New(&service.Config{ReusePane: viper.GetBool("reuse_pane")}, s, provider, store, panes, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize service: %w", err)
	}
	r.svc = svc
	return svc, nil
}

// Close releases the history database if it was opened.
func (r *Runtime) Close() error {
	if r.history == nil {
		return nil
	}
	err := r.history.Close()
	r.history = nil
	r.svc = nil
	return err
}

// FindVault walks up from dir to the first directory holding .obsidian.
func FindVault(dir string) (string, bool) {
	dir = filepath.Clean(dir)
	for {
		info, err := os.Stat(filepath.Join(dir, ".obsidian"))
		if err == nil && info.IsDir() {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func expand(p string) string {
	expanded, err := homedir.Expand(p)
	if err != nil {
		return p
	}
	return expanded
}
