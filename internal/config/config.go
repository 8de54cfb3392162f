// Package config handles application configuration: settings, keybindings,
// theme and the host inventory, stored as YAML in the data directory.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration.
type Config struct {
	// DataDir is the directory for persistent data (config, log file)
	DataDir string `yaml:"-"`

	// LogLevel is the minimum level written to the log file
	LogLevel string `yaml:"log_level"`

	// ConnectTimeout bounds connection establishment, in seconds
	ConnectTimeout int `yaml:"connect_timeout"`

	// DefaultUser is used for hosts that don't set one
	DefaultUser string `yaml:"default_user"`

	// LocalShell is the command for the built-in local session
	LocalShell string `yaml:"local_shell"`

	// Keys contains keybinding configuration
	Keys KeyBindings `yaml:"keys"`

	// Theme contains theme/appearance configuration
	Theme Theme `yaml:"theme"`

	// Hosts is the connection inventory
	Hosts []Host `yaml:"hosts"`
}

// Host is one entry in the connection inventory.
type Host struct {
	// Name is the unique label shown in the host list
	Name string `yaml:"name"`

	// Hostname is the address to dial
	Hostname string `yaml:"hostname"`

	// Port defaults to 22 when zero
	Port int `yaml:"port,omitempty"`

	// User overrides the default user
	User string `yaml:"user,omitempty"`

	// Group clusters hosts into sidebar sections
	Group string `yaml:"group,omitempty"`

	// Auth selects and parameterizes the authentication method
	Auth HostAuth `yaml:"auth,omitempty"`
}

// HostAuth configures authentication for a host. Secrets never live in the
// file; the *_env fields name environment variables that hold them.
type HostAuth struct {
	// Method is "password" or "key"
	Method string `yaml:"method,omitempty"`

	// KeyFile is the private key path for the key method
	KeyFile string `yaml:"key_file,omitempty"`

	// PassphraseEnv names the env var holding the key passphrase
	PassphraseEnv string `yaml:"passphrase_env,omitempty"`

	// PasswordEnv names the env var holding the password
	PasswordEnv string `yaml:"password_env,omitempty"`
}

// KeyBindings holds all configurable keybindings. The detach chord inside a
// session (ctrl+b d) is fixed chrome behavior and deliberately absent here.
type KeyBindings struct {
	Quit       string `yaml:"quit"`
	Help       string `yaml:"help"`
	Filter     string `yaml:"filter"`
	NavDown    string `yaml:"nav_down"`
	NavUp      string `yaml:"nav_up"`
	AddHost    string `yaml:"add_host"`
	DeleteHost string `yaml:"delete_host"`
	Disconnect string `yaml:"disconnect"`
	LocalShell string `yaml:"local_shell"`
}

// Theme holds theme configuration.
type Theme struct {
	Colors ThemeColors            `yaml:"colors"`
	Status map[string]StatusStyle `yaml:"status"`
}

// ThemeColors holds color configuration.
type ThemeColors struct {
	SelectionBg string `yaml:"selection_bg"`
	SelectionFg string `yaml:"selection_fg"`
	StatusBarBg string `yaml:"statusbar_bg"`
	StatusBarFg string `yaml:"statusbar_fg"`
}

// StatusStyle holds style configuration for a session status.
type StatusStyle struct {
	Icon  string `yaml:"icon"`
	Color string `yaml:"color"`
	Label string `yaml:"label"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		DataDir:        defaultDataDir(),
		LogLevel:       "info",
		ConnectTimeout: 10,
		DefaultUser:    currentUser(),
		LocalShell:     defaultShell(),
		Keys:           DefaultKeyBindings(),
		Theme:          DefaultTheme(),
	}
}

// DefaultKeyBindings returns the default keybindings.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Quit:       "q",
		Help:       "?",
		Filter:     "/",
		NavDown:    "j",
		NavUp:      "k",
		AddHost:    "a",
		DeleteHost: "x",
		Disconnect: "d",
		LocalShell: "s",
	}
}

// DefaultTheme returns the default theme configuration.
func DefaultTheme() Theme {
	return Theme{
		Colors: ThemeColors{
			SelectionBg: "blue",
			SelectionFg: "white",
			StatusBarBg: "blue",
			StatusBarFg: "white",
		},
		Status: map[string]StatusStyle{
			"idle": {
				Icon:  "\u25cb", // ○
				Color: "white",
				Label: "IDLE",
			},
			"connecting": {
				Icon:  "\u25d0", // ◐
				Color: "yellow",
				Label: "CONNECTING",
			},
			"connected": {
				Icon:  "\u25cf", // ●
				Color: "green",
				Label: "CONNECTED",
			},
			"disconnected": {
				Icon:  "\u25cc", // ◌
				Color: "white",
				Label: "DISCONNECTED",
			},
			"failed": {
				Icon:  "\u2717", // ✗
				Color: "red",
				Label: "FAILED",
			},
		},
	}
}

// Load loads configuration from the config file, falling back to defaults.
func Load() (*Config, error) {
	return LoadFrom(Default())
}

// LoadFrom merges the config file over the given defaults. The watcher uses
// this directly so every reload starts from pristine defaults.
func LoadFrom(cfg *Config) (*Config, error) {
	data, err := os.ReadFile(cfg.ConfigFile())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, err
	}

	mergeConfig(cfg, &fileCfg)

	if err := ValidateKeys(&cfg.Keys); err != nil {
		return nil, err
	}
	if err := ValidateHosts(cfg.Hosts); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration, including the host inventory, back to the
// config file.
func (c *Config) Save() error {
	if err := c.EnsureDataDir(); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(c.ConfigFile(), data, 0600)
}

// FindHost returns the host with the given name, or nil.
func (c *Config) FindHost(name string) *Host {
	for i := range c.Hosts {
		if c.Hosts[i].Name == name {
			return &c.Hosts[i]
		}
	}
	return nil
}

// mergeConfig merges file configuration into the default configuration.
// Only non-zero values from file are applied; hosts replace wholesale.
func mergeConfig(dst, src *Config) {
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
	if src.ConnectTimeout != 0 {
		dst.ConnectTimeout = src.ConnectTimeout
	}
	if src.DefaultUser != "" {
		dst.DefaultUser = src.DefaultUser
	}
	if src.LocalShell != "" {
		dst.LocalShell = src.LocalShell
	}
	if src.Hosts != nil {
		dst.Hosts = src.Hosts
	}

	mergeKeyBindings(&dst.Keys, &src.Keys)
	mergeTheme(&dst.Theme, &src.Theme)
}

// mergeKeyBindings merges keybindings from src into dst.
func mergeKeyBindings(dst, src *KeyBindings) {
	if src.Quit != "" {
		dst.Quit = src.Quit
	}
	if src.Help != "" {
		dst.Help = src.Help
	}
	if src.Filter != "" {
		dst.Filter = src.Filter
	}
	if src.NavDown != "" {
		dst.NavDown = src.NavDown
	}
	if src.NavUp != "" {
		dst.NavUp = src.NavUp
	}
	if src.AddHost != "" {
		dst.AddHost = src.AddHost
	}
	if src.DeleteHost != "" {
		dst.DeleteHost = src.DeleteHost
	}
	if src.Disconnect != "" {
		dst.Disconnect = src.Disconnect
	}
	if src.LocalShell != "" {
		dst.LocalShell = src.LocalShell
	}
}

// mergeTheme merges theme configuration from src into dst.
func mergeTheme(dst, src *Theme) {
	if src.Colors.SelectionBg != "" {
		dst.Colors.SelectionBg = src.Colors.SelectionBg
	}
	if src.Colors.SelectionFg != "" {
		dst.Colors.SelectionFg = src.Colors.SelectionFg
	}
	if src.Colors.StatusBarBg != "" {
		dst.Colors.StatusBarBg = src.Colors.StatusBarBg
	}
	if src.Colors.StatusBarFg != "" {
		dst.Colors.StatusBarFg = src.Colors.StatusBarFg
	}

	if src.Status != nil {
		for key, style := range src.Status {
			if existing, ok := dst.Status[key]; ok {
				if style.Icon != "" {
					existing.Icon = style.Icon
				}
				if style.Color != "" {
					existing.Color = style.Color
				}
				if style.Label != "" {
					existing.Label = style.Label
				}
				dst.Status[key] = existing
			} else {
				dst.Status[key] = style
			}
		}
	}
}

// defaultDataDir returns the default data directory.
func defaultDataDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "sshdeck")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sshdeck"
	}
	return filepath.Join(home, ".config", "sshdeck")
}

// defaultShell returns the user's login shell.
func defaultShell() string {
	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}
	return "/bin/bash"
}

// currentUser returns the local username for hosts without one.
func currentUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "root"
}

// ConfigFile returns the path to the config file.
func (c *Config) ConfigFile() string {
	return filepath.Join(c.DataDir, "config.yaml")
}

// LogFile returns the path to the log file.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "sshdeck.log")
}

// EnsureDataDir creates the data directory if it doesn't exist.
func (c *Config) EnsureDataDir() error {
	return os.MkdirAll(c.DataDir, 0755)
}
