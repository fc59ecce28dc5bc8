// Package config loads server and CLI settings with viper. Values come from
// defaults, an optional config file and REGFORM_* environment variables, in
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/spf13/viper"

	"github.com/goliatone/go-regform/internal/logging"
)

// EnvPrefix prefixes every environment variable override.
const EnvPrefix = "REGFORM"

// Config holds all configuration options.
type Config struct {
	Addr   string      `mapstructure:"addr"`
	Log    LogConfig   `mapstructure:"log"`
	Layout string      `mapstructure:"layout"` // YAML/JSON layout file or directory
	Output string      `mapstructure:"output"` // prompt output: json, form or pretty
	Theme  ThemeConfig `mapstructure:"theme"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ThemeConfig declares a single theme, read from a go-theme manifest file,
// inline, or both (inline name and tokens win).
type ThemeConfig struct {
	Manifest string            `mapstructure:"manifest"` // theme.json / theme.yaml path
	Name     string            `mapstructure:"name"`
	Variant  string            `mapstructure:"variant"`
	Tokens   map[string]string `mapstructure:"tokens"`
}

// inlineThemeVersion versions manifests declared without a file.
const inlineThemeVersion = "0.0.0"

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Addr: ":8080",
		Log: LogConfig{
			Level:  "info",
			Format: logging.FormatJSON,
		},
		Output: "json",
	}
}

// Load reads configuration into v. file is optional; when empty no config
// file is read.
func Load(v *viper.Viper, file string) (Config, error) {
	if v == nil {
		v = viper.New()
	}
	defaults := Defaults()
	v.SetDefault("addr", defaults.Addr)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
	v.SetDefault("output", defaults.Output)
	v.SetDefault("layout", "")
	v.SetDefault("theme.manifest", "")
	v.SetDefault("theme.name", "")
	v.SetDefault("theme.variant", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports configuration values that cannot work.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("config: addr is required"))
	}
	switch c.Output {
	case "json", "form", "pretty":
	default:
		errs = append(errs, fmt.Errorf("config: unknown output %q", c.Output))
	}
	if c.Theme.Variant != "" && c.Theme.Name == "" && c.Theme.Manifest == "" {
		errs = append(errs, errors.New("config: theme.variant requires theme.name or theme.manifest"))
	}
	return errors.Join(errs...)
}

// LoadManifest builds the configured theme manifest, or returns nil when no
// theme is configured. The manifest is validated.
func (t ThemeConfig) LoadManifest() (*theme.Manifest, error) {
	var manifest *theme.Manifest
	switch {
	case t.Manifest != "":
		loaded, err := theme.LoadFile(os.DirFS(filepath.Dir(t.Manifest)), filepath.Base(t.Manifest))
		if err != nil {
			return nil, fmt.Errorf("config: theme manifest: %w", err)
		}
		manifest = loaded
	case t.Name != "":
		manifest = &theme.Manifest{Version: inlineThemeVersion}
	default:
		return nil, nil
	}

	if t.Name != "" {
		manifest.Name = t.Name
	}
	if len(t.Tokens) > 0 && manifest.Tokens == nil {
		manifest.Tokens = make(map[string]string, len(t.Tokens))
	}
	for key, value := range t.Tokens {
		manifest.Tokens[key] = value
	}

	if err := manifest.Validate(); err != nil {
		return nil, fmt.Errorf("config: theme %q: %w", manifest.Name, err)
	}
	return manifest, nil
}

// Registry registers the configured theme in a go-theme registry and returns
// it with the theme name to use by default. A nil registry means no theme.
func (t ThemeConfig) Registry() (*theme.MemoryRegistry, string, error) {
	manifest, err := t.LoadManifest()
	if err != nil || manifest == nil {
		return nil, "", err
	}
	registry := theme.NewRegistry()
	if err := registry.Register(manifest); err != nil {
		return nil, "", fmt.Errorf("config: register theme %q: %w", manifest.Name, err)
	}
	return registry, manifest.Name, nil
}

// LayoutFS opens the layout path. A directory is used as is; a single file is
// exposed as the only entry of its directory. An empty path returns nil.
func (c Config) LayoutFS() (fs.FS, error) {
	if c.Layout == "" {
		return nil, nil
	}
	info, err := os.Stat(c.Layout)
	if err != nil {
		return nil, fmt.Errorf("config: layout: %w", err)
	}
	if info.IsDir() {
		return os.DirFS(c.Layout), nil
	}
	return singleFileFS{
		FS:   os.DirFS(filepath.Dir(c.Layout)),
		name: filepath.Base(c.Layout),
	}, nil
}

type singleFileFS struct {
	fs.FS
	name string
}

func (s singleFileFS) ReadDir(name string) ([]fs.DirEntry, error) {
	entries, err := fs.ReadDir(s.FS, name)
	if err != nil {
		return nil, err
	}
	if name != "." {
		return nil, nil
	}
	for _, entry := range entries {
		if entry.Name() == s.name {
			return []fs.DirEntry{entry}, nil
		}
	}
	return nil, nil
}
