package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configName      = "config"
	configType      = "yaml"
	configDirectory = ".decadog"
	configFile      = "config.yml"
	envPrefix       = "DECADOG"
)

// Loader resolves a Config from defaults, a config file, DECADOG_ environment
// variables and bound flags, in increasing precedence.
type Loader struct {
	searchPaths []string
	envPrefix   string
	replacer    *strings.Replacer
	flags       map[string]*pflag.Flag
}

// NewLoader creates a loader searching the given directories for config.yml.
// With no directories it searches $HOME/.decadog.
func NewLoader(searchPaths ...string) *Loader {
	paths := make([]string, len(searchPaths))
	copy(paths, searchPaths)

	if len(paths) == 0 {
		if dir, err := DefaultDirectory(); err == nil {
			paths = append(paths, dir)
		}
	}

	return &Loader{
		searchPaths: paths,
		envPrefix:   envPrefix,
		replacer:    strings.NewReplacer(".", "_"),
		flags:       make(map[string]*pflag.Flag),
	}
}

// DefaultDirectory returns $HOME/.decadog.
func DefaultDirectory() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, configDirectory), nil
}

// DefaultPath returns $HOME/.decadog/config.yml.
func DefaultPath() (string, error) {
	dir, err := DefaultDirectory()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, configFile), nil
}

// BindFlag overrides key with flag when the flag was set on the command line.
func (l *Loader) BindFlag(key string, flag *pflag.Flag) {
	if flag != nil {
		l.flags[key] = flag
	}
}

// Load resolves the configuration. An explicit path must exist; the search
// paths may hold no file at all.
func (l *Loader) Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType(configType)

	for _, searchPath := range l.searchPaths {
		v.AddConfigPath(searchPath)
	}

	v.SetEnvPrefix(l.envPrefix)
	v.SetEnvKeyReplacer(l.replacer)
	v.AutomaticEnv()

	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}

	for key, flag := range l.flags {
		if err := v.BindPFlag(key, flag); err != nil {
			return nil, fmt.Errorf("failed to bind flag %s: %w", flag.Name, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	}

	if err := v.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read configuration: %w", err)
		}
	}

	config := &Config{}

	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.TextUnmarshallerHookFunc(),
	))

	if err := v.Unmarshal(config, hook); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	config.ConfigFileUsed = v.ConfigFileUsed()

	return config, nil
}
