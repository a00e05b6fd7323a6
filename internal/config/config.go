package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config stores all settings of the agent. Values are read by viper from a
// config file or environment variables (DOWNSWEEP_* with dots as
// underscores); everything has a working default.
type Config struct {
	TargetDir       string `mapstructure:"targetDir"`
	Model           string `mapstructure:"model"`
	SuppressionPath string `mapstructure:"suppressionPath"`
	ArtifactName    string `mapstructure:"artifactName"`
	KeepRecentDays  int    `mapstructure:"keepRecentDays"`
}

// Load reads configuration from the given file, or from the default search
// paths when the path is empty. A missing config file is not an error;
// defaults apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath(defaultConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	home := homeDir()
	v.SetDefault("targetDir", filepath.Join(home, "Downloads"))
	v.SetDefault("model", "gemini-2.5-flash")
	v.SetDefault("suppressionPath", filepath.Join(defaultConfigDir(), "kept_files.json"))
	v.SetDefault("artifactName", "cleanup_suggestions.json")
	v.SetDefault("keepRecentDays", 30)

	v.SetEnvPrefix("DOWNSWEEP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Config file not found: defaults apply. Anything else is real.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

func defaultConfigDir() string {
	return filepath.Join(homeDir(), ".config", "downsweep")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		cwd, cwdErr := os.Getwd()
		if cwdErr != nil {
			return "/tmp"
		}
		return cwd
	}
	return home
}
