package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// OutDir is the target directory for the cleaned table and the report.
	// Empty means the scanned file's own directory.
	OutDir string `mapstructure:"out_dir" yaml:"out_dir"`
	// Autoclean persists the deduplicated, null-free table alongside the
	// report.
	Autoclean bool   `mapstructure:"autoclean" yaml:"autoclean"`
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	// MaxDuplicateIndices caps the duplicate index listing in the report.
	MaxDuplicateIndices int  `mapstructure:"max_duplicate_indices" yaml:"max_duplicate_indices"`
	Debug               bool `mapstructure:"debug" yaml:"debug"`
}

// Default returns the configuration used when no file or env overrides
// anything.
func Default() *Global {
	return &Global{
		Autoclean:           true,
		Delimiter:           ",",
		MaxDuplicateIndices: 10,
	}
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.microclean/config.yaml, creating the directory if
// necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".microclean")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("MICROCLEAN")
	v.AutomaticEnv()

	v.SetDefault("out_dir", "")
	v.SetDefault("autoclean", true)
	v.SetDefault("delimiter", ",")
	v.SetDefault("max_duplicate_indices", 10)
	v.SetDefault("debug", false)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".microclean")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
