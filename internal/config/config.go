package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/blackwell-systems/brpctl/internal/util"
)

// EnvPath names the environment variable that overrides the config path.
const EnvPath = "BRPCTL_CONFIG"

// DefaultPath returns the default config file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "brpctl", "config.yml")
}

// ResolvePath returns path if set, else $BRPCTL_CONFIG, else DefaultPath.
func ResolvePath(path string) string {
	if path != "" {
		return util.ExpandHome(path)
	}
	if p := os.Getenv(EnvPath); p != "" {
		return util.ExpandHome(p)
	}
	return DefaultPath()
}

// Defaults returns the configuration used when no file exists.
func Defaults() *Config {
	cfg, _ := decode(newViper())
	return cfg
}

// Load reads the config from disk (or env). A missing file is not an error:
// defaults apply until init writes one.
func Load(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(ResolvePath(path))

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine; init creates it.
		if !os.IsNotExist(err) {
			if _, isCfgNotFound := err.(viper.ConfigFileNotFoundError); !isCfgNotFound {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save writes the config to path (resolved as in ResolvePath).
func Save(cfg *Config, path string) error {
	path = ResolvePath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(cfg)
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("source.api_base", "https://alkitab.sabda.org/api")
	v.SetDefault("source.translation", "id")
	v.SetDefault("source.version", "")
	v.SetDefault("source.timeout", "30s")
	v.SetDefault("defaults.profile", "default")
	v.SetDefault("defaults.cache_dir", defaultDataPath("chapters"))
	v.SetDefault("defaults.db_path", defaultDataPath("brpctl.db"))
	v.SetDefault("defaults.utc_offset", 7)
	v.SetDefault("defaults.prefetch_concurrency", 4)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "pretty")

	v.SetEnvPrefix("BRPCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.Defaults.CacheDir = util.ExpandHome(cfg.Defaults.CacheDir)
	cfg.Defaults.DBPath = util.ExpandHome(cfg.Defaults.DBPath)
	return &cfg, nil
}

func defaultDataPath(name string) string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "brpctl", name)
}
