package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the packdex API configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Registry  RegistryConfig  `yaml:"registry"`
	Directory DirectoryConfig `yaml:"directory"`
	Auth      AuthConfig      `yaml:"auth"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings. Tokens in PrivilegedTokens
// grant the elevated viewer (private packs visible); Tokens grant plain
// access. Both empty disables authentication.
type AuthConfig struct {
	Tokens           []string `yaml:"tokens"`
	PrivilegedTokens []string `yaml:"privileged_tokens"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// RegistryConfig holds pack registry settings.
type RegistryConfig struct {
	Driver           string   `yaml:"driver"` // redis, file (default: file)
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	KeyPrefix        string   `yaml:"key_prefix"`
	Dir              string   `yaml:"dir"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// DirectoryConfig holds search directory settings.
type DirectoryConfig struct {
	Locale           string `yaml:"locale"`             // BCP 47 tag for case folding (default: en)
	MatchRowTemplate string `yaml:"match_row_template"` // html/template for one rendered match row
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// DefaultMatchRowTemplate renders one match row the way the stock directory
// template does: image, name, owning-pack label.
const DefaultMatchRowTemplate = `<li class="match" data-entry-id="{{.ID}}" data-pack-id="{{.PackID}}">` +
	`<img src="{{.Image}}" alt=""/><span class="name">{{.Name}}</span>` +
	`<span class="pack">{{.PackLabel}}</span></li>`

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Registry.Driver == "" {
		c.Registry.Driver = "file"
	}
	if c.Registry.KeyPrefix == "" {
		c.Registry.KeyPrefix = "packdex:"
	}
	if c.Registry.ReadinessTimeout <= 0 {
		c.Registry.ReadinessTimeout = 10
	}
	if c.Directory.Locale == "" {
		c.Directory.Locale = "en"
	}
	if c.Directory.MatchRowTemplate == "" {
		c.Directory.MatchRowTemplate = DefaultMatchRowTemplate
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Registry.Driver {
	case "redis":
		if len(c.Registry.Addrs) == 0 {
			return fmt.Errorf("registry.addrs is required for the redis driver")
		}
	case "file":
		if c.Registry.Dir == "" {
			return fmt.Errorf("registry.dir is required for the file driver")
		}
	default:
		return fmt.Errorf("registry.driver must be \"redis\" or \"file\", got %q", c.Registry.Driver)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
