package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ccgadget/ccgadget/internal/constants"
	"gopkg.in/yaml.v3"
)

// Supported application config formats, in lookup order
const (
	FormatYAML = "yaml"
	FormatYML  = "yml"
	FormatTOML = "toml"
	FormatJSON = "json"
)

var lookupOrder = []string{FormatYAML, FormatYML, FormatTOML, FormatJSON}

// XDGConfig locates ccgadget's own configuration under the XDG config home
type XDGConfig struct {
	BaseDir string
}

// NewXDGConfig creates a new XDG configuration manager
func NewXDGConfig() *XDGConfig {
	baseDir := os.Getenv("XDG_CONFIG_HOME")
	if baseDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// Fallback to current directory if home directory cannot be determined
			baseDir = ".config"
		} else {
			baseDir = filepath.Join(homeDir, ".config")
		}
	}

	return &XDGConfig{
		BaseDir: filepath.Join(baseDir, constants.ConfigDirName),
	}
}

// GetConfigDir returns the XDG configuration directory for ccgadget
func (x *XDGConfig) GetConfigDir() string {
	return x.BaseDir
}

// GetConfigPath returns the config file path for a format
func (x *XDGConfig) GetConfigPath(format string) string {
	if format == "" {
		format = FormatYAML
	}
	return filepath.Join(x.BaseDir, fmt.Sprintf("%s.%s", constants.ConfigBase, format))
}

// FindConfig returns the first existing config file and its format
func (x *XDGConfig) FindConfig() (path, format string, found bool) {
	for _, f := range lookupOrder {
		p := x.GetConfigPath(f)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, f, true
		}
	}
	return "", "", false
}

// Load reads the application config. When no file exists the defaults are
// returned with an empty source path.
func (x *XDGConfig) Load() (*AppConfig, string, error) {
	cfg := DefaultAppConfig()

	path, format, found := x.FindConfig()
	if !found {
		return cfg, "", nil
	}

	data, err := os.ReadFile(path) // #nosec G304 - path is internally controlled via FindConfig()
	if err != nil {
		return nil, path, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := decodeConfig(data, format, cfg); err != nil {
		return nil, path, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, path, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, path, nil
}

// Save writes cfg in the given format, refusing to overwrite unless force is set
func (x *XDGConfig) Save(cfg *AppConfig, format string, force bool) (string, error) {
	if format == "" {
		format = FormatYAML
	}
	path := x.GetConfigPath(format)

	if !force {
		if _, err := os.Stat(path); err == nil {
			return path, fmt.Errorf("config file already exists: %s\n  Suggestion: Use --force to overwrite", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return path, fmt.Errorf("failed to check config file: %w", err)
		}
	}

	data, err := EncodeConfig(cfg, format)
	if err != nil {
		return path, err
	}

	if err := os.MkdirAll(x.BaseDir, 0o750); err != nil { // #nosec G301 - XDG directories should be user-only accessible
		return path, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := atomicWrite(path, data, 0o600); err != nil {
		return path, fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}

func decodeConfig(data []byte, format string, cfg *AppConfig) error {
	switch format {
	case FormatYAML, FormatYML:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse TOML config: %w", err)
		}
	case FormatJSON:
		if len(bytes.TrimSpace(data)) == 0 {
			return nil
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return fmt.Errorf("unsupported config format: %s", format)
	}
	return nil
}

// EncodeConfig renders cfg in the given format
func EncodeConfig(cfg *AppConfig, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatYAML, FormatYML:
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal YAML config: %w", err)
		}
		return data, nil
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, fmt.Errorf("failed to marshal TOML config: %w", err)
		}
		return buf.Bytes(), nil
	case FormatJSON:
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal JSON config: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s\n  Suggestion: Use one of: yaml, toml, json", format)
	}
}
