package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ccgadget/ccgadget/internal/constants"
	"github.com/ccgadget/ccgadget/internal/settings"
)

// Scope selects which host settings file is reconciled
type Scope string

const (
	// ScopeUser is ~/.claude/settings.json
	ScopeUser Scope = "user"
	// ScopeLocal is ./.claude/settings.local.json
	ScopeLocal Scope = "local"
)

// ValidScopes lists the accepted --scope values
var ValidScopes = []Scope{ScopeUser, ScopeLocal}

// ParseScope validates a scope name
func ParseScope(s string) (Scope, error) {
	switch Scope(strings.ToLower(strings.TrimSpace(s))) {
	case ScopeUser:
		return ScopeUser, nil
	case ScopeLocal:
		return ScopeLocal, nil
	default:
		return "", fmt.Errorf("invalid scope '%s'\n  Suggestion: Use one of: user, local", s)
	}
}

// GetSettingsPath returns the settings file for a scope
func GetSettingsPath(scope Scope) (string, error) {
	return (&FileSettingsStore{}).Path(scope)
}

// SettingsStore loads and persists the host settings document.
type SettingsStore interface {
	Path(scope Scope) (string, error)
	Load(path string) (*settings.Document, error)
	Save(path string, doc *settings.Document) error
}

// FileSettingsStore reads and writes settings files on disk. Empty HomeDir
// and WorkDir fall back to the user's home and the process working directory.
type FileSettingsStore struct {
	HomeDir string
	WorkDir string
}

// NewFileSettingsStore returns a store rooted at the real home and working directories
func NewFileSettingsStore() *FileSettingsStore {
	return &FileSettingsStore{}
}

func (s *FileSettingsStore) Path(scope Scope) (string, error) {
	switch scope {
	case ScopeUser:
		home := s.HomeDir
		if home == "" {
			var err error
			home, err = os.UserHomeDir()
			if err != nil {
				return "", NewConfigError(KindSettingsIO, "", "", fmt.Errorf("failed to get home directory: %w", err))
			}
		}
		return filepath.Join(home, constants.ClaudeDir, constants.SettingsFileName), nil
	case ScopeLocal:
		cwd := s.WorkDir
		if cwd == "" {
			var err error
			cwd, err = os.Getwd()
			if err != nil {
				return "", NewConfigError(KindSettingsIO, "", "", fmt.Errorf("failed to get current directory: %w", err))
			}
		}
		return filepath.Join(cwd, constants.ClaudeDir, constants.LocalSettingsFileName), nil
	default:
		return "", fmt.Errorf("unknown scope %q", scope)
	}
}

// Load reads the settings file. A missing or blank file yields an empty document.
func (s *FileSettingsStore) Load(path string) (*settings.Document, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path comes from Path()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return settings.New(), nil
		}
		return nil, NewConfigError(KindSettingsIO, path, "", err)
	}

	doc, err := settings.Parse(data)
	if err != nil {
		return nil, NewConfigError(KindSettingsParse, path, "", err)
	}
	return doc, nil
}

// Save writes the document through a temp file and rename so a failed write
// never leaves a truncated settings file behind.
func (s *FileSettingsStore) Save(path string, doc *settings.Document) error {
	data, err := doc.Marshal()
	if err != nil {
		return NewConfigError(KindSettingsIO, path, "", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return NewConfigError(KindSettingsIO, path, "", fmt.Errorf("failed to create directory: %w", err))
	}

	mode := fs.FileMode(0o600)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	if err := atomicWrite(path, data, mode); err != nil {
		return NewConfigError(KindSettingsIO, path, "", err)
	}
	return nil
}

func atomicWrite(path string, data []byte, mode fs.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".ccgadget-settings-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	return os.Rename(tmpName, path)
}
