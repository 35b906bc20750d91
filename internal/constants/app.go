package constants

import "path/filepath"

// Application constants - single source of truth for naming throughout the codebase
const (
	// Core application identity
	AppName     = "CCGadget"
	BinaryName  = "ccgadget"
	AppVersion  = "0.1.0"
	LogSource   = "ccgadget-cli"
	AppTagline  = "Claude Code usage on your desk"
	ModulePath  = "github.com/ccgadget/ccgadget"
	DemoModeEnv = "CCGADGET_DEMO_MODE"

	// Host application settings
	ClaudeDir             = ".claude"
	SettingsFileName      = "settings.json"
	LocalSettingsFileName = "settings.local.json"

	// ccgadget's own state
	StateDir      = ".ccgadget"
	LogsSubDir    = "logs"
	ConfigDirName = "ccgadget"
	ConfigBase    = "config"

	// Command installed into settings for every default binding
	TriggerCommand = BinaryName + " trigger"
)

// GetLogDir returns the trigger log directory under the given home directory
func GetLogDir(homeDir string) string {
	return filepath.Join(homeDir, StateDir, LogsSubDir)
}
