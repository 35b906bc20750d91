package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ccgadget/ccgadget/internal/constants"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogRotationConfig holds configuration for log rotation
type LogRotationConfig struct {
	MaxAge     int  `json:"maxAge" yaml:"maxAge" toml:"maxAge"`             // Maximum number of days to retain log files
	MaxSize    int  `json:"maxSize" yaml:"maxSize" toml:"maxSize"`          // Maximum size in megabytes before rotation
	MaxBackups int  `json:"maxBackups" yaml:"maxBackups" toml:"maxBackups"` // Maximum number of backup files to retain
	Compress   bool `json:"compress" yaml:"compress" toml:"compress"`       // Whether to compress rotated files
}

// DefaultLogRotationConfig returns sensible defaults for log rotation
func DefaultLogRotationConfig() LogRotationConfig {
	return LogRotationConfig{
		MaxAge:     30,   // 30 days default retention
		MaxSize:    10,   // 10MB per file
		MaxBackups: 5,    // Keep 5 backup files
		Compress:   true, // Compress old files
	}
}

// TriggerLogPrefix prefixes every daily trigger log file
const TriggerLogPrefix = "trigger-"

// GetTriggerLogPath returns the daily trigger log for t, dated in UTC
func GetTriggerLogPath(logDir string, t time.Time) string {
	return filepath.Join(logDir, fmt.Sprintf("%s%s.log", TriggerLogPrefix, t.UTC().Format("2006-01-02")))
}

// GetLogDir returns ~/.ccgadget/logs
func GetLogDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return constants.GetLogDir(homeDir), nil
}

// SetupLogRotation configures log rotation for a given log file path
func SetupLogRotation(logPath string, config LogRotationConfig) *lumberjack.Logger {
	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(logPath), 0o750); err != nil {
		log.Printf("Failed to create log directory: %v", err)
		return nil
	}

	return &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    config.MaxSize,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge,
		Compress:   config.Compress,
		LocalTime:  false, // trigger logs are dated in UTC
	}
}

// CleanupOldLogs removes trigger log files older than maxAgeDays. Daily files
// are never reopened by lumberjack once the date rolls over, so its MaxAge
// alone does not reach them.
func CleanupOldLogs(logDir string, maxAgeDays int) error {
	if maxAgeDays <= 0 {
		return nil
	}

	cutoff := time.Now().AddDate(0, 0, -maxAgeDays)

	entries, err := os.ReadDir(logDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read log directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), TriggerLogPrefix) {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".log" && ext != ".gz" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			path := filepath.Join(logDir, entry.Name())
			if err := os.Remove(path); err != nil {
				log.Printf("Failed to remove old log file %s: %v", path, err)
			}
		}
	}
	return nil
}
