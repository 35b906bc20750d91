package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/ccgadget/ccgadget/internal/config"
	"github.com/urfave/cli/v3"
)

// NewConfigCmd creates the main config command with subcommands
func NewConfigCmd(env *Env) *cli.Command {
	return &cli.Command{
		Name:        "config",
		Usage:       "Manage the ccgadget configuration file",
		Description: `Manage ccgadget's own configuration under $XDG_CONFIG_HOME/ccgadget. The file lists the hook events setup-hook installs, the trigger log rotation and the paired device.`,
		Commands: []*cli.Command{
			NewConfigShowCmd(env),
			NewConfigInitCmd(env),
			NewConfigEditCmd(env),
			NewConfigLogCmd(env),
		},
	}
}

// NewConfigShowCmd creates the config show subcommand
func NewConfigShowCmd(env *Env) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Print the effective configuration",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Value: config.FormatYAML,
				Usage: "Output format (yaml, toml, json)",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			format, err := parseFormat(cmd.String("format"))
			if err != nil {
				return err
			}
			cfg, source, err := env.loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config %s: %w\n  Suggestion: Fix the file or run 'ccgadget config init --force'", source, err)
			}
			data, err := config.EncodeConfig(cfg, format)
			if err != nil {
				return err
			}

			if source == "" {
				fmt.Fprintln(env.Stdout, mutedStyle.Render("# defaults (no config file at "+env.XDG.GetConfigDir()+")"))
			} else {
				fmt.Fprintln(env.Stdout, mutedStyle.Render("# "+source))
			}
			_, err = env.Stdout.Write(data)
			return err
		},
	}
}

// NewConfigInitCmd creates the config init subcommand
func NewConfigInitCmd(env *Env) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write a default configuration file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Value: config.FormatYAML,
				Usage: "File format (yaml, toml, json)",
			},
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "Overwrite an existing file",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			format, err := parseFormat(cmd.String("format"))
			if err != nil {
				return err
			}
			path, err := env.XDG.Save(config.DefaultAppConfig(), format, cmd.Bool("force"))
			if err != nil {
				return err
			}
			fmt.Fprintf(env.Stdout, "%s Created configuration file: %s\n", successStyle.Render("✅"), path)
			return nil
		},
	}
}

// NewConfigEditCmd creates the config edit subcommand
func NewConfigEditCmd(env *Env) *cli.Command {
	return &cli.Command{
		Name:  "edit",
		Usage: "Open the configuration file in an editor",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "editor",
				Aliases: []string{"e"},
				Usage:   "Editor to use (defaults to $EDITOR)",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			path, err := ensureConfigExists(env)
			if err != nil {
				return err
			}
			editor, err := selectEditor(cmd.String("editor"))
			if err != nil {
				return err
			}
			return launchEditor(env, editor, path)
		},
	}
}

// NewConfigLogCmd creates the config log subcommand
func NewConfigLogCmd(env *Env) *cli.Command {
	return &cli.Command{
		Name:        "log",
		Usage:       "Configure trigger log rotation",
		Description: `Configure log rotation settings including maximum age, file size, and backup count.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "max-age",
				Aliases: []string{"a"},
				Value:   0,
				Usage:   "Maximum age in days to retain log files (default: 30)",
			},
			&cli.IntFlag{
				Name:    "max-size",
				Aliases: []string{"s"},
				Value:   0,
				Usage:   "Maximum size in MB per log file before rotation (default: 10)",
			},
			&cli.IntFlag{
				Name:    "max-backups",
				Aliases: []string{"b"},
				Value:   0,
				Usage:   "Maximum number of backup files to retain (default: 5)",
			},
			&cli.BoolFlag{
				Name:    "compress",
				Aliases: []string{"c"},
				Value:   true,
				Usage:   "Compress rotated log files",
			},
			&cli.BoolFlag{
				Name:  "show",
				Value: false,
				Usage: "Show current log rotation settings",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, source, err := env.loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config %s: %w\n  Suggestion: Fix the file or run 'ccgadget config init --force'", source, err)
			}

			if cmd.Bool("show") {
				where := source
				if where == "" {
					where = "defaults"
				}
				fmt.Fprintf(env.Stdout, "Current log rotation settings (%s):\n", where)
				printRotation(env, cfg.LogRotation)
				return nil
			}

			// Only update non-zero values
			if v := cmd.Int("max-age"); v > 0 {
				cfg.LogRotation.MaxAge = v
			}
			if v := cmd.Int("max-size"); v > 0 {
				cfg.LogRotation.MaxSize = v
			}
			if v := cmd.Int("max-backups"); v > 0 {
				cfg.LogRotation.MaxBackups = v
			}
			if cmd.IsSet("compress") {
				cfg.LogRotation.Compress = cmd.Bool("compress")
			}

			path, err := saveConfig(env, cfg, source)
			if err != nil {
				return fmt.Errorf("failed to save config: %w\n  Suggestion: Check file permissions and ensure the directory is writable", err)
			}
			fmt.Fprintf(env.Stdout, "Log rotation configuration updated (%s):\n", path)
			printRotation(env, cfg.LogRotation)
			return nil
		},
	}
}

func printRotation(env *Env, r config.LogRotationConfig) {
	fmt.Fprintf(env.Stdout, "  Max Age: %d days\n", r.MaxAge)
	fmt.Fprintf(env.Stdout, "  Max Size: %d MB\n", r.MaxSize)
	fmt.Fprintf(env.Stdout, "  Max Backups: %d files\n", r.MaxBackups)
	fmt.Fprintf(env.Stdout, "  Compress: %t\n", r.Compress)
}

func parseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case config.FormatYAML, config.FormatYML, config.FormatTOML, config.FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported config format %q\n  Suggestion: Use one of: yaml, toml, json", s)
	}
}

// saveConfig writes cfg back to the file it came from, or a new YAML file.
func saveConfig(env *Env, cfg *config.AppConfig, source string) (string, error) {
	format := config.FormatYAML
	if source != "" {
		if _, f, found := env.XDG.FindConfig(); found {
			format = f
		}
	}
	return env.XDG.Save(cfg, format, true)
}

func ensureConfigExists(env *Env) (string, error) {
	if path, _, found := env.XDG.FindConfig(); found {
		return path, nil
	}
	path, err := env.XDG.Save(config.DefaultAppConfig(), config.FormatYAML, false)
	if err != nil {
		return "", fmt.Errorf("failed to create config: %w", err)
	}
	fmt.Fprintf(env.Stdout, "Created new configuration file: %s\n", path)
	return path, nil
}

// selectEditor determines which editor to use based on flag, environment, or common editors
func selectEditor(editorFlag string) (string, error) {
	if editorFlag != "" {
		return editorFlag, nil
	}
	if envEditor := os.Getenv("EDITOR"); envEditor != "" {
		return envEditor, nil
	}
	for _, editor := range []string{"code", "vim", "nano", "vi"} {
		if _, err := exec.LookPath(editor); err == nil {
			return editor, nil
		}
	}
	return "", fmt.Errorf("no editor found\n  Suggestion: Set $EDITOR or use --editor")
}

func launchEditor(env *Env, editor, path string) error {
	fmt.Fprintf(env.Stdout, "Opening %s with %s...\n", path, editor)
	c := exec.Command(editor, path) // #nosec G204 - editor comes from the user's flag, $EDITOR, or a fixed list
	c.Stdin = env.Stdin
	c.Stdout = env.Stdout
	c.Stderr = env.Stderr
	return c.Run()
}
