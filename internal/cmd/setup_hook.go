package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ccgadget/ccgadget/internal/config"
	"github.com/ccgadget/ccgadget/internal/hooksetup"
	"github.com/urfave/cli/v3"
)

// NewSetupHookCmd creates the setup-hook command
func NewSetupHookCmd(env *Env) *cli.Command {
	return &cli.Command{
		Name:  "setup-hook",
		Usage: "Install ccgadget hooks into Claude Code settings",
		Description: `Add the configured ccgadget hooks to Claude Code's settings file.

Events that already run ccgadget are left alone. When an event has an
outdated ccgadget hook or hooks from other tools, you are asked whether to
replace them, append after them, or skip the event.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "scope",
				Value: string(config.ScopeUser),
				Usage: "Settings to update: user (~/.claude/settings.json) or local (./.claude/settings.local.json)",
			},
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "Replace outdated ccgadget hooks without asking",
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Answer every question automatically (replace outdated, append next to others)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			scope, err := config.ParseScope(cmd.String("scope"))
			if err != nil {
				return err
			}

			appCfg, source, err := env.loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config %s: %w\n  Suggestion: Fix the file or run 'ccgadget config init --force'", source, err)
			}

			opts := hooksetup.Options{
				Scope:       scope,
				Force:       cmd.Bool("force"),
				AutoApprove: cmd.Bool("yes"),
			}
			return runSetupHook(ctx, env, appCfg.Bindings(), opts)
		},
	}
}

func runSetupHook(ctx context.Context, env *Env, bindings []config.HookBinding, opts hooksetup.Options) error {
	fmt.Fprintln(env.Stdout, titleStyle.Render("🔧 Installing Claude Code hooks..."))
	fmt.Fprintf(env.Stdout, "   Scope: %s\n", opts.Scope)
	if opts.Force {
		fmt.Fprintln(env.Stdout, "   Force reinstall enabled")
	}

	for _, b := range bindings {
		if _, ok := config.LookupHookEvent(b.Event); !ok {
			fmt.Fprintln(env.Stderr, warnStyle.Render(fmt.Sprintf("   ⚠️ %s is not a known Claude Code hook event (known: %s)",
				b.Event, strings.Join(config.KnownHookEventNames(), ", "))))
		}
	}

	var prompter hooksetup.Prompter
	if !opts.AutoApprove {
		prompter = env.prompter()
	}

	engine := hooksetup.NewEngine(env.Store, prompter)
	report, err := engine.Run(ctx, bindings, opts)
	if err != nil {
		return describeSetupError(err)
	}

	for _, o := range report.Outcomes {
		fmt.Fprintln(env.Stdout, resultLine(o))
	}
	fmt.Fprintln(env.Stdout, report.Summary())
	return nil
}

func describeSetupError(err error) error {
	switch {
	case errors.Is(err, config.ErrSettingsParse):
		return fmt.Errorf("%w\n  Suggestion: Fix the JSON syntax in the settings file and retry", err)
	case errors.Is(err, config.ErrSettingsSchema):
		return fmt.Errorf("%w\n  Suggestion: Each event under \"hooks\" must be a list of {\"matcher\", \"hooks\": [...]} groups", err)
	case errors.Is(err, config.ErrPromptIO):
		return fmt.Errorf("%w\n  Suggestion: Rerun with --yes when no terminal is available", err)
	case errors.Is(err, config.ErrSettingsIO):
		return fmt.Errorf("%w\n  Suggestion: Check file permissions and ensure the directory is writable", err)
	default:
		return err
	}
}
