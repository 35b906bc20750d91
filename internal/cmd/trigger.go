package cmd

import (
	"context"
	"fmt"

	"github.com/ccgadget/ccgadget/internal/config"
	"github.com/ccgadget/ccgadget/internal/trigger"
	"github.com/urfave/cli/v3"
)

// NewTriggerCmd creates the trigger command run by Claude Code hooks. It
// never fails: a hook that errors would interrupt the user's session.
func NewTriggerCmd(env *Env) *cli.Command {
	return &cli.Command{
		Name:  "trigger",
		Usage: "Record a Claude Code hook payload from stdin",
		Action: func(ctx context.Context, _ *cli.Command) error {
			rotation := config.DefaultLogRotationConfig()
			if cfg, _, err := env.loadConfig(); err != nil {
				fmt.Fprintf(env.Stderr, "   ⚠️ Using default log rotation: %v\n", err)
			} else {
				rotation = cfg.LogRotation
			}

			dir, err := env.logDir()
			if err != nil {
				fmt.Fprintf(env.Stderr, "   ❌ Failed to locate log directory: %v\n", err)
				return nil
			}

			h := &trigger.Handler{
				Logger: trigger.NewLogger(dir, rotation),
				Out:    env.Stdout,
				Err:    env.Stderr,
			}
			if code := h.Run(ctx, env.Stdin); code != 0 {
				return cli.Exit("", code)
			}
			return nil
		},
	}
}
