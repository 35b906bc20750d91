package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"
)

const defaultInterval = 30

// NewStartCmd creates the start command. The monitoring daemon itself is not
// built yet; the command reports what it would run with.
func NewStartCmd(env *Env) *cli.Command {
	return &cli.Command{
		Name:  "start",
		Usage: "Start the CCGadget monitoring daemon",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "foreground",
				Aliases: []string{"f"},
				Usage:   "Run in the foreground instead of as a daemon",
			},
			&cli.IntFlag{
				Name:    "interval",
				Aliases: []string{"i"},
				Value:   defaultInterval,
				Usage:   "Seconds between device updates",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			interval := cmd.Int("interval")
			if interval <= 0 {
				return fmt.Errorf("invalid interval %d\n  Suggestion: Use a positive number of seconds", interval)
			}
			mode := "Background"
			if cmd.Bool("foreground") {
				mode = "Foreground"
			}
			fmt.Fprintln(env.Stdout, titleStyle.Render("🚀 Starting CCGadget monitoring daemon..."))
			fmt.Fprintf(env.Stdout, "   Mode: %s\n", mode)
			fmt.Fprintf(env.Stdout, "   Update interval: %ds\n", interval)
			fmt.Fprintln(env.Stdout, "   Status: Not yet implemented")
			return nil
		},
	}
}

func secondsDuration(n int) time.Duration {
	return time.Duration(n) * time.Second
}
