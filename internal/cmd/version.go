package cmd

import (
	"context"
	"fmt"

	"github.com/ccgadget/ccgadget/internal/constants"
	"github.com/urfave/cli/v3"
)

// VersionInfo holds version information
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
	GoVer   string
}

// NewVersionCmd creates a new version command
func NewVersionCmd(env *Env, versionInfo VersionInfo) *cli.Command {
	return &cli.Command{
		Name:    "version",
		Aliases: []string{"v"},
		Usage:   "Show version information",
		Action: func(_ context.Context, _ *cli.Command) error {
			fmt.Fprintf(env.Stdout, "%s version %s\n", constants.BinaryName, versionInfo.Version)
			fmt.Fprintf(env.Stdout, "commit: %s\n", versionInfo.Commit)
			fmt.Fprintf(env.Stdout, "date: %s\n", versionInfo.Date)
			fmt.Fprintf(env.Stdout, "go: %s\n", versionInfo.GoVer)
			return nil
		},
	}
}
