package cmd

import (
	"github.com/ccgadget/ccgadget/internal/constants"
	"github.com/urfave/cli/v3"
)

// NewRootCmd assembles the ccgadget command tree
func NewRootCmd(env *Env, versionInfo VersionInfo) *cli.Command {
	return &cli.Command{
		Name:      constants.BinaryName,
		Usage:     constants.AppName + " companion CLI: " + constants.AppTagline,
		Version:   versionInfo.Version,
		Writer:    env.Stdout,
		ErrWriter: env.Stderr,
		Commands: []*cli.Command{
			NewPairCmd(env),
			NewStartCmd(env),
			NewTriggerCmd(env),
			NewSetupHookCmd(env),
			NewConfigCmd(env),
			NewVersionCmd(env, versionInfo),
		},
	}
}
