package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/ccgadget/ccgadget/internal/cmd"
	"github.com/ccgadget/ccgadget/internal/constants"
)

// Set by the linker at release time
var (
	version = constants.AppVersion
	commit  = "none"
	date    = "unknown"
)

func main() {
	root := cmd.NewRootCmd(cmd.DefaultEnv(), cmd.VersionInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
		GoVer:   runtime.Version(),
	})

	if err := root.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
