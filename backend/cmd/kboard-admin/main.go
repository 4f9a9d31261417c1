package main

import (
	"fmt"
	"os"

	"github.com/kevinclancy/kboard/backend/internal/cli"
)

func main() {
	if err := cli.NewRootCommand(cli.OpenEnv).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
