// Command idlecore is a terminal host for the idle economy engine.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/idlecore/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
