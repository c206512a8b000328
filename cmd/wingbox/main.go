package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/chazu/wingbox/pkg/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err == nil {
		return
	}

	// Command-level failures already printed themselves through the
	// formatter; only surface errors cobra swallowed (bad flags etc.).
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.GetExitCode(err))
}
