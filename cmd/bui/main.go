package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/The-Breeth/bui-compiler/internal/cli"
)

// main is the entrypoint for the bui compiler.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Message != "" {
				fmt.Fprintln(os.Stderr, exitErr.Message)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the command dispatch for easier testing and error handling.
func run(outW, errW io.Writer, args []string) error {
	root := cli.NewRootCmd(outW, errW)
	root.SetArgs(args)
	return root.Execute()
}
