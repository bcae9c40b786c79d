package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/The-Breeth/bui-compiler/internal/compiler"
)

func newValidateCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [entry]",
		Short: "Compile a project and report diagnostics without writing output",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry := entryArg(args)

			cfg, err := opts.loadConfig(cmd, entry)
			if err != nil {
				return err
			}
			ctx := opts.commandContext(cmd, cfg)

			res := compiler.Compile(ctx, entry, cfg.CompilerOptions())
			renderDiagnostics(cmd.ErrOrStderr(), res)

			if !res.Success {
				return &ExitError{Code: 1, Message: "validation failed"}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d service(s)\n", len(res.Document.Services))
			return nil
		},
	}
	opts.compileFlags(cmd)
	return cmd
}
