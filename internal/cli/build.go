package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/The-Breeth/bui-compiler/internal/compiler"
	"github.com/The-Breeth/bui-compiler/internal/ctxlog"
)

func newBuildCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [entry]",
		Short: "Compile a project and write the JSON document",
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
				return &ExitError{Code: 1, Message: "build failed"}
			}

			out, err := res.RenderJSON()
			if err != nil {
				return err
			}
			if opts.output == "" {
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
			} else {
				if err := os.WriteFile(opts.output, append(out, '\n'), 0o644); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
				ctxlog.FromContext(ctx).Info("document written", "path", opts.output)
			}

			if res.Metadata != nil {
				ctxlog.FromContext(ctx).Info("build metadata",
					"files", len(res.Metadata.IncludedFiles),
					"bytes", res.Metadata.TotalBytes,
					"elapsed", res.Metadata.Elapsed.String(),
				)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the document to a file instead of stdout.")
	opts.compileFlags(cmd)
	return cmd
}
