package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/The-Breeth/bui-compiler/internal/compiler"
	"github.com/The-Breeth/bui-compiler/internal/ctxlog"
	"github.com/The-Breeth/bui-compiler/internal/watch"
)

func newWatchCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [entry]",
		Short: "Rebuild the project whenever a source file changes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry := entryArg(args)

			cfg, err := opts.loadConfig(cmd, entry)
			if err != nil {
				return err
			}
			ctx := opts.commandContext(cmd, cfg)
			log := ctxlog.FromContext(ctx)

			rebuild := func() {
				res := compiler.Compile(ctx, entry, cfg.CompilerOptions())
				renderDiagnostics(cmd.ErrOrStderr(), res)
				if res.Success {
					log.Info("Build succeeded", "services", len(res.Document.Services))
				} else {
					log.Warn("Build failed, waiting for changes")
				}
			}
			rebuild()

			w, err := watch.New(entryDir(entry), watch.DefaultDebounce, rebuild)
			if err != nil {
				return &ExitError{Code: 2, Message: fmt.Sprintf("starting watcher: %v", err)}
			}
			defer w.Close()

			log.Info("Watching for changes", "dir", entryDir(entry))
			w.Run(ctx)
			return nil
		},
	}
	opts.compileFlags(cmd)
	return cmd
}
