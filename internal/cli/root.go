// Package cli is the command-line front end of the compiler. It owns flag
// parsing, output writing and exit codes; the compilation itself lives in
// internal/compiler.
package cli

import (
	"context"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/The-Breeth/bui-compiler/internal/config"
	"github.com/The-Breeth/bui-compiler/internal/ctxlog"
	"github.com/The-Breeth/bui-compiler/internal/merge"
)

// projectConfigName is the conventionally named per-project config file,
// picked up from the entry directory when present.
const projectConfigName = "bui.yaml"

// options carries flag values shared by the compile-flavored commands.
type options struct {
	configPath   string
	logLevel     string
	logFormat    string
	output       string
	maxFiles     int
	maxFileSize  int64
	metadata     bool
	probe        bool
	probeTimeout int
}

// NewRootCmd assembles the bui command tree.
func NewRootCmd(outW, errW io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "bui",
		Short:         "Compile .bui service definitions into validated documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(outW)
	root.SetErr(errW)

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Path to a bui.yaml config file.")
	pf.StringVar(&opts.logLevel, "log-level", "", "Logging level: debug, info, warn or error.")
	pf.StringVar(&opts.logFormat, "log-format", "", "Log output format: text or json.")

	root.AddCommand(
		newBuildCmd(opts),
		newValidateCmd(opts),
		newWatchCmd(opts),
		newVersionCmd(),
	)
	return root
}

// loadConfig assembles the effective configuration for an entry path:
// defaults, then the project or explicit config file, then flags.
func (o *options) loadConfig(cmd *cobra.Command, entry string) (*config.Config, error) {
	cfg := config.Default()

	if o.configPath != "" {
		if err := cfg.ApplyFile(o.configPath, true); err != nil {
			return nil, &ExitError{Code: 2, Message: err.Error()}
		}
	} else if dir := entryDir(entry); dir != "" {
		if err := cfg.ApplyFile(filepath.Join(dir, projectConfigName), false); err != nil {
			return nil, &ExitError{Code: 2, Message: err.Error()}
		}
	}

	flags := cmd.Flags()
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.logFormat != "" {
		cfg.LogFormat = o.logFormat
	}
	if flags.Changed("max-files") {
		cfg.MaxFiles = o.maxFiles
	}
	if flags.Changed("max-file-size") {
		cfg.MaxFileSizeBytes = o.maxFileSize
	}
	if flags.Changed("metadata") {
		cfg.IncludeMetadata = o.metadata
	}
	if flags.Changed("probe") {
		cfg.ProbeURLs = o.probe
	}
	if flags.Changed("probe-timeout") {
		cfg.ProbeTimeoutMs = o.probeTimeout
	}

	validated, err := config.New(cfg)
	if err != nil {
		return nil, &ExitError{Code: 2, Message: err.Error()}
	}
	return validated, nil
}

// compileFlags registers the flags shared by build, validate and watch.
func (o *options) compileFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVar(&o.maxFiles, "max-files", 0, "Maximum number of included files.")
	f.Int64Var(&o.maxFileSize, "max-file-size", 0, "Maximum size of a single file in bytes.")
	f.BoolVar(&o.metadata, "metadata", false, "Include build metadata in the result.")
	f.BoolVar(&o.probe, "probe", false, "Probe external URLs for reachability (best effort).")
	f.IntVar(&o.probeTimeout, "probe-timeout", 0, "Probe timeout in milliseconds.")
}

// commandContext builds the logging context for a command invocation.
func (o *options) commandContext(cmd *cobra.Command, cfg *config.Config) context.Context {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	return ctxlog.WithLogger(cmd.Context(), logger)
}

// entryArg turns the optional positional argument into an entry path.
func entryArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

// entryDir guesses the project directory of an entry path without touching
// the file system more than needed.
func entryDir(entry string) string {
	if entry == "" {
		return ""
	}
	if filepath.Ext(entry) == merge.Extension {
		return filepath.Dir(entry)
	}
	return entry
}
