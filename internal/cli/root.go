// Package cli implements the mathqa command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"mathqa/internal/common/fsutil"
	"mathqa/internal/config"
)

// configCandidates are searched in order when --config is not given.
var configCandidates = []string{
	"mathqa.yaml",
	"mathqa.yml",
	"mathqa.toml",
	"mathqa.json",
	"~/.config/mathqa/config.yaml",
}

type options struct {
	configPath string
	logLevel   string
	addr       string
	stop       string

	in  io.Reader
	out io.Writer
	err io.Writer
}

// Execute runs the command tree with args and returns the process exit code.
func Execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	root := NewRootCmd(in, out, errOut)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}
	return 0
}

// NewRootCmd constructs the mathqa command tree reading from in and writing to out/errOut.
func NewRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	opts := &options{in: in, out: out, err: errOut}
	root := &cobra.Command{
		Use:           "mathqa",
		Short:         "Indonesian math QA relay in front of an Ollama model",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	root.CompletionOptions.DisableDefaultCmd = true

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (.yaml|.yml|.toml|.json); defaults to ./mathqa.yaml or ~/.config/mathqa/config.yaml")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug|info|warn|error|off (defaults MATHQA_LOG_LEVEL or info)")
	root.PersistentFlags().StringVar(&opts.stop, "stop", "", "Comma-separated stop sequences sent to the model")

	root.AddCommand(newServeCmd(opts), newAskCmd(opts), newExtractCmd(opts), newCompletionCmd(root))
	return root
}

// resolve loads the effective configuration and applies flag overrides on top.
func (o *options) resolve() (config.Config, error) {
	path := o.configPath
	if path == "" {
		path = fsutil.FirstExisting(configCandidates...)
	}
	cfg, err := config.Resolve(path)
	if err != nil {
		return cfg, err
	}
	if o.logLevel != "" {
		cfg.LogLevel = strings.ToLower(o.logLevel)
	}
	if o.addr != "" {
		cfg.Addr = o.addr
	}
	if stops := splitCSV(o.stop); len(stops) > 0 {
		cfg.StopSequences = stops
	}
	if err := config.Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newCompletionCmd(root *cobra.Command) *cobra.Command {
	completionCmd := &cobra.Command{Use: "completion", Short: "Generate the autocompletion script for the specified shell"}
	completionCmd.AddCommand(&cobra.Command{Use: "bash", Short: "Bash completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenBashCompletion(cmd.OutOrStdout()) }})
	completionCmd.AddCommand(&cobra.Command{Use: "zsh", Short: "Zsh completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenZshCompletion(cmd.OutOrStdout()) }})
	completionCmd.AddCommand(&cobra.Command{Use: "fish", Short: "Fish completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenFishCompletion(cmd.OutOrStdout(), true) }})
	completionCmd.AddCommand(&cobra.Command{Use: "powershell", Short: "PowerShell completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenPowerShellCompletionWithDesc(cmd.OutOrStdout()) }})
	return completionCmd
}

// splitCSV splits a comma-separated list, trimming blanks and dropping empties.
func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// stdinOr falls back to os.Stdin when no reader was injected.
func stdinOr(r io.Reader) io.Reader {
	if r == nil {
		return os.Stdin
	}
	return r
}
