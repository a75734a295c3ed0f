package cli

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"
)

func newAskCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "ask <question>",
		Short:   "Ask one question and print the JSON result",
		Example: "  mathqa ask \"Berapakah 2+2?\"",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve()
			if err != nil {
				return err
			}
			svc, err := newService(cfg, newLogger(cfg.LogLevel, opts.err))
			if err != nil {
				return err
			}
			res := svc.Ask(cmd.Context(), strings.Join(args, " "))
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetEscapeHTML(false)
			enc.SetIndent("", "  ")
			return enc.Encode(res.Response())
		},
	}
}
