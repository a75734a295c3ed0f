package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"mathqa/internal/answer"
)

var errNoLatex = errors.New("no LaTeX expression found")

func newExtractCmd(opts *options) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:     "extract",
		Short:   "Read model output from stdin and print the final LaTeX expression",
		Example: "  ollama run model 'soal' | mathqa extract\n  mathqa extract --all < output.txt",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := io.ReadAll(stdinOr(opts.in))
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			out := cmd.OutOrStdout()
			if all {
				exprs := answer.FindLatex(string(b))
				if len(exprs) == 0 {
					return errNoLatex
				}
				for _, e := range exprs {
					fmt.Fprintf(out, "%s\t%s\n", e.Style, e.Body)
				}
				return nil
			}
			expr, ok := answer.ExtractLatex(string(b))
			if !ok {
				return errNoLatex
			}
			fmt.Fprintln(out, expr)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Print every expression with its style instead of only the last")
	return cmd
}
