package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/chatmark"
	"github.com/dmitrymomot/chatmark/pkg/markdown"
	"github.com/dmitrymomot/chatmark/pkg/sanitizer"
)

type renderFlags struct {
	policy string
	raw    bool
	trace  bool
}

func newRenderCmd() *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render markdown from a file or stdin",
		Long: "Render markdown from a file, or from stdin when no file is given, and\n" +
			"print the sanitized HTML to stdout.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			return runRender(cmd, input, f)
		},
	}

	cmd.Flags().StringVar(&f.policy, "policy", "", "YAML sanitizer policy file")
	cmd.Flags().BoolVar(&f.raw, "raw", false, "print the translator output without sanitizing")
	cmd.Flags().BoolVar(&f.trace, "trace", false, "print the text after every translator rule to stderr")

	return cmd
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		b, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return string(b), nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(b), nil
}

func runRender(cmd *cobra.Command, input string, f renderFlags) error {
	out := cmd.OutOrStdout()

	var translated string
	if f.trace {
		errOut := cmd.ErrOrStderr()
		translated = markdown.Trace(input, func(rule, text string) {
			fmt.Fprintf(errOut, "== %s\n%s\n", rule, text)
		})
	} else {
		translated = markdown.Translate(input)
	}

	if f.raw {
		_, err := fmt.Fprintln(out, translated)
		return err
	}

	var opts []sanitizer.Option
	if f.policy != "" {
		cfg, err := sanitizer.LoadConfigFile(f.policy)
		if err != nil {
			return err
		}
		opts = append(opts, sanitizer.WithConfig(cfg))
	}

	html, err := chatmark.Render(input, opts...)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, html)
	return err
}
