package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mangolang/mango-ir/internal/fqn"
	"github.com/mangolang/mango-ir/internal/name"
)

func newCheckCmd() *cobra.Command {
	var against string
	cmd := &cobra.Command{
		Use:   "check <name>...",
		Short: "Validate dotted names",
		Long: `Validate each argument as a fully-qualified name and print its segments.
With --against, also report whether the name equals the given identifier
(true only for a simple name with that identifier as its only segment).`,
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var ident name.Name
			if against != "" {
				var err error
				if ident, err = name.New(against); err != nil {
					return errors.Wrap(err, "--against")
				}
			}

			out := cmd.OutOrStdout()
			okColor, badColor := color.New(color.FgGreen), color.New(color.FgRed)
			if out != os.Stdout {
				okColor.DisableColor()
				badColor.DisableColor()
			}
			green, red := okColor.SprintFunc(), badColor.SprintFunc()

			invalid := 0
			for _, arg := range args {
				f, err := fqn.New(arg)
				if err != nil {
					invalid++
					_, _ = fmt.Fprintf(out, "%s %s: %v\n", red("invalid"), arg, err)
					continue
				}
				line := fmt.Sprintf("%s %s segments=%d leaf=%s parts=%s",
					green("ok"), f, f.Len(), f.Leaf(), joinParts(f))
				if against != "" {
					line += fmt.Sprintf(" equals(%s)=%t", ident, fqn.NamePath(ident).Equal(f))
				}
				_, _ = fmt.Fprintln(out, line)
			}
			if invalid > 0 {
				return errors.Errorf("%d of %d names invalid", invalid, len(args))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&against, "against", "", "identifier to compare each name with")
	return cmd
}

func joinParts(f fqn.Fqn) string {
	parts := f.Parts()
	s := make([]string, len(parts))
	for i, p := range parts {
		s[i] = p.String()
	}
	return "[" + strings.Join(s, " ") + "]"
}
