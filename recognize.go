package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mangolang/mango-ir/internal/fqn"
)

func newRecognizeCmd() *cobra.Command {
	var minSegments int
	cmd := &cobra.Command{
		Use:   "recognize [file]...",
		Short: "Print the FQN-shaped tokens found in text",
		Long: `Scan the given files (or stdin) and print every token that looks like a
fully-qualified name as "file:line:column<TAB>token".`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				return recognize(cmd.InOrStdin(), "-", minSegments, out)
			}
			for _, path := range args {
				f, err := os.Open(path)
				if err != nil {
					return errors.Wrap(err, "opening input")
				}
				err = recognize(f, path, minSegments, out)
				_ = f.Close()
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&minSegments, "min-segments", 1, "only print names with at least this many segments")
	return cmd
}

func recognize(r io.Reader, label string, minSegments int, w io.Writer) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for lineNo := 1; sc.Scan(); lineNo++ {
		for _, m := range fqn.Scan(sc.Text()) {
			f, err := fqn.New(m.Text)
			if err != nil || f.Len() < minSegments {
				continue
			}
			if _, err := fmt.Fprintf(w, "%s:%d:%d\t%s\n", label, lineNo, m.Offset+1, f); err != nil {
				return err
			}
		}
	}
	return errors.Wrapf(sc.Err(), "reading %s", label)
}
