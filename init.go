package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mangolang/mango-ir/internal/config"
)

const configHeader = `# fqnmap configuration.
#
# languages      restrict scanning to these languages (go, python, ruby)
# max_file_size  skip files larger than this many bytes
# max_symbols    keep only the top N ranked symbols (0 keeps all)
# format         toon or yaml
# exclude        gitignore-style patterns to skip
# roots          keep only symbols under these dotted names, e.g. "app.models"

`

// newInitCmd implements `fqnmap init`, which writes a default config file
// to a directory.
func newInitCmd() *cobra.Command {
	var dryRun, force bool
	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a default " + config.FileName,
		Long: `Write a default ` + config.FileName + ` to dir (default: the current
directory). An existing file is left untouched unless --force is given.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := defaultConfig()
			if err != nil {
				return err
			}
			if dryRun {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), content)
				return nil
			}

			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			path := filepath.Join(dir, config.FileName)
			if _, err := os.Stat(path); err == nil && !force {
				return errors.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				return errors.Wrapf(err, "writing %s", path)
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the config instead of writing it")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

// defaultConfig renders the default settings with an explanatory header.
func defaultConfig() (string, error) {
	data, err := config.Encode(config.Default())
	if err != nil {
		return "", err
	}
	return configHeader + string(data), nil
}
