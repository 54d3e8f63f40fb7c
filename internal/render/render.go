// Package render writes a name map in one of the supported output formats.
package render

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mangolang/mango-ir/internal/config"
	"github.com/mangolang/mango-ir/internal/model"
	"github.com/mangolang/mango-ir/internal/toon"
)

// Header introduces TOON output for readers that have not seen it before.
const Header = "# Name Map\n# Symbols are fully-qualified and ranked by inbound references.\n"

// Write encodes nm to w in format.
func Write(w io.Writer, nm *model.NameMap, format string) error {
	switch format {
	case config.FormatTOON:
		_, err := fmt.Fprintf(w, "%s%s\n", Header, toon.Encode(nm))
		return errors.Wrap(err, "writing toon")
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(nm); err != nil {
			return errors.Wrap(err, "encoding yaml")
		}
		return errors.Wrap(enc.Close(), "encoding yaml")
	}
	return errors.Errorf("unsupported format %q", format)
}
