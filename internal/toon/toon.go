// Package toon implements TOON (Token-Oriented Object Notation) encoding.
package toon

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mangolang/mango-ir/internal/fqn"
	"github.com/mangolang/mango-ir/internal/model"
)

var (
	needsQuoting = regexp.MustCompile(`[,:"\\{}\[\]]`)
	looksNumeric = regexp.MustCompile(`^-?(?:0|[1-9]\d*)(?:\.\d+)?$`)
	keywords     = map[string]struct{}{
		"true":  {},
		"false": {},
		"null":  {},
	}
)

// Encode converts a NameMap into TOON format.
func Encode(nm *model.NameMap) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("repo: %s", encodeValue(nm.Repo)))

	symbolRows := make([][]string, 0, len(nm.Symbols))
	for i := range nm.Symbols {
		s := &nm.Symbols[i]
		symbolRows = append(symbolRows, []string{
			s.Name.String(),
			string(s.Kind),
			s.File,
			strconv.Itoa(s.Line),
			strconv.Itoa(s.Refs),
			s.Signature,
		})
	}
	parts = append(parts, formatTabular("symbols", []string{"name", "kind", "file", "line", "refs", "signature"}, symbolRows))

	depRows := make([][]string, 0, len(nm.Dependencies))
	for i := range nm.Dependencies {
		d := &nm.Dependencies[i]
		depRows = append(depRows, []string{d.Source, d.Target, joinNames(d.Symbols)})
	}
	parts = append(parts, formatTabular("dependencies", []string{"source", "target", "symbols"}, depRows))

	if len(nm.Unresolved) > 0 {
		rows := make([][]string, 0, len(nm.Unresolved))
		for i := range nm.Unresolved {
			r := &nm.Unresolved[i]
			rows = append(rows, []string{r.Name.String(), r.File, strconv.Itoa(r.Line)})
		}
		parts = append(parts, formatTabular("unresolved", []string{"name", "file", "line"}, rows))
	}

	return strings.Join(parts, "\n")
}

func joinNames(names []fqn.Fqn) string {
	s := make([]string, len(names))
	for i, n := range names {
		s[i] = n.String()
	}
	return strings.Join(s, " ")
}

func formatTabular(name string, columns []string, rows [][]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s[%d]{%s}:", name, len(rows), strings.Join(columns, ","))
	for _, row := range rows {
		encoded := make([]string, len(row))
		for i, cell := range row {
			encoded[i] = encodeValue(cell)
		}
		fmt.Fprintf(&b, "\n  %s", strings.Join(encoded, ","))
	}
	return b.String()
}

func encodeValue(value string) string {
	switch {
	case value == "":
		return `""`
	case value != strings.TrimSpace(value), strings.ContainsAny(value, "\n\r\t"):
		return quote(value)
	}

	if _, ok := keywords[strings.ToLower(value)]; ok {
		return quote(value)
	}
	if looksNumeric.MatchString(value) {
		return value
	}
	if needsQuoting.MatchString(value) || strings.HasPrefix(value, "-") {
		return quote(value)
	}
	return value
}

var quoter = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

func quote(value string) string {
	return `"` + quoter.Replace(value) + `"`
}
