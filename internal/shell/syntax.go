package shell

import (
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"github.com/thoreinstein/aliasx/internal/errors"
)

// ValidateCommand parses cmd with the grammar of the named shell. csh-family
// shells have no parser and always pass. An empty name uses the bash grammar.
func ValidateCommand(cmd, shellName string) error {
	var lang syntax.LangVariant
	switch shellName {
	case "csh", "tcsh":
		return nil
	case "dash", "sh":
		lang = syntax.LangPOSIX
	case "ksh":
		lang = syntax.LangMirBSDKorn
	default:
		lang = syntax.LangBash
	}

	parser := syntax.NewParser(syntax.Variant(lang), syntax.KeepComments(false))
	if _, err := parser.Parse(strings.NewReader(cmd), ""); err != nil {
		return errors.Wrap(err, "parsing command")
	}
	return nil
}

// Commands returns the names of the programs cmd invokes, in order of
// appearance. Words built from expansions are skipped.
func Commands(cmd string) ([]string, error) {
	file, err := syntax.NewParser(syntax.Variant(syntax.LangBash)).Parse(strings.NewReader(cmd), "")
	if err != nil {
		return nil, errors.Wrap(err, "parsing command")
	}

	var names []string
	syntax.Walk(file, func(node syntax.Node) bool {
		call, ok := node.(*syntax.CallExpr)
		if !ok || len(call.Args) == 0 {
			return true
		}
		if lit := call.Args[0].Lit(); lit != "" {
			names = append(names, lit)
		}
		return true
	})
	return names, nil
}
