package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/invpt/radi/lang/diag"
	"github.com/invpt/radi/lang/intern"
	"github.com/invpt/radi/lang/lexer"
	"github.com/invpt/radi/lang/parser"
	"github.com/invpt/radi/lang/source"
	"github.com/invpt/radi/project"
)

// resolveInput picks the file a command operates on: an explicit argument
// wins, otherwise the project's configured entry file.
func resolveInput(args []string, cfg *project.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Entry != "" {
		return filepath.Join(cfg.RootDir, cfg.Entry), nil
	}
	return "", fmt.Errorf("no input file given and no entry configured in %s", project.ConfigFileName)
}

// parseFile runs the full front end over one file.
func parseFile(path string, cfg *project.Config) (parser.Expr, *diag.Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	store := intern.NewStore()
	diags := diag.NewStream()
	tokens := lexer.New(source.New(f), store)

	expr, err := parser.Parse(tokens, diags,
		parser.WithFile(path),
		parser.WithMaxDepth(cfg.Parser.MaxDepth),
	)
	if err != nil {
		return nil, diags, err
	}
	return expr, diags, nil
}

func printDiagnostics(path string, diags *diag.Stream) {
	for _, d := range diags.All() {
		fmt.Fprintf(os.Stderr, "%s: %s\n", path, d)
	}
}
