package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/invpt/radi/lang/intern"
	"github.com/invpt/radi/lang/lexer"
	"github.com/invpt/radi/lang/source"
	"github.com/invpt/radi/project"
)

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [file]",
		Short: "Lex a radi file and print one token per line",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := project.Load()
			if err != nil {
				return err
			}
			path, err := resolveInput(args, cfg)
			if err != nil {
				return err
			}

			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open %s: %w", path, err)
			}
			defer f.Close()

			tokens := lexer.New(source.New(f), intern.NewStore())
			for {
				tok, err := tokens.Next()
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				if tok == nil {
					return nil
				}
				fmt.Printf("%s\t%s\n", tok.Span, tok)
			}
		},
	}
}
