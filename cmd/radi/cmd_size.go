package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/invpt/radi/lang/parser"
	"github.com/invpt/radi/project"
)

func newSizeCmd() *cobra.Command {
	var exact bool

	cmd := &cobra.Command{
		Use:   "size [file]",
		Short: "Parse a radi file and report the memory size of its syntax tree",
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

			expr, diags, err := parseFile(path, cfg)
			if diags != nil {
				printDiagnostics(path, diags)
			}
			if err != nil {
				return err
			}

			size := parser.ASTSize(expr)
			if exact {
				fmt.Printf("AST size: %dB\n", size)
			} else {
				fmt.Printf("AST size: %dKiB\n", size/1024)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&exact, "exact", false, "report exact bytes instead of KiB")

	return cmd
}
