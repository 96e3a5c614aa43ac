package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/invpt/radi/project"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [file]",
		Short: "Parse a radi file and report errors without dumping the tree",
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

			_, diags, err := parseFile(path, cfg)
			if diags != nil {
				printDiagnostics(path, diags)
			}
			if err != nil {
				return err
			}
			if n := diags.Len(); n > 0 {
				return fmt.Errorf("%s: %d diagnostics", path, n)
			}
			fmt.Printf("%s: ok\n", path)
			return nil
		},
	}
}
