package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/invpt/radi/format"
	"github.com/invpt/radi/project"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var includeSpans bool

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a radi file and dump the syntax tree",
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

			switch outputFormat {
			case "json":
				enc := format.NewASTJSONEncoder(os.Stdout)
				if err := enc.Encode(expr); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
				fmt.Println()
			case "text":
				if includeSpans {
					fmt.Print(format.TreeWithSpans(expr))
				} else {
					fmt.Print(format.Tree(expr))
				}
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json)")
	cmd.Flags().BoolVar(&includeSpans, "spans", false, "include byte spans in text output")

	return cmd
}
