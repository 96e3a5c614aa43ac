package main

import (
	"github.com/spf13/cobra"

	"github.com/invpt/radi/lang/langserver"
	"github.com/invpt/radi/project"
)

func newLSPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := project.Load()
			if err != nil {
				return err
			}
			server := langserver.New(version, cfg.Parser.MaxDepth)
			return server.RunStdio()
		},
	}
}
