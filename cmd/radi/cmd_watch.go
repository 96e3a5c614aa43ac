package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/invpt/radi/lang/watch"
	"github.com/invpt/radi/project"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [dir]",
		Short: "Re-check radi files whenever they change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := project.Load()
			if err != nil {
				return err
			}
			dir := cfg.RootDir
			if len(args) > 0 {
				dir = args[0]
			}

			commonlog.Configure(1, nil)
			log := commonlog.GetLogger("radi.watch")

			w, err := watch.New(cfg.Watch.Extensions)
			if err != nil {
				return fmt.Errorf("start watcher: %w", err)
			}
			defer w.Close()

			if err := w.AddDir(dir); err != nil {
				return fmt.Errorf("watch %s: %w", dir, err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Infof("watching %s", dir)
			for {
				select {
				case <-ctx.Done():
					return nil
				case ev := <-w.Events():
					checkChanged(log, ev.Path, cfg)
				case err := <-w.Errors():
					log.Errorf("watch: %v", err)
				}
			}
		},
	}
}

func checkChanged(log commonlog.Logger, path string, cfg *project.Config) {
	_, diags, err := parseFile(path, cfg)
	if diags != nil {
		printDiagnostics(path, diags)
	}
	if err != nil {
		log.Errorf("%v", err)
		return
	}
	log.Infof("%s: ok", path)
}
