package main

import (
	"fmt"

	"devconsole/internal/appconfig"
	"devconsole/internal/consolewidget"
	"devconsole/internal/uistate"

	"github.com/spf13/cobra"
	"pkt.systems/pslog"
)

func newHistoryCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Print the persisted command history",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := appconfig.Load(*cfgPath)
			if err != nil {
				return err
			}
			store, err := consolewidget.OpenStore(cfg, false)
			if err != nil {
				return err
			}
			state := uistate.New(store, cfg.Namespace, pslog.Ctx(cmd.Context()))
			out := cmd.OutOrStdout()
			for i, entry := range state.History() {
				_, _ = fmt.Fprintf(out, "%4d  %s\n", i+1, entry)
			}
			return nil
		},
	}
}
