package main

import (
	"fmt"

	"github.com/sandevgo/bondtrack/internal/ui"
	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:           "history <chat.json>",
	Short:         "List reconciled snapshot history for a chat",
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		s, err := openSession(ctx, args[0])
		if err != nil {
			return err
		}
		defer s.close()

		limit := historyLimit
		if limit <= 0 {
			limit = s.cfg.HistoryLimit
		}

		snaps := s.tracker.History(ctx, s.scope, limit)
		if len(snaps) == 0 {
			fmt.Println(ui.MutedStyle.Render("no tracker history yet"))
			return nil
		}
		for _, snap := range snaps {
			printSnapshot(&snap)
			fmt.Println()
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "max snapshots to list (default from config)")
	rootCmd.AddCommand(historyCmd)
}
