package main

import (
	"fmt"

	"github.com/sandevgo/bondtrack/internal/ui"
	"github.com/spf13/cobra"
)

var clearForce bool

var clearCmd = &cobra.Command{
	Use:           "clear <chat.json>",
	Short:         "Destroy all recorded tracker state for a chat",
	Long:          `Strips embedded snapshots from every message and removes the chat's records from all side-backends and the global index. Irreversible.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		if !clearForce {
			return fmt.Errorf("clear is irreversible; re-run with --force")
		}

		s, err := openSession(ctx, args[0])
		if err != nil {
			return err
		}
		defer s.close()

		s.tracker.ClearAll(ctx, s.scope)
		if err := s.file.Flush(ctx); err != nil {
			return err
		}

		fmt.Println(ui.MutedStyle.Render("tracker state cleared for " + s.scope.ChatID + " / " + s.scope.TargetID))
		return nil
	},
}

func init() {
	clearCmd.Flags().BoolVar(&clearForce, "force", false, "confirm the destructive reset")
	rootCmd.AddCommand(clearCmd)
}
