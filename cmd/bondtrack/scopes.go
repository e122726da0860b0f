package main

import (
	"fmt"
	"time"

	"github.com/sandevgo/bondtrack/internal/config"
	"github.com/sandevgo/bondtrack/internal/storage"
	"github.com/sandevgo/bondtrack/internal/storage/sqlite"
	"github.com/sandevgo/bondtrack/internal/ui"
	"github.com/spf13/cobra"
)

var scopesCmd = &cobra.Command{
	Use:           "scopes",
	Short:         "List every scope known to the global index",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		cfg := config.NewAppConfig(ctx)
		db, err := sqlite.NewDB(ctx, cfg.GetDatabasePath())
		if err != nil {
			return err
		}
		defer db.Close()

		index := storage.NewGlobalIndex(sqlite.NewKVRepo(db))
		scopes := index.Scopes(ctx)
		if len(scopes) == 0 {
			fmt.Println(ui.MutedStyle.Render("no scopes recorded"))
			return nil
		}
		for _, scope := range scopes {
			line := scope.ChatID + " / " + scope.TargetID
			if ptr := index.Latest(ctx, scope); ptr != nil {
				ts := time.UnixMilli(ptr.Timestamp).Format(time.DateTime)
				line += "  " + ui.MutedStyle.Render("last saved "+ts)
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scopesCmd)
}
