package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/sandevgo/bondtrack/internal/core"
	"github.com/sandevgo/bondtrack/internal/ui"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:           "show <chat.json>",
	Short:         "Show the latest relationship snapshot for a chat",
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

		snap := s.tracker.Latest(ctx, s.scope)
		if snap == nil {
			fmt.Println(ui.MutedStyle.Render("no stats recorded"))
			return nil
		}
		printSnapshot(snap)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func printSnapshot(snap *core.Snapshot) {
	ts := time.UnixMilli(snap.Timestamp).Format(time.DateTime)
	fmt.Println(ui.TitleStyle.Render("SNAPSHOT " + ts))

	names := characterNames(snap)
	for _, name := range names {
		fmt.Println(ui.NameStyle.Render(name))
		printNumeric("affection", snap.Statistics.Affection[name])
		printNumeric("trust", snap.Statistics.Trust[name])
		printNumeric("desire", snap.Statistics.Desire[name])
		printNumeric("connection", snap.Statistics.Connection[name])
		if mood := snap.Statistics.Mood[name]; mood != "" {
			fmt.Printf("  %-11s %s\n", "mood", ui.ValueStyle.Render(mood))
		}
		if thought := snap.Statistics.LastThought[name]; thought != "" {
			fmt.Printf("  %-11s %s\n", "thought", ui.MutedStyle.Render(thought))
		}
	}
}

func printNumeric(label string, value float64) {
	fmt.Printf("  %-11s %s\n", label, ui.ValueStyle.Render(fmt.Sprintf("%.0f", value)))
}

// characterNames lists the snapshot's characters: active ones in order,
// then any others mentioned by a statistic.
func characterNames(snap *core.Snapshot) []string {
	seen := make(map[string]bool)
	names := make([]string, 0, len(snap.ActiveCharacters))
	for _, name := range snap.ActiveCharacters {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	var rest []string
	collect := func(keys map[string]float64) {
		for name := range keys {
			if !seen[name] {
				seen[name] = true
				rest = append(rest, name)
			}
		}
	}
	collect(snap.Statistics.Affection)
	collect(snap.Statistics.Trust)
	collect(snap.Statistics.Desire)
	collect(snap.Statistics.Connection)
	for name := range snap.Statistics.Mood {
		if !seen[name] {
			seen[name] = true
			rest = append(rest, name)
		}
	}
	for name := range snap.Statistics.LastThought {
		if !seen[name] {
			seen[name] = true
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}
