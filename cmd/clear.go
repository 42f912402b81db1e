package cmd

import (
	"fmt"

	"github.com/djecho/djecho/filesystem"
	"github.com/djecho/djecho/icon"
	"github.com/djecho/djecho/internal/cache"
	"github.com/djecho/djecho/util"
	"github.com/djecho/djecho/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

// clearTarget is a location the clear command can wipe.
type clearTarget struct {
	name     string
	argLong  string
	argShort mo.Option[string]
	location func() string
}

var clearTargets = []clearTarget{
	{"cache directory", "cache", mo.Some("c"), where.Cache},
	{"speech clips", "temp", mo.Some("t"), where.Temp},
	{"vibe history", "queries", mo.Some("q"), where.Queries},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, target := range clearTargets {
		help := fmt.Sprintf("clear %s", target.name)
		if target.argShort.IsPresent() {
			clearCmd.Flags().BoolP(target.argLong, target.argShort.MustGet(), false, help)
		} else {
			clearCmd.Flags().Bool(target.argLong, false, help)
		}
	}
	clearCmd.Flags().Bool("expired", false, "only drop expired cache entries")
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear cached responses, speech clips and vibe history",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("expired")) {
			cache.CollectGarbage()
			fmt.Printf("%s Expired cache entries removed\n", icon.Get(icon.Success))
			return
		}

		var anyCleared bool
		for _, target := range clearTargets {
			if !lo.Must(cmd.Flags().GetBool(target.argLong)) {
				continue
			}

			anyCleared = true
			e := util.PrintErasable(fmt.Sprintf("%s Clearing %s...", icon.Get(icon.Progress), target.name))
			err := util.Delete(target.location())
			e()
			handleErr(err)
			handleErr(filesystem.API().RemoveAll(target.location()))
			fmt.Printf("%s %s cleared\n", icon.Get(icon.Success), util.Capitalize(target.name))
		}

		if !anyCleared {
			handleErr(cmd.Help())
		}
	},
}
