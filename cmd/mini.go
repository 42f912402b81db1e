package cmd

import (
	"github.com/djecho/djecho/mini"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(miniCmd)
}

var miniCmd = &cobra.Command{
	Use:   "mini",
	Short: "Line mode: type a vibe or a command at a prompt",
	Long: `Start the line interface. Type a vibe to hear commentary and a track,
or one of pause, resume, stop, skip, volume <0-100>, status, stats and quit.`,
	Run: func(cmd *cobra.Command, args []string) {
		s := openSession(cmd)
		defer s.close()

		handleErr(mini.Run(s.ctx, s.dj))
	},
}
