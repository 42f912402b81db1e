package cmd

import (
	"strings"

	"github.com/djecho/djecho/commentary"
	"github.com/djecho/djecho/inline"
	"github.com/djecho/djecho/selector"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().BoolP("json", "j", false, "Output as JSON")
	askCmd.Flags().IntP("candidates", "n", 1, "How many times to ask the selector")
	askCmd.Flags().StringP("pick", "p", "all", "Which candidates to print: all, first, last or an index")
	askCmd.Flags().BoolP("commentary", "c", false, "Include a line of commentary")
	askCmd.Flags().String("player", "mpv", "Player name recorded in JSON output")
}

var askCmd = &cobra.Command{
	Use:   "ask <vibe>",
	Short: "Print tracks for a vibe without playing them",
	Long: `Ask the selector for tracks and print their URIs, one per line.
Handy for piping into a player or another script.`,
	Example: "  djecho ask rainy jazz | xargs mpv\n" +
		"  djecho ask --json -n 5 -c late night driving",
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sel, err := selector.Default()
		handleErr(err)
		if closer, ok := sel.(interface{ Close() }); ok {
			defer closer.Close()
		}

		picker, err := inline.ParsePicker(lo.Must(cmd.Flags().GetString("pick")))
		handleErr(err)

		options := &inline.Options{
			Out:        cmd.OutOrStdout(),
			Selector:   sel,
			Vibe:       strings.Join(args, " "),
			Candidates: lo.Must(cmd.Flags().GetInt("candidates")),
			Picker:     mo.Some(picker),
			Json:       lo.Must(cmd.Flags().GetBool("json")),
			Player:     lo.Must(cmd.Flags().GetString("player")),
		}
		if lo.Must(cmd.Flags().GetBool("commentary")) {
			options.Commentator = mo.Some[commentary.Commentator](commentary.New())
		}

		handleErr(inline.Run(cmd.Context(), options))
	},
}
