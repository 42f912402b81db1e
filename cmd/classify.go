package cmd

import (
	"encoding/json"

	"github.com/djecho/djecho/filesystem"
	"github.com/djecho/djecho/source"
	"github.com/djecho/djecho/style"
	"github.com/djecho/djecho/util"
	"github.com/dustin/go-humanize"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().BoolP("json", "j", false, "Output as JSON")
	classifyCmd.Flags().Bool("schema", false, "Print the JSON schema of the output and exit")
	classifyCmd.Flags().StringP("player", "p", "mpv", "Player name recorded in the result")
}

var classifyCmd = &cobra.Command{
	Use:   "classify <target>...",
	Short: "Show where a file or URL would be played from",
	Example: "  djecho classify ~/Music/song.flac\n" +
		"  djecho classify --json https://open.spotify.com/track/abc",
	Run: func(cmd *cobra.Command, args []string) {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")

		if lo.Must(cmd.Flags().GetBool("schema")) {
			handleErr(encoder.Encode(jsonschema.Reflect(&source.Document{})))
			return
		}
		if len(args) == 0 {
			handleErr(cmd.Help())
			return
		}

		playerName := lo.Must(cmd.Flags().GetString("player"))
		descriptors := lo.Map(args, func(target string, _ int) source.Descriptor {
			return source.Classify(target, playerName)
		})

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(encoder.Encode(lo.Map(descriptors, func(d source.Descriptor, _ int) source.Document {
				return d.Document()
			})))
			return
		}

		for i, d := range descriptors {
			cmd.Printf("%s %s\n", style.KindTag(string(d.Kind)), d.Format(true))

			if d.Kind != source.LocalFile {
				continue
			}
			if info, err := filesystem.API().Stat(util.ExpandHome(args[i])); err == nil {
				cmd.Println(style.Faint("  " + humanize.Bytes(uint64(info.Size())) + " on disk"))
			}
		}
	},
}
