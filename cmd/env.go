package cmd

import (
	"os"

	"github.com/djecho/djecho/color"
	"github.com/djecho/djecho/config"
	"github.com/djecho/djecho/style"
	"github.com/djecho/djecho/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "Only show variables that are set")
	envCmd.Flags().BoolP("unset-only", "u", false, "Only show variables that are unset")

	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Show the environment variables djecho reads",
	Long: `Show the environment variables djecho reads and their current values.
Variables may also come from a .env file in the working or config directory.`,
	Run: func(cmd *cobra.Command, args []string) {
		setOnly := lo.Must(cmd.Flags().GetBool("set-only"))
		unsetOnly := lo.Must(cmd.Flags().GetBool("unset-only"))

		names := lo.Map(config.EnvExposed, func(k string, _ int) string {
			field := config.Default[k]
			return field.Env()
		})
		names = append(names, where.EnvConfigPath)
		names = append(names, config.LegacyEnv()...)
		slices.Sort(names)
		names = slices.Compact(names)

		for _, env := range names {
			value, present := os.LookupEnv(env)
			present = present && value != ""

			if (setOnly && !present) || (unsetOnly && present) {
				continue
			}

			cmd.Print(style.New().Bold(true).Foreground(color.Purple).Render(env))
			cmd.Print("=")

			if present {
				cmd.Println(style.Fg(color.Green)(value))
			} else {
				cmd.Println(style.Fg(color.Red)("unset"))
			}
		}
	},
}
