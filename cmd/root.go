// Package cmd is the djecho command line.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/djecho/djecho/color"
	"github.com/djecho/djecho/constant"
	"github.com/djecho/djecho/icon"
	"github.com/djecho/djecho/key"
	"github.com/djecho/djecho/log"
	"github.com/djecho/djecho/selector"
	"github.com/djecho/djecho/style"
	"github.com/djecho/djecho/tui"
	"github.com/djecho/djecho/version"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Icons variant (emoji, nerd, plain, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("selector", "S", "", "Track selector: local, subsonic or a Lua selector name")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("selector", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return selector.Available(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.SelectorDefault, rootCmd.PersistentFlags().Lookup("selector")))

	rootCmd.PersistentFlags().Int("volume", 0, "Launch volume from 0 to 100")
	lo.Must0(viper.BindPFlag(key.PlayerVolume, rootCmd.PersistentFlags().Lookup("volume")))

	rootCmd.PersistentFlags().Bool("no-speech", false, "Print commentary instead of speaking it")
	rootCmd.PersistentFlags().String("broadcast", "", "Serve the websocket status feed on this address, e.g. :7033")
	lo.Must0(viper.BindPFlag(key.BroadcastAddress, rootCmd.PersistentFlags().Lookup("broadcast")))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})
}

var rootCmd = &cobra.Command{
	Use:   constant.App,
	Short: "A terminal radio host that talks and plays what you ask for",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - A terminal radio host that talks and plays what you ask for"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		s := openSession(cmd)
		defer s.close()

		handleErr(tui.Run(s.ctx, s.dj))
	},
}

// Execute runs the command line.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
