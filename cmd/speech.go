package cmd

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/djecho/djecho/auth"
	"github.com/djecho/djecho/icon"
	"github.com/djecho/djecho/key"
	"github.com/djecho/djecho/speech"
	"github.com/djecho/djecho/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(speechCmd)
}

var speechCmd = &cobra.Command{
	Use:   "speech",
	Short: "Manage the voice used for commentary",
}

func init() {
	speechCmd.AddCommand(speechLoginCmd)
}

var speechLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store an ElevenLabs API key in the system keyring",
	Run: func(cmd *cobra.Command, args []string) {
		var apiKey string
		handleErr(survey.AskOne(&survey.Password{Message: "ElevenLabs API key"}, &apiKey, survey.WithValidator(survey.Required)))

		handleErr(auth.Set(auth.ElevenLabsKey, strings.TrimSpace(apiKey)))
		fmt.Printf("%s api key stored\n", icon.Get(icon.Success))
	},
}

func init() {
	speechCmd.AddCommand(speechLogoutCmd)
}

var speechLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored ElevenLabs API key",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(auth.Delete(auth.ElevenLabsKey))
		fmt.Printf("%s api key removed\n", icon.Get(icon.Success))
	},
}

func init() {
	speechCmd.AddCommand(speechSayCmd)
}

var speechSayCmd = &cobra.Command{
	Use:   "say <text>",
	Short: "Speak a line with the configured voice",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if !viper.GetBool(key.SpeechEnable) {
			handleErr(fmt.Errorf("speech is disabled, set %s to true", key.SpeechEnable))
		}
		if !auth.Has(auth.ElevenLabsKey) {
			handleErr(fmt.Errorf("no ElevenLabs key, run `djecho speech login` or set %s", auth.ElevenLabsKey.Env))
		}

		e := util.PrintErasable(fmt.Sprintf("%s Synthesizing...", icon.Get(icon.Progress)))
		clip, err := speech.New().Speak(cmd.Context(), strings.Join(args, " "))
		e()
		handleErr(err)
		defer func() { _ = util.Delete(clip) }()

		supervisor := openPlayer()
		defer func() { _ = supervisor.Close() }()

		handleErr(playAndWait(cmd.Context(), supervisor, clip, "DJ commentary", nil))
	},
}
