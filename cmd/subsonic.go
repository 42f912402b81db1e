package cmd

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/djecho/djecho/auth"
	"github.com/djecho/djecho/color"
	"github.com/djecho/djecho/icon"
	"github.com/djecho/djecho/key"
	"github.com/djecho/djecho/selector"
	"github.com/djecho/djecho/style"
	"github.com/djecho/djecho/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(subsonicCmd)
}

var subsonicCmd = &cobra.Command{
	Use:     "subsonic",
	Aliases: []string{"navidrome"},
	Short:   "Connect to a Subsonic or Navidrome server",
}

func init() {
	subsonicCmd.AddCommand(subsonicLoginCmd)

	subsonicLoginCmd.Flags().StringP("url", "u", "", "Server URL, e.g. http://localhost:4533")
	subsonicLoginCmd.Flags().StringP("user", "n", "", "Username")
	subsonicLoginCmd.Flags().Bool("default", true, "Make subsonic the default selector")
}

var subsonicLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Check credentials and store the password in the system keyring",
	Run: func(cmd *cobra.Command, args []string) {
		answers := struct {
			URL      string
			User     string
			Password string
		}{
			URL:  lo.Must(cmd.Flags().GetString("url")),
			User: lo.Must(cmd.Flags().GetString("user")),
		}

		var questions []*survey.Question
		if answers.URL == "" {
			questions = append(questions, &survey.Question{
				Name:     "url",
				Prompt:   &survey.Input{Message: "Server URL", Default: viper.GetString(key.SubsonicURL)},
				Validate: survey.Required,
			})
		}
		if answers.User == "" {
			questions = append(questions, &survey.Question{
				Name:     "user",
				Prompt:   &survey.Input{Message: "Username", Default: viper.GetString(key.SubsonicUser)},
				Validate: survey.Required,
			})
		}
		questions = append(questions, &survey.Question{
			Name:     "password",
			Prompt:   &survey.Password{Message: "Password"},
			Validate: survey.Required,
		})
		handleErr(survey.Ask(questions, &answers))

		client := selector.NewSubsonic(answers.URL, answers.User, answers.Password, viper.GetString(key.SubsonicClient))

		e := util.PrintErasable(fmt.Sprintf("%s Contacting %s...", icon.Get(icon.Progress), client.URL))
		err := client.Ping(cmd.Context())
		e()
		handleErr(err)

		handleErr(auth.Set(auth.SubsonicPassword, answers.Password))

		viper.Set(key.SubsonicURL, client.URL)
		viper.Set(key.SubsonicUser, answers.User)
		if lo.Must(cmd.Flags().GetBool("default")) {
			viper.Set(key.SelectorDefault, selector.SubsonicName)
		}
		writeConfig()

		fmt.Printf("%s logged in to %s as %s\n", icon.Get(icon.Success), client.URL, style.Fg(color.Yellow)(answers.User))
	},
}

func init() {
	subsonicCmd.AddCommand(subsonicLogoutCmd)
}

var subsonicLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored password",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(auth.Delete(auth.SubsonicPassword))
		fmt.Printf("%s subsonic password removed\n", icon.Get(icon.Success))
	},
}

func init() {
	subsonicCmd.AddCommand(subsonicPingCmd)
}

var subsonicPingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check the configured server and credentials",
	Run: func(cmd *cobra.Command, args []string) {
		client, err := selector.NewSubsonicFromConfig()
		handleErr(err)
		handleErr(client.Ping(cmd.Context()))
		fmt.Printf("%s %s is reachable\n", icon.Get(icon.Success), client.URL)
	},
}
