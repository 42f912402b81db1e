package cmd

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/djecho/djecho/auth"
	"github.com/djecho/djecho/constant"
	"github.com/djecho/djecho/filesystem"
	"github.com/djecho/djecho/icon"
	"github.com/djecho/djecho/key"
	"github.com/djecho/djecho/selector"
	"github.com/djecho/djecho/style"
	"github.com/djecho/djecho/util"
	"github.com/djecho/djecho/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

// checkResult is one line of `djecho check`.
type checkResult struct {
	name   string
	ok     bool
	detail string
	// optional checks warn instead of failing
	optional bool
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that players, commentary and credentials are available",
	Run: func(cmd *cobra.Command, args []string) {
		results := runChecks()
		for _, r := range results {
			mark := icon.Get(icon.Success)
			switch {
			case !r.ok && r.optional:
				mark = icon.Get(icon.Warn)
			case !r.ok:
				mark = icon.Get(icon.Fail)
			}

			cmd.Printf("%s %s %s\n", mark, style.Bold(r.name), style.Faint(r.detail))
		}

		if lo.SomeBy(results, func(r checkResult) bool { return !r.ok && !r.optional }) {
			handleErr(fmt.Errorf("some required checks failed"))
		}
	},
}

func runChecks() []checkResult {
	var results []checkResult

	candidates := viper.GetStringSlice(key.PlayerCandidates)
	found := lo.FilterMap(candidates, func(c string, _ int) (string, bool) {
		_, err := exec.LookPath(c)
		return c, err == nil
	})
	results = append(results, checkResult{
		name:   "player",
		ok:     len(found) > 0,
		detail: lo.Ternary(len(found) > 0, "found "+strings.Join(found, ", "), "none of "+strings.Join(candidates, ", ")),
	})

	command := viper.GetString(key.CommentaryCommand)
	_, err := exec.LookPath(command)
	results = append(results, checkResult{
		name:     "commentary",
		ok:       err == nil,
		detail:   lo.Ternary(err == nil, command, command+" not found, the fallback line will be used"),
		optional: true,
	})

	if viper.GetString(key.SelectorDefault) == selector.LocalName {
		dir := util.ExpandHome(viper.GetString(key.SelectorMusicDir))
		exists, _ := filesystem.API().DirExists(dir)
		results = append(results, checkResult{
			name:   "music directory",
			ok:     exists,
			detail: dir,
		})
	}

	if viper.GetString(key.SelectorDefault) == selector.SubsonicName {
		results = append(results, checkResult{
			name:   "subsonic password",
			ok:     auth.Has(auth.SubsonicPassword),
			detail: "run `" + constant.App + " login` to store it",
		})
	}

	if viper.GetBool(key.SpeechEnable) {
		results = append(results, checkResult{
			name:     "elevenlabs key",
			ok:       auth.Has(auth.ElevenLabsKey),
			detail:   "set " + auth.ElevenLabsKey.Env + " or run `" + constant.App + " speech login`",
			optional: true,
		})
	}

	dotenv := filepath.Join(where.Config(), ".env")
	exists, _ := filesystem.API().Exists(dotenv)
	results = append(results, checkResult{
		name:     ".env",
		ok:       exists,
		detail:   dotenv,
		optional: true,
	})

	return results
}

func installHint() string {
	switch runtime.GOOS {
	case constant.Darwin:
		return "brew install mpv"
	case constant.Linux:
		return "sudo apt install mpv"
	case constant.Windows:
		return "scoop install mpv"
	}
	return ""
}

func printMissingDependencyError(candidates []string) {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.ErrorColor).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.ErrorColor).Render(fmt.Sprintf("%s Error: No Media Player", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf("None of %s was found in your PATH.", strings.Join(candidates, ", ")))

	suggestion := ""
	if hint := installHint(); hint != "" {
		suggestion = fmt.Sprintf("\n\nTo install one, try running:\n  %s", style.New().Foreground(style.AccentColor).Bold(true).Render(hint))
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}
