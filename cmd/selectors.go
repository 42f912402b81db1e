package cmd

import (
	"fmt"
	"net/url"
	"os"
	"os/user"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/djecho/djecho/color"
	"github.com/djecho/djecho/constant"
	"github.com/djecho/djecho/filesystem"
	"github.com/djecho/djecho/icon"
	"github.com/djecho/djecho/internal/script"
	"github.com/djecho/djecho/selector"
	"github.com/djecho/djecho/style"
	"github.com/djecho/djecho/util"
	"github.com/djecho/djecho/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(selectorsCmd)
}

var selectorsCmd = &cobra.Command{
	Use:     "selectors",
	Aliases: []string{"selector"},
	Short:   "Manage track selectors",
}

func completionScripts(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return selector.Scripts(), cobra.ShellCompDirectiveNoFileComp
}

func init() {
	selectorsCmd.AddCommand(selectorsListCmd)

	selectorsListCmd.Flags().BoolP("raw", "r", false, "Only print names")
	selectorsListCmd.Flags().BoolP("custom", "c", false, "Only list Lua selectors")
	selectorsListCmd.Flags().BoolP("builtin", "b", false, "Only list built-in selectors")

	selectorsListCmd.MarkFlagsMutuallyExclusive("custom", "builtin")
	selectorsListCmd.SetOut(os.Stdout)
}

var selectorsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available selectors",
	Run: func(cmd *cobra.Command, args []string) {
		printHeader := !lo.Must(cmd.Flags().GetBool("raw"))
		headerStyle := style.New().Foreground(color.HiBlue).Bold(true).Render
		h := func(s string) {
			if printHeader {
				cmd.Println(headerStyle(s))
			}
		}

		printBuiltin := func() {
			h("Builtin:")
			cmd.Println(selector.LocalName)
			cmd.Println(selector.SubsonicName)
		}

		printCustom := func() {
			h("Custom:")
			for _, name := range selector.Scripts() {
				cmd.Println(name)
			}
		}

		switch {
		case lo.Must(cmd.Flags().GetBool("builtin")):
			printBuiltin()
		case lo.Must(cmd.Flags().GetBool("custom")):
			printCustom()
		default:
			printBuiltin()
			if printHeader {
				cmd.Println()
			}
			printCustom()
		}
	},
}

func init() {
	selectorsCmd.AddCommand(selectorsRemoveCmd)
}

var selectorsRemoveCmd = &cobra.Command{
	Use:               "remove <name>...",
	Short:             "Remove installed Lua selectors",
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: completionScripts,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range args {
			handleErr(filesystem.API().Remove(filepath.Join(where.Selectors(), name+".lua")))
			fmt.Printf("%s removed %s\n", icon.Get(icon.Success), style.Fg(color.Yellow)(name))
		}
	},
}

func init() {
	selectorsCmd.AddCommand(selectorsInstallCmd)
	selectorsInstallCmd.Flags().StringP("name", "n", "", "Name to install under, defaults to the file name in the URL")
}

var selectorsInstallCmd = &cobra.Command{
	Use:   "install <url>",
	Short: "Download a Lua selector",
	Long: `Download a Lua selector script into the selectors directory.
Installing again updates the script when it changed upstream.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		u, err := url.Parse(args[0])
		handleErr(err)
		if u.Scheme != "http" && u.Scheme != "https" {
			handleErr(fmt.Errorf("expected an http(s) URL, got %q", args[0]))
		}

		name := lo.Must(cmd.Flags().GetString("name"))
		if name == "" {
			name = util.FileStem(path.Base(u.Path))
		}
		name = util.SanitizeFilename(name)
		if name == "" || lo.Contains([]string{selector.LocalName, selector.SubsonicName}, name) {
			handleErr(fmt.Errorf("invalid selector name %q", name))
		}

		target := filepath.Join(where.Selectors(), name+".lua")
		e := util.PrintErasable(fmt.Sprintf("%s Downloading %s...", icon.Get(icon.Progress), name))
		changed, err := script.Install(cmd.Context(), u.String(), target)
		e()
		handleErr(err)

		if !changed {
			fmt.Printf("%s %s is up to date\n", icon.Get(icon.Success), style.Fg(color.Yellow)(name))
			return
		}

		fmt.Printf("%s installed %s to %s\n", icon.Get(icon.Success), style.Fg(color.Yellow)(name), target)
	},
}

func init() {
	selectorsCmd.AddCommand(selectorsGenCmd)

	selectorsGenCmd.Flags().StringP("name", "n", "", "Name of the new selector")
	selectorsGenCmd.Flags().StringP("url", "u", "", "Service the selector talks to")

	lo.Must0(selectorsGenCmd.MarkFlagRequired("name"))
}

var selectorsGenCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate a new Lua selector from a template",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.SetOut(os.Stdout)

		author := "Anonymous"
		if usr, err := user.Current(); err == nil {
			author = usr.Username
		}

		s := struct {
			Name          string
			URL           string
			Author        string
			SelectTrackFn string
		}{
			Name:          lo.Must(cmd.Flags().GetString("name")),
			URL:           lo.Must(cmd.Flags().GetString("url")),
			Author:        author,
			SelectTrackFn: constant.SelectTrackFn,
		}

		funcMap := template.FuncMap{
			"repeat": strings.Repeat,
			"plus":   func(a, b int) int { return a + b },
			"max":    func(items ...int) int { return lo.Max(items) },
		}

		tmpl, err := template.New("selector").Funcs(funcMap).Parse(constant.SelectorTemplate)
		handleErr(err)

		target := filepath.Join(where.Selectors(), util.SanitizeFilename(s.Name)+".lua")
		f, err := filesystem.API().Create(target)
		handleErr(err)

		defer util.Ignore(f.Close)

		handleErr(tmpl.Execute(f, s))
		cmd.Println(target)
	},
}

func init() {
	selectorsCmd.AddCommand(selectorsTryCmd)
}

var selectorsTryCmd = &cobra.Command{
	Use:               "try <selector> <vibe>",
	Short:             "Ask a selector for a track without playing it",
	Args:              cobra.MinimumNArgs(2),
	ValidArgsFunction: completionScripts,
	Run: func(cmd *cobra.Command, args []string) {
		sel, err := selector.New(args[0])
		handleErr(err)
		if closer, ok := sel.(interface{ Close() }); ok {
			defer closer.Close()
		}

		track, err := sel.Select(cmd.Context(), strings.Join(args[1:], " "))
		handleErr(err)

		cmd.Printf("%s %s\n", icon.Get(icon.Success), style.Bold(lo.Ternary(track.Title != "", track.Title, track.URI)))
		cmd.Println(style.Faint(track.URI))
	},
}
