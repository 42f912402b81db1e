package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/djecho/djecho/filesystem"
	"github.com/djecho/djecho/key"
	"github.com/djecho/djecho/where"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// resetFlags returns every flag in the tree to its default, since cobra keeps
// parsed values between executions.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if slice, ok := f.Value.(pflag.SliceValue); ok {
			_ = slice.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func TestRootFlags(t *testing.T) {
	Convey("Given the command tree", t, func() {
		filesystem.SetMemMapFs()
		viper.Set(key.CliVersionCheck, false)
		out := new(bytes.Buffer)
		rootCmd.SetOut(out)
		rootCmd.SetErr(out)
		resetFlags(rootCmd)
		Reset(func() {
			rootCmd.SetArgs(nil)
			rootCmd.SetOut(nil)
			rootCmd.SetErr(nil)
		})

		Convey("help renders without flag conflicts", func() {
			rootCmd.SetArgs([]string{"--help"})
			So(rootCmd.Execute(), ShouldBeNil)
			So(out.String(), ShouldContainSubstring, "--selector")
		})

		for _, sub := range []string{"where", "env", "version", "clear", "ask"} {
			sub := sub
			Convey("help for "+sub+" merges the persistent flags", func() {
				rootCmd.SetArgs([]string{sub, "--help"})
				So(rootCmd.Execute(), ShouldBeNil)

				c, _, err := rootCmd.Find([]string{sub})
				So(err, ShouldBeNil)
				So(c.Flags().ShorthandLookup("S").Name, ShouldEqual, "selector")
			})
		}

		Convey("where prints a single location by flag", func() {
			whereCmd.SetOut(out)
			Reset(func() { whereCmd.SetOut(os.Stdout) })

			rootCmd.SetArgs([]string{"where", "-l"})
			So(rootCmd.Execute(), ShouldBeNil)
			So(out.String(), ShouldEqual, where.Logs()+"\n")
		})

		Convey("where refuses more than one location", func() {
			rootCmd.SetArgs([]string{"where", "--config", "--logs"})
			So(rootCmd.Execute(), ShouldNotBeNil)
		})

		Convey("no subcommand reuses a persistent shorthand", func() {
			persistent := rootCmd.PersistentFlags()
			for _, c := range rootCmd.Commands() {
				So(c.LocalNonPersistentFlags().ShorthandLookup("S"), ShouldBeNil)
				So(persistent.ShorthandLookup("S").Name, ShouldEqual, "selector")
			}
		})
	})
}
