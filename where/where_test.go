package where

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/djecho/djecho/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		for name, fn := range map[string]func() string{
			"Config":    Config,
			"Cache":     Cache,
			"Logs":      Logs,
			"Selectors": Selectors,
			"Temp":      Temp,
		} {
			Convey(name+"() creates its directory", func() {
				path := fn()
				So(path, ShouldNotBeEmpty)
				So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
			})
		}

		Convey("Queries() lives in the cache", func() {
			So(filepath.Dir(Queries()), ShouldEqual, Cache())
		})

		Convey("DJECHO_CONFIG_PATH overrides the config directory", func() {
			lo.Must0(os.Setenv(EnvConfigPath, "/custom/djecho"))
			defer os.Unsetenv(EnvConfigPath)

			So(Config(), ShouldEqual, "/custom/djecho")
			So(Logs(), ShouldEqual, filepath.Join("/custom/djecho", "logs"))
		})
	})
}
