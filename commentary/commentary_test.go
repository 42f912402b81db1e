package commentary

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/djecho/djecho/constant"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCommand(t *testing.T) {
	Convey("Given a commentary command", t, func() {
		var gotName string
		var gotArgs []string
		c := NewCommand("ollama", "gemma3:4b", time.Second)

		Convey("the model's reply is trimmed", func() {
			c.run = func(_ context.Context, name string, args ...string) (string, error) {
				gotName, gotArgs = name, args
				return "\n  Slow it down, night owls.  \n", nil
			}

			So(c.Comment(context.Background(), "rainy jazz"), ShouldEqual, "Slow it down, night owls.")
			So(gotName, ShouldEqual, "ollama")
			So(gotArgs, ShouldHaveLength, 3)
			So(gotArgs[:2], ShouldResemble, []string{"run", "gemma3:4b"})
			So(gotArgs[2], ShouldContainSubstring, "User said: rainy jazz")
			So(gotArgs[2], ShouldContainSubstring, constant.DJName)
		})

		Convey("failures fall back", func() {
			c.run = func(context.Context, string, ...string) (string, error) {
				return "", errors.New("exec: \"ollama\": executable file not found in $PATH")
			}
			So(c.Comment(context.Background(), "x"), ShouldEqual, Fallback)
		})

		Convey("an empty reply falls back", func() {
			c.run = func(context.Context, string, ...string) (string, error) {
				return "   ", nil
			}
			So(c.Comment(context.Background(), "x"), ShouldEqual, Fallback)
		})

		Convey("the timeout bounds the call", func() {
			c.Timeout = 10 * time.Millisecond
			c.run = func(ctx context.Context, _ string, _ ...string) (string, error) {
				<-ctx.Done()
				return "", ctx.Err()
			}
			So(c.Comment(context.Background(), "x"), ShouldEqual, Fallback)
		})
	})

	Convey("Static repeats itself", t, func() {
		So(Static("hi").Comment(context.Background(), "x"), ShouldEqual, "hi")
	})
}
