package cmd

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/djecho/djecho/icon"
	"github.com/djecho/djecho/key"
	"github.com/djecho/djecho/player"
	"github.com/djecho/djecho/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().StringP("title", "t", "", "Title shown while playing")
}

var playCmd = &cobra.Command{
	Use:   "play <file|url>",
	Short: "Play a single file or stream and exit when it ends",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		supervisor := openPlayer()
		defer func() { _ = supervisor.Close() }()
		defer startBroadcast(ctx, supervisor)()

		title := lo.Must(cmd.Flags().GetString("title"))
		handleErr(playAndWait(ctx, supervisor, args[0], title, func(e player.Event) {
			switch e := e.(type) {
			case player.Playing:
				cmd.Printf("%s %s\n", icon.Get(icon.Play), style.Bold(lo.Ternary(e.Title != "", e.Title, e.URI)))
				cmd.Println(style.Faint(e.Source.Format(viper.GetBool(key.TUIShowSourceDetails))))
			case player.Finished:
				if e.Err != nil {
					cmd.Printf("%s %s\n", icon.Get(icon.Warn), e.Err)
				}
			}
		}))
	},
}

// playAndWait starts uri and blocks until it finishes, is stopped or ctx ends.
// onEvent, when set, sees every event of the track.
func playAndWait(ctx context.Context, p player.Player, uri, title string, onEvent func(player.Event)) error {
	done := make(chan struct{})
	var once sync.Once

	unsubscribe := p.Subscribe(func(e player.Event) {
		if onEvent != nil {
			onEvent(e)
		}
		if player.Terminal(e) {
			once.Do(func() { close(done) })
		}
	})
	defer unsubscribe()

	if err := p.Start(uri, title); err != nil {
		return err
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return p.Stop()
	}
}
