package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/djecho/djecho/broadcast"
	"github.com/djecho/djecho/commentary"
	"github.com/djecho/djecho/dj"
	"github.com/djecho/djecho/key"
	"github.com/djecho/djecho/log"
	"github.com/djecho/djecho/player"
	"github.com/djecho/djecho/selector"
	"github.com/djecho/djecho/speech"
	"github.com/djecho/djecho/util"
	"github.com/djecho/djecho/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// session is everything a listening command needs, torn down by close.
type session struct {
	ctx        context.Context
	supervisor *player.Supervisor
	dj         *dj.Session

	cleanup []func()
}

func (s *session) close() {
	for i := len(s.cleanup) - 1; i >= 0; i-- {
		s.cleanup[i]()
	}
}

// openPlayer starts the supervisor or explains which players are missing and exits.
func openPlayer() *player.Supervisor {
	supervisor, err := player.New()
	if errors.Is(err, player.ErrNoPlayer) {
		printMissingDependencyError(viper.GetStringSlice(key.PlayerCandidates))
		os.Exit(1)
	}
	handleErr(err)
	return supervisor
}

// startBroadcast serves the websocket feed when an address is configured.
func startBroadcast(ctx context.Context, p player.Player) (stop func()) {
	addr := broadcast.Address(viper.GetString(key.BroadcastAddress))
	if addr == "" {
		return func() {}
	}

	hub := broadcast.NewHub(p.Status)
	unsubscribe := p.Subscribe(hub.Observe())
	go func() {
		if err := hub.Serve(ctx, addr); err != nil {
			log.Errorf("status feed: %s", err)
		}
	}()
	return unsubscribe
}

func openSession(cmd *cobra.Command) *session {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	s := &session{ctx: ctx, cleanup: []func(){cancel}}

	// leftover speech clips from a previous run
	if err := util.Delete(where.Temp()); err != nil {
		log.Warnf("clear speech clips: %s", err)
	}

	sel, err := selector.Default()
	if err != nil {
		cancel()
		handleErr(err)
	}
	if closer, ok := sel.(interface{ Close() }); ok {
		s.cleanup = append(s.cleanup, closer.Close)
	}

	s.supervisor = openPlayer()
	s.cleanup = append(s.cleanup, func() { _ = s.supervisor.Close() })

	var speaker speech.Speaker = speech.Null{}
	if !lo.Must(cmd.Flags().GetBool("no-speech")) {
		speaker = speech.New()
	}

	s.dj = dj.New(s.supervisor, commentary.New(), speaker, sel)
	s.cleanup = append(s.cleanup, s.dj.Close, startBroadcast(ctx, s.supervisor))

	log.Infof("session ready: player %s, selector %s", s.supervisor.Binary().Name, sel.Name())
	return s
}
