package player

import (
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/djecho/djecho/constant"
	"github.com/djecho/djecho/key"
	"github.com/djecho/djecho/log"
	"github.com/djecho/djecho/source"
	"github.com/djecho/djecho/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	MinVolume = 0
	MaxVolume = 100
)

// Supervisor owns the player process and the playback state.
//
// Every exported method is safe for concurrent use. State changes are applied
// by a single owner goroutine in the order requests arrive, and events reach
// each subscriber in that same order.
type Supervisor struct {
	binary       Binary
	launcher     Launcher
	newTicker    TickerFunc
	tickInterval time.Duration
	stopTimeout  time.Duration
	ipc          bool
	classify     func(target, player string) source.Descriptor
	candidates   []string

	inbox    chan any
	done     chan struct{}
	snapshot atomic.Pointer[State]

	// owned by the run goroutine
	state       State
	proc        Process
	mon         *monitor
	ctl         *mpvControl
	session     uint64
	elapsed     time.Duration
	subscribers map[uint64]*mailbox
	nextSub     uint64
	closing     bool
}

type Option func(*Supervisor)

// WithBinary skips discovery and uses the given player.
func WithBinary(b Binary) Option {
	return func(s *Supervisor) { s.binary = b }
}

func WithCandidates(candidates ...string) Option {
	return func(s *Supervisor) { s.candidates = candidates }
}

func WithLauncher(l Launcher) Option {
	return func(s *Supervisor) { s.launcher = l }
}

func WithTicker(f TickerFunc) Option {
	return func(s *Supervisor) { s.newTicker = f }
}

func WithTickInterval(d time.Duration) Option {
	return func(s *Supervisor) { s.tickInterval = d }
}

// WithStopTimeout bounds how long Stop waits for the player to quit before killing it.
func WithStopTimeout(d time.Duration) Option {
	return func(s *Supervisor) { s.stopTimeout = d }
}

// WithVolume sets the initial volume, clamped to [0, 100].
func WithVolume(level int) Option {
	return func(s *Supervisor) { s.state.Volume = util.Clamp(level, MinVolume, MaxVolume) }
}

// WithControl toggles the mpv IPC control channel.
func WithControl(enabled bool) Option {
	return func(s *Supervisor) { s.ipc = enabled }
}

func WithClassifier(f func(target, player string) source.Descriptor) Option {
	return func(s *Supervisor) { s.classify = f }
}

// New discovers a player binary and starts the supervisor. It fails with
// ErrNoPlayer when none of the candidates is installed.
func New(options ...Option) (*Supervisor, error) {
	s := &Supervisor{
		launcher:     ExecLauncher{},
		newTicker:    defaultTicker,
		tickInterval: time.Duration(viper.GetInt(key.PlayerTickInterval)) * time.Second,
		stopTimeout:  time.Duration(viper.GetInt(key.PlayerStopTimeout)) * time.Second,
		ipc:          viper.GetBool(key.PlayerIPCControl),
		classify:     source.Classify,
		candidates:   viper.GetStringSlice(key.PlayerCandidates),
		inbox:        make(chan any, 16),
		done:         make(chan struct{}),
		subscribers:  make(map[uint64]*mailbox),
		state: State{
			Status: StatusIdle,
			Volume: util.Clamp(viper.GetInt(key.PlayerVolume), MinVolume, MaxVolume),
		},
	}

	for _, option := range options {
		option(s)
	}

	if s.tickInterval <= 0 {
		s.tickInterval = time.Second
	}
	if s.stopTimeout <= 0 {
		s.stopTimeout = 3 * time.Second
	}

	if s.binary.Path == "" {
		binary, err := Discover(s.candidates)
		if err != nil {
			return nil, err
		}
		s.binary = binary
	}
	if s.binary.Name == "" {
		s.binary.Name = binaryName(s.binary.Path)
	}

	if s.ipc && (s.binary.Name != "mpv" || runtime.GOOS == constant.Windows) {
		log.Infof("ipc control is only available for mpv on unix, %s will be controlled logically", s.binary.Name)
		s.ipc = false
	}

	s.state.Player = s.binary.Name
	s.publish()

	go s.run()

	log.Infof("player supervisor ready with %s (%s)", s.binary.Name, s.binary.Path)
	return s, nil
}

// Binary returns the player in use.
func (s *Supervisor) Binary() Binary {
	return s.binary
}

type (
	command struct {
		fn    func() error
		reply chan error
	}

	durationKnown struct {
		session uint64
		seconds int
	}
)

// call runs fn on the owner goroutine and waits for its result.
func (s *Supervisor) call(fn func() error) error {
	reply := make(chan error, 1)

	select {
	case s.inbox <- command{fn: fn, reply: reply}:
	case <-s.done:
		return ErrClosed
	}

	select {
	case err := <-reply:
		return err
	case <-s.done:
		return ErrClosed
	}
}

func (s *Supervisor) run() {
	defer close(s.done)

	for !s.closing {
		switch msg := (<-s.inbox).(type) {
		case command:
			msg.reply <- msg.fn()
		case tick:
			s.handleTick(msg)
		case exited:
			s.handleExit(msg)
		case durationKnown:
			if msg.session == s.session && s.state.Status.Active() {
				s.state.DurationSeconds = msg.seconds
				s.publish()
			}
		}
	}

	for id, box := range s.subscribers {
		box.close()
		delete(s.subscribers, id)
	}
}

// Start stops whatever is playing and launches the player on uri.
// An empty title falls back to the display name of the classified source.
func (s *Supervisor) Start(uri, title string) error {
	return s.call(func() error { return s.start(uri, title) })
}

// Stop terminates the player and resets to idle. It always emits Stopped,
// even when nothing was playing.
func (s *Supervisor) Stop() error {
	return s.call(func() error {
		s.stop()
		return nil
	})
}

// Pause is logical: the player keeps running unless the mpv control channel is on.
func (s *Supervisor) Pause() error {
	return s.call(func() error { return s.pause() })
}

func (s *Supervisor) Resume() error {
	return s.call(func() error { return s.resume() })
}

// SetVolume stores level clamped to [0, 100] and returns the stored value.
// Without a control channel it only affects the next launch.
func (s *Supervisor) SetVolume(level int) int {
	stored := util.Clamp(level, MinVolume, MaxVolume)
	_ = s.call(func() error {
		stored = s.setVolume(level)
		return nil
	})
	return stored
}

// Status returns the latest snapshot without blocking.
func (s *Supervisor) Status() State {
	return *s.snapshot.Load()
}

// Subscribe registers fn for every future event. Events are delivered in
// order on a goroutine dedicated to fn.
func (s *Supervisor) Subscribe(fn func(Event)) (unsubscribe func()) {
	var id uint64
	err := s.call(func() error {
		s.nextSub++
		id = s.nextSub
		s.subscribers[id] = newMailbox(fn)
		return nil
	})
	if err != nil {
		return func() {}
	}

	return func() {
		_ = s.call(func() error {
			if box, ok := s.subscribers[id]; ok {
				box.close()
				delete(s.subscribers, id)
			}
			return nil
		})
	}
}

// Close stops playback and shuts the supervisor down. Pending events are
// still delivered to subscribers.
func (s *Supervisor) Close() error {
	err := s.call(func() error {
		s.stop()
		s.closing = true
		return nil
	})
	if errors.Is(err, ErrClosed) {
		return nil
	}

	<-s.done
	return err
}

func (s *Supervisor) start(uri, title string) error {
	target, err := sanitizeMediaTarget(uri)
	if err != nil {
		log.Warnf("refusing to play %q: %s", uri, err)
		return err
	}

	if s.proc != nil {
		s.stop()
	}

	next, ok := Transition(s.state.Status, ActStart)
	if !ok {
		return fmt.Errorf("%w: cannot start while %s", ErrInvalidState, s.state.Status)
	}

	descriptor := s.classify(target, s.binary.Name)
	if title == "" {
		title = descriptor.DisplayName
	}

	var socket string
	if s.ipc {
		socket = newSocketPath()
	}

	args := launchArgs(s.binary.Name, launchTarget(target), title, s.state.Volume, socket)
	proc, err := s.launcher.Launch(s.binary.Path, args)
	if err != nil {
		log.Errorf("launch %s: %s", s.binary.Name, err)
		s.state = s.state.idle()
		s.publish()
		return fmt.Errorf("%w: %w", ErrSpawn, err)
	}

	s.session++
	s.proc = proc
	s.mon = startMonitor(s.session, proc, s.newTicker, s.tickInterval, s.inbox)
	if socket != "" {
		s.ctl = newMPVControl(socket)
	}

	s.state.Status = next
	s.state.TrackURI = mo.Some(target)
	s.state.TrackTitle = mo.Some(title)
	s.state.Source = mo.Some(descriptor)
	s.state.PositionSeconds = 0
	s.elapsed = 0
	s.state.DurationSeconds = 0
	s.state.StartedAt = mo.Some(time.Now())
	s.publish()

	log.WithFields(logrus.Fields{
		"pid":    proc.PID(),
		"player": s.binary.Name,
		"source": descriptor.Kind,
	}).Infof("playing %s", descriptor.Format(false))

	s.emit(Playing{Title: title, URI: target, Source: descriptor})
	return nil
}

func (s *Supervisor) stop() {
	s.release()

	s.state = s.state.idle()
	s.publish()
	s.emit(Stopped{})
}

// release stops the monitor and the player process, in that order.
func (s *Supervisor) release() {
	if s.mon != nil {
		s.mon.stop()
		s.mon = nil
	}

	if s.ctl != nil {
		s.ctl.close()
		s.ctl = nil
	}

	if s.proc != nil {
		s.terminate(s.proc)
		s.proc = nil
	}
}

func (s *Supervisor) terminate(proc Process) {
	select {
	case <-proc.Exited():
		return
	default:
	}

	if err := proc.Terminate(); err != nil {
		log.Debugf("terminate pid %d: %s", proc.PID(), err)
	}

	select {
	case <-proc.Exited():
		return
	case <-time.After(s.stopTimeout):
		log.Warnf("player pid %d ignored terminate, killing it", proc.PID())
	}

	if err := proc.Kill(); err != nil {
		log.Errorf("kill pid %d: %s", proc.PID(), err)
	}

	select {
	case <-proc.Exited():
	case <-time.After(s.stopTimeout):
		log.Errorf("player pid %d did not exit after kill", proc.PID())
	}
}

func (s *Supervisor) pause() error {
	next, ok := Transition(s.state.Status, ActPause)
	if !ok {
		return fmt.Errorf("%w: cannot pause while %s", ErrInvalidState, s.state.Status)
	}

	s.state.Status = next
	if s.ctl != nil {
		s.ctl.setPause(true)
	}
	s.publish()
	s.emit(Paused{})
	return nil
}

func (s *Supervisor) resume() error {
	next, ok := Transition(s.state.Status, ActResume)
	if !ok {
		return fmt.Errorf("%w: cannot resume while %s", ErrInvalidState, s.state.Status)
	}

	s.state.Status = next
	if s.ctl != nil {
		s.ctl.setPause(false)
	}
	s.publish()
	s.emit(Playing{
		Title:  s.state.TrackTitle.OrEmpty(),
		URI:    s.state.TrackURI.OrEmpty(),
		Source: s.state.Source.OrEmpty(),
	})
	return nil
}

func (s *Supervisor) setVolume(level int) int {
	level = util.Clamp(level, MinVolume, MaxVolume)

	s.state.Volume = level
	if s.ctl != nil {
		s.ctl.setVolume(level)
	}
	s.publish()
	s.emit(VolumeChanged{Level: level})
	return level
}

func (s *Supervisor) handleTick(msg tick) {
	if msg.session != s.session || s.proc == nil {
		return
	}

	if s.state.Status == StatusPlaying {
		s.elapsed += s.tickInterval
		s.state.PositionSeconds = int(s.elapsed / time.Second)
	}
	s.publish()

	if s.ctl != nil && s.state.DurationSeconds == 0 {
		session := s.session
		s.ctl.queryDuration(func(seconds int) {
			select {
			case s.inbox <- durationKnown{session: session, seconds: seconds}:
			case <-s.done:
			}
		})
	}
}

func (s *Supervisor) handleExit(msg exited) {
	if msg.session != s.session || s.proc == nil {
		return
	}

	next, ok := Transition(s.state.Status, ActExit)
	if !ok {
		return
	}

	if msg.err != nil {
		log.Warnf("player %s exited abnormally: %s", s.binary.Name, msg.err)
	} else {
		log.Infof("finished %s", s.state.TrackTitle.OrEmpty())
	}

	s.release()

	s.state.Status = next
	s.publish()
	s.emit(Finished{Err: msg.err})

	s.state = s.state.idle()
	s.publish()
}

func (s *Supervisor) publish() {
	s.state.seq++
	snapshot := s.state
	s.snapshot.Store(&snapshot)
}

func (s *Supervisor) emit(e Event) {
	for _, id := range lo.Keys(s.subscribers) {
		s.subscribers[id].push(e)
	}
}
