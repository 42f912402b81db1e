package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/djecho/djecho/dj"
	"github.com/djecho/djecho/internal/ui"
	"github.com/djecho/djecho/player"
	"github.com/djecho/djecho/style"
	"github.com/samber/mo"
)

const refreshInterval = 500 * time.Millisecond

type statefulBubble struct {
	ctx     context.Context
	session *dj.Session

	state  state
	keymap *statefulKeymap

	// components
	spinnerC  spinner.Model
	inputC    textinput.Model
	playedC   list.Model
	progressC progress.Model
	helpC     help.Model
	notifier  *ui.Notifier

	// busy is set while a request runs; a second request is refused until it ends.
	busy           bool
	progressStatus string
	commentary     string
	snapshot       player.State
	lastError      error

	searchSuggestion mo.Option[string]
	width, height    int
}

func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.setState(errorState)
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	b.width = width - x
	b.height = height - y

	b.playedC.SetSize(width-xx, height-yy)
	b.playedC.Help.Width = width - xx

	b.inputC.Width = b.width - lipgloss.Width(b.inputC.Prompt) - 1
	b.progressC.Width = min(b.width, 60)
	b.helpC.Width = b.width
}

func newBubble(ctx context.Context, session *dj.Session) *statefulBubble {
	keymap := newStatefulKeymap()
	bubble := &statefulBubble{
		ctx:      ctx,
		session:  session,
		keymap:   keymap,
		notifier: &ui.Notifier{},
		snapshot: session.Status(),
	}

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = style.New().Foreground(style.AccentColor)

	bubble.inputC = textinput.New()
	bubble.inputC.Placeholder = "late-night synthwave..."
	bubble.inputC.Prompt = "> "
	bubble.inputC.CharLimit = 200
	bubble.inputC.Focus()

	bubble.progressC = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())

	bubble.helpC = help.New()

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(style.AccentColor).
		Foreground(style.AccentColor).
		Padding(0, 0, 0, 1)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

	bubble.playedC = list.New(nil, delegate, 0, 0)
	bubble.playedC.Title = "Played this session"
	bubble.playedC.KeyMap = keymap.forList()
	bubble.playedC.SetFilteringEnabled(false)
	bubble.playedC.AdditionalShortHelpKeys = keymap.ShortHelp
	bubble.playedC.Styles.NoItems = paddingStyle

	bubble.setState(searchState)
	return bubble
}
