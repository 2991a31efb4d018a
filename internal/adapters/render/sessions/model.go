package sessions

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gamezonia/gzone/internal/application"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type model struct {
	active []application.ActiveSession
	opts   RenderOptions
	styles styles
	output string
}

func newModel(active []application.ActiveSession, opts RenderOptions) model {
	return model{
		active: active,
		opts:   opts,
		styles: newStyles(),
	}
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = renderView(m.active, m.opts, m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

func Render(active []application.ActiveSession, opts RenderOptions) (string, error) {
	p := tea.NewProgram(
		newModel(active, opts),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}

// Fetch refreshes the active session list for the watch loop.
type Fetch func(ctx context.Context) ([]application.ActiveSession, error)

type watchTickMsg time.Time

type watchRefreshMsg struct {
	active []application.ActiveSession
	err    error
}

type watchModel struct {
	fetch   Fetch
	ctx     context.Context
	active  []application.ActiveSession
	spinner spinner.Model
	loaded  bool
	styles  styles
	err     error
}

func newWatchModel(ctx context.Context, fetch Fetch) watchModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return watchModel{
		fetch:   fetch,
		ctx:     ctx,
		spinner: s,
		styles:  newStyles(),
	}
}

func watchTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

func (m watchModel) refresh() tea.Cmd {
	return func() tea.Msg {
		active, err := m.fetch(m.ctx)
		return watchRefreshMsg{active: active, err: err}
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.refresh(), watchTick())
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case watchTickMsg:
		return m, tea.Batch(m.refresh(), watchTick())
	case watchRefreshMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.active = msg.active
		m.loaded = true
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m watchModel) View() string {
	if !m.loaded {
		return fmt.Sprintf("%s Loading sessions...\n", m.spinner.View())
	}

	view := renderView(m.active, RenderOptions{}, m.styles)
	return view + "\n" + m.styles.empty.Render("press q to quit") + "\n"
}

// Watch renders the active session list and refreshes it every second
// until the user quits or the fetch fails.
func Watch(ctx context.Context, output io.Writer, fetch Fetch) error {
	p := tea.NewProgram(
		newWatchModel(ctx, fetch),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	watched, ok := finalModel.(watchModel)
	if !ok {
		return ErrUnexpectedRenderModel
	}

	return watched.err
}
