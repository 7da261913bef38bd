package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/denguescope/pkg/domain/interfaces"
	"github.com/secmon-lab/denguescope/pkg/domain/model"
	"github.com/secmon-lab/denguescope/pkg/service/terminal"
)

// footerHeight is the help line plus its separator
const footerHeight = 2

var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(1)

// Model is the bubbletea model of the interactive dashboard
type Model struct {
	ctx       context.Context
	dashboard interfaces.Dashboard
	renderer  *terminal.Renderer
	viewport  viewport.Model
	help      help.Model
	keys      keyMap
	sel       model.Selection
	ready     bool
	noColor   bool
	err       error
}

// Option configures the model
type Option func(*Model)

// WithSelection sets the tab shown first
func WithSelection(sel model.Selection) Option {
	return func(m *Model) {
		m.sel = sel
	}
}

// WithNoColor disables colors in the rendered pages
func WithNoColor() Option {
	return func(m *Model) {
		m.noColor = true
	}
}

// New creates the interactive dashboard model
func New(ctx context.Context, dashboard interfaces.Dashboard, opts ...Option) *Model {
	m := &Model{
		ctx:       ctx,
		dashboard: dashboard,
		help:      help.New(),
		keys:      defaultKeyMap(),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.sel.Tab == "" {
		m.sel = dashboard.Tabs().Landing(dashboard.Tabs().Default)
	}
	m.renderer = m.newRenderer(0)

	return m
}

// Run starts the interactive dashboard and blocks until the user quits
func Run(ctx context.Context, dashboard interfaces.Dashboard, opts ...Option) error {
	p := tea.NewProgram(New(ctx, dashboard, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return goerr.Wrap(err, "failed to run interactive dashboard")
	}
	return nil
}

// Selection returns the active tab
func (m *Model) Selection() model.Selection {
	return m.sel
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := max(msg.Height-footerHeight, 1)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.viewport.KeyMap = scrollKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		m.help.Width = msg.Width
		m.renderer = m.newRenderer(msg.Width)
		m.refresh(false)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextTab):
			m.moveTab(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevTab):
			m.moveTab(-1)
			return m, nil
		case key.Matches(msg, m.keys.NextSub):
			m.moveSub(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevSub):
			m.moveSub(-1)
			return m, nil
		case key.Matches(msg, m.keys.Reroll):
			m.refresh(false)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m *Model) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}
	if !m.ready {
		return "Loading dashboard..."
	}
	return m.viewport.View() + "\n\n" + m.help.View(m.keys)
}

// moveTab activates the neighbouring top-level tab, wrapping around
func (m *Model) moveTab(delta int) {
	tree := m.dashboard.Tabs()
	idx := 0
	for i, tab := range tree.Tabs {
		if tab.ID == m.sel.Tab {
			idx = i
			break
		}
	}
	next := (idx + delta + len(tree.Tabs)) % len(tree.Tabs)
	m.sel = tree.Landing(tree.Tabs[next].ID)
	m.refresh(true)
}

// moveSub activates the neighbouring nested tab. Leaf tabs ignore it.
func (m *Model) moveSub(delta int) {
	top := m.dashboard.Tabs().Find(m.sel.Tab)
	if top == nil || !top.IsGroup() {
		return
	}
	idx := 0
	for i, child := range top.Children {
		if child.ID == m.sel.Sub {
			idx = i
			break
		}
	}
	next := (idx + delta + len(top.Children)) % len(top.Children)
	m.sel = model.Selection{Tab: top.ID, Sub: top.Children[next].ID}
	m.refresh(true)
}

// refresh renders the active page. The prediction jitter is redrawn on every call.
func (m *Model) refresh(top bool) {
	page, err := m.dashboard.Render(m.ctx, m.sel)
	if err != nil {
		m.err = err
		return
	}

	content, err := m.renderer.Page(page)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil

	if !m.ready {
		return
	}
	m.viewport.SetContent(content)
	if top {
		m.viewport.GotoTop()
	}

	ctxlog.From(m.ctx).Debug("Switched tab", "tab", m.sel.Tab, "sub", m.sel.Sub)
}

func (m *Model) newRenderer(width int) *terminal.Renderer {
	opts := []terminal.Option{terminal.WithWidth(width)}
	if m.noColor {
		opts = append(opts, terminal.WithNoColor())
	}
	return terminal.New(opts...)
}

func scrollKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown", " ", "f")),
		PageUp:       key.NewBinding(key.WithKeys("pgup", "b")),
		HalfPageDown: key.NewBinding(key.WithKeys("d", "ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("u", "ctrl+u")),
		Down:         key.NewBinding(key.WithKeys("j")),
		Up:           key.NewBinding(key.WithKeys("k")),
	}
}
