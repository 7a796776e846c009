// Package tui is the interactive universe explorer: a panel sidebar, the
// selected panel's controls and its rendered view.
package tui

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/cosmosim/internal/panels"
	"github.com/san-kum/cosmosim/internal/viz"
)

type focus int

const (
	focusSidebar focus = iota
	focusControls
)

const (
	sidebarWidth = 26
	bigStep      = 10
)

type Model struct {
	panels  []panels.Panel
	inputs  map[string]panels.Input
	cursor  int
	control int
	focus   focus

	view *panels.View
	err  error

	keys   keyMap
	help   help.Model
	styles viz.Styles

	width  int
	height int
}

type Option func(*Model)

func WithTheme(t viz.Theme) Option {
	return func(m *Model) { m.styles = viz.NewStyles(t) }
}

// WithInputs seeds initial control values per panel id. Values are
// normalized against the panel's controls.
func WithInputs(inputs map[string]panels.Input) Option {
	return func(m *Model) {
		for id, in := range inputs {
			m.inputs[id] = in.Clone()
		}
	}
}

// WithPanel starts the shell on the panel with the given id.
func WithPanel(id string) Option {
	return func(m *Model) {
		for i, p := range m.panels {
			if p.ID() == id {
				m.cursor = i
			}
		}
	}
}

func New(reg *panels.Registry, opts ...Option) Model {
	m := Model{
		panels: reg.All(),
		inputs: make(map[string]panels.Input),
		keys:   defaultKeyMap(),
		help:   help.New(),
		styles: viz.NewStyles(viz.ThemeCyberpunk),
		width:  100,
		height: 32,
	}
	for _, opt := range opts {
		opt(&m)
	}
	for _, p := range m.panels {
		m.inputs[p.ID()] = panels.Normalize(p, m.inputs[p.ID()])
	}
	m.render()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Reset):
		p := m.Current()
		m.inputs[p.ID()] = panels.Defaults(p)
		m.render()
		return m, nil
	}

	if m.focus == focusControls {
		return m.controlsKey(msg)
	}
	return m.sidebarKey(msg)
}

func (m Model) sidebarKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.control = 0
			m.render()
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.panels)-1 {
			m.cursor++
			m.control = 0
			m.render()
		}
	case key.Matches(msg, m.keys.Focus):
		if len(m.Current().Controls()) > 0 {
			m.focus = focusControls
		}
	}
	return m, nil
}

func (m Model) controlsKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	controls := m.Current().Controls()
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Focus):
		m.focus = focusSidebar
	case key.Matches(msg, m.keys.Up):
		if m.control > 0 {
			m.control--
		}
	case key.Matches(msg, m.keys.Down):
		if m.control < len(controls)-1 {
			m.control++
		}
	case key.Matches(msg, m.keys.Left):
		m.adjust(-1)
	case key.Matches(msg, m.keys.Right):
		m.adjust(1)
	case key.Matches(msg, m.keys.BigLeft):
		m.adjust(-bigStep)
	case key.Matches(msg, m.keys.BigRight):
		m.adjust(bigStep)
	}
	return m, nil
}

func (m *Model) adjust(delta int) {
	p := m.Current()
	controls := p.Controls()
	if m.control >= len(controls) {
		return
	}
	c := controls[m.control]

	in := m.inputs[p.ID()].Clone()
	in[c.Name] = c.Adjust(in[c.Name], delta)
	m.inputs[p.ID()] = in
	m.render()
}

// render re-runs the current panel. Nothing is cached between changes.
func (m *Model) render() {
	p := m.Current()
	m.view, m.err = p.Render(m.inputs[p.ID()])
	if m.err != nil {
		log.Printf("render %s: %v", p.ID(), m.err)
		m.view = nil
	}
}

func (m Model) Current() panels.Panel {
	return m.panels[m.cursor]
}

// Input returns a copy of the current panel's control values.
func (m Model) Input() panels.Input {
	return m.inputs[m.Current().ID()].Clone()
}

func (m Model) RenderedView() *panels.View { return m.view }

func (m Model) Err() error { return m.err }

func (m Model) ControlsFocused() bool { return m.focus == focusControls }

func (m Model) View() string {
	s := m.styles

	sidebar := m.sidebarView()
	mainWidth := max(m.width-sidebarWidth-6, 30)

	var right strings.Builder
	if controls := m.controlsView(); controls != "" {
		box := s.Panel
		if m.focus == focusControls {
			box = s.FocusPanel
		}
		right.WriteString(box.Width(mainWidth).Render(controls))
		right.WriteString("\n")
	}
	right.WriteString(viz.RenderView(m.view, mainWidth, s))

	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", right.String())

	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(s.Error.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	}
	m.help.Styles.ShortKey = s.Text
	m.help.Styles.ShortDesc = s.KeyHint
	m.help.Styles.FullKey = s.Text
	m.help.Styles.FullDesc = s.KeyHint
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) sidebarView() string {
	s := m.styles

	var b strings.Builder
	b.WriteString(viz.GradientText("Universe Explorer", s.Theme.Primary, s.Theme.Secondary))
	b.WriteString("\n\n")
	for i, p := range m.panels {
		if i == m.cursor {
			marker := s.Selected.Render("▸ ")
			b.WriteString(marker + s.Selected.Render(p.Title()) + "\n")
		} else {
			b.WriteString("  " + s.Subtle.Render(p.Title()) + "\n")
		}
	}

	box := s.Panel
	if m.focus == focusSidebar {
		box = s.FocusPanel
	}
	return box.Width(sidebarWidth).Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) controlsView() string {
	p := m.Current()
	controls := p.Controls()
	if len(controls) == 0 {
		return ""
	}
	s := m.styles
	in := m.inputs[p.ID()]

	var b strings.Builder
	b.WriteString(s.Header.Render("Controls"))
	b.WriteString("\n")
	for i, c := range controls {
		value := c.Format(in[c.Name])
		if c.Unit != "" {
			value += " " + c.Unit
		}
		line := fmt.Sprintf("%-26s %s", c.Label, value)
		if c.Kind == panels.Slider {
			line += "  " + s.Subtle.Render(fmt.Sprintf("[%s..%s]", c.Format(c.Min), c.Format(c.Max)))
		}
		if m.focus == focusControls && i == m.control {
			b.WriteString(s.Focused.Render("▸ "+line) + "\n")
		} else {
			b.WriteString("  " + s.Text.Render(line) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// Run starts the shell on the alternate screen and blocks until it quits.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
