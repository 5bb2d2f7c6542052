// Package tui is terminal front panel: same wizard frames as text display,
// drawn as cards with pager, keyboard and mouse feed back into input dispatch.
package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/temoto/washpanel/internal/cards"
	"github.com/temoto/washpanel/internal/types"
	"github.com/temoto/washpanel/internal/ui"
)

const SourceTag = "tui"

const (
	CardsPerView = 3

	cardWidth  = 16 // style width, border adds 2
	cardHeight = 4
	cardOuterW = cardWidth + 2
	cardOuterH = cardHeight + 2
	cardGap    = 1
	// header line, empty line, then cards
	rowTop = 2
)

type Emitter interface {
	Emit(types.InputEvent)
}

type FrameMsg ui.Frame

type framesClosedMsg struct{}

type keyMap struct {
	Left    key.Binding
	Right   key.Binding
	Ok      key.Binding
	Return  key.Binding
	Service key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Ok, k.Return, k.Service, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

func defaultKeyMap() keyMap {
	return keyMap{
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next")),
		Ok:      key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "ok")),
		Return:  key.NewBinding(key.WithKeys("backspace", "esc"), key.WithHelp("esc", "back")),
		Service: key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "diag")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

var (
	styleHeader   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	styleCard     = lipgloss.NewStyle().Width(cardWidth).Height(cardHeight).Align(lipgloss.Center).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("241"))
	styleSelected = styleCard.BorderForeground(lipgloss.Color("205")).Bold(true)
	styleIcon     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	styleOption   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	styleDot      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	styleDotOn    = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	styleOverlay  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("205")).Padding(0, 1)
	styleDiag     = lipgloss.NewStyle().Faint(true)
	styleError    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type Model struct {
	emitter Emitter
	frames  <-chan ui.Frame
	frame   ui.Frame
	ready   bool
	width   int
	keys    keyMap
	help    help.Model
}

func New(emitter Emitter, frames <-chan ui.Frame) Model {
	return Model{
		emitter: emitter,
		frames:  frames,
		keys:    defaultKeyMap(),
		help:    help.New(),
	}
}

// NewFrameSink returns UI renderer feeding frames channel for Model.
// Renderer never blocks, on full buffer the oldest frame is dropped
// so the latest state always reaches the terminal.
func NewFrameSink(size int) (ui.Renderer, <-chan ui.Frame) {
	if size < 1 {
		size = 1
	}
	ch := make(chan ui.Frame, size)
	r := ui.RenderFunc(func(f ui.Frame) {
		for {
			select {
			case ch <- f:
				return
			default:
			}
			select {
			case <-ch:
			default:
			}
		}
	})
	return r, ch
}

func (m Model) Init() tea.Cmd { return waitFrame(m.frames) }

func waitFrame(ch <-chan ui.Frame) tea.Cmd {
	return func() tea.Msg {
		f, ok := <-ch
		if !ok {
			return framesClosedMsg{}
		}
		return FrameMsg(f)
	}
}

func (m Model) emit(c types.Command, index int) tea.Cmd {
	e := types.NewCommandEvent(SourceTag, c)
	e.Index = index
	return func() tea.Msg {
		m.emitter.Emit(e)
		return nil
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FrameMsg:
		m.frame = ui.Frame(msg)
		m.ready = true
		return m, waitFrame(m.frames)

	case framesClosedMsg:
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Left):
			return m, m.emit(types.CommandLeft, 0)
		case key.Matches(msg, m.keys.Right):
			return m, m.emit(types.CommandRight, 0)
		case key.Matches(msg, m.keys.Ok):
			return m, m.emit(types.CommandOk, 0)
		case key.Matches(msg, m.keys.Return):
			return m, m.emit(types.CommandReturn, 0)
		case key.Matches(msg, m.keys.Service):
			return m, m.emit(types.CommandService, 0)
		}

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		i, ok := m.cardAt(msg.X, msg.Y)
		if !ok {
			return m, nil
		}
		if i == m.frame.View.Selected {
			return m, m.emit(types.CommandOk, 0)
		}
		return m, m.emit(types.CommandSelect, i)
	}
	return m, nil
}

// Window returns visible [start,end) of n cards, selected centered when possible.
func Window(n, selected, per int) (int, int) {
	if n <= per {
		return 0, n
	}
	start := selected - per/2
	if start < 0 {
		start = 0
	}
	if start > n-per {
		start = n - per
	}
	return start, start + per
}

// Pager returns dots count ceil(n/per) and active dot index.
func Pager(n, selected, per int) (int, int) {
	if n <= 0 {
		return 0, 0
	}
	dots := (n + per - 1) / per
	if n == 1 || dots == 1 {
		return dots, 0
	}
	active := int(math.Round(float64(selected) / float64(n-1) * float64(dots-1)))
	return dots, active
}

func rowWidth(count int) int {
	if count <= 0 {
		return 0
	}
	return count*cardOuterW + (count-1)*cardGap
}

func (m Model) rowOffset(count int) int {
	if w := rowWidth(count); m.width > w {
		return (m.width - w) / 2
	}
	return 0
}

func (m Model) cardAt(x, y int) (int, bool) {
	if !m.ready || m.frame.Diag || y < rowTop || y >= rowTop+cardOuterH {
		return 0, false
	}
	v := &m.frame.View
	start, end := Window(len(v.Cards), v.Selected, CardsPerView)
	rel := x - m.rowOffset(end-start)
	if rel < 0 {
		return 0, false
	}
	i := rel / (cardOuterW + cardGap)
	if start+i >= end || rel%(cardOuterW+cardGap) >= cardOuterW {
		return 0, false
	}
	return start + i, true
}

func (m Model) View() string {
	if !m.ready {
		return "waiting for panel...\n"
	}
	f := &m.frame
	v := &f.View
	var b strings.Builder

	if f.Diag {
		l1, l2 := f.L1, f.L2
		b.WriteString(styleHeader.Render(l1) + "\n\n")
		b.WriteString(l2 + "\n\n")
		if f.Error != "" {
			b.WriteString(styleError.Render("error: "+f.Error) + "\n\n")
		}
		b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()) + "\n")
		return b.String()
	}

	header := f.L1
	if header == "" {
		header = v.Summary(ui.DefaultSummarySep)
	}
	if header == "" {
		header = v.Hint
	}
	b.WriteString(styleHeader.Render(header) + "\n\n")

	start, end := Window(len(v.Cards), v.Selected, CardsPerView)
	boxes := make([]string, 0, 2*(end-start))
	for i := start; i < end; i++ {
		if i > start {
			boxes = append(boxes, strings.Repeat(" ", cardGap))
		}
		boxes = append(boxes, renderCard(v.Cards[i], v.Options[i], i == v.Selected, v.Editing && i == v.Selected))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
	b.WriteString(lipgloss.NewStyle().PaddingLeft(m.rowOffset(end-start)).Render(row) + "\n")

	dots, active := Pager(len(v.Cards), v.Selected, CardsPerView)
	pager := make([]string, dots)
	for i := range pager {
		if i == active {
			pager[i] = styleDotOn.Render("●")
		} else {
			pager[i] = styleDot.Render("○")
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, strings.Join(pager, " ")) + "\n")

	if c, ok := v.Current(); ok && v.Editing {
		overlay := styleOverlay.Render(fmt.Sprintf("%s: ‹ %s ›", c.DisplayTitle(), v.Options[v.Selected]))
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, overlay) + "\n")
	}

	analog := "-"
	if f.Telemetry.HasAnalog {
		analog = fmt.Sprint(f.Telemetry.Analog)
	}
	b.WriteString(styleDiag.Render(fmt.Sprintf("analog=%s key=%s", analog, f.Telemetry.Command.String())) + "\n")
	b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()) + "\n")
	return b.String()
}

func renderCard(c cards.Card, o cards.Option, selected, editing bool) string {
	lines := []string{c.Title}
	if c.Icon != "" {
		lines = append(lines, styleIcon.Render("["+c.Icon+"]"))
	}
	if c.HasOptions() {
		s := o.String()
		if editing {
			s = "‹ " + s + " ›"
		}
		lines = append(lines, styleOption.Render(s))
	}
	style := styleCard
	if selected {
		style = styleSelected
	}
	return style.Render(strings.Join(lines, "\n"))
}
