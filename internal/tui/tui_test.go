package tui

import (
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/temoto/washpanel/internal/cards"
	"github.com/temoto/washpanel/internal/selection"
	"github.com/temoto/washpanel/internal/types"
	"github.com/temoto/washpanel/internal/ui"
)

type recordEmitter struct {
	mu     sync.Mutex
	events []types.InputEvent
}

func (r *recordEmitter) Emit(e types.InputEvent) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *recordEmitter) last(t testing.TB) types.InputEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.events)
	return r.events[len(r.events)-1]
}

func runCmd(t testing.TB, cmd tea.Cmd) tea.Msg {
	require.NotNil(t, cmd)
	return cmd()
}

func TestPager(t *testing.T) {
	t.Parallel()

	type Case struct {
		n, selected  int
		dots, active int
		start, end   int
	}
	cases := []Case{
		{1, 0, 1, 0, 0, 1},
		{2, 1, 1, 0, 0, 2},
		{7, 0, 3, 0, 0, 3},
		{7, 3, 3, 1, 2, 5},
		{7, 6, 3, 2, 4, 7},
		{10, 5, 4, 2, 4, 7},
		{16, 8, 6, 3, 7, 10},
		{16, 15, 6, 5, 13, 16},
	}
	for _, c := range cases {
		dots, active := Pager(c.n, c.selected, CardsPerView)
		assert.Equal(t, c.dots, dots, "n=%d selected=%d", c.n, c.selected)
		assert.Equal(t, c.active, active, "n=%d selected=%d", c.n, c.selected)
		start, end := Window(c.n, c.selected, CardsPerView)
		assert.Equal(t, c.start, start, "n=%d selected=%d", c.n, c.selected)
		assert.Equal(t, c.end, end, "n=%d selected=%d", c.n, c.selected)
	}
	dots, _ := Pager(0, 0, CardsPerView)
	assert.Equal(t, 0, dots)
}

func TestKeys(t *testing.T) {
	t.Parallel()

	rec := &recordEmitter{}
	m := New(rec, nil)
	type Case struct {
		msg    tea.KeyMsg
		expect types.Command
	}
	cases := []Case{
		{tea.KeyMsg{Type: tea.KeyLeft}, types.CommandLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, types.CommandRight},
		{tea.KeyMsg{Type: tea.KeyEnter}, types.CommandOk},
		{tea.KeyMsg{Type: tea.KeyEsc}, types.CommandReturn},
		{tea.KeyMsg{Type: tea.KeyBackspace}, types.CommandReturn},
		{tea.KeyMsg{Type: tea.KeyF1}, types.CommandService},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")}, types.CommandRight},
	}
	for _, c := range cases {
		_, cmd := m.Update(c.msg)
		assert.Nil(t, runCmd(t, cmd))
		e := rec.last(t)
		assert.Equal(t, c.expect, e.Command, "key=%s", c.msg.String())
		assert.Equal(t, SourceTag, e.Source)
		assert.False(t, e.HasAnalog)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.IsType(t, tea.QuitMsg{}, runCmd(t, cmd))
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("z")})
	assert.Nil(t, cmd)
}

func testFrame(t testing.TB, commands ...types.Command) ui.Frame {
	m := selection.New(cards.Default())
	for _, c := range commands {
		m.Handle(c)
	}
	return ui.Frame{View: m.Snapshot(), Telemetry: types.InputEvent{Analog: 73, HasAnalog: true, Command: types.CommandOk}}
}

func TestFrameView(t *testing.T) {
	t.Parallel()

	frames := make(chan ui.Frame, 1)
	var model tea.Model = New(&recordEmitter{}, frames)
	assert.Contains(t, model.View(), "waiting")

	frames <- testFrame(t, types.CommandRight, types.CommandRight, types.CommandRight)
	msg := runCmd(t, model.Init())
	model, cmd := model.Update(msg)
	assert.NotNil(t, cmd)
	out := model.View()
	assert.Contains(t, out, cards.HintSelect)
	assert.Contains(t, out, "乾燥のみ")
	assert.Contains(t, out, "スチーム")
	assert.Contains(t, out, "ダウンロード")
	assert.NotContains(t, out, "洗濯のみ")
	assert.NotContains(t, out, "洗濯＋乾燥")
	assert.Equal(t, 1, strings.Count(out, "●"))
	assert.Equal(t, 2, strings.Count(out, "○"))
	assert.Contains(t, out, "analog=73 key=Ok")

	// course summary and edit overlay
	model, _ = model.Update(FrameMsg(testFrame(t,
		types.CommandOk, types.CommandOk, types.CommandRight, types.CommandRight, types.CommandRight,
		types.CommandOk, types.CommandRight, types.CommandRight)))
	out = model.View()
	assert.Contains(t, out, "洗濯のみ>おまかせ")
	assert.Contains(t, out, "洗い: ‹ 2分 ›")

	close(frames)
	model, _ = model.Update(FrameMsg(testFrame(t)))
	msg = runCmd(t, waitFrame(frames))
	_, cmd = model.Update(msg)
	assert.IsType(t, tea.QuitMsg{}, runCmd(t, cmd))
}

func TestDiagView(t *testing.T) {
	t.Parallel()

	f := testFrame(t)
	f.Diag = true
	f.L1, f.L2 = "diag", "analog=73 key=Ok"
	f.Error = "input source=hid-encoder: EOF"
	var model tea.Model = New(&recordEmitter{}, nil)
	model, _ = model.Update(FrameMsg(f))
	out := model.View()
	assert.Contains(t, out, "analog=73 key=Ok")
	assert.Contains(t, out, "error: input source=hid-encoder: EOF")
	assert.NotContains(t, out, "洗濯のみ")
}

func TestMouse(t *testing.T) {
	t.Parallel()

	rec := &recordEmitter{}
	var model tea.Model = New(rec, nil)
	model, _ = model.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	model, _ = model.Update(FrameMsg(testFrame(t)))

	// 3 cards are 56 wide, centered in 80 -> offset 12
	click := func(x, y int) tea.Cmd {
		_, cmd := model.Update(tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
		return cmd
	}
	runCmd(t, click(12+cardOuterW+cardGap+cardOuterW/2, rowTop+2))
	e := rec.last(t)
	assert.Equal(t, types.CommandSelect, e.Command)
	assert.Equal(t, 1, e.Index)

	runCmd(t, click(12+cardOuterW/2, rowTop+1))
	assert.Equal(t, types.CommandOk, rec.last(t).Command)

	assert.Nil(t, click(12+cardOuterW/2, 0))
	assert.Nil(t, click(5, rowTop+1))
	assert.Nil(t, click(12+cardOuterW, rowTop+1))
	_, cmd := model.Update(tea.MouseMsg{X: 20, Y: rowTop + 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	assert.Nil(t, cmd)
}

func TestFrameSink(t *testing.T) {
	t.Parallel()

	r, ch := NewFrameSink(1)
	r.Render(ui.Frame{L1: "a"})
	r.Render(ui.Frame{L1: "b"}) // replaces a, must not block
	assert.Equal(t, "b", (<-ch).L1)

	r, ch = NewFrameSink(2)
	for _, s := range []string{"a", "b", "c", "d"} {
		r.Render(ui.Frame{L1: s})
	}
	assert.Equal(t, "c", (<-ch).L1)
	assert.Equal(t, "d", (<-ch).L1)
	select {
	case f := <-ch:
		t.Errorf("unexpected frame=%s", f.L1)
	default:
	}
}
