package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/temoto/washpanel/internal/cards"
	"github.com/temoto/washpanel/internal/selection"
	"github.com/temoto/washpanel/internal/types"
	ui_config "github.com/temoto/washpanel/internal/ui/config"
)

func TestTextLines(t *testing.T) {
	t.Parallel()

	reg := cards.MustNew(
		cards.Stage{Name: "a", Hint: "pick", Cards: []cards.Card{
			{ID: 0, Title: "one", Next: true},
			{ID: 1, Title: "two\nlines", Next: true},
			{ID: 2, Title: "three", Next: true},
		}},
		cards.Stage{Name: "b", Hint: "adjust", Cards: []cards.Card{
			{ID: 0, Title: "rinse", Editable: true, Options: []cards.Option{"auto", "1m", "2m"}},
		}},
	)
	config := &ui_config.Config{}
	setDefaults(config)
	m := selection.New(reg)

	type Case struct {
		cmd    types.Command
		l1, l2 string
	}
	cases := []Case{
		{types.CommandNone, "pick", "  one >"},
		{types.CommandRight, "pick", "< two lines >"},
		{types.CommandRight, "pick", "< three  "},
		{types.CommandOk, "three", "  rinse  "},
		{types.CommandOk, "three", "rinse: auto>"},
		{types.CommandRight, "three", "rinse:<1m>"},
		{types.CommandRight, "three", "rinse:<2m "},
		{types.CommandReturn, "three", "  rinse  "},
	}
	for i, c := range cases {
		if c.cmd != types.CommandNone {
			m.Handle(c.cmd)
		}
		v := m.Snapshot()
		l1, l2 := TextLines(&v, config)
		assert.Equal(t, c.l1, l1, "step=%d", i)
		assert.Equal(t, c.l2, l2, "step=%d", i)
	}
}

func TestDiagLines(t *testing.T) {
	t.Parallel()

	config := &ui_config.Config{}
	setDefaults(config)
	l1, l2 := DiagLines(types.NewCommandEvent("test", types.CommandOk), config)
	assert.Equal(t, DefaultDiagTitle, l1)
	assert.Equal(t, "analog=- key=Ok", l2)
	_, l2 = DiagLines(types.InputEvent{Analog: 73, HasAnalog: true, Command: types.CommandOk}, config)
	assert.Equal(t, "analog=73 key=Ok", l2)
	// zero value carries no telemetry, 0 is a valid sample
	_, l2 = DiagLines(types.InputEvent{Command: types.CommandOk}, config)
	assert.Equal(t, "analog=- key=Ok", l2)
	_, l2 = DiagLines(types.InputEvent{HasAnalog: true, Command: types.CommandOk}, config)
	assert.Equal(t, "analog=0 key=Ok", l2)
}
