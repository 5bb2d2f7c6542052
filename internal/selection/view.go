package selection

import (
	"strings"

	"github.com/temoto/washpanel/internal/cards"
)

// View is read-only copy of everything renderers need.
type View struct {
	Stage      int
	StageCount int
	StageName  string
	Hint       string
	Cards      []cards.Card
	Selected   int
	Editing    bool
	Cursor     int
	// Captured[i] is title chosen at stage i, empty when not advanced past it
	Captured []string
	// Options shown for each card of active stage, empty for cards without options
	Options []cards.Option
}

func (self *Machine) Snapshot() View {
	st := self.reg.Stage(self.stage)
	v := View{
		Stage:      self.stage,
		StageCount: self.reg.StageCount(),
		StageName:  st.Name,
		Hint:       st.Hint,
		Cards:      st.Cards,
		Selected:   self.Selected(),
		Editing:    self.editing,
		Cursor:     self.cursor,
		Captured:   append([]string(nil), self.captured...),
		Options:    make([]cards.Option, len(st.Cards)),
	}
	for i, c := range st.Cards {
		if !c.HasOptions() {
			continue
		}
		if self.editing && i == v.Selected {
			v.Options[i] = c.Options[self.cursor]
		} else if o, ok := self.Chosen(self.stage, c.ID); ok {
			v.Options[i] = o
		} else {
			v.Options[i] = c.Options[0]
		}
	}
	return v
}

func (v *View) Current() (cards.Card, bool) {
	if v.Selected < 0 || v.Selected >= len(v.Cards) {
		return cards.Card{}, false
	}
	return v.Cards[v.Selected], true
}

// Summary joins captured titles of previous stages, e.g. "洗濯のみ>おまかせ".
func (v *View) Summary(sep string) string {
	parts := make([]string, 0, len(v.Captured))
	for i := 0; i < v.Stage && i < len(v.Captured); i++ {
		if s := v.Captured[i]; s != "" {
			parts = append(parts, strings.Replace(s, "\n", " ", -1))
		}
	}
	return strings.Join(parts, sep)
}

func (v *View) AtStart() bool {
	if v.Editing {
		return v.Cursor == 0
	}
	return v.Selected == 0
}

func (v *View) AtEnd() bool {
	c, ok := v.Current()
	if !ok {
		return true
	}
	if v.Editing {
		return v.Cursor >= len(c.Options)-1
	}
	return v.Selected >= len(v.Cards)-1
}
