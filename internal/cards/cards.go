// Package cards is the static registry of wizard stages and their cards.
package cards

import (
	"fmt"
	"strings"

	"github.com/juju/errors"
	cards_config "github.com/temoto/washpanel/internal/cards/config"
)

// Option is one value of editable card setting.
// Options are display strings, compare them as strings only.
type Option string

func (o Option) String() string { return string(o) }

type Card struct {
	ID       int
	Title    string
	Icon     string
	Editable bool
	Options  []Option
	Next     bool
}

func (c *Card) HasOptions() bool { return len(c.Options) != 0 }

// OptionIndex returns position of o in card options or -1.
func (c *Card) OptionIndex(o Option) int {
	for i, x := range c.Options {
		if x == o {
			return i
		}
	}
	return -1
}

// DisplayTitle folds multi-line titles for single line displays.
func (c *Card) DisplayTitle() string { return strings.Replace(c.Title, "\n", " ", -1) }

func (c Card) String() string { return fmt.Sprintf("card(%d %s)", c.ID, c.DisplayTitle()) }

type Stage struct {
	Name  string
	Hint  string
	Cards []Card
}

type Registry struct {
	stages []Stage
}

// New copies stages, later changes to arguments do not affect registry.
func New(stages ...Stage) (*Registry, error) {
	self := &Registry{stages: make([]Stage, len(stages))}
	for i, s := range stages {
		self.stages[i] = copyStage(s)
	}
	if err := self.Validate(); err != nil {
		return nil, err
	}
	return self, nil
}

func MustNew(stages ...Stage) *Registry {
	r, err := New(stages...)
	if err != nil {
		panic("code error cards.MustNew: " + err.Error())
	}
	return r
}

func (self *Registry) StageCount() int { return len(self.stages) }

// Stage returns copy, stage index must be valid.
func (self *Registry) Stage(i int) Stage { return copyStage(self.stages[i]) }

func (self *Registry) CardsForStage(i int) []Card {
	if i < 0 || i >= len(self.stages) {
		return nil
	}
	return copyStage(self.stages[i]).Cards
}

// CardCount avoids copying for bounds checks.
func (self *Registry) CardCount(stage int) int {
	if stage < 0 || stage >= len(self.stages) {
		return 0
	}
	return len(self.stages[stage].Cards)
}

// Card returns copy of single card by position.
func (self *Registry) Card(stage, index int) (Card, bool) {
	if index < 0 || index >= self.CardCount(stage) {
		return Card{}, false
	}
	return copyCard(self.stages[stage].Cards[index]), true
}

func (self *Registry) Validate() error {
	if len(self.stages) == 0 {
		return errors.NotValidf("cards: no stages")
	}
	errs := make([]string, 0)
	for si, s := range self.stages {
		if len(s.Cards) == 0 {
			errs = append(errs, fmt.Sprintf("stage=%d %s has no cards", si, s.Name))
			continue
		}
		seen := make(map[int]struct{}, len(s.Cards))
		for _, c := range s.Cards {
			if _, ok := seen[c.ID]; ok {
				errs = append(errs, fmt.Sprintf("stage=%d %s duplicate card id=%d", si, s.Name, c.ID))
			}
			seen[c.ID] = struct{}{}
			if c.Editable && !c.HasOptions() {
				errs = append(errs, fmt.Sprintf("stage=%d %s editable card=%s without options", si, s.Name, c.DisplayTitle()))
			}
		}
	}
	if len(errs) != 0 {
		return errors.NotValidf("cards: %s", strings.Join(errs, "; "))
	}
	return nil
}

// FromConfig builds registry from config, empty config gives Default().
func FromConfig(c *cards_config.Config) (*Registry, error) {
	if c == nil || len(c.Stages) == 0 {
		return Default(), nil
	}
	stages := make([]Stage, 0, len(c.Stages))
	for _, cs := range c.Stages {
		s := Stage{Name: cs.Name, Hint: cs.Hint, Cards: make([]Card, 0, len(cs.Cards))}
		for i, cc := range cs.Cards {
			opts := make([]Option, 0, len(cc.Options)+cc.Minutes+cc.Hours)
			for _, o := range cc.Options {
				opts = append(opts, Option(o))
			}
			opts = append(opts, Minutes(1, cc.Minutes)...)
			opts = append(opts, Hours(1, cc.Hours)...)
			if len(opts) == 0 {
				opts = nil
			}
			s.Cards = append(s.Cards, Card{
				ID:       i,
				Title:    unescapeTitle(cc.Title),
				Icon:     cc.Icon,
				Editable: cc.Editable,
				Options:  opts,
				Next:     cc.Next,
			})
		}
		stages = append(stages, s)
	}
	r, err := New(stages...)
	return r, errors.Annotate(err, "cards config")
}

// Minutes returns "first分".."first+n-1分".
func Minutes(first, n int) []Option { return series(first, n, "分") }

// Hours returns "first時間後".."first+n-1時間後".
func Hours(first, n int) []Option { return series(first, n, "時間後") }

func series(first, n int, suffix string) []Option {
	if n <= 0 {
		return nil
	}
	opts := make([]Option, n)
	for i := range opts {
		opts[i] = Option(fmt.Sprintf("%d%s", first+i, suffix))
	}
	return opts
}

// HCL keys cannot contain raw newlines, titles use literal `\n`.
func unescapeTitle(s string) string { return strings.Replace(s, `\n`, "\n", -1) }

func copyStage(s Stage) Stage {
	cs := make([]Card, len(s.Cards))
	for i := range s.Cards {
		cs[i] = copyCard(s.Cards[i])
	}
	s.Cards = cs
	return s
}

func copyCard(c Card) Card {
	if c.Options != nil {
		c.Options = append([]Option(nil), c.Options...)
	}
	return c
}
