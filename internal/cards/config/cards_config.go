package cards_config

// Config declares stages in the order they are shown.
// Empty config means built-in washer registry.
type Config struct {
	Stages []Stage `hcl:"stage"`
}

type Stage struct {
	Name  string `hcl:"name,key"`
	Hint  string `hcl:"hint"`
	Cards []Card `hcl:"card"`
}

// Card id is its position within stage.
type Card struct {
	Title    string   `hcl:"title,key"`
	Icon     string   `hcl:"icon"`
	Editable bool     `hcl:"editable"`
	Next     bool     `hcl:"next"`
	Options  []string `hcl:"options"`
	// generated options appended after Options: "1分".."N分", "1時間後".."N時間後"
	Minutes int `hcl:"minutes"`
	Hours   int `hcl:"hours"`
}
