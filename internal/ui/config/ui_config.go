package ui_config

type Config struct { //nolint:maligned
	Front struct {
		MsgIntro   string `hcl:"msg_intro"`
		MsgBye     string `hcl:"msg_bye"`
		ArrowLeft  string `hcl:"arrow_left"`
		ArrowRight string `hcl:"arrow_right"`
		// separator between captured titles in course summary
		SummarySep string `hcl:"summary_sep"`

		// inactivity before wizard returns to first stage, <=0 = default
		ResetTimeoutSec int `hcl:"reset_sec"`
	}

	Diag struct {
		MsgTitle        string `hcl:"msg_title"`
		ResetTimeoutSec int    `hcl:"reset_sec"`
	}

	Selection struct {
		ResetOptionsOnReturn bool `hcl:"reset_options_on_return"`
	}
}
