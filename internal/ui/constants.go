package ui

import "time"

// Icons (emojis/symbols)
const (
	IconSuccess = "✔"
	IconError   = "✖"
	IconWarning = "!"
	IconInfo    = "›"
	IconMusic   = "♪"
)

// Text fragments
const (
	MiddleDotSeparator  = " · "
	DashPlaceholder     = "—"
	ProgressLabelFormat = "%3d%%"
	PromptSeparator     = ": "
	MenuItemFormat      = "%d: %s"
)

// Answers accepted by Confirm, in any case
var (
	YesAnswers = []string{"j", "ja", "y", "yes"}
)

// QuitAnswer ends the session at the URL prompt
const QuitAnswer = "q"

// Progress bar sizing and behavior
const (
	ProgressBarWidth = 40
	ProgressRedraw   = 200 * time.Millisecond
)

// Colors used by the theme (ANSI 256 palette)
const (
	ColorPrimary = "33"
	ColorSuccess = "35"
	ColorError   = "160"
	ColorWarning = "214"
	ColorMuted   = "245"
)
