package tui

import "github.com/rgehrsitz/pensioncalc/internal/tui/tuistyles"

// Re-export the styles the root model renders with; scenes import tuistyles
// directly to avoid an import cycle
var (
	TitleStyle     = tuistyles.TitleStyle
	SubtitleStyle  = tuistyles.SubtitleStyle
	StatusBarStyle = tuistyles.StatusBarStyle
	StatusKeyStyle = tuistyles.StatusKeyStyle
	BorderStyle    = tuistyles.BorderStyle
	ErrorStyle     = tuistyles.ErrorStyle
	InfoStyle      = tuistyles.InfoStyle
	HelpStyle      = tuistyles.HelpStyle
)
