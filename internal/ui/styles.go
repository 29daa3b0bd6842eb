package ui

import (
	"dal/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds all application styles, initialized with theme configuration.
type Styles struct {
	// Colors
	ColorPrimary   lipgloss.Color
	ColorAccent    lipgloss.Color
	ColorMuted     lipgloss.Color
	ColorHoliday   lipgloss.Color
	ColorSaturday  lipgloss.Color
	ColorDanger    lipgloss.Color
	ColorSuccess   lipgloss.Color
	ColorText      lipgloss.Color
	ColorTextMuted lipgloss.Color
	ColorBgLight   lipgloss.Color

	// Component styles
	TitleStyle       lipgloss.Style
	DateStyle        lipgloss.Style
	PaneStyle        lipgloss.Style
	PaneFocusedStyle lipgloss.Style
	PaneTitleStyle   lipgloss.Style

	// Calendar cell styles
	WeekdayHeaderStyle lipgloss.Style
	SundayHeaderStyle  lipgloss.Style
	DayStyle           lipgloss.Style
	DayOtherStyle      lipgloss.Style
	DaySundayStyle     lipgloss.Style
	DaySaturdayStyle   lipgloss.Style
	DayHolidayStyle    lipgloss.Style
	DayTodayStyle      lipgloss.Style
	DaySelectedStyle   lipgloss.Style
	DayEventMark       string

	// Event list styles
	EventStyle         lipgloss.Style
	EventSelectedStyle lipgloss.Style
	EventHolidayStyle  lipgloss.Style
	AlarmBadgeStyle    lipgloss.Style

	HelpStyle    lipgloss.Style
	HelpKeyStyle lipgloss.Style

	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style

	InputPromptStyle lipgloss.Style
	InputTextStyle   lipgloss.Style
	InputLabelStyle  lipgloss.Style
}

// NewStyles creates a new Styles instance from the given config.
func NewStyles(cfg *config.Config) *Styles {
	return NewStylesFromTheme(&cfg.Theme)
}

// NewStylesFromTheme creates a new Styles instance from a ThemeConfig.
// Empty theme colors fall back to the defaults.
func NewStylesFromTheme(theme *config.ThemeConfig) *Styles {
	s := &Styles{}

	s.ColorPrimary = colorOrDefault(theme.Primary, "#7C3AED")
	s.ColorAccent = colorOrDefault(theme.Accent, "#F59E0B")
	s.ColorMuted = colorOrDefault(theme.Muted, "#6B7280")
	s.ColorHoliday = colorOrDefault(theme.Holiday, "#EF4444")
	s.ColorSaturday = colorOrDefault(theme.Saturday, "#3B82F6")

	// Fixed semantic colors (not configurable from theme)
	s.ColorDanger = lipgloss.Color("#EF4444")
	s.ColorSuccess = lipgloss.Color("#10B981")
	s.ColorText = lipgloss.Color("#F9FAFB")
	s.ColorTextMuted = lipgloss.Color("#9CA3AF")
	s.ColorBgLight = lipgloss.Color("#374151")

	s.initComponentStyles()

	return s
}

// colorOrDefault returns the lipgloss.Color from hex string, or default if empty.
func colorOrDefault(hex, defaultHex string) lipgloss.Color {
	if hex != "" {
		return lipgloss.Color(hex)
	}
	return lipgloss.Color(defaultHex)
}

// initComponentStyles initializes all component styles based on the color palette.
func (s *Styles) initComponentStyles() {
	// Title bar
	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorText).
		Background(s.ColorPrimary).
		Padding(0, 1)

	s.DateStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	// Pane styles
	s.PaneStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.ColorMuted).
		Padding(0, 1)

	s.PaneFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.ColorPrimary).
		Padding(0, 1)

	s.PaneTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorPrimary).
		MarginBottom(1)

	// Calendar grid
	s.WeekdayHeaderStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted).
		Bold(true)

	s.SundayHeaderStyle = lipgloss.NewStyle().
		Foreground(s.ColorHoliday).
		Bold(true)

	s.DayStyle = lipgloss.NewStyle().
		Foreground(s.ColorText)

	s.DayOtherStyle = lipgloss.NewStyle().
		Foreground(s.ColorMuted)

	s.DaySundayStyle = lipgloss.NewStyle().
		Foreground(s.ColorHoliday)

	s.DaySaturdayStyle = lipgloss.NewStyle().
		Foreground(s.ColorSaturday)

	s.DayHolidayStyle = lipgloss.NewStyle().
		Foreground(s.ColorHoliday).
		Bold(true)

	s.DayTodayStyle = lipgloss.NewStyle().
		Foreground(s.ColorAccent).
		Bold(true).
		Underline(true)

	s.DaySelectedStyle = lipgloss.NewStyle().
		Background(s.ColorBgLight).
		Bold(true)

	s.DayEventMark = lipgloss.NewStyle().Foreground(s.ColorSuccess).Render("·")

	// Event list
	s.EventStyle = lipgloss.NewStyle().
		Foreground(s.ColorText)

	s.EventSelectedStyle = lipgloss.NewStyle().
		Background(s.ColorBgLight).
		Foreground(s.ColorText).
		Bold(true)

	s.EventHolidayStyle = lipgloss.NewStyle().
		Foreground(s.ColorHoliday).
		Bold(true)

	s.AlarmBadgeStyle = lipgloss.NewStyle().
		Foreground(s.ColorAccent)

	// Help bar
	s.HelpStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	s.HelpKeyStyle = lipgloss.NewStyle().
		Foreground(s.ColorAccent).
		Bold(true)

	// Status messages
	s.StatusStyle = lipgloss.NewStyle().
		Foreground(s.ColorSuccess).
		Italic(true)

	s.ErrorStyle = lipgloss.NewStyle().
		Foreground(s.ColorDanger).
		Bold(true)

	// Input
	s.InputPromptStyle = lipgloss.NewStyle().
		Foreground(s.ColorPrimary).
		Bold(true)

	s.InputTextStyle = lipgloss.NewStyle().
		Foreground(s.ColorText)

	s.InputLabelStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)
}

// RenderHelp renders help text with key bindings using the given styles.
func (s *Styles) RenderHelp(keys ...string) string {
	var result string
	for i := 0; i < len(keys); i += 2 {
		if i > 0 {
			result += "  "
		}
		key := keys[i]
		desc := keys[i+1]
		result += s.HelpKeyStyle.Render("["+key+"]") + " " + s.HelpStyle.Render(desc)
	}
	return result
}
