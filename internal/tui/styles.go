package tui

import "github.com/charmbracelet/lipgloss"

// Color palette (ANSI 256).
const (
	ColorLabel    = lipgloss.Color("245")
	ColorValue    = lipgloss.Color("252")
	ColorSubtle   = lipgloss.Color("241")
	ColorSelected = lipgloss.Color("229")
	ColorSelectBg = lipgloss.Color("57")
	ColorWarning  = lipgloss.Color("214")
)

//nolint:gochecknoglobals // Shared lipgloss styles.
var (
	LabelStyle    = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorValue)
	SubtleStyle   = lipgloss.NewStyle().Foreground(ColorSubtle)
	WarningStyle  = lipgloss.NewStyle().Foreground(ColorWarning)
	SelectedStyle = lipgloss.NewStyle().Foreground(ColorSelected).Background(ColorSelectBg).Bold(true)
	BodyStyle     = lipgloss.NewStyle().Foreground(ColorValue).PaddingLeft(2)
)
