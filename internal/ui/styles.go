package ui

import "github.com/charmbracelet/lipgloss"

// Colors used in the application.
var (
	colorPrimary   = lipgloss.Color("208") // Orange
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorStar      = lipgloss.Color("220") // Yellow
)

// TitleBar style for the header line.
var TitleBar = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// RegionTab styles for the region selector.
var (
	RegionTab = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Padding(0, 1)

	RegionTabActive = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Underline(true).
			Padding(0, 1)
)

// SelectedItem style for the currently highlighted entry.
var SelectedItem = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// NormalItem style for other entries.
var NormalItem = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Padding(0, 1)

// TagBadge style for tags shown next to a name.
var TagBadge = lipgloss.NewStyle().
	Foreground(colorSecondary)

// SelectedTag style for tags the user picked.
var SelectedTag = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(colorHighlight).
	Padding(0, 1)

// FavoriteMark style for the heart next to favorites.
var FavoriteMark = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// StarStyle for ratings.
var StarStyle = lipgloss.NewStyle().
	Foreground(colorStar)

// DetailPanel style for the selected entry's details.
var DetailPanel = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorMuted).
	Padding(0, 1)

// StatusBar style for the bottom status bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// StatusBarKey style for transient status messages.
var StatusBarKey = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// StatusBarText style for descriptive text in status bar.
var StatusBarText = lipgloss.NewStyle().
	Foreground(colorSecondary)

// ErrorStyle for displaying errors.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("196")).
	Bold(true).
	Padding(0, 1)

// HelpStyle for help and empty-state text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(colorMuted).
	Padding(1, 2)

// FilterBar style for the search and tag inputs.
var FilterBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("240")).
	Padding(0, 1)

// FilterBarCount style for the result count.
var FilterBarCount = lipgloss.NewStyle().
	Foreground(colorSecondary)
