package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette
	primaryColor   = lipgloss.Color("#8B5CF6")
	secondaryColor = lipgloss.Color("#22D3EE")
	errorColor     = lipgloss.Color("#F43F5E")

	bgDark   = lipgloss.Color("#0F172A")
	bgMedium = lipgloss.Color("#1E293B")
	bgLight  = lipgloss.Color("#334155")

	textPrimary   = lipgloss.Color("#F8FAFC")
	textSecondary = lipgloss.Color("#CBD5E1")
	textMuted     = lipgloss.Color("#64748B")
)

// Styles for the playground components
var (
	titleStyle = lipgloss.NewStyle().
			Background(primaryColor).
			Foreground(textPrimary).
			Bold(true).
			Padding(0, 2).
			MarginBottom(1)

	statusBarStyle = lipgloss.NewStyle().
			Background(bgMedium).
			Foreground(textSecondary).
			Padding(0, 1)

	promptStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)

	transcriptStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(bgLight).
			Padding(0, 1)

	inputEchoStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true)

	outputStyle = lipgloss.NewStyle().
			Foreground(textPrimary)

	errorTextStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	helpTextStyle = lipgloss.NewStyle().
			Foreground(textMuted)
)
