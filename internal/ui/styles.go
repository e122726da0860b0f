package ui

import "github.com/charmbracelet/lipgloss"

// ANSI base colors only, so output reads the same on any terminal theme.
var (
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).MarginBottom(1)

	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	DescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	FlagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	// NameStyle highlights character names in stat listings
	NameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)

	ValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	MutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)
