// Package ui provides styled console output for the CLI commands.
package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Color palette.
var (
	colorPrimary = lipgloss.Color("#7C3AED") // Purple
	colorSuccess = lipgloss.Color("#10B981") // Green
	colorDanger  = lipgloss.Color("#EF4444") // Red
	colorMuted   = lipgloss.Color("#6B7280") // Gray
	colorWarning = lipgloss.Color("#F59E0B") // Amber
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning)
	errorStyle   = lipgloss.NewStyle().Foreground(colorDanger)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	bulletStyle  = lipgloss.NewStyle().Foreground(colorMuted).SetString("•")
)

// Heading prints a bold section heading.
func Heading(format string, args ...any) {
	fmt.Println(headingStyle.Render(fmt.Sprintf(format, args...)))
}

// Info prints a plain line.
func Info(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
}

// Success prints a green checkmarked line.
func Success(format string, args ...any) {
	fmt.Println(successStyle.Render("✓ " + fmt.Sprintf(format, args...)))
}

// Warn prints an amber warning to stderr.
func Warn(format string, args ...any) {
	fmt.Fprintln(os.Stderr, warningStyle.Render("warning: "+fmt.Sprintf(format, args...)))
}

// Error prints a red error line to stderr.
func Error(format string, args ...any) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+fmt.Sprintf(format, args...)))
}

// ListItem prints a bulleted item with an optional muted annotation.
func ListItem(text, annotation string) {
	line := fmt.Sprintf("  %s %s", bulletStyle.String(), text)
	if annotation != "" {
		line += " " + mutedStyle.Render(annotation)
	}
	fmt.Println(line)
}

// Muted renders text in the muted style.
func Muted(text string) string {
	return mutedStyle.Render(text)
}
