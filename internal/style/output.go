// Package style centralizes terminal colors and small output helpers shared
// by the CLI.
package style

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss/v2"
	"gopkg.in/yaml.v3"
)

var (
	// Color palette
	ErrorColor       = lipgloss.Color("#FF6B6B")
	ErrorBgColor     = lipgloss.Color("#3D2020")
	WarningColor     = lipgloss.Color("#FFA726")
	SuccessColor     = lipgloss.Color("#66BB6A")
	InfoColor        = lipgloss.Color("#42A5F5")
	MutedColor       = lipgloss.Color("#6C757D")
	AccentColor      = lipgloss.Color("#2E7D32")
	CodeColor        = lipgloss.Color("#D4D4D4")
	PrimaryTextColor = lipgloss.Color("#E4E4E7")

	// Base styles
	ErrorStyle   = lipgloss.NewStyle().Foreground(ErrorColor).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(WarningColor).Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor).Bold(true)
	InfoStyle    = lipgloss.NewStyle().Foreground(InfoColor).Bold(true)
	MutedStyle   = lipgloss.NewStyle().Foreground(MutedColor)

	FileStyle = lipgloss.NewStyle().
			Foreground(AccentColor).
			Bold(true).
			Underline(true)

	PositionStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)

	HighlightStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)
)

// StatusIcon returns the icon for a validation outcome status.
func StatusIcon(status string) string {
	switch status {
	case "pass":
		return SuccessStyle.Render("✓")
	case "fail":
		return ErrorStyle.Render("✗")
	case "error":
		return WarningStyle.Render("⚠")
	default:
		return MutedStyle.Render("•")
	}
}

// CaretIndicator renders a caret line pointing at a position in rule text,
// used under lexer and parser error messages.
func CaretIndicator(pos int) string {
	if pos < 0 {
		pos = 0
	}
	out := make([]byte, pos+1)
	for i := 0; i < pos; i++ {
		out[i] = ' '
	}
	out[pos] = '^'
	return HighlightStyle.Render(string(out))
}

// PrintJSON outputs data as formatted JSON.
func PrintJSON(w io.Writer, data interface{}) {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		fmt.Fprintf(w, "Error encoding JSON: %v\n", err)
	}
}

// PrintYAML outputs data as YAML.
func PrintYAML(w io.Writer, data interface{}) {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		fmt.Fprintf(w, "Error encoding YAML: %v\n", err)
	}
	encoder.Close()
}

// Success prints a success message with styling
func Success(w io.Writer, message string) {
	fmt.Fprintf(w, "%s %s\n", SuccessStyle.Render("✓"), lipgloss.NewStyle().Foreground(SuccessColor).Render(message))
}

// Error prints an error message with styling
func Error(w io.Writer, message string) {
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("✗"), lipgloss.NewStyle().Foreground(ErrorColor).Render(message))
}

// Warning prints a warning message with styling
func Warning(w io.Writer, message string) {
	fmt.Fprintf(w, "%s %s\n", WarningStyle.Render("⚠"), lipgloss.NewStyle().Foreground(WarningColor).Render(message))
}

// Info prints an info message with styling
func Info(w io.Writer, message string) {
	fmt.Fprintf(w, "%s %s\n", InfoStyle.Render("ℹ"), lipgloss.NewStyle().Foreground(InfoColor).Render(message))
}

// FormatFilePath formats a file path with proper styling
func FormatFilePath(path string) string {
	return FileStyle.Render(path)
}

// FormatPosition formats a character position with proper styling
func FormatPosition(pos int) string {
	return PositionStyle.Render(fmt.Sprintf("%d", pos))
}
