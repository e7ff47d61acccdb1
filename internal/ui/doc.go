// Package ui formats human-facing console output.
//
// ConsoleCommandEventLogger turns git command lifecycle events into readable
// log lines, and Palette supplies the lipgloss styles used by the text
// presenters.
package ui
