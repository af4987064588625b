package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	statusLabelWidth = 18
	statusIndent     = "  "
)

var statusStyles = map[statusKind]lipgloss.Style{
	statusInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	statusOK:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	statusWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	statusError: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
}

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	statusText := fmt.Sprintf("[%s]", statusKindLabel(kind))
	if message != "" {
		statusText += " " + message
	}
	base := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", statusText)
	if colorize {
		return statusStyles[kind].Render(base)
	}
	return base
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "INFO"
	}
}
