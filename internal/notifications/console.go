package notifications

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	errorBadge   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	successBadge = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	infoBadge    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
)

// NewConsole returns a service that prints each notification as a single
// toast-style line. Badges are colored only when colorize is set.
func NewConsole(w io.Writer, colorize bool) Service {
	if w == nil {
		return noopService{}
	}
	return &consoleService{writer: w, colorize: colorize}
}

type consoleService struct {
	mu       sync.Mutex
	writer   io.Writer
	colorize bool
}

func (c *consoleService) NotifyFailure(_ context.Context, _ string, message string) error {
	return c.write(errorBadge, "✖", message)
}

func (c *consoleService) NotifyGenerated(_ context.Context, repoName, url string, commits int) error {
	return c.write(successBadge, "✔", generatedPayload(repoName, url, commits).message)
}

func (c *consoleService) NotifyAccessRequested(_ context.Context, email string) error {
	return c.write(successBadge, "✔", accessRequestedPayload(email).message)
}

func (c *consoleService) TestNotification(context.Context) error {
	return c.write(infoBadge, "•", testPayload().message)
}

func (c *consoleService) write(style lipgloss.Style, badge, message string) error {
	if c.colorize {
		badge = style.Render(badge)
	}
	line := badge + " " + strings.TrimSpace(message) + "\n"
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := io.WriteString(c.writer, line)
	return err
}
