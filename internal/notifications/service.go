package notifications

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"commitart/internal/config"
)

const userAgent = "commitart/0.1.0"

// Service defines the user-facing notification surface. The executor reports
// terminal request failures through NotifyFailure; the generation client
// reports milestones through the remaining methods.
type Service interface {
	NotifyFailure(ctx context.Context, operation, message string) error
	NotifyGenerated(ctx context.Context, repoName, url string, commits int) error
	NotifyAccessRequested(ctx context.Context, email string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	if cfg == nil {
		return noopService{}
	}
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := cfg.NotificationTimeout()
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &http.Client{Timeout: timeout}
	return &ntfyService{
		endpoint: topic,
		client:   client,
	}
}

// Multi fans a notification out to every non-nil service. All services are
// attempted; their errors are joined.
func Multi(services ...Service) Service {
	filtered := make(multiService, 0, len(services))
	for _, svc := range services {
		if svc == nil {
			continue
		}
		if _, ok := svc.(noopService); ok {
			continue
		}
		filtered = append(filtered, svc)
	}
	switch len(filtered) {
	case 0:
		return noopService{}
	case 1:
		return filtered[0]
	default:
		return filtered
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

func failurePayload(operation, message string) payload {
	title := "commitart - Request Failed"
	if operation = strings.TrimSpace(operation); operation != "" {
		title = "commitart - " + operation + " failed"
	}
	return payload{
		title:    title,
		message:  strings.TrimSpace(message),
		tags:     []string{"commitart", "error", "alert"},
		priority: "high",
	}
}

func generatedPayload(repoName, url string, commits int) payload {
	message := fmt.Sprintf("Generated %s with %d commits", strings.TrimSpace(repoName), commits)
	if url = strings.TrimSpace(url); url != "" {
		message = fmt.Sprintf("%s\n%s", message, url)
	}
	return payload{
		title:   "commitart - Generated",
		message: message,
		tags:    []string{"commitart", "generate", "completed"},
	}
}

func accessRequestedPayload(email string) payload {
	return payload{
		title:   "commitart - Access Requested",
		message: fmt.Sprintf("Access requested for %s", strings.TrimSpace(email)),
		tags:    []string{"commitart", "access", "requested"},
	}
}

func testPayload() payload {
	return payload{
		title:    "commitart - Test",
		message:  "Notification system test",
		tags:     []string{"commitart", "test"},
		priority: "low",
	}
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifyFailure(ctx context.Context, operation, message string) error {
	return n.send(ctx, failurePayload(operation, message))
}

func (n *ntfyService) NotifyGenerated(ctx context.Context, repoName, url string, commits int) error {
	return n.send(ctx, generatedPayload(repoName, url, commits))
}

func (n *ntfyService) NotifyAccessRequested(ctx context.Context, email string) error {
	return n.send(ctx, accessRequestedPayload(email))
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	return n.send(ctx, testPayload())
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type multiService []Service

func (m multiService) each(fn func(Service) error) error {
	var errs []error
	for _, svc := range m {
		if err := fn(svc); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m multiService) NotifyFailure(ctx context.Context, operation, message string) error {
	return m.each(func(s Service) error { return s.NotifyFailure(ctx, operation, message) })
}

func (m multiService) NotifyGenerated(ctx context.Context, repoName, url string, commits int) error {
	return m.each(func(s Service) error { return s.NotifyGenerated(ctx, repoName, url, commits) })
}

func (m multiService) NotifyAccessRequested(ctx context.Context, email string) error {
	return m.each(func(s Service) error { return s.NotifyAccessRequested(ctx, email) })
}

func (m multiService) TestNotification(ctx context.Context) error {
	return m.each(func(s Service) error { return s.TestNotification(ctx) })
}

type noopService struct{}

func (noopService) NotifyFailure(context.Context, string, string) error        { return nil }
func (noopService) NotifyGenerated(context.Context, string, string, int) error { return nil }
func (noopService) NotifyAccessRequested(context.Context, string) error        { return nil }
func (noopService) TestNotification(context.Context) error                     { return nil }
