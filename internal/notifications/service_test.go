package notifications_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"commitart/internal/config"
	"commitart/internal/notifications"
)

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = ""
	svc := notifications.NewService(&cfg)
	if err := svc.NotifyFailure(context.Background(), "generate", "Conflict: busy"); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
}

func TestNtfyServiceFormatsPayloads(t *testing.T) {
	tests := []struct {
		name           string
		send           func(notifications.Service) error
		expectTitle    string
		expectMessage  string
		expectTags     string
		expectPriority string
	}{
		{
			name: "failure",
			send: func(s notifications.Service) error {
				return s.NotifyFailure(context.Background(), "generate", "Conflict: generation already running")
			},
			expectTitle:    "commitart - generate failed",
			expectMessage:  "Conflict: generation already running",
			expectTags:     "commitart,error,alert",
			expectPriority: "high",
		},
		{
			name: "generated",
			send: func(s notifications.Service) error {
				return s.NotifyGenerated(context.Background(), "hi-contribution", "https://github.com/octocat/hi-contribution", 42)
			},
			expectTitle:   "commitart - Generated",
			expectMessage: "Generated hi-contribution with 42 commits\nhttps://github.com/octocat/hi-contribution",
			expectTags:    "commitart,generate,completed",
		},
		{
			name: "access requested",
			send: func(s notifications.Service) error {
				return s.NotifyAccessRequested(context.Background(), "octocat@example.com")
			},
			expectTitle:   "commitart - Access Requested",
			expectMessage: "Access requested for octocat@example.com",
			expectTags:    "commitart,access,requested",
		},
		{
			name:           "test",
			send:           func(s notifications.Service) error { return s.TestNotification(context.Background()) },
			expectTitle:    "commitart - Test",
			expectMessage:  "Notification system test",
			expectTags:     "commitart,test",
			expectPriority: "low",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var captured struct {
				title    string
				tags     string
				priority string
				body     string
			}

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("unexpected method: %s", r.Method)
				}
				captured.title = r.Header.Get("Title")
				captured.tags = r.Header.Get("Tags")
				captured.priority = r.Header.Get("Priority")
				body, err := io.ReadAll(r.Body)
				if err != nil {
					t.Errorf("read body: %v", err)
				}
				captured.body = string(body)
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			cfg := config.Default()
			cfg.Notifications.NtfyTopic = server.URL
			cfg.Notifications.RequestTimeout = 5

			if err := tc.send(notifications.NewService(&cfg)); err != nil {
				t.Fatalf("notification returned error: %v", err)
			}

			if captured.title != tc.expectTitle {
				t.Fatalf("expected title %q, got %q", tc.expectTitle, captured.title)
			}
			if captured.body != tc.expectMessage {
				t.Fatalf("expected message %q, got %q", tc.expectMessage, captured.body)
			}
			if captured.tags != tc.expectTags {
				t.Fatalf("expected tags %q, got %q", tc.expectTags, captured.tags)
			}
			if captured.priority != tc.expectPriority {
				t.Fatalf("expected priority %q, got %q", tc.expectPriority, captured.priority)
			}
		})
	}
}

func TestNtfyServiceReportsHTTPErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "topic closed", http.StatusForbidden)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	err := notifications.NewService(&cfg).TestNotification(context.Background())
	if err == nil || !strings.Contains(err.Error(), "403") {
		t.Fatalf("expected 403 error, got %v", err)
	}
}

func TestConsoleServiceWritesPlainLines(t *testing.T) {
	var buf bytes.Buffer
	svc := notifications.NewConsole(&buf, false)
	if err := svc.NotifyFailure(context.Background(), "generate", "Network Error: No response from server. Please check your connection."); err != nil {
		t.Fatalf("NotifyFailure: %v", err)
	}
	want := "✖ Network Error: No response from server. Please check your connection.\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}

type recordingService struct {
	failures []string
	err      error
}

func (r *recordingService) NotifyFailure(_ context.Context, _ string, message string) error {
	r.failures = append(r.failures, message)
	return r.err
}
func (r *recordingService) NotifyGenerated(context.Context, string, string, int) error { return r.err }
func (r *recordingService) NotifyAccessRequested(context.Context, string) error        { return r.err }
func (r *recordingService) TestNotification(context.Context) error                     { return r.err }

func TestMultiDeliversToEveryService(t *testing.T) {
	first := &recordingService{err: errors.New("first down")}
	second := &recordingService{}
	svc := notifications.Multi(first, nil, second)

	err := svc.NotifyFailure(context.Background(), "generate", "Conflict: busy")
	if err == nil || !strings.Contains(err.Error(), "first down") {
		t.Fatalf("expected joined error from first service, got %v", err)
	}
	if len(first.failures) != 1 || len(second.failures) != 1 {
		t.Fatalf("expected both services notified, got %d and %d", len(first.failures), len(second.failures))
	}
}
