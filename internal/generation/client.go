package generation

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"commitart/internal/config"
	"commitart/internal/grid"
	"commitart/internal/ledger"
	"commitart/internal/logging"
	"commitart/internal/requestexec"
	"commitart/internal/schedule"
	"commitart/internal/services"
)

const (
	pathGenerate      = "generate"
	pathStatus        = "request/status"
	pathRequestAccess = "request-access"

	opGenerate      = "generate"
	opStatus        = "status"
	opRequestAccess = "request_access"

	missingIdentityMessage = "Missing required data (Token or Email). Please log out and log in."
)

// Ledger records the lifecycle of each submission. *ledger.Store satisfies it.
type Ledger interface {
	Create(ctx context.Context, sub ledger.Submission) (*ledger.Submission, error)
	MarkResolved(ctx context.Context, id string, out ledger.Outcome) error
	MarkFailed(ctx context.Context, id string, out ledger.Outcome) error
	MarkCancelled(ctx context.Context, id string, out ledger.Outcome) error
}

// Notifier announces successful outcomes. notifications.Service satisfies it.
type Notifier interface {
	NotifyGenerated(ctx context.Context, repoName, url string, commits int) error
	NotifyAccessRequested(ctx context.Context, email string) error
}

// Limits bounds what Generate accepts before anything is sent.
type Limits struct {
	DefaultIntensity int
	MaxIntensity     int
	MaxTextLength    int
	YearWeeks        int
}

// DefaultLimits mirrors the [generation] config defaults.
func DefaultLimits() Limits {
	return Limits{
		DefaultIntensity: schedule.MinIntensity,
		MaxIntensity:     schedule.MaxIntensity,
		MaxTextLength:    grid.MaxTextLength,
		YearWeeks:        grid.YearWeeks,
	}
}

// Request is one generation submission.
type Request struct {
	Token    string
	Owner    string
	Email    string
	RepoName string
	Text     string
	// Grid replaces the compiled text when set (hand-edited pattern).
	Grid *grid.Grid
	// Anchor is any day in the first week; it is aligned back to Sunday.
	Anchor time.Time
	// Intensity is commits per active cell; zero selects the default.
	Intensity int
}

// Result describes a resolved submission.
type Result struct {
	SubmissionID string
	RepoName     string
	URL          string
	Schedule     schedule.Schedule
	Attempts     int
	RequestID    string
}

// Status is the owner's account state on the orchestrator.
type Status struct {
	Credits         int
	AccessRequested bool
}

// Client talks to the orchestrator.
type Client struct {
	exec     *requestexec.Executor
	ledger   Ledger
	notifier Notifier
	logger   *slog.Logger
	limits   Limits
	session  requestexec.Session
	now      func() time.Time
}

// Option customizes the client.
type Option func(*Client)

// WithLedger records submissions in l.
func WithLedger(l Ledger) Option {
	return func(c *Client) {
		c.ledger = l
	}
}

// WithNotifier announces successes through n.
func WithNotifier(n Notifier) Option {
	return func(c *Client) {
		c.notifier = n
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithLimits overrides the validation limits.
func WithLimits(l Limits) Option {
	return func(c *Client) {
		c.limits = l
	}
}

// WithClock overrides the time source used for a missing anchor.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// New constructs a client on top of exec.
func New(exec *requestexec.Executor, opts ...Option) *Client {
	c := &Client{
		exec:   exec,
		logger: logging.NewNop(),
		limits: DefaultLimits(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LimitsFromConfig reads the [generation] section.
func LimitsFromConfig(cfg *config.Config) Limits {
	return Limits{
		DefaultIntensity: cfg.Generation.DefaultIntensity,
		MaxIntensity:     cfg.Generation.MaxIntensity,
		MaxTextLength:    cfg.Generation.MaxTextLength,
		YearWeeks:        cfg.Generation.YearWeeks,
	}
}

type generatePayload struct {
	GithubToken string            `json:"githubToken"`
	RepoName    string            `json:"repoName"`
	Owner       string            `json:"owner"`
	Email       string            `json:"email"`
	PatternData schedule.Schedule `json:"patternData"`
}

type generateResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
	Message string `json:"message"`
}

type statusResponse struct {
	Success         bool `json:"success"`
	Credits         int  `json:"credits"`
	AccessRequested bool `json:"accessRequested"`
}

type accessPayload struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email"`
}

// Generate validates req, submits its schedule and waits for a terminal
// outcome. Beginning a new generation cancels the one in flight. Validation
// failures never reach the network or the ledger.
func (c *Client) Generate(ctx context.Context, req Request) (*Result, error) {
	p, err := c.prepare(req)
	if err != nil {
		return nil, err
	}

	ctx = services.WithOwner(ctx, req.Owner)
	ctx = services.WithOperation(ctx, opGenerate)
	requestID := uuid.NewString()
	ctx = services.WithRequestID(ctx, requestID)
	logger := logging.WithContext(ctx, c.logger)

	var sub *ledger.Submission
	if c.ledger != nil {
		sub, err = c.ledger.Create(ctx, ledger.Submission{
			Owner:     req.Owner,
			RepoName:  p.RepoName,
			Text:      req.Text,
			Entries:   len(p.Schedule),
			Commits:   p.Schedule.TotalCommits(),
			Intensity: p.Intensity,
			Anchor:    p.Anchor,
			RequestID: requestID,
		})
		if err != nil {
			return nil, fmt.Errorf("record submission: %w", err)
		}
	}

	runCtx, release := c.session.Begin(ctx)
	defer release()

	logger.Info("submitting generation",
		logging.String("repo", p.RepoName),
		logging.Int("entries", len(p.Schedule)),
		logging.Int("commits", p.Schedule.TotalCommits()),
		logging.String("anchor", p.Anchor.Format(schedule.DateLayout)),
	)

	d := c.exec.NewDescriptor(opGenerate, http.MethodPost, pathGenerate, generatePayload{
		GithubToken: req.Token,
		RepoName:    p.RepoName,
		Owner:       req.Owner,
		Email:       req.Email,
		PatternData: p.Schedule,
	})
	d.RequestID = requestID

	resp, err := c.exec.Execute(runCtx, d)
	if err != nil {
		c.recordFailure(ctx, logger, sub, err)
		return nil, err
	}

	var body generateResponse
	if err := resp.Decode(&body); err != nil {
		err = services.Wrap(services.ErrContractViolation, "generation", opGenerate, "unexpected response", err)
		c.recordFailure(ctx, logger, sub, err)
		return nil, err
	}
	if !body.Success || strings.TrimSpace(body.URL) == "" {
		msg := body.Message
		if msg == "" {
			msg = "response did not include a repository url"
		}
		err = services.Wrap(services.ErrContractViolation, "generation", opGenerate, msg, nil)
		c.recordFailure(ctx, logger, sub, err)
		return nil, err
	}

	result := &Result{
		RepoName:  p.RepoName,
		URL:       body.URL,
		Schedule:  p.Schedule,
		Attempts:  resp.Attempts,
		RequestID: requestID,
	}
	if sub != nil {
		result.SubmissionID = sub.ID
		if err := c.ledger.MarkResolved(context.WithoutCancel(ctx), sub.ID, ledger.Outcome{
			Attempts:  resp.Attempts,
			URL:       body.URL,
			RequestID: requestID,
		}); err != nil {
			logger.Warn("ledger update failed", logging.Error(err))
		}
	}

	logger.Info("generation resolved",
		logging.String("repo", p.RepoName),
		logging.String("url", body.URL),
		logging.Int("attempts", resp.Attempts),
	)
	if c.notifier != nil {
		if err := c.notifier.NotifyGenerated(context.WithoutCancel(ctx), p.RepoName, body.URL, p.Schedule.TotalCommits()); err != nil {
			logger.Warn("generated notification failed", logging.Error(err))
		}
	}
	return result, nil
}

// prepare checks the submitting identity, then plans the schedule.
func (c *Client) prepare(req Request) (Plan, error) {
	if strings.TrimSpace(req.Token) == "" || strings.TrimSpace(req.Email) == "" {
		return Plan{}, invalid(opGenerate, missingIdentityMessage)
	}
	if strings.TrimSpace(req.Owner) == "" {
		return Plan{}, invalid(opGenerate, "owner is required")
	}
	return Prepare(req, c.limits, c.now())
}

// Plan is a validated request ready for submission.
type Plan struct {
	RepoName  string
	Intensity int
	Anchor    time.Time
	Grid      grid.Grid
	Schedule  schedule.Schedule
}

// Prepare runs the local checks that do not depend on identity and compiles
// the schedule. now stands in for a zero anchor. Every rejection is a
// validation failure.
func Prepare(req Request, limits Limits, now time.Time) (Plan, error) {
	if n := utf8.RuneCountInString(req.Text); limits.MaxTextLength > 0 && n > limits.MaxTextLength {
		return Plan{}, invalid(opGenerate, fmt.Sprintf("text is %d characters; at most %d fit in a year", n, limits.MaxTextLength))
	}

	intensity := req.Intensity
	if intensity == 0 {
		intensity = limits.DefaultIntensity
	}
	maxIntensity := limits.MaxIntensity
	if maxIntensity <= 0 || maxIntensity > schedule.MaxIntensity {
		maxIntensity = schedule.MaxIntensity
	}
	if intensity < schedule.MinIntensity || intensity > maxIntensity {
		return Plan{}, invalid(opGenerate, fmt.Sprintf("intensity must be between %d and %d", schedule.MinIntensity, maxIntensity))
	}

	var g grid.Grid
	if req.Grid != nil {
		g = *req.Grid
	} else {
		g = grid.Compile(req.Text)
	}
	if limits.YearWeeks > 0 && g.Width() > limits.YearWeeks {
		return Plan{}, invalid(opGenerate, fmt.Sprintf("pattern is %d weeks wide; the contribution graph holds %d", g.Width(), limits.YearWeeks))
	}

	anchor := req.Anchor
	if anchor.IsZero() {
		anchor = now
	}
	anchor = schedule.NormalizeAnchor(anchor)

	sched, err := schedule.Compile(g, anchor, intensity)
	if err != nil {
		return Plan{}, err
	}
	if len(sched) == 0 {
		return Plan{}, invalid(opGenerate, "pattern is empty; nothing to generate")
	}

	name := strings.TrimSpace(req.RepoName)
	if name == "" {
		name = RepoName(req.Text)
	}
	return Plan{RepoName: name, Intensity: intensity, Anchor: anchor, Grid: g, Schedule: sched}, nil
}

func (c *Client) recordFailure(ctx context.Context, logger *slog.Logger, sub *ledger.Submission, err error) {
	if sub == nil {
		return
	}
	out := ledger.Outcome{Kind: services.KindOf(err), Message: err.Error(), RequestID: sub.RequestID}
	if f, ok := requestexec.AsFailure(err); ok {
		out.Attempts = f.Attempts
		out.Message = f.UserMessage()
		out.CorrelationID = f.CorrelationID
	}

	mark := c.ledger.MarkFailed
	if services.IsCancelled(err) {
		mark = c.ledger.MarkCancelled
	}
	if markErr := mark(context.WithoutCancel(ctx), sub.ID, out); markErr != nil {
		logger.Warn("ledger update failed", logging.Error(markErr))
	}
}

// Status polls the owner's credits. Polling is silent: one attempt, no
// notification on failure.
func (c *Client) Status(ctx context.Context, owner string) (*Status, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, invalid(opStatus, "owner is required")
	}
	ctx = services.WithOwner(ctx, owner)

	d := c.exec.NewDescriptor(opStatus, http.MethodGet, pathStatus, nil)
	d.Query = url.Values{"username": []string{owner}}
	d.Policy = requestexec.SilentPolicy()
	d.Policy.Timeout = c.exec.Policy().Timeout

	resp, err := c.exec.Execute(ctx, d)
	if err != nil {
		return nil, err
	}
	var body statusResponse
	if err := resp.Decode(&body); err != nil {
		return nil, services.Wrap(services.ErrContractViolation, "generation", opStatus, "unexpected response", err)
	}
	return &Status{Credits: body.Credits, AccessRequested: body.AccessRequested}, nil
}

// RequestAccess asks the orchestrator operators for credits.
func (c *Client) RequestAccess(ctx context.Context, owner, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return invalid(opRequestAccess, "email is required")
	}
	ctx = services.WithOwner(ctx, owner)

	d := c.exec.NewDescriptor(opRequestAccess, http.MethodPost, pathRequestAccess, accessPayload{
		Username: strings.TrimSpace(owner),
		Email:    email,
	})
	if _, err := c.exec.Execute(ctx, d); err != nil {
		return err
	}

	logging.WithContext(ctx, c.logger).Info("access requested", logging.String("email", email))
	if c.notifier != nil {
		if err := c.notifier.NotifyAccessRequested(context.WithoutCancel(ctx), email); err != nil {
			c.logger.Warn("access notification failed", logging.Error(err))
		}
	}
	return nil
}

// Cancel aborts the generation in flight, if any.
func (c *Client) Cancel() {
	c.session.Cancel()
}

// Busy reports whether a generation is in flight.
func (c *Client) Busy() bool {
	return c.session.Active()
}

func invalid(operation, message string) error {
	return services.Wrap(services.ErrValidation, "generation", operation, message, nil)
}
