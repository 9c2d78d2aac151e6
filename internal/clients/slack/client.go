package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/samjsmart/gig-int-garden-api/internal/platform/ctxutil"
	"github.com/samjsmart/gig-int-garden-api/internal/platform/envutil"
	"github.com/samjsmart/gig-int-garden-api/internal/platform/httpx"
	"github.com/samjsmart/gig-int-garden-api/internal/platform/logger"
)

// Client posts plain-text messages to a Slack incoming webhook. It is
// stateless and does no templating.
type Client interface {
	Post(ctx context.Context, text string) error
}

type Config struct {
	WebhookURL string
	Timeout    time.Duration
	MaxRetries int
}

func ConfigFromEnv() Config {
	timeoutSec := envutil.Int("SLACK_TIMEOUT_SECONDS", 10)
	maxRetries := envutil.Int("SLACK_MAX_RETRIES", 3)

	return Config{
		WebhookURL: strings.TrimSpace(os.Getenv("SLACK_WEBHOOK_URL")),
		Timeout:    time.Duration(timeoutSec) * time.Second,
		MaxRetries: maxRetries,
	}
}

func NewFromEnv(log *logger.Logger) (Client, error) {
	return New(log, ConfigFromEnv())
}

func New(log *logger.Logger, cfg Config) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if strings.TrimSpace(cfg.WebhookURL) == "" {
		return nil, fmt.Errorf("missing SLACK_WEBHOOK_URL")
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	return &client{
		log:        log.With("client", "SlackClient"),
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		maxRetries: cfg.MaxRetries,
	}, nil
}

type client struct {
	log        *logger.Logger
	cfg        Config
	httpClient *http.Client
	maxRetries int
}

type webhookPayload struct {
	Text string `json:"text"`
}

type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "slack: <nil error>"
	}
	msg := strings.TrimSpace(e.Body)
	if msg == "" {
		msg = "<empty body>"
	}
	return fmt.Sprintf("slack http %d: %s", e.StatusCode, msg)
}

func (e *HTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

func (c *client) Post(ctx context.Context, text string) error {
	if c == nil || c.httpClient == nil {
		return fmt.Errorf("slack client unavailable")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("slack: text required")
	}

	backoff := 1 * time.Second

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		resp, err := c.postOnce(ctx, text)
		if err == nil {
			return nil
		}

		if !httpx.IsRetryableError(err) || attempt == c.maxRetries {
			return err
		}

		sleepFor := httpx.RetryAfterDuration(resp, backoff, 10*time.Second)
		sleepFor = httpx.JitterSleep(sleepFor)

		c.log.Warn("Slack request retrying",
			"attempt", attempt+1,
			"max_retries", c.maxRetries,
			"sleep", sleepFor.String(),
			"error", err.Error(),
		)

		time.Sleep(sleepFor)
		backoff *= 2
	}

	return errors.New("unreachable retry loop")
}

func (c *client) postOnce(ctx context.Context, text string) (*http.Response, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(webhookPayload{Text: text}); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctxutil.Default(ctx), http.MethodPost, c.cfg.WebhookURL, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return resp, readErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return resp, nil
}
