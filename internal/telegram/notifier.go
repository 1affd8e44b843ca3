// Package telegram delivers reports to a Telegram channel through the Bot API.
package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/phuslu/log"
	"resty.dev/v3"

	"pricewatch/internal/fetcher"
	"pricewatch/internal/ratelimit"
)

// ErrNotDelivered is returned when the Bot API does not accept a message.
var ErrNotDelivered = errors.New("message not delivered")

// DefaultBaseURL is the public Bot API endpoint.
const DefaultBaseURL = "https://api.telegram.org"

// Config holds the notifier settings.
type Config struct {
	BaseURL   string
	BotToken  string
	ChannelID string
	ParseMode string
	Timeout   time.Duration
	ProxyURL  string
}

// sendMessageResponse is the subset of the Bot API reply we inspect.
type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
}

// Notifier posts text messages to one channel.
type Notifier struct {
	cfg    Config
	client *resty.Client
	logger *log.Logger
}

// NewNotifier creates a notifier. Requests are not retried so that a message
// is never posted twice.
func NewNotifier(cfg Config, logger *log.Logger) *Notifier {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	client := fetcher.NewHTTPClient(fetcher.ClientOptions{
		BaseURL:    cfg.BaseURL,
		Timeout:    cfg.Timeout,
		ProxyURL:   cfg.ProxyURL,
		Headers:    map[string]string{"Accept": "application/json"},
		RetryCount: -1,
		Logger:     logger,
	})

	return &Notifier{
		cfg:    cfg,
		client: client,
		logger: logger,
	}
}

// Send posts text to the channel.
func (n *Notifier) Send(ctx context.Context, text string) error {
	if err := ratelimit.GetLimiter().Wait(ctx, ratelimit.APITelegram); err != nil {
		return fmt.Errorf("waiting for telegram rate limit: %w", err)
	}

	form := map[string]string{
		"chat_id": n.cfg.ChannelID,
		"text":    text,
	}
	if n.cfg.ParseMode != "" {
		form["parse_mode"] = n.cfg.ParseMode
	}

	resp, err := n.client.R().
		SetContext(ctx).
		SetFormData(form).
		Post(n.path())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotDelivered, fetcher.FromTransport(ctx, err))
	}

	// error replies carry the same envelope, so decode regardless of status
	var result sendMessageResponse
	if err := json.Unmarshal([]byte(resp.String()), &result); err != nil && resp.IsSuccess() {
		return fmt.Errorf("%w: %w", ErrNotDelivered, fetcher.NewValidationError("malformed Bot API reply"))
	}

	if !resp.IsSuccess() || !result.OK {
		n.logger.Error().
			Int("status_code", resp.StatusCode()).
			Str("description", result.Description).
			Msg("send to Telegram channel failed")
		if !resp.IsSuccess() {
			return fmt.Errorf("%w: %w: %s", ErrNotDelivered, fetcher.ClassifyHTTPError(resp.StatusCode()), result.Description)
		}
		return fmt.Errorf("%w: %s", ErrNotDelivered, result.Description)
	}

	n.logger.Info().Str("channel", n.cfg.ChannelID).Bool("ok", result.OK).Msg("send to Telegram channel")
	return nil
}

func (n *Notifier) path() string {
	return fmt.Sprintf("/bot%s/sendMessage", n.cfg.BotToken)
}
