package notification

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rxtech-lab/argo-quant/internal/logger"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"go.uber.org/zap"
)

// WebhookConfig configures a chat-bot webhook.
type WebhookConfig struct {
	URL string `yaml:"url" json:"url" validate:"required,url"`
	// Secret enables signed requests when set.
	Secret     string        `yaml:"secret" json:"secret"`
	Timeout    time.Duration `yaml:"timeout" json:"timeout"`
	RetryCount int           `yaml:"retry_count" json:"retry_count" validate:"gte=0"`
}

type textMessage struct {
	MsgType string      `json:"msgtype"`
	Text    textContent `json:"text"`
}

type textContent struct {
	Content string `json:"content"`
}

type webhookResponse struct {
	ErrCode int    `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
}

// WebhookNotifier posts text messages to a DingTalk style robot webhook.
type WebhookNotifier struct {
	config WebhookConfig
	client *resty.Client
	logger *logger.Logger
	now    func() time.Time
}

func NewWebhookNotifier(config WebhookConfig, log *logger.Logger) (*WebhookNotifier, error) {
	if config.URL == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "webhook url is required")
	}

	if _, err := url.Parse(config.URL); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid webhook url", err)
	}

	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	client := resty.New().
		SetTimeout(config.Timeout).
		SetRetryCount(config.RetryCount).
		SetHeader("Content-Type", "application/json")

	return &WebhookNotifier{
		config: config,
		client: client,
		logger: log,
		now:    time.Now,
	}, nil
}

// Notify implements Notifier.
func (n *WebhookNotifier) Notify(ctx context.Context, message string) error {
	endpoint, err := n.signedURL()
	if err != nil {
		return err
	}

	var result webhookResponse

	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(textMessage{MsgType: "text", Text: textContent{Content: message}}).
		SetResult(&result).
		Post(endpoint)
	if err != nil {
		return errors.Wrap(errors.ErrCodeNotificationFailed, "failed to post webhook message", err)
	}

	if resp.IsError() {
		return errors.Newf(errors.ErrCodeNotificationFailed, "webhook returned HTTP %d", resp.StatusCode())
	}

	if result.ErrCode != 0 {
		return errors.Newf(errors.ErrCodeNotificationFailed, "webhook rejected message: %s (code %d)", result.ErrMsg, result.ErrCode)
	}

	n.logger.Debug("Webhook message delivered", zap.Int("length", len(message)))

	return nil
}

// signedURL appends timestamp and sign query parameters when a secret is configured.
// sign is base64(HMAC-SHA256(secret, timestamp + "\n" + secret)).
func (n *WebhookNotifier) signedURL() (string, error) {
	if n.config.Secret == "" {
		return n.config.URL, nil
	}

	u, err := url.Parse(n.config.URL)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid webhook url", err)
	}

	timestamp := strconv.FormatInt(n.now().UnixMilli(), 10)

	query := u.Query()
	query.Set("timestamp", timestamp)
	query.Set("sign", Sign(n.config.Secret, timestamp))
	u.RawQuery = query.Encode()

	return u.String(), nil
}

// Sign computes the webhook request signature for timestamp (milliseconds).
func Sign(secret string, timestamp string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp + "\n" + secret))

	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
