package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"NewsSnap/internal/ports"
)

const defaultAPIBase = "https://api.telegram.org"

// Notifier mirrors terminal notifications (success and error) into a Telegram chat.
// Loading notifications are local only, so their handles are never sent.
type Notifier struct {
	botToken string
	chatID   string
	apiBase  string
	client   *http.Client
	logger   *slog.Logger
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier registers bot token and chat identifier.
func NewNotifier(botToken, chatID string, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Notifier{
		botToken: botToken,
		chatID:   chatID,
		apiBase:  defaultAPIBase,
		client:   &http.Client{Timeout: 5 * time.Second},
		logger:   logger,
	}
}

// Configured reports whether both token and chat are set.
func (n *Notifier) Configured() bool {
	return n != nil && n.botToken != "" && n.chatID != ""
}

// ShowLoading returns a fresh handle without sending anything.
func (n *Notifier) ShowLoading(string) ports.NotificationID {
	return ports.NotificationID(uuid.NewString())
}

// Dismiss is a no-op; loading notices are never sent.
func (n *Notifier) Dismiss(ports.NotificationID) {}

// DismissAll is a no-op.
func (n *Notifier) DismissAll() {}

// ShowSuccess sends message to the chat; empty messages are skipped.
func (n *Notifier) ShowSuccess(message string) {
	if message == "" {
		return
	}
	n.deliver("✅ " + message)
}

// ShowError sends message to the chat. Deduplication is left to the local bridge.
func (n *Notifier) ShowError(message, _ string) {
	if message == "" {
		return
	}
	n.deliver("❌ " + message)
}

func (n *Notifier) deliver(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), n.client.Timeout)
	defer cancel()

	if err := n.Send(ctx, text); err != nil {
		n.logger.Warn("telegram delivery failed", "error", err)
	}
}

// Send posts a plain-text message to the chat.
func (n *Notifier) Send(ctx context.Context, text string) error {
	if !n.Configured() || n.client == nil {
		return fmt.Errorf("telegram notifier misconfigured")
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.apiBase, n.botToken)
	form := url.Values{}
	form.Set("chat_id", n.chatID)
	form.Set("text", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram error: %s", resp.Status)
	}

	return nil
}
