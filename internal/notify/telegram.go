package notify

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"residence/server/internal/models"
)

const telegramAPI = "https://api.telegram.org"

type TelegramConfig struct {
	BotToken string
	ChatID   string
}

// Telegram relays new leads to a chat through the Bot API
type Telegram struct {
	logger  *logrus.Logger
	client  *http.Client
	config  TelegramConfig
	baseURL string
}

func NewTelegram(config TelegramConfig, logger *logrus.Logger) *Telegram {
	return &Telegram{
		logger: logger,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		config:  config,
		baseURL: telegramAPI,
	}
}

// SendMessage sends an HTML-formatted message to the configured chat
func (t *Telegram) SendMessage(message string) error {
	if t.config.BotToken == "" {
		return errors.New("telegram bot token is not configured")
	}

	if t.config.ChatID == "" {
		return errors.New("telegram chat ID is not configured")
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.config.BotToken)
	payload := map[string]interface{}{
		"chat_id":    t.config.ChatID,
		"text":       message,
		"parse_mode": "HTML",
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal message payload: %w", err)
	}

	resp, err := t.client.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to send message to Telegram API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusNotFound:
			return errors.New("invalid telegram bot token")
		case http.StatusBadRequest:
			return fmt.Errorf("invalid chat ID or message format: %s", string(body))
		case http.StatusForbidden:
			return errors.New("bot was blocked by the user or chat")
		default:
			return fmt.Errorf("telegram API error (status %d): %s", resp.StatusCode, string(body))
		}
	}

	return nil
}

// Notify sends one booking notification
func (t *Telegram) Notify(b models.Booking) error {
	var sb strings.Builder
	sb.WriteString("<b>🏠 " + html.EscapeString(leadSubject(b)) + "</b>\n\n")
	for _, line := range leadLines(b) {
		fmt.Fprintf(&sb, "%s: %s\n", line[0], html.EscapeString(line[1]))
	}

	if err := t.SendMessage(sb.String()); err != nil {
		return err
	}

	t.logger.WithField("booking_id", b.ID).Info("Lead Telegram message sent")
	return nil
}
