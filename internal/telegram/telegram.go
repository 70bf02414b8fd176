package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"rentalmanager/internal/models"
)

const DefaultAPIURL = "https://api.telegram.org"

var ErrNotConfigured = errors.New("Telegram is not configured")

type Config struct {
	Enabled  bool
	BotToken string
	ChatID   string

	// APIURL overrides DefaultAPIURL
	APIURL string
}

type Service struct {
	logger *logrus.Logger
	client *http.Client
	config Config
}

func NewService(config Config, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	if config.APIURL == "" {
		config.APIURL = DefaultAPIURL
	}
	config.APIURL = strings.TrimRight(config.APIURL, "/")
	return &Service{
		logger: logger,
		config: config,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (s *Service) IsEnabled() bool {
	return s.config.Enabled
}

// Send delivers a notification; a disabled service drops it silently
func (s *Service) Send(ctx context.Context, n models.Notification) error {
	return s.SendMessage(ctx, FormatNotification(n))
}

// SendMessage sends an HTML message to the configured Telegram chat
func (s *Service) SendMessage(ctx context.Context, message string) error {
	if !s.config.Enabled {
		return nil
	}

	if s.config.BotToken == "" {
		return fmt.Errorf("%w: bot token is missing", ErrNotConfigured)
	}

	if s.config.ChatID == "" {
		return fmt.Errorf("%w: chat ID is missing", ErrNotConfigured)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.config.APIURL, s.config.BotToken)
	payload := map[string]interface{}{
		"chat_id":    s.config.ChatID,
		"text":       message,
		"parse_mode": "HTML",
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal message payload: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to build Telegram request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send message to Telegram API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return errors.New("invalid bot token")
		case http.StatusBadRequest:
			return fmt.Errorf("invalid chat ID or message format: %s", string(body))
		case http.StatusForbidden:
			return errors.New("bot was blocked by the user or chat")
		case http.StatusNotFound:
			return errors.New("bot not found")
		default:
			return fmt.Errorf("Telegram API error (status %d): %s", resp.StatusCode, string(body))
		}
	}

	s.logger.WithField("chat_id", s.config.ChatID).Debug("Sent Telegram message")
	return nil
}

var kindIcons = map[models.NotificationKind]string{
	models.NotifySuccess: "✅",
	models.NotifyError:   "❌",
	models.NotifyWarning: "⚠️",
	models.NotifyInfo:    "ℹ️",
}

// FormatNotification renders a notification as Telegram HTML
func FormatNotification(n models.Notification) string {
	var b strings.Builder
	if icon, ok := kindIcons[n.Kind]; ok {
		b.WriteString(icon)
		b.WriteString(" ")
	}
	fmt.Fprintf(&b, "<b>%s</b>\n%s", html.EscapeString(n.Title), html.EscapeString(n.Message))
	if !n.At.IsZero() {
		fmt.Fprintf(&b, "\n<i>%s</i>", n.At.UTC().Format("2006-01-02 15:04:05 UTC"))
	}
	return b.String()
}
