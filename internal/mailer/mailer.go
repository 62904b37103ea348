// Package mailer отправляет письма через HTTP API почтового сервиса.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/valeriaulyamaeva/finova/models"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Sender — узкий интерфейс доставки уведомлений. Неудачная отправка
// логируется вызывающим кодом и не валит основной поток.
type Sender interface {
	Send(to, subject, body string) error
}

// ResendClient шлёт письма через api.resend.com.
type ResendClient struct {
	apiKey     string
	from       string
	baseURL    string
	httpClient *http.Client
}

func NewResendClient(apiKey, from string) *ResendClient {
	return &ResendClient{
		apiKey:     apiKey,
		from:       from,
		baseURL:    "https://api.resend.com",
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// NewFromEnv возвращает настоящий клиент при наличии RESEND_API_KEY,
// иначе заглушку с логированием.
func NewFromEnv() Sender {
	apiKey := os.Getenv("RESEND_API_KEY")
	if apiKey == "" {
		logger.Warn().Msg("RESEND_API_KEY не задан, письма будут только логироваться")
		return &LogSender{}
	}
	from := os.Getenv("MAIL_FROM")
	if from == "" {
		from = "finova@resend.dev"
	}
	return NewResendClient(apiKey, from)
}

type emailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (c *ResendClient) Send(to, subject, body string) error {
	payload, err := json.Marshal(emailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		HTML:    body,
	})
	if err != nil {
		return fmt.Errorf("%w: ошибка сериализации письма: %v", models.ErrExternalService, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrExternalService, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error().Err(err).Str("to", to).Msg("Ошибка соединения с почтовым сервисом")
		return fmt.Errorf("%w: почтовый сервис недоступен", models.ErrExternalService)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Error().Int("status", resp.StatusCode).Str("to", to).Msg("Почтовый сервис вернул ошибку")
		return fmt.Errorf("%w: почтовый сервис вернул статус %d", models.ErrExternalService, resp.StatusCode)
	}
	return nil
}

// LogSender используется в разработке: пишет письмо в лог вместо отправки.
type LogSender struct{}

func (s *LogSender) Send(to, subject, body string) error {
	logger.Info().Str("to", to).Str("subject", subject).Msg("Письмо не отправлено (режим заглушки)")
	return nil
}
