// Package gemini — адаптер к API Gemini: распознавание чеков и генерация
// инсайтов для месячного отчёта.
package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/finova/models"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Три исхода отказа различаются отдельно и не схлопываются в один «null»:
// сервис не ответил, ответил мусором, ответил корректно, но это не чек.
var (
	ErrUnreachable       = fmt.Errorf("%w: сервис извлечения недоступен", models.ErrExternalService)
	ErrMalformedResponse = fmt.Errorf("%w: нечитаемый ответ сервиса извлечения", models.ErrExternalService)
	ErrNotAReceipt       = fmt.Errorf("%w: на изображении не распознан чек", models.ErrExternalService)
)

type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func New() *Client {
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &Client{
		apiKey:     os.Getenv("GEMINI_API_KEY"),
		model:      model,
		baseURL:    "https://generativelanguage.googleapis.com/v1beta",
		httpClient: &http.Client{},
	}
}

const receiptPrompt = `Analyze this receipt and return JSON:
{
  "amount": number,
  "date": "ISO string",
  "description": "string",
  "merchantName": "string",
  "category": "string"
}
Pick category from this list if possible: %s`

// ScanReceipt отправляет изображение чека модели и возвращает
// распознанные поля. Ответ без суммы или даты — отказ, не частичный успех.
func (c *Client) ScanReceipt(ctx context.Context, fileBytes []byte, mimeType string, categories []string) (*models.ReceiptData, error) {
	req := generateRequest{
		Contents: []content{{
			Parts: []part{
				{InlineData: &inlineData{
					MimeType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(fileBytes),
				}},
				{Text: fmt.Sprintf(receiptPrompt, strings.Join(categories, ", "))},
			},
		}},
	}

	text, err := c.generate(ctx, req)
	if err != nil {
		return nil, err
	}

	return ParseReceiptJSON(text)
}

// MonthlyInsights просит модель прокомментировать месячную статистику.
func (c *Client) MonthlyInsights(ctx context.Context, statsJSON []byte, monthName string) ([]string, error) {
	prompt := fmt.Sprintf(
		"Analyze finances for %s and return a JSON array of 3 short insight strings: %s",
		monthName, statsJSON)

	text, err := c.generate(ctx, generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return nil, err
	}

	var insights []string
	if err := json.Unmarshal([]byte(StripCodeFences(text)), &insights); err != nil {
		return nil, ErrMalformedResponse
	}
	return insights, nil
}

func (c *Client) generate(ctx context.Context, payload generateRequest) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.Error().Err(err).Msg("Ошибка сериализации запроса к Gemini")
		return "", ErrMalformedResponse
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	reqCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", ErrUnreachable
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error().Err(err).Msg("Ошибка соединения с Gemini API")
		return "", ErrUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Error().Int("status", resp.StatusCode).Msg("Gemini API вернул ошибку")
		return "", ErrUnreachable
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", ErrUnreachable
	}

	var parsed generateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", ErrMalformedResponse
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", ErrMalformedResponse
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

var codeFenceRe = regexp.MustCompile("```(?:json)?")

// StripCodeFences убирает маркдаун-ограждения, которыми модель любит
// оборачивать JSON.
func StripCodeFences(s string) string {
	return strings.TrimSpace(codeFenceRe.ReplaceAllString(s, ""))
}

// ParseReceiptJSON разбирает и проверяет ответ модели по чеку.
func ParseReceiptJSON(text string) (*models.ReceiptData, error) {
	var payload receiptPayload
	if err := json.Unmarshal([]byte(StripCodeFences(text)), &payload); err != nil {
		return nil, ErrMalformedResponse
	}

	if payload.Amount == nil || payload.Date == nil {
		return nil, ErrNotAReceipt
	}
	date, err := time.Parse(time.RFC3339, *payload.Date)
	if err != nil {
		// модель иногда отдаёт дату без времени
		date, err = time.Parse("2006-01-02", *payload.Date)
		if err != nil {
			return nil, ErrNotAReceipt
		}
	}

	category := payload.Category
	if category == "" {
		category = "other-expense"
	}

	return &models.ReceiptData{
		Amount:       decimal.NewFromFloat(*payload.Amount),
		Date:         date,
		Description:  payload.Description,
		MerchantName: payload.MerchantName,
		Category:     category,
	}, nil
}
