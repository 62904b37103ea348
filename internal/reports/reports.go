// Package reports собирает месячную статистику по пользователям,
// дополняет её инсайтами от ИИ и рассылает отчёты.
package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/finova/internal/database"
	"github.com/valeriaulyamaeva/finova/internal/gemini"
	"github.com/valeriaulyamaeva/finova/internal/mailer"
	"github.com/valeriaulyamaeva/finova/models"
)

// MonthlyStats — свод за календарный месяц.
type MonthlyStats struct {
	TotalIncome      decimal.Decimal            `json:"total_income"`
	TotalExpenses    decimal.Decimal            `json:"total_expenses"`
	ByCategory       map[string]decimal.Decimal `json:"by_category"`
	TransactionCount int                        `json:"transaction_count"`
}

// Aggregate сводит транзакции месяца: доходы и расходы отдельно,
// расходы дополнительно по категориям.
func Aggregate(transactions []models.Transaction) MonthlyStats {
	stats := MonthlyStats{
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
		ByCategory:    make(map[string]decimal.Decimal),
	}
	for i := range transactions {
		t := &transactions[i]
		stats.TransactionCount++
		if t.Type == models.TypeExpense {
			stats.TotalExpenses = stats.TotalExpenses.Add(t.Amount)
			stats.ByCategory[t.Category] = stats.ByCategory[t.Category].Add(t.Amount)
		} else {
			stats.TotalIncome = stats.TotalIncome.Add(t.Amount)
		}
	}
	return stats
}

type reportPayload struct {
	Month    string       `json:"month"`
	Stats    MonthlyStats `json:"stats"`
	Insights []string     `json:"insights"`
}

type Generator struct {
	pool   *pgxpool.Pool
	sender mailer.Sender
	ai     *gemini.Client
}

func New(pool *pgxpool.Pool, sender mailer.Sender, ai *gemini.Client) *Generator {
	return &Generator{pool: pool, sender: sender, ai: ai}
}

// GenerateMonthly строит отчёты за предыдущий календарный месяц по всем
// пользователям. Каждый пользователь обрабатывается независимо.
func (g *Generator) GenerateMonthly(now time.Time) error {
	users, err := database.ListUsers(g.pool)
	if err != nil {
		return err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0)
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Second)

	for _, user := range users {
		if err := g.generateFor(&user, monthStart, monthEnd); err != nil {
			log.Printf("Ошибка отчёта для пользователя %d: %v", user.ID, err)
		}
	}
	return nil
}

func (g *Generator) generateFor(user *models.User, monthStart, monthEnd time.Time) error {
	transactions, err := database.ListUserTransactionsBetween(g.pool, user.ID, monthStart, monthEnd)
	if err != nil {
		return err
	}

	stats := Aggregate(transactions)
	monthName := monthStart.Month().String()

	payload := reportPayload{
		Month:    monthName,
		Stats:    stats,
		Insights: g.insights(stats, monthName),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: ошибка сериализации отчёта: %v", models.ErrStorage, err)
	}

	report := &models.Report{UserID: user.ID, ReportData: data}
	if err := database.CreateReport(g.pool, report); err != nil {
		return err
	}

	subject := fmt.Sprintf("Финансовый отчёт за %s", monthName)
	if err := g.sender.Send(user.Email, subject, renderReport(user.Name, payload)); err != nil {
		// отчёт уже сохранён, письмо можно переотправить вручную
		return err
	}
	return nil
}

// insights спрашивает модель, а при любом сбое подставляет статичные советы.
func (g *Generator) insights(stats MonthlyStats, monthName string) []string {
	statsJSON, err := json.Marshal(stats)
	if err != nil {
		return defaultInsights()
	}
	insights, err := g.ai.MonthlyInsights(context.Background(), statsJSON, monthName)
	if err != nil || len(insights) == 0 {
		return defaultInsights()
	}
	return insights
}

func defaultInsights() []string {
	return []string{
		"Следите за расходами в этом месяце внимательнее.",
		"Попробуйте сократить самую крупную категорию расходов.",
		"Поставьте цель накоплений на следующий месяц.",
	}
}

func renderReport(userName string, payload reportPayload) string {
	body := fmt.Sprintf(
		"<p>Здравствуйте, %s!</p><p>Итоги за %s: доходы %s, расходы %s.</p><ul>",
		userName, payload.Month, payload.Stats.TotalIncome, payload.Stats.TotalExpenses)
	for _, insight := range payload.Insights {
		body += "<li>" + insight + "</li>"
	}
	return body + "</ul>"
}
