// Package alerts проверяет месячные бюджеты и рассылает предупреждения
// при расходе от 80% лимита, не чаще раза в календарный месяц.
package alerts

import (
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/finova/internal/database"
	"github.com/valeriaulyamaeva/finova/internal/mailer"
	"github.com/valeriaulyamaeva/finova/models"
)

var alertThreshold = decimal.NewFromInt(80)

type Evaluator struct {
	pool   *pgxpool.Pool
	sender mailer.Sender
}

func New(pool *pgxpool.Pool, sender mailer.Sender) *Evaluator {
	return &Evaluator{pool: pool, sender: sender}
}

// IsNewMonth — истина, если последний алерт был в строго более раннем
// календарном месяце либо не отправлялся вовсе.
func IsNewMonth(last *time.Time, now time.Time) bool {
	if last == nil {
		return true
	}
	return last.Month() != now.Month() || last.Year() != now.Year()
}

// PercentageUsed — процент израсходованного лимита. Нулевой или
// отрицательный лимит даёт ноль, чтобы не делить на ноль.
func PercentageUsed(expenses, budgetAmount decimal.Decimal) decimal.Decimal {
	if !budgetAmount.IsPositive() {
		return decimal.Zero
	}
	return expenses.Div(budgetAmount).Mul(decimal.NewFromInt(100))
}

// ShouldAlert объединяет порог и месячный троттлинг.
func ShouldAlert(percentageUsed decimal.Decimal, lastAlertSent *time.Time, now time.Time) bool {
	return percentageUsed.GreaterThanOrEqual(alertThreshold) && IsNewMonth(lastAlertSent, now)
}

// CheckBudgets — один проход планировщика по всем бюджетам. Каждый бюджет
// обрабатывается независимо, ошибка одного не мешает остальным.
// Пользователи без счёта по умолчанию пропускаются ещё в выборке.
func (e *Evaluator) CheckBudgets(now time.Time) error {
	rows, err := database.ListBudgetsWithDefaultAccount(e.pool)
	if err != nil {
		return err
	}

	for _, row := range rows {
		if err := e.checkOne(row, now); err != nil {
			log.Printf("Ошибка проверки бюджета %d: %v", row.Budget.ID, err)
		}
	}
	return nil
}

func (e *Evaluator) checkOne(row database.BudgetAlertRow, now time.Time) error {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	expenses, err := database.MonthExpenseTotal(e.pool, row.Budget.UserID, row.AccountID, monthStart, now)
	if err != nil {
		return err
	}

	percentage := PercentageUsed(expenses, row.Budget.Amount)
	if !ShouldAlert(percentage, row.Budget.LastAlertSent, now) {
		return nil
	}

	subject := fmt.Sprintf("Предупреждение о бюджете: %s", row.AccountName)
	body := fmt.Sprintf(
		"<p>Здравствуйте, %s!</p><p>По счёту «%s» израсходовано %s%% месячного лимита: %s из %s.</p>",
		row.UserName, row.AccountName, percentage.Round(1), expenses, row.Budget.Amount)

	if err := e.sender.Send(row.UserEmail, subject, body); err != nil {
		// без отметки last_alert_sent: в следующий проход попробуем снова
		return err
	}

	if err := database.MarkAlertSent(e.pool, row.Budget.ID, now); err != nil {
		return err
	}

	notification := &models.Notification{
		UserID: row.Budget.UserID,
		Message: fmt.Sprintf("Израсходовано %s%% бюджета по счёту «%s»",
			percentage.Round(1), row.AccountName),
	}
	return database.CreateNotification(e.pool, notification)
}
