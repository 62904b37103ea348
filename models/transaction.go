package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TypeIncome  = "INCOME"
	TypeExpense = "EXPENSE"
)

const StatusCompleted = "COMPLETED"

const (
	IntervalDaily   = "DAILY"
	IntervalWeekly  = "WEEKLY"
	IntervalMonthly = "MONTHLY"
	IntervalYearly  = "YEARLY"
)

type Transaction struct {
	ID                int             `json:"id" db:"id"`
	UserID            int             `json:"user_id" db:"user_id"`
	AccountID         int             `json:"account_id" db:"account_id"`
	Type              string          `json:"type" db:"type"`
	Amount            decimal.Decimal `json:"amount" db:"amount"`
	Description       string          `json:"description" db:"description"`
	Date              time.Time       `json:"date" db:"date"`
	Category          string          `json:"category" db:"category"`
	Status            string          `json:"status" db:"status"`
	IsRecurring       bool            `json:"is_recurring" db:"is_recurring"`
	RecurringInterval *string         `json:"recurring_interval" db:"recurring_interval"`
	NextRecurringDate *time.Time      `json:"next_recurring_date" db:"next_recurring_date"`
	LastProcessed     *time.Time      `json:"last_processed" db:"last_processed"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`
}

// SignedAmount возвращает сумму со знаком: доход прибавляет, расход вычитает.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// IsDue сообщает, пора ли обрабатывать повторяющуюся транзакцию.
// Транзакция, которая ещё ни разу не срабатывала (LastProcessed == nil),
// считается просроченной всегда.
func (t *Transaction) IsDue(now time.Time) bool {
	if !t.IsRecurring {
		return false
	}
	if t.LastProcessed == nil {
		return true
	}
	if t.NextRecurringDate == nil {
		return false
	}
	return !t.NextRecurringDate.After(now)
}

// NextRecurringDate вычисляет дату следующего срабатывания.
// Перенос по месяцам и годам идёт по правилам time.AddDate.
// Неизвестный интервал возвращает дату без изменений.
func NextRecurringDate(from time.Time, interval string) time.Time {
	switch interval {
	case IntervalDaily:
		return from.AddDate(0, 0, 1)
	case IntervalWeekly:
		return from.AddDate(0, 0, 7)
	case IntervalMonthly:
		return from.AddDate(0, 1, 0)
	case IntervalYearly:
		return from.AddDate(1, 0, 0)
	}
	return from
}

func ValidInterval(interval string) bool {
	switch interval {
	case IntervalDaily, IntervalWeekly, IntervalMonthly, IntervalYearly:
		return true
	}
	return false
}

func ValidTransactionType(t string) bool {
	return t == TypeIncome || t == TypeExpense
}
