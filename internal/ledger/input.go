package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/finova/models"
)

// CreateTransactionInput — явная схема создания транзакции. Поля проверяются
// до любых обращений к хранилищу.
type CreateTransactionInput struct {
	AccountID         int             `json:"account_id"`
	Type              string          `json:"type"`
	Amount            decimal.Decimal `json:"amount"`
	Description       string          `json:"description"`
	Date              time.Time       `json:"date"`
	Category          string          `json:"category"`
	IsRecurring       bool            `json:"is_recurring"`
	RecurringInterval string          `json:"recurring_interval"`
}

func (in *CreateTransactionInput) Validate() error {
	if in.AccountID == 0 {
		return fmt.Errorf("%w: не указан счёт", models.ErrValidation)
	}
	if !models.ValidTransactionType(in.Type) {
		return fmt.Errorf("%w: неизвестный тип транзакции %q", models.ErrValidation, in.Type)
	}
	if !in.Amount.IsPositive() {
		return fmt.Errorf("%w: сумма должна быть положительной", models.ErrValidation)
	}
	if in.Date.IsZero() {
		return fmt.Errorf("%w: не указана дата", models.ErrValidation)
	}
	if in.IsRecurring && !models.ValidInterval(in.RecurringInterval) {
		return fmt.Errorf("%w: неизвестный интервал повторения %q", models.ErrValidation, in.RecurringInterval)
	}
	if !in.IsRecurring && in.RecurringInterval != "" {
		return fmt.Errorf("%w: интервал задан для неповторяющейся транзакции", models.ErrValidation)
	}
	return nil
}

func (in *CreateTransactionInput) toModel(userID int) *models.Transaction {
	t := &models.Transaction{
		UserID:      userID,
		AccountID:   in.AccountID,
		Type:        in.Type,
		Amount:      in.Amount,
		Description: in.Description,
		Date:        in.Date,
		Category:    in.Category,
		Status:      models.StatusCompleted,
		IsRecurring: in.IsRecurring,
	}
	if in.IsRecurring {
		interval := in.RecurringInterval
		next := models.NextRecurringDate(in.Date, interval)
		t.RecurringInterval = &interval
		t.NextRecurringDate = &next
	}
	return t
}

// UpdateTransactionInput — изменяемые при редактировании поля. Счёт в схему
// не входит: перенос между счетами не поддерживается.
type UpdateTransactionInput struct {
	Type              string          `json:"type"`
	Amount            decimal.Decimal `json:"amount"`
	Description       string          `json:"description"`
	Date              time.Time       `json:"date"`
	Category          string          `json:"category"`
	IsRecurring       bool            `json:"is_recurring"`
	RecurringInterval string          `json:"recurring_interval"`
}

func (in *UpdateTransactionInput) Validate() error {
	if !models.ValidTransactionType(in.Type) {
		return fmt.Errorf("%w: неизвестный тип транзакции %q", models.ErrValidation, in.Type)
	}
	if !in.Amount.IsPositive() {
		return fmt.Errorf("%w: сумма должна быть положительной", models.ErrValidation)
	}
	if in.Date.IsZero() {
		return fmt.Errorf("%w: не указана дата", models.ErrValidation)
	}
	if in.IsRecurring && !models.ValidInterval(in.RecurringInterval) {
		return fmt.Errorf("%w: неизвестный интервал повторения %q", models.ErrValidation, in.RecurringInterval)
	}
	if !in.IsRecurring && in.RecurringInterval != "" {
		return fmt.Errorf("%w: интервал задан для неповторяющейся транзакции", models.ErrValidation)
	}
	return nil
}

func (in *UpdateTransactionInput) applyTo(old *models.Transaction) *models.Transaction {
	updated := *old
	updated.Type = in.Type
	updated.Amount = in.Amount
	updated.Description = in.Description
	updated.Date = in.Date
	updated.Category = in.Category
	updated.IsRecurring = in.IsRecurring
	updated.RecurringInterval = nil
	updated.NextRecurringDate = nil
	if in.IsRecurring {
		interval := in.RecurringInterval
		next := models.NextRecurringDate(in.Date, interval)
		updated.RecurringInterval = &interval
		updated.NextRecurringDate = &next
	}
	return &updated
}
