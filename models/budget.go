package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget — месячный лимит расходов, не больше одного на пользователя.
type Budget struct {
	ID            int             `json:"id" db:"id"`
	UserID        int             `json:"user_id" db:"user_id"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	LastAlertSent *time.Time      `json:"last_alert_sent" db:"last_alert_sent"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}
