package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptData — распознанные поля чека из сервиса извлечения.
type ReceiptData struct {
	Amount       decimal.Decimal `json:"amount"`
	Date         time.Time       `json:"date"`
	Description  string          `json:"description"`
	MerchantName string          `json:"merchant_name"`
	Category     string          `json:"category"`
}
