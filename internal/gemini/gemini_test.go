package gemini

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"```json\n{\"amount\": 1}\n```", `{"amount": 1}`},
		{"```\n[1, 2]\n```", "[1, 2]"},
		{`{"amount": 1}`, `{"amount": 1}`},
	}
	for _, tt := range tests {
		if got := StripCodeFences(tt.in); got != tt.want {
			t.Errorf("StripCodeFences(%q) = %q, хотели %q", tt.in, got, tt.want)
		}
	}
}

func TestParseReceiptJSON(t *testing.T) {
	t.Run("корректный чек", func(t *testing.T) {
		text := "```json\n" +
			`{"amount": 42.50, "date": "2024-02-15T00:00:00Z", "description": "Groceries", "merchantName": "Магнит", "category": "groceries"}` +
			"\n```"
		receipt, err := ParseReceiptJSON(text)
		if err != nil {
			t.Fatalf("ошибка разбора корректного чека: %v", err)
		}
		if !receipt.Amount.Equal(decimal.NewFromFloat(42.50)) {
			t.Errorf("сумма = %s, хотели 42.5", receipt.Amount)
		}
		if receipt.MerchantName != "Магнит" {
			t.Errorf("продавец = %q", receipt.MerchantName)
		}
	})

	t.Run("дата без времени", func(t *testing.T) {
		receipt, err := ParseReceiptJSON(`{"amount": 10, "date": "2024-02-15"}`)
		if err != nil {
			t.Fatalf("дата в формате YYYY-MM-DD должна приниматься: %v", err)
		}
		if receipt.Date.Year() != 2024 {
			t.Errorf("год = %d", receipt.Date.Year())
		}
	})

	t.Run("категория по умолчанию", func(t *testing.T) {
		receipt, err := ParseReceiptJSON(`{"amount": 10, "date": "2024-02-15"}`)
		if err != nil {
			t.Fatal(err)
		}
		if receipt.Category != "other-expense" {
			t.Errorf("категория = %q, хотели other-expense", receipt.Category)
		}
	})

	t.Run("нет суммы — это не чек", func(t *testing.T) {
		_, err := ParseReceiptJSON(`{"date": "2024-02-15", "description": "что-то"}`)
		if !errors.Is(err, ErrNotAReceipt) {
			t.Errorf("ожидали ErrNotAReceipt, получили %v", err)
		}
	})

	t.Run("нет даты — это не чек", func(t *testing.T) {
		_, err := ParseReceiptJSON(`{"amount": 10}`)
		if !errors.Is(err, ErrNotAReceipt) {
			t.Errorf("ожидали ErrNotAReceipt, получили %v", err)
		}
	})

	t.Run("нечитаемая дата — это не чек", func(t *testing.T) {
		_, err := ParseReceiptJSON(`{"amount": 10, "date": "вчера"}`)
		if !errors.Is(err, ErrNotAReceipt) {
			t.Errorf("ожидали ErrNotAReceipt, получили %v", err)
		}
	})

	t.Run("мусор вместо JSON", func(t *testing.T) {
		_, err := ParseReceiptJSON("это не JSON")
		if !errors.Is(err, ErrMalformedResponse) {
			t.Errorf("ожидали ErrMalformedResponse, получили %v", err)
		}
	})
}
