package models_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/finova/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSignedAmount(t *testing.T) {
	income := &models.Transaction{Type: models.TypeIncome, Amount: decimal.NewFromInt(100)}
	if !income.SignedAmount().Equal(decimal.NewFromInt(100)) {
		t.Errorf("доход должен прибавляться: получили %s", income.SignedAmount())
	}

	expense := &models.Transaction{Type: models.TypeExpense, Amount: decimal.NewFromInt(100)}
	if !expense.SignedAmount().Equal(decimal.NewFromInt(-100)) {
		t.Errorf("расход должен вычитаться: получили %s", expense.SignedAmount())
	}
}

func TestNextRecurringDate(t *testing.T) {
	tests := []struct {
		name     string
		from     time.Time
		interval string
		want     time.Time
	}{
		{"день", date(2024, 2, 15), models.IntervalDaily, date(2024, 2, 16)},
		{"неделя", date(2024, 2, 15), models.IntervalWeekly, date(2024, 2, 22)},
		{"месяц", date(2024, 2, 15), models.IntervalMonthly, date(2024, 3, 15)},
		{"год", date(2024, 2, 15), models.IntervalYearly, date(2025, 2, 15)},
		// календарный перенос time.AddDate: 31 января + месяц = 2 марта
		{"конец месяца", date(2024, 1, 31), models.IntervalMonthly, date(2024, 3, 2)},
		{"неизвестный интервал", date(2024, 2, 15), "QUARTERLY", date(2024, 2, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := models.NextRecurringDate(tt.from, tt.interval)
			if !got.Equal(tt.want) {
				t.Errorf("NextRecurringDate(%v, %s) = %v, хотели %v", tt.from, tt.interval, got, tt.want)
			}
		})
	}
}

func TestIsDue(t *testing.T) {
	now := date(2024, 2, 15)
	interval := models.IntervalWeekly

	t.Run("не повторяющаяся никогда не просрочена", func(t *testing.T) {
		tr := &models.Transaction{IsRecurring: false}
		if tr.IsDue(now) {
			t.Error("обычная транзакция не должна считаться просроченной")
		}
	})

	t.Run("ни разу не срабатывала — просрочена всегда", func(t *testing.T) {
		future := now.AddDate(0, 1, 0)
		tr := &models.Transaction{
			IsRecurring:       true,
			RecurringInterval: &interval,
			NextRecurringDate: &future,
		}
		if !tr.IsDue(now) {
			t.Error("транзакция без last_processed должна быть просрочена")
		}
	})

	t.Run("до срока не просрочена, после — просрочена", func(t *testing.T) {
		processed := date(2024, 2, 10)
		next := processed.AddDate(0, 0, 7)
		tr := &models.Transaction{
			IsRecurring:       true,
			RecurringInterval: &interval,
			LastProcessed:     &processed,
			NextRecurringDate: &next,
		}

		if tr.IsDue(date(2024, 2, 16)) {
			t.Error("до next_recurring_date транзакция не должна быть просрочена")
		}
		if !tr.IsDue(date(2024, 2, 17)) {
			t.Error("в момент next_recurring_date транзакция должна быть просрочена")
		}
		if !tr.IsDue(date(2024, 2, 20)) {
			t.Error("после next_recurring_date транзакция должна быть просрочена")
		}
	})
}

func TestValidInterval(t *testing.T) {
	for _, interval := range []string{
		models.IntervalDaily, models.IntervalWeekly, models.IntervalMonthly, models.IntervalYearly,
	} {
		if !models.ValidInterval(interval) {
			t.Errorf("интервал %s должен быть допустимым", interval)
		}
	}
	if models.ValidInterval("HOURLY") {
		t.Error("интервал HOURLY не должен быть допустимым")
	}
	if models.ValidInterval("") {
		t.Error("пустой интервал не должен быть допустимым")
	}
}
