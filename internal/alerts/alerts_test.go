package alerts

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func ts(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsNewMonth(t *testing.T) {
	t.Run("алерт ещё не отправлялся", func(t *testing.T) {
		if !IsNewMonth(nil, ts(2024, 1, 25)) {
			t.Error("без last_alert_sent алерт должен разрешаться")
		}
	})

	t.Run("тот же календарный месяц", func(t *testing.T) {
		last := ts(2024, 1, 20)
		if IsNewMonth(&last, ts(2024, 1, 25)) {
			t.Error("повторный алерт в том же месяце должен подавляться")
		}
	})

	t.Run("следующий месяц", func(t *testing.T) {
		last := ts(2024, 1, 20)
		if !IsNewMonth(&last, ts(2024, 2, 1)) {
			t.Error("в новом месяце алерт должен разрешаться")
		}
	})

	t.Run("тот же месяц через год", func(t *testing.T) {
		last := ts(2023, 1, 20)
		if !IsNewMonth(&last, ts(2024, 1, 20)) {
			t.Error("январь другого года — другой календарный месяц")
		}
	})
}

func TestPercentageUsed(t *testing.T) {
	pct := PercentageUsed(decimal.NewFromInt(850), decimal.NewFromInt(1000))
	if !pct.Equal(decimal.NewFromInt(85)) {
		t.Errorf("процент = %s, хотели 85", pct)
	}

	if !PercentageUsed(decimal.NewFromInt(500), decimal.Zero).IsZero() {
		t.Error("нулевой лимит не должен приводить к делению на ноль")
	}
}

func TestShouldAlert(t *testing.T) {
	last := ts(2024, 1, 20)

	t.Run("85% в том же месяце — не срабатывает", func(t *testing.T) {
		if ShouldAlert(decimal.NewFromInt(85), &last, ts(2024, 1, 25)) {
			t.Error("алерт уже отправлялся в этом месяце")
		}
	})

	t.Run("85% в новом месяце — срабатывает", func(t *testing.T) {
		if !ShouldAlert(decimal.NewFromInt(85), &last, ts(2024, 2, 1)) {
			t.Error("в новом месяце алерт должен сработать")
		}
	})

	t.Run("ровно 80% — срабатывает", func(t *testing.T) {
		if !ShouldAlert(decimal.NewFromInt(80), nil, ts(2024, 2, 1)) {
			t.Error("порог включительный")
		}
	})

	t.Run("ниже порога — не срабатывает", func(t *testing.T) {
		if ShouldAlert(decimal.NewFromFloat(79.9), nil, ts(2024, 2, 1)) {
			t.Error("ниже 80% алерта быть не должно")
		}
	})
}
