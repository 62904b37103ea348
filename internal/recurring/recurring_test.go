package recurring

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/finova/models"
)

func TestMaterializedInput(t *testing.T) {
	interval := models.IntervalMonthly
	original := &models.Transaction{
		ID:                42,
		UserID:            7,
		AccountID:         3,
		Type:              models.TypeExpense,
		Amount:            decimal.NewFromInt(250),
		Description:       "Аренда квартиры",
		Date:              time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		Category:          "housing",
		Status:            models.StatusCompleted,
		IsRecurring:       true,
		RecurringInterval: &interval,
	}
	now := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)

	in := MaterializedInput(original, now)

	if in.IsRecurring {
		t.Error("материализованная копия не должна быть повторяющейся")
	}
	if in.RecurringInterval != "" {
		t.Error("у материализованной копии не должно быть интервала")
	}
	if !in.Date.Equal(now) {
		t.Errorf("копия датируется моментом срабатывания: %v, хотели %v", in.Date, now)
	}
	if in.Description != "Аренда квартиры (Recurring)" {
		t.Errorf("описание = %q, нет пометки о повторении", in.Description)
	}
	if in.AccountID != original.AccountID || in.Type != original.Type ||
		in.Category != original.Category || !in.Amount.Equal(original.Amount) {
		t.Error("копия должна повторять счёт, тип, сумму и категорию оригинала")
	}
	if err := in.Validate(); err != nil {
		t.Errorf("материализованный ввод должен проходить валидацию: %v", err)
	}
}

// Сценарий из месячного расписания: оригинал от 31 января срабатывает
// 15 февраля, следующее срабатывание отсчитывается от момента обработки,
// а не от исходной даты.
func TestAdvanceFromProcessingMoment(t *testing.T) {
	now := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)

	next := models.NextRecurringDate(now, models.IntervalMonthly)
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("next_recurring_date = %v, хотели %v", next, want)
	}
}
