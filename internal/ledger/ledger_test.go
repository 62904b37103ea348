package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/finova/models"
)

func TestUpdateDelta(t *testing.T) {
	// расход 100 меняется на доход 40: дельта 40 - (-100) = 140
	old := &models.Transaction{Type: models.TypeExpense, Amount: decimal.NewFromInt(100)}
	updated := &models.Transaction{Type: models.TypeIncome, Amount: decimal.NewFromInt(40)}

	delta := UpdateDelta(old, updated)
	if !delta.Equal(decimal.NewFromInt(140)) {
		t.Errorf("дельта обновления = %s, хотели 140", delta)
	}
}

func TestUpdateDeltaZero(t *testing.T) {
	old := &models.Transaction{Type: models.TypeExpense, Amount: decimal.NewFromInt(50)}
	updated := &models.Transaction{Type: models.TypeExpense, Amount: decimal.NewFromInt(50)}

	if !UpdateDelta(old, updated).IsZero() {
		t.Error("одинаковые тип и сумма должны давать нулевую дельту")
	}
}

func TestDeleteDeltasGrouping(t *testing.T) {
	// t1, t2 на счёте 1 и t3 на счёте 2: ровно две корректировки
	transactions := []models.Transaction{
		{AccountID: 1, Type: models.TypeExpense, Amount: decimal.NewFromInt(100)},
		{AccountID: 1, Type: models.TypeIncome, Amount: decimal.NewFromInt(30)},
		{AccountID: 2, Type: models.TypeIncome, Amount: decimal.NewFromInt(50)},
	}

	deltas := DeleteDeltas(transactions)
	if len(deltas) != 2 {
		t.Fatalf("корректировок должно быть 2, получили %d", len(deltas))
	}
	// -(signed(t1) + signed(t2)) = -(-100 + 30) = 70
	if !deltas[1].Equal(decimal.NewFromInt(70)) {
		t.Errorf("дельта счёта 1 = %s, хотели 70", deltas[1])
	}
	// -signed(t3) = -50
	if !deltas[2].Equal(decimal.NewFromInt(-50)) {
		t.Errorf("дельта счёта 2 = %s, хотели -50", deltas[2])
	}
}

func TestReseedBalance(t *testing.T) {
	transactions := []models.Transaction{
		{Type: models.TypeIncome, Amount: decimal.NewFromInt(500)},
		{Type: models.TypeExpense, Amount: decimal.NewFromInt(120)},
		{Type: models.TypeExpense, Amount: decimal.NewFromInt(80)},
	}

	total := ReseedBalance(transactions)
	if !total.Equal(decimal.NewFromInt(300)) {
		t.Errorf("полная сумма = %s, хотели 300", total)
	}

	if !ReseedBalance(nil).IsZero() {
		t.Error("пустой набор должен давать нулевой баланс")
	}
}

func TestApplyDeleteEmptyIsNoop(t *testing.T) {
	// пустой список не трогает хранилище вовсе, поэтому nil-пул безопасен
	engine := New(nil)
	if err := engine.ApplyDelete(1, nil); err != nil {
		t.Errorf("пустое удаление должно завершаться успехом: %v", err)
	}
	if err := engine.ApplyDelete(1, []int{}); err != nil {
		t.Errorf("пустое удаление должно завершаться успехом: %v", err)
	}
}

func validCreateInput() CreateTransactionInput {
	return CreateTransactionInput{
		AccountID: 1,
		Type:      models.TypeExpense,
		Amount:    decimal.NewFromInt(100),
		Date:      time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC),
		Category:  "groceries",
	}
}

func TestCreateInputValidation(t *testing.T) {
	t.Run("корректный ввод", func(t *testing.T) {
		in := validCreateInput()
		if err := in.Validate(); err != nil {
			t.Errorf("корректный ввод не должен отклоняться: %v", err)
		}
	})

	t.Run("нулевая сумма", func(t *testing.T) {
		in := validCreateInput()
		in.Amount = decimal.Zero
		assertValidationError(t, in.Validate())
	})

	t.Run("отрицательная сумма", func(t *testing.T) {
		in := validCreateInput()
		in.Amount = decimal.NewFromInt(-5)
		assertValidationError(t, in.Validate())
	})

	t.Run("неизвестный тип", func(t *testing.T) {
		in := validCreateInput()
		in.Type = "TRANSFER"
		assertValidationError(t, in.Validate())
	})

	t.Run("без счёта", func(t *testing.T) {
		in := validCreateInput()
		in.AccountID = 0
		assertValidationError(t, in.Validate())
	})

	t.Run("повторяющаяся без интервала", func(t *testing.T) {
		in := validCreateInput()
		in.IsRecurring = true
		assertValidationError(t, in.Validate())
	})

	t.Run("интервал без повторения", func(t *testing.T) {
		in := validCreateInput()
		in.RecurringInterval = models.IntervalDaily
		assertValidationError(t, in.Validate())
	})
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("ожидали ошибку валидации, получили nil")
	}
	if !errors.Is(err, models.ErrValidation) {
		t.Errorf("ожидали ErrValidation, получили %v", err)
	}
}

func TestCreateInputRecurringModel(t *testing.T) {
	in := validCreateInput()
	in.IsRecurring = true
	in.RecurringInterval = models.IntervalMonthly

	transaction := in.toModel(7)
	if transaction.UserID != 7 {
		t.Errorf("user_id = %d, хотели 7", transaction.UserID)
	}
	if transaction.Status != models.StatusCompleted {
		t.Errorf("статус = %s, хотели COMPLETED", transaction.Status)
	}
	if transaction.RecurringInterval == nil || *transaction.RecurringInterval != models.IntervalMonthly {
		t.Fatal("интервал повторения не проставлен")
	}
	if transaction.NextRecurringDate == nil {
		t.Fatal("next_recurring_date не проставлен")
	}
	want := models.NextRecurringDate(in.Date, models.IntervalMonthly)
	if !transaction.NextRecurringDate.Equal(want) {
		t.Errorf("next_recurring_date = %v, хотели %v", transaction.NextRecurringDate, want)
	}
}

func TestUpdateInputClearsRecurrence(t *testing.T) {
	interval := models.IntervalWeekly
	next := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	old := &models.Transaction{
		ID:                3,
		UserID:            7,
		AccountID:         1,
		Type:              models.TypeExpense,
		Amount:            decimal.NewFromInt(100),
		IsRecurring:       true,
		RecurringInterval: &interval,
		NextRecurringDate: &next,
	}

	in := UpdateTransactionInput{
		Type:   models.TypeExpense,
		Amount: decimal.NewFromInt(100),
		Date:   time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC),
	}
	updated := in.applyTo(old)

	if updated.IsRecurring {
		t.Error("повторение должно быть снято")
	}
	if updated.RecurringInterval != nil || updated.NextRecurringDate != nil {
		t.Error("поля расписания должны обнулиться вместе с повторением")
	}
	if updated.AccountID != old.AccountID {
		t.Error("счёт транзакции при обновлении меняться не должен")
	}
}
