// Package recurring обрабатывает повторяющиеся транзакции: находит
// просроченные, материализует очередное срабатывание через движок баланса
// и сдвигает расписание.
package recurring

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/finova/internal/database"
	"github.com/valeriaulyamaeva/finova/internal/ledger"
	"github.com/valeriaulyamaeva/finova/models"
)

type Engine struct {
	pool   *pgxpool.Pool
	ledger *ledger.Engine
}

func New(pool *pgxpool.Pool, ledgerEngine *ledger.Engine) *Engine {
	return &Engine{pool: pool, ledger: ledgerEngine}
}

// ScanDue выбирает просроченные повторяющиеся транзакции по всем
// пользователям. Каждый элемент обрабатывается независимо.
func (e *Engine) ScanDue(now time.Time) ([]database.DueRecurring, error) {
	return database.ScanDueRecurring(e.pool, now)
}

// MaterializedInput строит разовую копию повторяющейся транзакции,
// датированную моментом срабатывания.
func MaterializedInput(t *models.Transaction, now time.Time) ledger.CreateTransactionInput {
	return ledger.CreateTransactionInput{
		AccountID:   t.AccountID,
		Type:        t.Type,
		Amount:      t.Amount,
		Description: t.Description + " (Recurring)",
		Date:        now,
		Category:    t.Category,
		IsRecurring: false,
	}
}

// ProcessOne обрабатывает одно срабатывание. Транзакция перечитывается
// заново: список из ScanDue мог устареть из-за параллельного редактирования
// или удаления, тогда операция тихо пропускается. Планировщик доставляет
// элементы минимум один раз, повторная доставка гасится повторной проверкой
// IsDue. Узкое окно двойного срабатывания между проверкой и записью
// last_processed остаётся — распределённого замка здесь нет.
func (e *Engine) ProcessOne(transactionID, userID int, now time.Time) error {
	t, err := database.GetUserTransaction(e.pool, transactionID, userID)
	if errors.Is(err, models.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !t.IsDue(now) {
		return nil
	}

	if _, err := e.ledger.ApplyCreate(userID, MaterializedInput(t, now)); err != nil {
		return err
	}

	interval := ""
	if t.RecurringInterval != nil {
		interval = *t.RecurringInterval
	}
	next := models.NextRecurringDate(now, interval)
	return database.MarkRecurringProcessed(e.pool, t.ID, now, next)
}

// ProcessDue — проход планировщика: скан и параллельная обработка каждого
// элемента. Ошибка одного элемента логируется и не мешает остальным.
func (e *Engine) ProcessDue(now time.Time) (int, error) {
	due, err := e.ScanDue(now)
	if err != nil {
		return 0, err
	}

	var wg sync.WaitGroup
	for _, item := range due {
		wg.Add(1)
		go func(item database.DueRecurring) {
			defer wg.Done()
			if err := e.ProcessOne(item.TransactionID, item.UserID, now); err != nil {
				log.Printf("Ошибка обработки повторяющейся транзакции %d: %v", item.TransactionID, err)
			}
		}(item)
	}
	wg.Wait()

	return len(due), nil
}
