// Package ledger держит баланс счёта равным сумме его транзакций со знаком.
// Баланс меняется только инкрементальными дельтами внутри одной транзакции
// БД, полный пересчёт выполняет лишь Reseed.
package ledger

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/finova/internal/database"
	"github.com/valeriaulyamaeva/finova/models"
)

type Engine struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Engine {
	return &Engine{pool: pool}
}

// UpdateDelta — чистая дельта баланса при изменении типа или суммы.
func UpdateDelta(old, updated *models.Transaction) decimal.Decimal {
	return updated.SignedAmount().Sub(old.SignedAmount())
}

// DeleteDeltas группирует удаляемые транзакции по счетам: на каждый
// затронутый счёт ровно одна корректировка баланса, сколько бы строк
// с него ни удалялось.
func DeleteDeltas(transactions []models.Transaction) map[int]decimal.Decimal {
	deltas := make(map[int]decimal.Decimal, len(transactions))
	for i := range transactions {
		t := &transactions[i]
		deltas[t.AccountID] = deltas[t.AccountID].Sub(t.SignedAmount())
	}
	return deltas
}

// ReseedBalance — полная сумма со знаком для пересева.
func ReseedBalance(transactions []models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for i := range transactions {
		total = total.Add(transactions[i].SignedAmount())
	}
	return total
}

// ApplyCreate вставляет транзакцию и корректирует баланс счёта одной
// транзакцией БД: либо происходит и то и другое, либо ничего.
func (e *Engine) ApplyCreate(userID int, in CreateTransactionInput) (*models.Transaction, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	if _, err := database.GetUserAccount(e.pool, in.AccountID, userID); err != nil {
		return nil, err
	}

	transaction := in.toModel(userID)

	ctx := context.Background()
	tx, err := e.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: ошибка открытия транзакции БД: %v", models.ErrStorage, err)
	}
	defer tx.Rollback(ctx)

	if err := database.CreateTransaction(tx, transaction); err != nil {
		return nil, err
	}
	if err := database.IncrementAccountBalance(tx, transaction.AccountID, transaction.SignedAmount()); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: ошибка фиксации транзакции БД: %v", models.ErrStorage, err)
	}
	return transaction, nil
}

// ApplyUpdate применяет дельту signed(new) - signed(old) и сохраняет новые
// поля. Нулевая дельта не отменяет обновление строки: могли поменяться
// описание или категория. Перенос транзакции на другой счёт не
// поддерживается, счёт остаётся прежним.
func (e *Engine) ApplyUpdate(userID, transactionID int, in UpdateTransactionInput) (*models.Transaction, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	old, err := database.GetUserTransaction(e.pool, transactionID, userID)
	if err != nil {
		return nil, err
	}

	updated := in.applyTo(old)
	delta := UpdateDelta(old, updated)

	ctx := context.Background()
	tx, err := e.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: ошибка открытия транзакции БД: %v", models.ErrStorage, err)
	}
	defer tx.Rollback(ctx)

	if err := database.UpdateTransaction(tx, updated); err != nil {
		return nil, err
	}
	if !delta.IsZero() {
		if err := database.IncrementAccountBalance(tx, updated.AccountID, delta); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: ошибка фиксации транзакции БД: %v", models.ErrStorage, err)
	}
	return updated, nil
}

// ApplyDelete удаляет пачку транзакций пользователя. Чужие и несуществующие
// идентификаторы молча отбрасываются выборкой по владельцу. Пустой список —
// no-op с успехом.
func (e *Engine) ApplyDelete(userID int, transactionIDs []int) error {
	if len(transactionIDs) == 0 {
		return nil
	}

	transactions, err := database.GetUserTransactionsByIDs(e.pool, transactionIDs, userID)
	if err != nil {
		return err
	}
	if len(transactions) == 0 {
		return nil
	}

	deltas := DeleteDeltas(transactions)

	ctx := context.Background()
	tx, err := e.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: ошибка открытия транзакции БД: %v", models.ErrStorage, err)
	}
	defer tx.Rollback(ctx)

	ids := make([]int, 0, len(transactions))
	for i := range transactions {
		ids = append(ids, transactions[i].ID)
	}
	if err := database.DeleteTransactions(tx, ids, userID); err != nil {
		return err
	}
	for accountID, delta := range deltas {
		if err := database.IncrementAccountBalance(tx, accountID, delta); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: ошибка фиксации транзакции БД: %v", models.ErrStorage, err)
	}
	return nil
}

// Reseed — административная замена всей истории счёта. Баланс ставится
// равным полной сумме нового набора, дельты здесь не используются.
func (e *Engine) Reseed(accountID int, transactions []models.Transaction) error {
	ctx := context.Background()
	tx, err := e.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: ошибка открытия транзакции БД: %v", models.ErrStorage, err)
	}
	defer tx.Rollback(ctx)

	if err := database.DeleteAccountTransactions(tx, accountID); err != nil {
		return err
	}
	if len(transactions) > 0 {
		if err := database.InsertTransactionsBatch(tx, transactions); err != nil {
			return err
		}
	}
	if err := database.SetAccountBalance(tx, accountID, ReseedBalance(transactions)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: ошибка фиксации транзакции БД: %v", models.ErrStorage, err)
	}
	return nil
}
