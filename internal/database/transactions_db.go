package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/finova/models"
)

const transactionColumns = `id, user_id, account_id, type, amount, description,
	transaction_date, category, status, is_recurring, recurring_interval,
	next_recurring_date, last_processed, created_at`

func scanTransaction(row pgx.Row, t *models.Transaction) error {
	return row.Scan(
		&t.ID,
		&t.UserID,
		&t.AccountID,
		&t.Type,
		&t.Amount,
		&t.Description,
		&t.Date,
		&t.Category,
		&t.Status,
		&t.IsRecurring,
		&t.RecurringInterval,
		&t.NextRecurringDate,
		&t.LastProcessed,
		&t.CreatedAt,
	)
}

func CreateTransaction(q Querier, transaction *models.Transaction) error {
	query := `
		INSERT INTO transactions (user_id, account_id, type, amount, description,
			transaction_date, category, status, is_recurring, recurring_interval,
			next_recurring_date, last_processed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at`

	err := q.QueryRow(context.Background(), query,
		transaction.UserID,
		transaction.AccountID,
		transaction.Type,
		transaction.Amount,
		transaction.Description,
		transaction.Date,
		transaction.Category,
		transaction.Status,
		transaction.IsRecurring,
		transaction.RecurringInterval,
		transaction.NextRecurringDate,
		transaction.LastProcessed).Scan(&transaction.ID, &transaction.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: ошибка при добавлении транзакции: %v", models.ErrStorage, err)
	}
	return nil
}

// GetUserTransaction возвращает транзакцию только если она принадлежит пользователю.
func GetUserTransaction(q Querier, transactionID, userID int) (*models.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE id = $1 AND user_id = $2`

	transaction := &models.Transaction{}
	err := scanTransaction(q.QueryRow(context.Background(), query, transactionID, userID), transaction)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: транзакция с ID %d не найдена", models.ErrNotFound, transactionID)
		}
		return nil, fmt.Errorf("%w: ошибка при получении транзакции: %v", models.ErrStorage, err)
	}

	return transaction, nil
}

func UpdateTransaction(q Querier, transaction *models.Transaction) error {
	query := `
		UPDATE transactions
		SET type = $1, amount = $2, description = $3, transaction_date = $4,
			category = $5, is_recurring = $6, recurring_interval = $7,
			next_recurring_date = $8
		WHERE id = $9 AND user_id = $10`

	result, err := q.Exec(context.Background(), query,
		transaction.Type,
		transaction.Amount,
		transaction.Description,
		transaction.Date,
		transaction.Category,
		transaction.IsRecurring,
		transaction.RecurringInterval,
		transaction.NextRecurringDate,
		transaction.ID,
		transaction.UserID)
	if err != nil {
		return fmt.Errorf("%w: ошибка обновления транзакции: %v", models.ErrStorage, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: транзакция с ID %d не найдена", models.ErrNotFound, transaction.ID)
	}
	return nil
}

func GetUserTransactionsByIDs(q Querier, transactionIDs []int, userID int) ([]models.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE id = ANY($1) AND user_id = $2`

	rows, err := q.Query(context.Background(), query, transactionIDs, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: ошибка при получении транзакций: %v", models.ErrStorage, err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := scanTransaction(rows, &t); err != nil {
			return nil, fmt.Errorf("%w: ошибка чтения транзакции: %v", models.ErrStorage, err)
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func DeleteTransactions(q Querier, transactionIDs []int, userID int) error {
	_, err := q.Exec(context.Background(),
		`DELETE FROM transactions WHERE id = ANY($1) AND user_id = $2`, transactionIDs, userID)
	if err != nil {
		return fmt.Errorf("%w: ошибка удаления транзакций: %v", models.ErrStorage, err)
	}
	return nil
}

// TransactionFilter — необязательные условия выборки списка транзакций.
type TransactionFilter struct {
	Type      string
	AccountID int
	Recurring *bool
}

func ListUserTransactions(q Querier, userID int, filter TransactionFilter) ([]models.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1`
	args := []any{userID}

	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filter.AccountID != 0 {
		args = append(args, filter.AccountID)
		query += fmt.Sprintf(" AND account_id = $%d", len(args))
	}
	if filter.Recurring != nil {
		args = append(args, *filter.Recurring)
		query += fmt.Sprintf(" AND is_recurring = $%d", len(args))
	}
	query += " ORDER BY transaction_date DESC"

	rows, err := q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ошибка при получении списка транзакций: %v", models.ErrStorage, err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := scanTransaction(rows, &t); err != nil {
			return nil, fmt.Errorf("%w: ошибка чтения транзакции: %v", models.ErrStorage, err)
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func ListAccountTransactions(q Querier, accountID, userID int) ([]models.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE account_id = $1 AND user_id = $2
		ORDER BY transaction_date DESC`

	rows, err := q.Query(context.Background(), query, accountID, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: ошибка при получении транзакций счёта: %v", models.ErrStorage, err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := scanTransaction(rows, &t); err != nil {
			return nil, fmt.Errorf("%w: ошибка чтения транзакции: %v", models.ErrStorage, err)
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func ListUserTransactionsBetween(q Querier, userID int, from, to time.Time) ([]models.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1 AND transaction_date >= $2 AND transaction_date <= $3`

	rows, err := q.Query(context.Background(), query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: ошибка при получении транзакций за период: %v", models.ErrStorage, err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := scanTransaction(rows, &t); err != nil {
			return nil, fmt.Errorf("%w: ошибка чтения транзакции: %v", models.ErrStorage, err)
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

// DueRecurring — единица работы для обработчика повторяющихся транзакций.
type DueRecurring struct {
	TransactionID int
	UserID        int
}

// ScanDueRecurring ищет просроченные повторяющиеся транзакции по всем
// пользователям. Единственная выборка без фильтра по user_id: её запускает
// планировщик, а не запрос пользователя.
func ScanDueRecurring(q Querier, now time.Time) ([]DueRecurring, error) {
	query := `
		SELECT id, user_id
		FROM transactions
		WHERE is_recurring = TRUE
		  AND status = $1
		  AND (last_processed IS NULL OR next_recurring_date <= $2)`

	rows, err := q.Query(context.Background(), query, models.StatusCompleted, now)
	if err != nil {
		return nil, fmt.Errorf("%w: ошибка поиска просроченных транзакций: %v", models.ErrStorage, err)
	}
	defer rows.Close()

	var due []DueRecurring
	for rows.Next() {
		var d DueRecurring
		if err := rows.Scan(&d.TransactionID, &d.UserID); err != nil {
			return nil, fmt.Errorf("%w: ошибка чтения просроченной транзакции: %v", models.ErrStorage, err)
		}
		due = append(due, d)
	}
	return due, rows.Err()
}

// MarkRecurringProcessed фиксирует срабатывание и сдвигает расписание.
func MarkRecurringProcessed(q Querier, transactionID int, processedAt, nextDate time.Time) error {
	result, err := q.Exec(context.Background(),
		`UPDATE transactions SET last_processed = $1, next_recurring_date = $2 WHERE id = $3`,
		processedAt, nextDate, transactionID)
	if err != nil {
		return fmt.Errorf("%w: ошибка обновления расписания транзакции: %v", models.ErrStorage, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: транзакция с ID %d не найдена", models.ErrNotFound, transactionID)
	}
	return nil
}

func DeleteAccountTransactions(q Querier, accountID int) error {
	_, err := q.Exec(context.Background(),
		`DELETE FROM transactions WHERE account_id = $1`, accountID)
	if err != nil {
		return fmt.Errorf("%w: ошибка очистки транзакций счёта: %v", models.ErrStorage, err)
	}
	return nil
}

// InsertTransactionsBatch вставляет набор транзакций одним батчем pgx.
func InsertTransactionsBatch(q Querier, transactions []models.Transaction) error {
	batch := &pgx.Batch{}
	for i := range transactions {
		t := &transactions[i]
		batch.Queue(`
			INSERT INTO transactions (user_id, account_id, type, amount, description,
				transaction_date, category, status, is_recurring, recurring_interval,
				next_recurring_date, last_processed)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			t.UserID, t.AccountID, t.Type, t.Amount, t.Description,
			t.Date, t.Category, t.Status, t.IsRecurring, t.RecurringInterval,
			t.NextRecurringDate, t.LastProcessed)
	}

	results := q.SendBatch(context.Background(), batch)
	defer results.Close()

	for range transactions {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("%w: ошибка пакетной вставки транзакций: %v", models.ErrStorage, err)
		}
	}
	return nil
}

// MonthExpenseTotal суммирует расходы счёта за период.
func MonthExpenseTotal(q Querier, userID, accountID int, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = $1 AND account_id = $2 AND type = $3
		  AND transaction_date >= $4 AND transaction_date <= $5`

	var total decimal.Decimal
	err := q.QueryRow(context.Background(), query,
		userID, accountID, models.TypeExpense, from, to).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: ошибка подсчёта расходов за месяц: %v", models.ErrStorage, err)
	}
	return total, nil
}
