package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/finova/models"
)

func CreateAccount(q Querier, account *models.Account) error {
	query := `
		INSERT INTO accounts (user_id, name, type, balance, is_default)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := q.QueryRow(context.Background(), query,
		account.UserID,
		account.Name,
		account.Type,
		account.Balance,
		account.IsDefault).Scan(&account.ID, &account.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: ошибка при добавлении счёта: %v", models.ErrStorage, err)
	}
	return nil
}

// GetUserAccount возвращает счёт только если он принадлежит пользователю.
func GetUserAccount(q Querier, accountID, userID int) (*models.Account, error) {
	query := `
		SELECT id, user_id, name, type, balance, is_default, created_at
		FROM accounts
		WHERE id = $1 AND user_id = $2`

	account := &models.Account{}
	err := q.QueryRow(context.Background(), query, accountID, userID).Scan(
		&account.ID,
		&account.UserID,
		&account.Name,
		&account.Type,
		&account.Balance,
		&account.IsDefault,
		&account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: счёт с ID %d не найден", models.ErrNotFound, accountID)
		}
		return nil, fmt.Errorf("%w: ошибка при получении счёта: %v", models.ErrStorage, err)
	}

	return account, nil
}

func CountUserAccounts(q Querier, userID int) (int, error) {
	var count int
	err := q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM accounts WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: ошибка подсчёта счетов: %v", models.ErrStorage, err)
	}
	return count, nil
}

func ListAccountsWithCounts(q Querier, userID int) ([]models.AccountWithCount, error) {
	query := `
		SELECT a.id, a.user_id, a.name, a.type, a.balance, a.is_default, a.created_at,
		       COUNT(t.id) AS transaction_count
		FROM accounts a
		LEFT JOIN transactions t ON t.account_id = a.id
		WHERE a.user_id = $1
		GROUP BY a.id
		ORDER BY a.created_at DESC`

	rows, err := q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: ошибка при получении списка счетов: %v", models.ErrStorage, err)
	}
	defer rows.Close()

	var accounts []models.AccountWithCount
	for rows.Next() {
		var a models.AccountWithCount
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Type, &a.Balance,
			&a.IsDefault, &a.CreatedAt, &a.TransactionCount); err != nil {
			return nil, fmt.Errorf("%w: ошибка чтения счёта: %v", models.ErrStorage, err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// ClearDefaultAccount снимает флаг is_default со всех счетов пользователя.
func ClearDefaultAccount(q Querier, userID int) error {
	_, err := q.Exec(context.Background(),
		`UPDATE accounts SET is_default = FALSE WHERE user_id = $1 AND is_default = TRUE`, userID)
	if err != nil {
		return fmt.Errorf("%w: ошибка сброса счёта по умолчанию: %v", models.ErrStorage, err)
	}
	return nil
}

func SetDefaultAccount(q Querier, accountID, userID int) error {
	result, err := q.Exec(context.Background(),
		`UPDATE accounts SET is_default = TRUE WHERE id = $1 AND user_id = $2`, accountID, userID)
	if err != nil {
		return fmt.Errorf("%w: ошибка назначения счёта по умолчанию: %v", models.ErrStorage, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: счёт с ID %d не найден", models.ErrNotFound, accountID)
	}
	return nil
}

// IncrementAccountBalance атомарно прибавляет дельту к балансу счёта.
// Одновременные дельты по одному счёту складываются на стороне БД,
// потерянных обновлений не бывает.
func IncrementAccountBalance(q Querier, accountID int, delta decimal.Decimal) error {
	result, err := q.Exec(context.Background(),
		`UPDATE accounts SET balance = balance + $1 WHERE id = $2`, delta, accountID)
	if err != nil {
		return fmt.Errorf("%w: ошибка изменения баланса: %v", models.ErrStorage, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: счёт с ID %d не найден", models.ErrNotFound, accountID)
	}
	return nil
}

// SetAccountBalance перезаписывает баланс целиком. Используется только
// при полном пересеве истории счёта.
func SetAccountBalance(q Querier, accountID int, balance decimal.Decimal) error {
	result, err := q.Exec(context.Background(),
		`UPDATE accounts SET balance = $1 WHERE id = $2`, balance, accountID)
	if err != nil {
		return fmt.Errorf("%w: ошибка установки баланса: %v", models.ErrStorage, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: счёт с ID %d не найден", models.ErrNotFound, accountID)
	}
	return nil
}
