package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/valeriaulyamaeva/finova/models"
)

func GetUserBudget(q Querier, userID int) (*models.Budget, error) {
	query := `
		SELECT id, user_id, amount, last_alert_sent, created_at
		FROM budgets
		WHERE user_id = $1`

	budget := &models.Budget{}
	err := q.QueryRow(context.Background(), query, userID).Scan(
		&budget.ID,
		&budget.UserID,
		&budget.Amount,
		&budget.LastAlertSent,
		&budget.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: бюджет пользователя %d не найден", models.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("%w: ошибка при получении бюджета: %v", models.ErrStorage, err)
	}

	return budget, nil
}

// UpsertBudget создаёт бюджет при первом задании и обновляет сумму дальше.
// Не больше одного бюджета на пользователя.
func UpsertBudget(q Querier, budget *models.Budget) error {
	query := `
		INSERT INTO budgets (user_id, amount)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET amount = EXCLUDED.amount
		RETURNING id, created_at`

	err := q.QueryRow(context.Background(), query,
		budget.UserID,
		budget.Amount).Scan(&budget.ID, &budget.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: ошибка сохранения бюджета: %v", models.ErrStorage, err)
	}
	return nil
}

func MarkAlertSent(q Querier, budgetID int, sentAt time.Time) error {
	result, err := q.Exec(context.Background(),
		`UPDATE budgets SET last_alert_sent = $1 WHERE id = $2`, sentAt, budgetID)
	if err != nil {
		return fmt.Errorf("%w: ошибка отметки отправленного алерта: %v", models.ErrStorage, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: бюджет с ID %d не найден", models.ErrNotFound, budgetID)
	}
	return nil
}

// BudgetAlertRow — бюджет вместе с владельцем и его счётом по умолчанию
// для обхода в проверке алертов. Пользователи без счёта по умолчанию
// в выборку не попадают.
type BudgetAlertRow struct {
	Budget      models.Budget
	UserEmail   string
	UserName    string
	AccountID   int
	AccountName string
}

func ListBudgetsWithDefaultAccount(q Querier) ([]BudgetAlertRow, error) {
	query := `
		SELECT b.id, b.user_id, b.amount, b.last_alert_sent, b.created_at,
		       u.email, u.name, a.id, a.name
		FROM budgets b
		JOIN users u ON u.id = b.user_id
		JOIN accounts a ON a.user_id = b.user_id AND a.is_default = TRUE`

	rows, err := q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("%w: ошибка при получении бюджетов для алертов: %v", models.ErrStorage, err)
	}
	defer rows.Close()

	var result []BudgetAlertRow
	for rows.Next() {
		var row BudgetAlertRow
		if err := rows.Scan(
			&row.Budget.ID,
			&row.Budget.UserID,
			&row.Budget.Amount,
			&row.Budget.LastAlertSent,
			&row.Budget.CreatedAt,
			&row.UserEmail,
			&row.UserName,
			&row.AccountID,
			&row.AccountName,
		); err != nil {
			return nil, fmt.Errorf("%w: ошибка чтения бюджета: %v", models.ErrStorage, err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
