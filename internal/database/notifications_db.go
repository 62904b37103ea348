package database

import (
	"context"
	"fmt"

	"github.com/valeriaulyamaeva/finova/models"
)

func CreateNotification(q Querier, notification *models.Notification) error {
	query := `
		INSERT INTO notifications (user_id, message, is_read)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := q.QueryRow(context.Background(), query,
		notification.UserID,
		notification.Message,
		notification.IsRead).Scan(&notification.ID, &notification.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: ошибка при добавлении уведомления: %v", models.ErrStorage, err)
	}
	return nil
}

func ListUserNotifications(q Querier, userID int) ([]models.Notification, error) {
	query := `
		SELECT id, user_id, message, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: ошибка при получении уведомлений: %v", models.ErrStorage, err)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: ошибка чтения уведомления: %v", models.ErrStorage, err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func MarkNotificationRead(q Querier, notificationID, userID int) error {
	result, err := q.Exec(context.Background(),
		`UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`,
		notificationID, userID)
	if err != nil {
		return fmt.Errorf("%w: ошибка отметки уведомления: %v", models.ErrStorage, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: уведомление с ID %d не найдено", models.ErrNotFound, notificationID)
	}
	return nil
}
