package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/valeriaulyamaeva/finova/models"
)

func CreateUser(q Querier, user *models.User) error {
	query := `
		INSERT INTO users (clerk_user_id, email, name)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := q.QueryRow(context.Background(), query,
		user.ClerkUserID,
		user.Email,
		user.Name).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: ошибка при добавлении пользователя: %v", models.ErrStorage, err)
	}
	return nil
}

func GetUserByClerkID(q Querier, clerkUserID string) (*models.User, error) {
	query := `
		SELECT id, clerk_user_id, email, name, created_at
		FROM users
		WHERE clerk_user_id = $1`

	user := &models.User{}
	err := q.QueryRow(context.Background(), query, clerkUserID).Scan(
		&user.ID,
		&user.ClerkUserID,
		&user.Email,
		&user.Name,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: пользователь %s не найден", models.ErrNotFound, clerkUserID)
		}
		return nil, fmt.Errorf("%w: ошибка при получении пользователя: %v", models.ErrStorage, err)
	}

	return user, nil
}

func GetUserByID(q Querier, userID int) (*models.User, error) {
	query := `
		SELECT id, clerk_user_id, email, name, created_at
		FROM users
		WHERE id = $1`

	user := &models.User{}
	err := q.QueryRow(context.Background(), query, userID).Scan(
		&user.ID,
		&user.ClerkUserID,
		&user.Email,
		&user.Name,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: пользователь с ID %d не найден", models.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("%w: ошибка при получении пользователя: %v", models.ErrStorage, err)
	}

	return user, nil
}

// SyncUser создаёт локальную запись для внешнего идентификатора либо
// возвращает уже существующую.
func SyncUser(q Querier, clerkUserID, email, name string) (*models.User, error) {
	user, err := GetUserByClerkID(q, clerkUserID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	user = &models.User{ClerkUserID: clerkUserID, Email: email, Name: name}
	if err := CreateUser(q, user); err != nil {
		return nil, err
	}
	return user, nil
}

func ListUsers(q Querier) ([]models.User, error) {
	query := `
		SELECT id, clerk_user_id, email, name, created_at
		FROM users
		ORDER BY id`

	rows, err := q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("%w: ошибка при получении списка пользователей: %v", models.ErrStorage, err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.ClerkUserID, &user.Email, &user.Name, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: ошибка чтения пользователя: %v", models.ErrStorage, err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
