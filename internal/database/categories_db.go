package database

import (
	"context"
	"fmt"

	"github.com/valeriaulyamaeva/finova/models"
)

func ListCategories(q Querier) ([]models.Category, error) {
	query := `SELECT id, name, type FROM categories ORDER BY type, name`

	rows, err := q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("%w: ошибка при получении категорий: %v", models.ErrStorage, err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Type); err != nil {
			return nil, fmt.Errorf("%w: ошибка чтения категории: %v", models.ErrStorage, err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// ListCategoryNames отдаёт только имена — их подставляют в промпт ИИ.
func ListCategoryNames(q Querier) ([]string, error) {
	categories, err := ListCategories(q)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	return names, nil
}

// SeedCategories добавляет недостающие справочные категории.
func SeedCategories(q Querier, categories []models.Category) error {
	for _, c := range categories {
		_, err := q.Exec(context.Background(),
			`INSERT INTO categories (name, type) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
			c.Name, c.Type)
		if err != nil {
			return fmt.Errorf("%w: ошибка заполнения категорий: %v", models.ErrStorage, err)
		}
	}
	return nil
}
