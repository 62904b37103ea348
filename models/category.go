package models

// Category — справочная категория для подсказок в интерфейсе и промпта ИИ.
// Сами транзакции хранят категорию свободной строкой.
type Category struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Type string `json:"type" db:"type"`
}
