package models

import "errors"

// Категории ошибок движков. Конкретные сообщения оборачиваются через %w,
// чтобы вызывающий различал причину отказа errors.Is-ом.
var (
	ErrUnauthorized    = errors.New("нет доступа")
	ErrValidation      = errors.New("некорректные данные")
	ErrNotFound        = errors.New("запись не найдена")
	ErrStorage         = errors.New("ошибка хранилища")
	ErrExternalService = errors.New("ошибка внешнего сервиса")
)
