package models

import "errors"

// Базовые ошибки домена. Все слои оборачивают их через fmt.Errorf("%w: ..."),
// обработчики сопоставляют через errors.Is.
var (
	ErrValidation       = errors.New("неверные данные")
	ErrNotFound         = errors.New("запись не найдена")
	ErrUnauthorized     = errors.New("доступ запрещен")
	ErrStoreUnavailable = errors.New("хранилище данных недоступно")
	ErrUpload           = errors.New("ошибка загрузки файла")
)
