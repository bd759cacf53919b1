package models

import "errors"

// Сентинельные ошибки доменного уровня, хендлеры сопоставляют их
// со статусами через errors.Is
var (
	ErrValidation       = errors.New("некорректные данные")
	ErrEmailTaken       = errors.New("email уже существует")
	ErrAuth             = errors.New("ошибка аутентификации")
	ErrUnsupportedMedia = errors.New("неподдерживаемый тип файла")
	ErrUploadFailed     = errors.New("не удалось загрузить файл")
	ErrNotFound         = errors.New("не найдено")
	ErrForbidden        = errors.New("доступ запрещен")
)
