package service

import "errors"

var (
	// ErrValidation - некорректный ввод, отклоняется до обращения к ядру
	ErrValidation = errors.New("validation failed")
	// ErrNotFound - запись с указанным идентификатором не найдена
	ErrNotFound = errors.New("not found")
	// ErrStoreUnavailable - хранилище недоступно, операция прервана без частичной записи
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrRaceLost - транзакция поиска-или-создания инцидента проиграла гонку и может быть повторена
	ErrRaceLost = errors.New("incident race lost")
)
