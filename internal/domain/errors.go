package domain

import "errors"

var (
	// ErrNoItemsAvailable - ни в одном пуле категорий нет предметов.
	ErrNoItemsAvailable = errors.New("no items available")
	// ErrMissingCollaborator - не передан провайдер лабиринта, табло или другой обязательный участник.
	ErrMissingCollaborator = errors.New("missing collaborator")
	// ErrAllLevelsComplete - все уровни пройдены, дальнейшая генерация невозможна.
	ErrAllLevelsComplete = errors.New("all levels complete")
	// ErrInvalidWeights - таблица весов с отрицательным весом или нулевой суммой.
	ErrInvalidWeights = errors.New("invalid weight table")
	// ErrLevelOutOfRange - индекс уровня вне списка уровней.
	ErrLevelOutOfRange = errors.New("level index out of range")
)
