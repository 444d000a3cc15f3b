package staff

import "errors"

var (
	// ErrStaffNotFound возвращается, когда мастер не найден в рамках бизнеса
	ErrStaffNotFound = errors.New("staff not found")

	// ErrTimeOffNotFound возвращается, когда запись отгула не найдена
	ErrTimeOffNotFound = errors.New("time off not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
