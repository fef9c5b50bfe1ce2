package pgerrors

import (
	"context"
	"errors"

	"github.com/lib/pq"
)

// SQLSTATE коды PostgreSQL, которые обрабатывает сервис
const (
	UniqueViolation      = "23505"
	ForeignKeyViolation  = "23503"
	CheckViolation       = "23514"
	SerializationFailure = "40001"
	DeadlockDetected     = "40P01"
	QueryCanceled        = "57014"
)

// Code возвращает SQLSTATE ошибки pq или пустую строку
func Code(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// Is сообщает, что ошибка pq имеет указанный код
func Is(err error, code string) bool {
	return Code(err) == code
}

// Constraint возвращает имя нарушенного ограничения
func Constraint(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}
	return ""
}

// IsRetryable сообщает о конфликте конкурентных транзакций
func IsRetryable(err error) bool {
	code := Code(err)
	return code == SerializationFailure || code == DeadlockDetected
}

// IsTimeout сообщает, что запрос прерван по дедлайну контекста или statement_timeout
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || Code(err) == QueryCanceled
}
