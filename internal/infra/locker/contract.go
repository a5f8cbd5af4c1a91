package locker

import "context"

// Release снимает блокировку. Повторный вызов безопасен.
type Release func()

// Locker блокировка по ключу (идентификатору оборудования).
// Сериализует создание бронирований и смену статуса одного оборудования
// поверх блокировки строки в PostgreSQL.
type Locker interface {
	Acquire(ctx context.Context, key string) (Release, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}
