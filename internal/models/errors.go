package models

import "errors"

// Ошибки доменного уровня. Слои хранилища и сервисов переводят ошибки
// драйвера БД в эти значения, наружу исходные ошибки не передаются.
var (
	// ErrAlreadyExists — нарушение уникальности при регистрации пользователя.
	ErrAlreadyExists = errors.New("user already exists")
	// ErrUnauthenticated — пароль не совпал с сохранённым хэшем.
	ErrUnauthenticated = errors.New("invalid password")
	// ErrInvalidCredentials — токен доступа отсутствует или не найден.
	// Два случая намеренно неразличимы для клиента.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotFound — объект не существует либо принадлежит другому
	// пользователю; случаи намеренно неразличимы.
	ErrNotFound = errors.New("object not found")
	// ErrValidation — некорректное или выходящее за допустимые границы
	// значение поля, включая ошибки разбора HEX-цвета.
	ErrValidation = errors.New("invalid field value")
	// ErrNoFieldsProvided — запрос на обновление без изменяемых полей.
	ErrNoFieldsProvided = errors.New("no fields to update")
)
