package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrUserNotFound     = errors.New("usuario no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrInvalidStatus    = errors.New("estado de permuta inválido")
	ErrInvalidReference = errors.New("referencia a un registro inexistente")
	ErrReferenced       = errors.New("el registro está referenciado por otros registros")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrForbidden        = errors.New("acceso denegado")
	ErrWrongPassword    = errors.New("contraseña actual incorrecta")
)
