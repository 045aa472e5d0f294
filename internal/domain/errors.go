package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound      = errors.New("recurso no encontrado")
	ErrUserNotFound  = errors.New("usuario no encontrado")
	ErrInvalidInput  = errors.New("entrada inválida")
	ErrDuplicate     = errors.New("recurso duplicado")
	ErrUnauthorized  = errors.New("no autorizado")
	ErrForbidden     = errors.New("acceso denegado")
	ErrConflict      = errors.New("conflicto con el estado actual")
	ErrImportBlocked = errors.New("importación bloqueada: existen nombres sin mapear")
	ErrImportState   = errors.New("transición de importación no permitida")
	ErrRowsFailed    = errors.New("una o más filas del CSV no se pudieron leer")
)
