package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	// ErrConflict: la operación no es válida para el estado actual del motor (finalizado).
	ErrConflict = errors.New("conflicto con el estado actual")
	// ErrUnavailable: el almacenamiento no respondió tras agotar los reintentos.
	ErrUnavailable = errors.New("servicio no disponible")
)
