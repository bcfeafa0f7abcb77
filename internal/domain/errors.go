package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los casos de uso los envuelven con fmt.Errorf("%w: ...") para dar detalle;
// la capa HTTP los traduce a códigos de estado con errors.Is.
var (
	ErrNotFound      = errors.New("recurso no encontrado")
	ErrValidation    = errors.New("entrada inválida")
	ErrDuplicate     = errors.New("recurso duplicado")
	ErrDuplicateCode = errors.New("el código ya existe en otro concepto")
	ErrInUse         = errors.New("el recurso está referenciado y no puede eliminarse")
	ErrInvalidPrice  = errors.New("precio inválido")
	ErrConflict      = errors.New("conflicto con el estado actual")
)
