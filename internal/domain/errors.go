package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	// ErrNotAuthenticated se retorna ante cualquier respuesta 401/403 del backend.
	// Cuando este error llega al caller, el token ya fue eliminado del storage.
	ErrNotAuthenticated = errors.New("no autenticado")
	ErrValidation       = errors.New("entrada inválida")
	ErrNotFound         = errors.New("recurso no encontrado")
)
