package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
)

// Errores del control de capacidad y del libro de stock.
var (
	ErrCapacityExceeded = errors.New("capacidad del recurso agotada")
	ErrResourceInactive = errors.New("el recurso está inactivo")
	ErrAlreadyReturned  = errors.New("el movimiento ya fue devuelto")
)

// ErrTransientIO indica un fallo de red/timeout contra la base de datos.
// Una lectura pura puede reintentarse; una escritura no, sin clave de idempotencia.
var ErrTransientIO = errors.New("fallo transitorio de entrada/salida")
