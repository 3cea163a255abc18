package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrProductInactive    = errors.New("producto desactivado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
)

// InsufficientStockError lleva el stock disponible y la cantidad pedida para
// que el caller construya un mensaje preciso. Matchea con
// errors.Is(err, ErrInsufficientStock).
type InsufficientStockError struct {
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: stock actual %d, cantidad pedida %d", e.Available, e.Requested)
}

// Is permite comparar contra el sentinel ErrInsufficientStock.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
