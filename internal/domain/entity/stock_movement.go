package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeEntry = "entry" // entrada: suma stock
	MovementTypeExit  = "exit"  // salida: resta stock
)

// ValidMovementType indica si el tipo es entry o exit.
func ValidMovementType(t string) bool {
	return t == MovementTypeEntry || t == MovementTypeExit
}

// StockMovement es una fila del ledger de auditoría (append-only).
// PreviousStock y NewStock son snapshots capturados en la misma transacción
// que muta el stock del producto; nunca se recalculan después.
// Invariante: NewStock = PreviousStock + Quantity (entry) o - Quantity (exit).
type StockMovement struct {
	ID            int64 // asignado por la BD, monótono
	ProductID     int64
	UserID        int64
	Type          string // entry | exit
	Quantity      int    // siempre > 0
	PreviousStock int
	NewStock      int
	Notes         string // máx 500
	CreatedAt     time.Time
}

// StockMovementDetail es el modelo de lectura del histórico: movimiento más
// los datos de producto y usuario necesarios para mostrarlo.
type StockMovementDetail struct {
	StockMovement
	ProductName    string
	ProductBarcode string
	UserName       string
}
