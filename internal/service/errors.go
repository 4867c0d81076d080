package service

import (
	"errors"
	"fmt"
)

// Domain errors surfaced by the services. Handlers map these to HTTP status
// codes with errors.Is / errors.As — never by matching message strings.
var (
	ErrPagoInsuficiente      = errors.New("el dinero entregado es insuficiente")
	ErrBoletaNoEncontrada    = errors.New("boleta no encontrada")
	ErrProductoNoEncontrado  = errors.New("producto no encontrado")
	ErrCategoriaNoEncontrada = errors.New("categoria no encontrada")
	ErrUsuarioNoEncontrado   = errors.New("usuario no encontrado")
	ErrCredencialesInvalidas = errors.New("credenciales invalidas")
)

// StockInsuficienteError carries the product and quantities involved so the
// caller can tell the cashier exactly what ran out.
type StockInsuficienteError struct {
	Producto   string
	Disponible int
	Solicitado int
}

func (e *StockInsuficienteError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s: quedan %d, se pidieron %d",
		e.Producto, e.Disponible, e.Solicitado)
}
