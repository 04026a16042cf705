package entity

import "time"

// User representa al operador que registra ventas. La emisión de sesiones es
// externa a este servicio; aquí solo importa la referencia en cada venta.
type User struct {
	ID        string
	Email     string
	CreatedAt time.Time
}
