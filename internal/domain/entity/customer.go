package entity

import "time"

// Customer representa un cliente del punto de venta.
// Sus estadísticas (órdenes, gasto total, última visita) no se almacenan:
// siempre se derivan de sus ventas al momento de la consulta.
type Customer struct {
	ID            string
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	InternalNotes string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
