package models

type Status struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:100;uniqueIndex;not null"`
}

// Canonical status names, created by the seeder in this order.
const (
	StatusPending  = "Pendiente"
	StatusApproved = "Aceptada"
	StatusRejected = "Rechazada"
)
