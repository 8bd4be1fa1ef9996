package models

import "time"

// StatusInitial marca a origem de um agendamento recém-criado no log.
const StatusInitial = "-"

// StatusLog é imutável: uma linha por transição, nunca atualizada nem
// removida.
type StatusLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint        `gorm:"not null;index" json:"appointment_id"`
	Appointment   Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	// Nulo em transições automáticas (varredura de no-show)
	ActorID *uint `json:"actor_id"`
	Actor   *User `gorm:"foreignKey:ActorID;constraint:OnDelete:SET NULL;" json:"actor,omitempty"`

	PreviousStatus string `gorm:"size:20;not null" json:"previous_status"`
	NewStatus      string `gorm:"size:20;not null" json:"new_status"`

	CreatedAt time.Time `json:"created_at"`
}
