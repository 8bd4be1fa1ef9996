package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PatientID uint `gorm:"not null;uniqueIndex:idx_patient_slot" json:"patient_id"`
	Patient   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"patient"`

	DoctorID uint `gorm:"not null;uniqueIndex:idx_doctor_slot" json:"doctor_id"`
	Doctor   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"doctor"`

	// Um mesmo horário nunca se repete para o mesmo médico nem para o
	// mesmo paciente, independente do status.
	ScheduledAt time.Time `gorm:"not null;uniqueIndex:idx_doctor_slot;uniqueIndex:idx_patient_slot" json:"scheduled_at"`

	Status string `gorm:"size:15;default:'scheduled';index" json:"status"`

	CancelledByID *uint      `json:"cancelled_by_id"`
	CancelledBy   *User      `gorm:"foreignKey:CancelledByID;constraint:OnDelete:SET NULL;" json:"cancelled_by,omitempty"`
	CancelledAt   *time.Time `json:"cancelled_at"`
	CompletedAt   *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
