package models

import "time"

const (
	ConditionStable   = "estavel"
	ConditionUnstable = "instavel"
	ConditionCritical = "critica"
)

// Visit é o registro clínico criado quando uma consulta é realizada.
// Depois de criado só os campos de receita são preenchidos, pelo passo
// de geração de receita.
type Visit struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint        `gorm:"uniqueIndex;not null" json:"appointment_id"`
	Appointment   Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"appointment"`

	Condition   string `gorm:"size:15;not null" json:"condition"`
	Description string `gorm:"size:1000;not null" json:"description"`

	// Chaves de objeto no storage (uploads)
	FileKey             string `gorm:"size:255" json:"file_key"`
	PrescriptionFileKey string `gorm:"size:255" json:"prescription_file_key"`

	Protocol string `gorm:"size:36;uniqueIndex;not null" json:"protocol"`

	// Receita gerada
	DoctorLicense           string     `gorm:"size:20" json:"doctor_license"`
	PrescriptionText        string     `gorm:"type:text" json:"prescription_text"`
	PrescriptionGeneratedAt *time.Time `json:"prescription_generated_at"`
	PrescriptionPDFKey      string     `gorm:"size:255" json:"prescription_pdf_key"`

	CreatedAt time.Time `json:"created_at"`
}

func ValidCondition(c string) bool {
	switch c {
	case ConditionStable, ConditionUnstable, ConditionCritical:
		return true
	}
	return false
}
