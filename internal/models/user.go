package models

import "time"

const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
	RoleAdmin   = "admin"
)

const (
	ComplaintDepression    = "depressao"
	ComplaintAnxiety       = "ansiedade"
	ComplaintGAD           = "tag"
	ComplaintOCD           = "toc"
	ComplaintBipolar       = "bipolaridade"
	ComplaintSchizophrenia = "esquizofrenia"
	ComplaintOther         = "outros"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:255" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	Age       *int   `json:"age"`
	Complaint string `gorm:"size:30;default:'depressao';index" json:"complaint"`
	Role      string `gorm:"size:20;default:'patient';index" json:"role"`
	Phone     string `gorm:"size:20" json:"phone"`
	Origin    string `gorm:"size:50" json:"origin"`
	PhotoKey  string `gorm:"size:255" json:"photo_key"`

	// CRM, preenchido apenas para médicos
	License string `gorm:"size:20" json:"license"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) IsPatient() bool { return u.Role == RolePatient }
func (u *User) IsDoctor() bool  { return u.Role == RoleDoctor }
func (u *User) IsAdmin() bool   { return u.Role == RoleAdmin }

func ValidComplaint(c string) bool {
	switch c {
	case ComplaintDepression, ComplaintAnxiety, ComplaintGAD, ComplaintOCD,
		ComplaintBipolar, ComplaintSchizophrenia, ComplaintOther:
		return true
	}
	return false
}

func ValidRole(r string) bool {
	switch r {
	case RolePatient, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}
