package entity

import (
	"time"

	"github.com/google/uuid"
)

// Prescription represents medication instructions issued by a doctor.
// Issuing a prescription opens a pharmacy order in PRESCRIPTION_CREATED.
type Prescription struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	Vertical  Vertical  `gorm:"type:varchar(30);not null" json:"vertical"`
	Items     JSON      `gorm:"type:jsonb;not null" json:"items"`
	Notes     string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}
