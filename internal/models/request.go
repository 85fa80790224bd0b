package models

import "time"

// Request is a student's claim of TCU hours against their assigned project.
// It is created Pending and mutated only by a review (status, comment,
// revision date); everything else is immutable after creation.
type Request struct {
	ID uint `gorm:"primaryKey"`

	StudentID *uint
	Student   *User `gorm:"foreignKey:StudentID;constraint:OnDelete:SET NULL"`

	ProjectID *uint
	Project   *Project `gorm:"constraint:OnDelete:SET NULL"`

	StatusID *uint
	Status   *Status `gorm:"constraint:OnDelete:SET NULL"`

	HoursRequested   int        `gorm:"not null"`
	Description      string     `gorm:"type:text;not null"`
	Date             time.Time  `gorm:"type:date;not null"`
	ProfessorComment string     `gorm:"type:text"`
	RevisionDate     *time.Time `gorm:"type:date"`
}
