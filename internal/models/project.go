package models

// Project is a TCU project a professor coordinates and students are
// assigned to. A project can exist without a professor in charge.
type Project struct {
	ID   uint   `gorm:"primaryKey"`
	Code string `gorm:"size:50;uniqueIndex;not null"`
	Name string `gorm:"size:200;uniqueIndex;not null"`

	ProfessorID *uint
	Professor   *User `gorm:"foreignKey:ProfessorID;constraint:OnDelete:SET NULL"`
}
