package models

type User struct {
	ID uint `gorm:"primaryKey"`

	RoleID uint `gorm:"not null"`
	Role   Role

	FirstName    string `gorm:"size:100;not null"`
	LastName     string `gorm:"size:100;not null"`
	Email        string `gorm:"size:254;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:128;not null"`

	// Assigned project. Only meaningful for students; null for other roles.
	ProjectID *uint
	Project   *Project `gorm:"constraint:OnDelete:SET NULL"`
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
