package models

// File is an uploaded piece of evidence attached to a request at creation
// time. Deleting the request deletes its files.
type File struct {
	ID uint `gorm:"primaryKey"`

	RequestID uint    `gorm:"not null"`
	Request   Request `gorm:"constraint:OnDelete:CASCADE"`

	Name       string `gorm:"size:255;not null"` // name the student uploaded it as
	StoredName string `gorm:"size:255;not null"` // name inside the upload dir, no path
}
