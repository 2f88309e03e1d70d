package model

// User represents a registered account in the system.
type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Username     string `json:"username" gorm:"uniqueIndex;size:150;not null"`
	FirstName    string `json:"first_name" gorm:"size:50;not null"`
	LastName     string `json:"last_name,omitempty" gorm:"size:100"`
	PasswordHash string `json:"-" gorm:"size:255;not null"` // Never expose in JSON

	// Relations
	Tasks []Task `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
}
