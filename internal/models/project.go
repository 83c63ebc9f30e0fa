package models

// Project represents a project; Name is its identity and never changes.
type Project struct {
	Name        string `json:"name" gorm:"primaryKey"`
	Description string `json:"description"`
	// Seq keeps the listing order when projects are persisted.
	Seq int `json:"-" gorm:"not null;default:0"`
}

// TableName specifies the table name for Project Model
func (Project) TableName() string {
	return "projects"
}
