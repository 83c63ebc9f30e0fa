package models

// Counter persists a named monotonic value, such as the last issued task id.
type Counter struct {
	Name  string `gorm:"primaryKey"`
	Value int    `gorm:"not null"`
}

// TableName specifies the table name for Counter Model
func (Counter) TableName() string {
	return "counters"
}
