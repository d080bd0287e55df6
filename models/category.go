package models

// Category represents a labeled grouping of questions.
// Categories are seeded out of band and never modified through the API.
type Category struct {
	ID   uint   `gorm:"primaryKey"`
	Type string `gorm:"not null"`
}

func (c *Category) TableName() string {
	return "categories"
}
