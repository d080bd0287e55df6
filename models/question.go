package models

// Question represents a quiz item.
// CategoryID is stored in the "category" column and is not a hard foreign key:
// a question may reference a category that does not exist.
type Question struct {
	ID         uint   `gorm:"primaryKey"`
	Question   string `gorm:"type:text;not null"`
	Answer     string `gorm:"type:text;not null"`
	CategoryID uint   `gorm:"column:category;not null;index"`
	Difficulty int    `gorm:"not null"`
}

func (q *Question) TableName() string {
	return "questions"
}
